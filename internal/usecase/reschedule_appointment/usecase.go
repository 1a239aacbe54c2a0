package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	appointmentRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/appointment"
	timetableRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/timetable"
	catalogClient "github.com/salonbw/SBW-SchedulingService/internal/integrations/catalogservice"
	staffClient "github.com/salonbw/SBW-SchedulingService/internal/integrations/staffservice"
	"github.com/salonbw/SBW-SchedulingService/pkg/metrics"
)

// UseCase use case для переноса визита
type UseCase struct {
	appointmentRepo AppointmentRepository
	timetableRepo   TimetableRepository
	timeblockRepo   TimeBlockRepository
	catalogClient   CatalogServiceClient
	staffClient     StaffServiceClient
	txManager       TransactionManager
	metrics         *metrics.Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	timetableRepo TimetableRepository,
	timeblockRepo TimeBlockRepository,
	catalogClient CatalogServiceClient,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		timetableRepo:   timetableRepo,
		timeblockRepo:   timeblockRepo,
		catalogClient:   catalogClient,
		staffClient:     staffClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// WithMetrics включает счетчики домена (если метрики сервиса включены)
func (uc *UseCase) WithMetrics(m *metrics.Metrics) *UseCase {
	uc.metrics = m
	return uc
}

// observeOutcome записывает итог переноса в метрики
func (uc *UseCase) observeOutcome(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ReschedulesTotal.WithLabelValues(outcome).Inc()
	}
}

// Execute выполняет use case переноса визита
// Проверка конфликтов и запись нового интервала вместе со сменой
// исполнителя выполняются в одной сериализуемой транзакции: между
// проверкой и фиксацией никто не может занять тот же интервал.
// Отклоненный перенос не меняет визит
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: user=%d, appointment=%d, newStart=%s, newEmployee=%v, force=%v",
		req.UserID, req.AppointmentID, req.NewStart.Format(time.RFC3339), req.NewEmployeeID, req.Force)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем визит без блокировки для вычисления нового конца: HTTP-вызов
	// каталога не должен выполняться внутри транзакции
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if err := validateReschedulable(appointment); err != nil {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d not reschedulable: %v", req.AppointmentID, err)
		return nil, err
	}

	// 3. Смена исполнителя: целевой сотрудник должен существовать.
	// Как и вызов каталога, проверка выполняется до открытия транзакции
	if req.NewEmployeeID != nil && *req.NewEmployeeID != appointment.EmployeeID {
		if _, err := uc.staffClient.GetEmployee(ctx, *req.NewEmployeeID); err != nil {
			if errors.Is(err, staffClient.ErrEmployeeNotFound) {
				uc.logger.Warn("RescheduleAppointment: target employee id=%d not found", *req.NewEmployeeID)
				return nil, ErrEmployeeNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get employee id=%d: %v", *req.NewEmployeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
	}

	// 4. Вычисляем новый конец: явный из запроса или по длительности услуги
	newEnd, err := uc.resolveNewEnd(ctx, req, appointment)
	if err != nil {
		return nil, err
	}

	candidate := domain.TimeInterval{Start: req.NewStart, End: newEnd}
	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: newStart must be before newEnd", ErrInvalidTimeRange)
	}

	var updated *domain.Appointment

	// 5. Проверка и фиксация переноса атомарны
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Перечитываем визит с блокировкой строки
		current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 5.2. Статус мог измениться между чтениями
		if err := validateReschedulable(current); err != nil {
			return err
		}

		// 5.3. Конфликты проверяются по календарю целевого исполнителя
		targetEmployeeID := current.EmployeeID
		if req.NewEmployeeID != nil {
			targetEmployeeID = *req.NewEmployeeID
		}

		// 5.4. Рабочие окна целевого сотрудника на новую дату
		working, err := uc.resolveWorkingIntervals(txCtx, targetEmployeeID, req.NewStart)
		if err != nil {
			return err
		}

		// 5.5. Занятые интервалы, исключая сам переносимый визит
		dayStart := domain.DateOnly(req.NewStart)
		dayEnd := domain.DateOnly(newEnd).AddDate(0, 0, 1)

		occupied, err := uc.collectOccupied(txCtx, targetEmployeeID, dayStart, dayEnd, &req.AppointmentID)
		if err != nil {
			return err
		}

		// 5.6. Сверяем кандидата; любой конфликт отклоняет перенос целиком
		conflicts := domain.FindConflicts(candidate, working, occupied, req.Force)
		if len(conflicts) > 0 {
			return &ConflictsError{Conflicts: toConflicts(conflicts)}
		}

		// 5.7. Фиксируем новый интервал и исполнителя одной записью
		if err := uc.appointmentRepo.UpdateSchedule(txCtx, req.AppointmentID, candidate.Start, candidate.End, targetEmployeeID); err != nil {
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		updated, err = uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		var conflictsErr *ConflictsError
		if errors.As(err, &conflictsErr) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d rejected, %d conflicts",
				req.AppointmentID, len(conflictsErr.Conflicts))
			uc.observeOutcome("rejected")
			return nil, conflictsErr
		}
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrNotReschedulable) {
			return nil, err
		}
		uc.logger.Error("RescheduleAppointment: transaction failed for appointment id=%d: %v", req.AppointmentID, err)
		uc.observeOutcome("error")
		return nil, err
	}

	uc.observeOutcome("moved")

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to [%s, %s)",
		updated.ID, updated.StartTime.Format(time.RFC3339), updated.EndTime.Format(time.RFC3339))

	return &Response{
		ID:         updated.ID,
		ClientID:   updated.ClientID,
		EmployeeID: updated.EmployeeID,
		ServiceID:  updated.ServiceID,
		StartTime:  updated.StartTime,
		EndTime:    updated.EndTime,
		Status:     string(updated.Status),
		UpdatedAt:  updated.UpdatedAt,
	}, nil
}

// resolveNewEnd вычисляет новый конец визита
// Явный newEnd из запроса имеет приоритет; иначе конец вычисляется
// как newStart + длительность услуги из каталога
func (uc *UseCase) resolveNewEnd(ctx context.Context, req *Request, appointment *domain.Appointment) (time.Time, error) {
	if req.NewEnd != nil {
		return *req.NewEnd, nil
	}

	service, err := uc.catalogClient.GetService(ctx, appointment.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("RescheduleAppointment: service id=%d not found", appointment.ServiceID)
			return time.Time{}, ErrServiceNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get service id=%d: %v", appointment.ServiceID, err)
		return time.Time{}, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.DurationMinutes <= 0 {
		return time.Time{}, fmt.Errorf("%w: service id=%d has no duration", ErrInternal, service.ID)
	}

	return req.NewStart.Add(time.Duration(service.DurationMinutes) * time.Minute), nil
}

// resolveWorkingIntervals получает график и одобренное исключение и резолвит рабочие окна
func (uc *UseCase) resolveWorkingIntervals(ctx context.Context, employeeID int64, date time.Time) ([]domain.TimeInterval, error) {
	tt, err := uc.timetableRepo.GetActiveForDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, timetableRepo.ErrTimetableNotFound) {
			return []domain.TimeInterval{}, nil
		}
		return nil, fmt.Errorf("%w: failed to get timetable: %v", ErrInternal, err)
	}

	exc, err := uc.timetableRepo.GetExceptionForDate(ctx, tt.ID, date)
	if err != nil && !errors.Is(err, timetableRepo.ErrExceptionNotFound) {
		return nil, fmt.Errorf("%w: failed to get exception: %v", ErrInternal, err)
	}

	working, err := domain.ResolveWorkingIntervals(tt, exc, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve working intervals: %v", ErrInternal, err)
	}

	return working, nil
}

// collectOccupied собирает занятые интервалы сотрудника в диапазоне [from, to)
func (uc *UseCase) collectOccupied(ctx context.Context, employeeID int64, from, to time.Time, exclude *int64) ([]domain.OccupiedInterval, error) {
	occupied, err := uc.appointmentRepo.GetOccupiedIntervals(ctx, employeeID, from, to, exclude)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	blocks, err := uc.timeblockRepo.ListForEmployeeInRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get time blocks: %v", ErrInternal, err)
	}

	for _, block := range blocks {
		for _, occ := range block.Occurrences(from, to) {
			occupied = append(occupied, domain.OccupiedInterval{
				TimeInterval: occ,
				Source:       domain.SourceTimeBlock,
				SourceID:     block.ID,
			})
		}
	}

	return occupied, nil
}

func toConflicts(conflicts []domain.Conflict) []Conflict {
	result := make([]Conflict, 0, len(conflicts))
	for _, c := range conflicts {
		result = append(result, Conflict{
			SourceType: string(c.SourceType),
			SourceID:   c.SourceID,
			Start:      c.Start,
			End:        c.End,
		})
	}
	return result
}
