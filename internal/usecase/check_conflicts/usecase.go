package check_conflicts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	timetableRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/timetable"
	"github.com/salonbw/SBW-SchedulingService/pkg/metrics"
)

// UseCase use case для проверки интервала-кандидата на конфликты
// Только чтение: никаких записей не делает, пригоден для предпросмотра
// перед созданием или переносом визита
type UseCase struct {
	appointmentRepo AppointmentRepository
	timetableRepo   TimetableRepository
	timeblockRepo   TimeBlockRepository
	metrics         *metrics.Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	timetableRepo TimetableRepository,
	timeblockRepo TimeBlockRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		timetableRepo:   timetableRepo,
		timeblockRepo:   timeblockRepo,
		logger:          logger,
	}
}

// WithMetrics включает счетчики домена (если метрики сервиса включены)
func (uc *UseCase) WithMetrics(m *metrics.Metrics) *UseCase {
	uc.metrics = m
	return uc
}

// Execute выполняет use case проверки конфликтов
// Возвращает ВСЕ блокирующие записи: занятые визитами и блокировками интервалы
// плюс выход за рабочие часы (если не включен force)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflicts: user=%d, employee=%d, interval=[%s, %s), force=%v",
		req.UserID, req.EmployeeID,
		req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339), req.Force)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflicts: validation failed: %v", err)
		return nil, err
	}

	candidate := domain.TimeInterval{Start: req.Start, End: req.End}

	// 2. Рабочие окна на дату кандидата
	working, err := uc.resolveWorkingIntervals(ctx, req.EmployeeID, req.Start)
	if err != nil {
		return nil, err
	}

	// 3. Занятые интервалы в суточном окне кандидата
	dayStart := domain.DateOnly(req.Start)
	dayEnd := domain.DateOnly(req.End).AddDate(0, 0, 1)

	occupied, err := uc.collectOccupied(ctx, req.EmployeeID, dayStart, dayEnd, req.ExcludeAppointmentID)
	if err != nil {
		return nil, err
	}

	// 4. Сверяем кандидата с рабочими окнами и занятым
	conflicts := domain.FindConflicts(candidate, working, occupied, req.Force)

	if uc.metrics != nil {
		result := "clear"
		if len(conflicts) > 0 {
			result = "conflict"
		}
		uc.metrics.ConflictChecksTotal.WithLabelValues(result).Inc()
	}

	uc.logger.Info("CheckConflicts: employee=%d, found %d conflicts", req.EmployeeID, len(conflicts))

	return &Response{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    toConflicts(conflicts),
	}, nil
}

// resolveWorkingIntervals получает график и одобренное исключение и резолвит рабочие окна
func (uc *UseCase) resolveWorkingIntervals(ctx context.Context, employeeID int64, date time.Time) ([]domain.TimeInterval, error) {
	tt, err := uc.timetableRepo.GetActiveForDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, timetableRepo.ErrTimetableNotFound) {
			return []domain.TimeInterval{}, nil
		}
		uc.logger.Error("CheckConflicts: failed to get timetable for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to get timetable: %v", ErrInternal, err)
	}

	exc, err := uc.timetableRepo.GetExceptionForDate(ctx, tt.ID, date)
	if err != nil && !errors.Is(err, timetableRepo.ErrExceptionNotFound) {
		uc.logger.Error("CheckConflicts: failed to get exception for timetable=%d: %v", tt.ID, err)
		return nil, fmt.Errorf("%w: failed to get exception: %v", ErrInternal, err)
	}

	working, err := domain.ResolveWorkingIntervals(tt, exc, date)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to resolve working intervals for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to resolve working intervals: %v", ErrInternal, err)
	}

	return working, nil
}

// collectOccupied собирает занятые интервалы сотрудника в диапазоне [from, to)
func (uc *UseCase) collectOccupied(ctx context.Context, employeeID int64, from, to time.Time, exclude *int64) ([]domain.OccupiedInterval, error) {
	occupied, err := uc.appointmentRepo.GetOccupiedIntervals(ctx, employeeID, from, to, exclude)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to get appointments for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	blocks, err := uc.timeblockRepo.ListForEmployeeInRange(ctx, employeeID, from, to)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to get time blocks for employee=%d: %v", employeeID, err)
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
