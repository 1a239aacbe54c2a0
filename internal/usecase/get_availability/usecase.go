package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	timetableRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/timetable"
	staffClient "github.com/salonbw/SBW-SchedulingService/internal/integrations/staffservice"
)

// UseCase use case для вычисления доступности сотрудника на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	timetableRepo   TimetableRepository
	timeblockRepo   TimeBlockRepository
	staffClient     StaffServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	timetableRepo TimetableRepository,
	timeblockRepo TimeBlockRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		timetableRepo:   timetableRepo,
		timeblockRepo:   timeblockRepo,
		staffClient:     staffClient,
		logger:          logger,
	}
}

// Execute выполняет use case вычисления доступности
//
// Доступность = рабочие окна (график + одобренное исключение)
// минус занятые интервалы (активные визиты + блокировки времени)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: user=%d, employee=%d, date=%s",
		req.UserID, req.EmployeeID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование сотрудника
	if _, err := uc.staffClient.GetEmployee(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, staffClient.ErrEmployeeNotFound) {
			uc.logger.Warn("GetAvailability: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailability: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 3. Резолвим рабочие окна на дату
	working, err := uc.resolveWorkingIntervals(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return nil, err
	}

	// Нет действующего графика — нулевая доступность, это не ошибка
	if len(working) == 0 {
		uc.logger.Info("GetAvailability: no working intervals for employee=%d on %s",
			req.EmployeeID, req.Date.Format(domain.DateFormat))
		return &Response{
			EmployeeID:       req.EmployeeID,
			Date:             req.Date,
			WorkingIntervals: []Interval{},
			FreeIntervals:    []Interval{},
		}, nil
	}

	// 4. Собираем занятые интервалы за сутки
	dayStart := domain.DateOnly(req.Date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	occupied, err := uc.collectOccupied(ctx, req.EmployeeID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	// 5. Вычитаем занятое из рабочих окон
	free := domain.SubtractAll(working, occupied)

	uc.logger.Info("GetAvailability: employee=%d, date=%s, working=%d, occupied=%d, free=%d",
		req.EmployeeID, req.Date.Format(domain.DateFormat), len(working), len(occupied), len(free))

	return &Response{
		EmployeeID:       req.EmployeeID,
		Date:             req.Date,
		WorkingIntervals: toIntervals(working),
		FreeIntervals:    toIntervals(free),
	}, nil
}

// resolveWorkingIntervals получает график и одобренное исключение и резолвит рабочие окна
func (uc *UseCase) resolveWorkingIntervals(ctx context.Context, employeeID int64, date time.Time) ([]domain.TimeInterval, error) {
	tt, err := uc.timetableRepo.GetActiveForDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, timetableRepo.ErrTimetableNotFound) {
			return []domain.TimeInterval{}, nil
		}
		uc.logger.Error("GetAvailability: failed to get timetable for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to get timetable: %v", ErrInternal, err)
	}

	exc, err := uc.timetableRepo.GetExceptionForDate(ctx, tt.ID, date)
	if err != nil && !errors.Is(err, timetableRepo.ErrExceptionNotFound) {
		uc.logger.Error("GetAvailability: failed to get exception for timetable=%d: %v", tt.ID, err)
		return nil, fmt.Errorf("%w: failed to get exception: %v", ErrInternal, err)
	}

	working, err := domain.ResolveWorkingIntervals(tt, exc, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve working intervals for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to resolve working intervals: %v", ErrInternal, err)
	}

	return working, nil
}

// collectOccupied собирает занятые интервалы сотрудника в диапазоне [from, to)
func (uc *UseCase) collectOccupied(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.OccupiedInterval, error) {
	occupied, err := uc.appointmentRepo.GetOccupiedIntervals(ctx, employeeID, from, to, nil)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	blocks, err := uc.timeblockRepo.ListForEmployeeInRange(ctx, employeeID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get time blocks for employee=%d: %v", employeeID, err)
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

func toIntervals(intervals []domain.TimeInterval) []Interval {
	result := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		result = append(result, Interval{Start: iv.Start, End: iv.End})
	}
	return result
}
