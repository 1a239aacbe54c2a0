package timeblocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	timeblockRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/timeblock"
	"github.com/salonbw/SBW-SchedulingService/internal/service/timeblocks/models"
)

// Service сервис управления блокировками времени
type Service struct {
	timeblockRepo TimeBlockRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(timeblockRepo TimeBlockRepository, logger Logger) *Service {
	return &Service{
		timeblockRepo: timeblockRepo,
		logger:        logger,
	}
}

// Create создает блокировку времени
func (s *Service) Create(ctx context.Context, req *models.CreateTimeBlockRequest) (*models.TimeBlockResponse, error) {
	s.logger.Info("Create: time block for employee=%d, type=%s", req.EmployeeID, req.Type)

	block := &domain.TimeBlock{
		EmployeeID: req.EmployeeID,
		Type:       domain.BlockType(req.Type),
		Title:      req.Title,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		AllDay:     req.AllDay,
		Notes:      req.Notes,
	}
	if req.Recurrence != nil {
		block.Recurrence = req.Recurrence.ToDomainRecurrence()
	}

	if err := s.validate(block); err != nil {
		s.logger.Warn("Create: validation failed for employee=%d: %v", req.EmployeeID, err)
		return nil, err
	}

	created, err := s.timeblockRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("Create: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: time block id=%d created for employee=%d", created.ID, created.EmployeeID)
	return models.FromDomainTimeBlock(created), nil
}

// GetByID получает блокировку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TimeBlockResponse, error) {
	block, err := s.timeblockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeblockRepo.ErrTimeBlockNotFound) {
			return nil, ErrTimeBlockNotFound
		}
		s.logger.Error("GetByID: repository error for time block id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainTimeBlock(block), nil
}

// Update частично обновляет блокировку
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTimeBlockRequest) (*models.TimeBlockResponse, error) {
	s.logger.Info("Update: time block id=%d", id)

	block, err := s.timeblockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeblockRepo.ErrTimeBlockNotFound) {
			s.logger.Warn("Update: time block id=%d not found", id)
			return nil, ErrTimeBlockNotFound
		}
		s.logger.Error("Update: repository error for time block id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Type != nil {
		block.Type = domain.BlockType(*req.Type)
	}
	if req.Title != nil {
		block.Title = req.Title
	}
	if req.StartTime != nil {
		block.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		block.EndTime = *req.EndTime
	}
	if req.AllDay != nil {
		block.AllDay = *req.AllDay
	}
	if req.Recurrence != nil {
		block.Recurrence = req.Recurrence.ToDomainRecurrence()
	}
	if req.Notes != nil {
		block.Notes = req.Notes
	}

	if err := s.validate(block); err != nil {
		s.logger.Warn("Update: validation failed for time block id=%d: %v", id, err)
		return nil, err
	}

	if err := s.timeblockRepo.Update(ctx, block); err != nil {
		if errors.Is(err, timeblockRepo.ErrTimeBlockNotFound) {
			return nil, ErrTimeBlockNotFound
		}
		s.logger.Error("Update: repository error for time block id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: time block id=%d updated", id)
	return models.FromDomainTimeBlock(block), nil
}

// Delete удаляет блокировку
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: time block id=%d", id)

	if err := s.timeblockRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, timeblockRepo.ErrTimeBlockNotFound) {
			s.logger.Warn("Delete: time block id=%d not found", id)
			return ErrTimeBlockNotFound
		}
		s.logger.Error("Delete: repository error for time block id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: time block id=%d deleted", id)
	return nil
}

// validate проверяет инварианты блокировки перед записью
func (s *Service) validate(block *domain.TimeBlock) error {
	if block.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeId is required", ErrInvalidInput)
	}
	if !domain.IsValidBlockType(block.Type) {
		return fmt.Errorf("%w: unknown block type %q", ErrInvalidInput, block.Type)
	}
	if block.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	// Для allDay границы берутся из даты начала, конец может не передаваться
	if !block.AllDay && !block.StartTime.Before(block.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeRange)
	}

	if block.Recurrence != nil {
		switch block.Recurrence.Frequency {
		case domain.RecurrenceDaily, domain.RecurrenceWeekly:
		default:
			return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRecurrence, block.Recurrence.Frequency)
		}
		if block.Recurrence.Interval < 1 {
			return fmt.Errorf("%w: interval must be >= 1", ErrInvalidRecurrence)
		}
		if block.Recurrence.Until != nil && block.Recurrence.Until.Before(block.StartTime) {
			return fmt.Errorf("%w: until must not be before startTime", ErrInvalidRecurrence)
		}
	}

	return nil
}
