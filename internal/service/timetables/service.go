package timetables

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	timetableRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/timetable"
	"github.com/salonbw/SBW-SchedulingService/internal/service/timetables/models"
	"github.com/salonbw/SBW-SchedulingService/pkg/types"
)

// Service сервис workflow исключений из графика
// Исключение создается в статусе pending и влияет на доступность
// только после одобрения
type Service struct {
	timetableRepo TimetableRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса графиков
func NewService(timetableRepo TimetableRepository, logger Logger) *Service {
	return &Service{
		timetableRepo: timetableRepo,
		logger:        logger,
	}
}

// CreateException создает исключение на дату
// На одну дату графика допускается не более одного исключения
func (s *Service) CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("CreateException: timetable=%d, date=%s, type=%s, user=%d", req.TimetableID, req.Date, req.Type, req.UserID)

	exc, err := s.buildException(req)
	if err != nil {
		s.logger.Warn("CreateException: validation failed for timetable=%d: %v", req.TimetableID, err)
		return nil, err
	}

	created, err := s.timetableRepo.CreateException(ctx, exc)
	if err != nil {
		if errors.Is(err, timetableRepo.ErrExceptionExists) {
			s.logger.Warn("CreateException: exception already exists for timetable=%d date=%s", req.TimetableID, req.Date)
			return nil, ErrExceptionExists
		}
		s.logger.Error("CreateException: repository error for timetable=%d: %v", req.TimetableID, err)
		return nil, fmt.Errorf("%w: CreateException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateException: exception id=%d created for timetable=%d", created.ID, created.TimetableID)
	return models.FromDomainException(created), nil
}

// ApproveException одобряет исключение
// Повторное одобрение отклоняется — одобрение фиксируется один раз
func (s *Service) ApproveException(ctx context.Context, id int64, approverID int64) (*models.ExceptionResponse, error) {
	s.logger.Info("ApproveException: exception id=%d, approver=%d", id, approverID)

	exc, err := s.timetableRepo.GetExceptionByID(ctx, id)
	if err != nil {
		if errors.Is(err, timetableRepo.ErrExceptionNotFound) {
			s.logger.Warn("ApproveException: exception id=%d not found", id)
			return nil, ErrExceptionNotFound
		}
		s.logger.Error("ApproveException: repository error for exception id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ApproveException - repository error: %v", ErrInternal, err)
	}

	if exc.IsApproved() {
		s.logger.Warn("ApproveException: exception id=%d already approved", id)
		return nil, ErrAlreadyApproved
	}

	if err := s.timetableRepo.ApproveException(ctx, id, approverID); err != nil {
		if errors.Is(err, timetableRepo.ErrExceptionNotFound) {
			return nil, ErrExceptionNotFound
		}
		s.logger.Error("ApproveException: repository error for exception id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ApproveException - repository error: %v", ErrInternal, err)
	}

	updated, err := s.timetableRepo.GetExceptionByID(ctx, id)
	if err != nil {
		s.logger.Error("ApproveException: reload failed for exception id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ApproveException - reload exception: %v", ErrInternal, err)
	}

	s.logger.Info("ApproveException: exception id=%d approved by user=%d", id, approverID)
	return models.FromDomainException(updated), nil
}

// buildException валидирует запрос и собирает domain модель
func (s *Service) buildException(req *models.CreateExceptionRequest) (*domain.TimetableException, error) {
	if req.TimetableID <= 0 {
		return nil, fmt.Errorf("%w: timetableId is required", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, req.Date)
	}

	excType := domain.ExceptionType(req.Type)
	switch excType {
	case domain.ExceptionDayOff, domain.ExceptionCustomHours, domain.ExceptionVacation:
	default:
		return nil, fmt.Errorf("%w: unknown exception type %q", ErrInvalidInput, req.Type)
	}

	exc := &domain.TimetableException{
		TimetableID: req.TimetableID,
		Date:        date,
		Type:        excType,
		Title:       req.Title,
		Reason:      req.Reason,
		IsAllDay:    req.IsAllDay,
		IsPending:   true,
		CreatedByID: req.UserID,
	}

	if excType == domain.ExceptionCustomHours {
		if req.CustomStartTime == nil || req.CustomEndTime == nil {
			return nil, fmt.Errorf("%w: custom_hours exception requires customStartTime and customEndTime", ErrInvalidInput)
		}
		start, err := types.NewTimeStringFromString(*req.CustomStartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid customStartTime: %v", ErrInvalidInput, err)
		}
		end, err := types.NewTimeStringFromString(*req.CustomEndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid customEndTime: %v", ErrInvalidInput, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: customStartTime must be before customEndTime", ErrInvalidInput)
		}
		exc.CustomStartTime = &start
		exc.CustomEndTime = &end
	}

	return exc, nil
}
