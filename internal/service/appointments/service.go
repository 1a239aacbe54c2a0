package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	appointmentRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/appointment"
	"github.com/salonbw/SBW-SchedulingService/internal/service/appointments/models"
)

// Service сервис жизненного цикла визитов
// Единственная точка смены статуса: все переходы проходят через
// машину состояний domain, недопустимый переход не меняет визит
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса визитов
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает визит по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// UpdateStatus переводит визит в новый статус
// Переход проверяется по машине состояний под сериализуемой транзакцией:
// чтение текущего статуса и запись нового атомарны
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d, target status=%s, user=%d", id, req.Status, req.UserID)

	target, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, req.Status)
	}

	var updated *domain.Appointment

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Читаем визит с блокировкой строки
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - fetch appointment: %v", ErrInternal, err)
		}

		// 2. Проверяем переход по машине состояний
		if err := domain.ValidateTransition(appointment.Status, target); err != nil {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, target)
		}

		// 3. Применяем переход
		switch target {
		case domain.StatusCancelled:
			err = s.appointmentRepo.Cancel(txCtx, id, req.CancellationReason)
		case domain.StatusCompleted:
			err = s.appointmentRepo.Complete(txCtx, id, req.UserID)
		default:
			err = s.appointmentRepo.UpdateStatus(txCtx, id, target)
		}
		if err != nil {
			return fmt.Errorf("%w: UpdateStatus - apply transition: %v", ErrInternal, err)
		}

		// 4. Перечитываем итоговое состояние в рамках той же транзакции
		updated, err = s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: UpdateStatus - reload appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		s.logger.Error("UpdateStatus: transaction failed for appointment id=%d: %v", id, err)
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%d moved to status=%s", id, updated.Status)
	return models.FromDomainAppointment(updated), nil
}
