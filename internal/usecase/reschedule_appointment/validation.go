package reschedule_appointment

import (
	"fmt"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.NewStart.IsZero() {
		return fmt.Errorf("%w: newStart is required", ErrInvalidInput)
	}

	if req.NewEnd != nil && !req.NewStart.Before(*req.NewEnd) {
		return fmt.Errorf("%w: newStart must be before newEnd", ErrInvalidTimeRange)
	}

	if req.NewEmployeeID != nil && *req.NewEmployeeID <= 0 {
		return fmt.Errorf("%w: newEmployeeId must be positive", ErrInvalidInput)
	}

	return nil
}

// validateReschedulable проверяет, что визит в статусе, допускающем перенос
// Переносить можно только будущие активные визиты: scheduled и confirmed
func validateReschedulable(appointment *domain.Appointment) error {
	switch appointment.Status {
	case domain.StatusScheduled, domain.StatusConfirmed:
		return nil
	}
	return fmt.Errorf("%w: status=%s", ErrNotReschedulable, appointment.Status)
}
