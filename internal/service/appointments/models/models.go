package models

import (
	"errors"
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса визита
type UpdateStatusRequest struct {
	UserID             int64   `json:"userId"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"` // только для cancelled
}

// Response модели

// AppointmentResponse ответ с данными визита
type AppointmentResponse struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"clientId"`
	EmployeeID int64     `json:"employeeId"`
	ServiceID  int64     `json:"serviceId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`

	Notes *string `json:"notes,omitempty"`

	FinalizedAt   *time.Time `json:"finalizedAt,omitempty"`
	FinalizedByID *int64     `json:"finalizedById,omitempty"`
	PaidAmount    *float64   `json:"paidAmount,omitempty"`

	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		EmployeeID:         a.EmployeeID,
		ServiceID:          a.ServiceID,
		StartTime:          a.StartTime,
		EndTime:            a.EndTime,
		Status:             string(a.Status),
		Notes:              a.Notes,
		FinalizedAt:        a.FinalizedAt,
		FinalizedByID:      a.FinalizedByID,
		PaidAmount:         a.PaidAmount,
		CancelledAt:        a.CancelledAt,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
