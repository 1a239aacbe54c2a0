package domain

import (
	"errors"
	"fmt"
	"time"
)

// AppointmentStatus статус визита
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// ErrInvalidTransition возвращается при недопустимом переходе статуса
var ErrInvalidTransition = errors.New("domain: invalid appointment status transition")

// OccupyingStatuses статусы, при которых визит занимает интервал сотрудника
// Используется индексом занятости и детектором конфликтов
var OccupyingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
}

// Допустимые переходы состояний визита
// scheduled → confirmed → in_progress → completed — основной путь
// scheduled|confirmed → cancelled; scheduled|confirmed|in_progress → no_show
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusNoShow},
	// Терминальные статусы — переходов нет
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// Appointment визит клиента к сотруднику
// Движок планирования читает основные поля, но не владеет ими —
// создание и финализация принадлежат workflow бронирования
type Appointment struct {
	ID         int64
	ClientID   int64
	EmployeeID int64
	ServiceID  int64
	StartTime  time.Time
	EndTime    time.Time
	Status     AppointmentStatus

	Notes        *string
	InternalNote *string

	// Поля финализации (opaque payload для движка)
	FinalizedAt   *time.Time
	FinalizedByID *int64
	PaidAmount    *float64

	// Поля отмены
	CancelledAt        *time.Time
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying возвращает true, если визит занимает интервал сотрудника
func (a *Appointment) IsOccupying() bool {
	return a.Status.IsOccupying()
}

// IsTerminal возвращает true для терминального статуса
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// Interval возвращает занимаемый визитом интервал
func (a *Appointment) Interval() TimeInterval {
	return TimeInterval{Start: a.StartTime, End: a.EndTime}
}

// IsOccupying возвращает true, если статус входит в занимающий набор
func (s AppointmentStatus) IsOccupying() bool {
	for _, st := range OccupyingStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsTerminal возвращает true для completed, cancelled и no_show
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// IsValid возвращает true для известного статуса
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo проверяет допустимость перехода из s в target
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidateTransition возвращает ErrInvalidTransition для недопустимого перехода
func ValidateTransition(from, to AppointmentStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
