package reschedule_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrAppointmentNotFound возвращается, когда визит не найден
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrNotReschedulable возвращается при попытке перенести визит
	// в статусе, не допускающем перенос
	ErrNotReschedulable = errors.New("appointment cannot be rescheduled in its current status")

	// ErrServiceNotFound возвращается, когда услуга визита не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found in catalog")

	// ErrEmployeeNotFound возвращается, когда целевой сотрудник не найден
	ErrEmployeeNotFound = errors.New("target employee not found")

	// ErrScheduleConflict возвращается, когда новый интервал блокирован
	// Визит при этом остается без изменений
	ErrScheduleConflict = errors.New("schedule conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// ConflictsError ошибка переноса с полным списком блокирующих записей
// Разворачивается в ErrScheduleConflict для проверки через errors.Is
type ConflictsError struct {
	Conflicts []Conflict
}

// Error реализует интерфейс error
func (e *ConflictsError) Error() string {
	return fmt.Sprintf("%v: %d blocking entries", ErrScheduleConflict, len(e.Conflicts))
}

// Unwrap возвращает сигнальную ошибку конфликта
func (e *ConflictsError) Unwrap() error {
	return ErrScheduleConflict
}
