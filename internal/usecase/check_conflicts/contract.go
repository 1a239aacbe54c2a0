package check_conflicts

import (
	"context"
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория визитов
type AppointmentRepository interface {
	// GetOccupiedIntervals получает занятые визитами интервалы сотрудника в диапазоне
	GetOccupiedIntervals(ctx context.Context, employeeID int64, from, to time.Time, excludeAppointmentID *int64) ([]domain.OccupiedInterval, error)
}

// TimetableRepository интерфейс репозитория графиков
type TimetableRepository interface {
	GetActiveForDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Timetable, error)
	GetExceptionForDate(ctx context.Context, timetableID int64, date time.Time) (*domain.TimetableException, error)
}

// TimeBlockRepository интерфейс репозитория блокировок времени
type TimeBlockRepository interface {
	ListForEmployeeInRange(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.TimeBlock, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
