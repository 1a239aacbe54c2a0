package timetables

import (
	"context"
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
)

// TimetableRepository интерфейс репозитория графиков
type TimetableRepository interface {
	GetActiveForDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Timetable, error)
	GetExceptionByID(ctx context.Context, id int64) (*domain.TimetableException, error)
	CreateException(ctx context.Context, exc *domain.TimetableException) (*domain.TimetableException, error)
	ApproveException(ctx context.Context, id int64, approverID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
