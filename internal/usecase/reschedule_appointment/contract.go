package reschedule_appointment

import (
	"context"
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	"github.com/salonbw/SBW-SchedulingService/internal/integrations/catalogservice"
	"github.com/salonbw/SBW-SchedulingService/internal/integrations/staffservice"
)

// AppointmentRepository интерфейс репозитория визитов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetOccupiedIntervals(ctx context.Context, employeeID int64, from, to time.Time, excludeAppointmentID *int64) ([]domain.OccupiedInterval, error)
	UpdateSchedule(ctx context.Context, id int64, start, end time.Time, employeeID int64) error
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

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetEmployee(ctx context.Context, employeeID int64) (*staffservice.Employee, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
