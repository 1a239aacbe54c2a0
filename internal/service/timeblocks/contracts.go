package timeblocks

import (
	"context"
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
)

// TimeBlockRepository интерфейс репозитория блокировок времени
type TimeBlockRepository interface {
	Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeBlock, error)
	Update(ctx context.Context, block *domain.TimeBlock) error
	Delete(ctx context.Context, id int64) error
	ListForEmployeeInRange(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.TimeBlock, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
