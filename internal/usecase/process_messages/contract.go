package process_messages

import (
	"context"
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	"github.com/salonbw/SBW-SchedulingService/internal/integrations/catalogservice"
	"github.com/salonbw/SBW-SchedulingService/internal/integrations/notifier"
	"github.com/salonbw/SBW-SchedulingService/internal/integrations/staffservice"
)

// AppointmentRepository интерфейс репозитория визитов
type AppointmentRepository interface {
	// ListForReminderTrigger получает активные визиты, начинающиеся в окне (now, startBy]
	ListForReminderTrigger(ctx context.Context, now, startBy time.Time) ([]*domain.Appointment, error)
	// ListForFollowUpTrigger получает завершенные визиты с finalizedAt не позже finalizedBy
	ListForFollowUpTrigger(ctx context.Context, finalizedBy time.Time) ([]*domain.Appointment, error)
}

// MessageRuleRepository интерфейс репозитория правил и реестра отправок
type MessageRuleRepository interface {
	ListActive(ctx context.Context) ([]*domain.AutomaticMessageRule, error)
	GetByID(ctx context.Context, id int64) (*domain.AutomaticMessageRule, error)
	HasDispatch(ctx context.Context, appointmentID, ruleID int64) (bool, error)
	InsertDispatch(ctx context.Context, appointmentID, ruleID int64) error
}

// NotifierClient интерфейс клиента шлюза уведомлений
type NotifierClient interface {
	Send(ctx context.Context, msg *notifier.Message) error
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

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
