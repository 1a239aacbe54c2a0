package domain

import (
	"time"
)

// TriggerType тип триггера автоматического сообщения
type TriggerType string

const (
	// TriggerBeforeAppointment напоминание за offset до начала визита
	TriggerBeforeAppointment TriggerType = "before_appointment"
	// TriggerAfterCompletion сообщение через offset после завершения визита
	TriggerAfterCompletion TriggerType = "after_completion"
)

// MessageChannel канал доставки сообщения
type MessageChannel string

const (
	ChannelSms   MessageChannel = "sms"
	ChannelEmail MessageChannel = "email"
)

// AutomaticMessageRule правило автоматической отправки сообщений
type AutomaticMessageRule struct {
	ID            int64
	Name          string
	Trigger       TriggerType
	Channel       MessageChannel
	OffsetMinutes int // смещение относительно якоря триггера
	TemplateID    *int64
	Content       string // текст с плейсхолдерами, используется если шаблон не задан
	IsActive      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnchorTime вычисляет якорное время правила для визита
// before_appointment: startTime - offset; after_completion: finalizedAt + offset
// Возвращает false, если для визита якорь не определен
// (например, after_completion без finalizedAt)
func (r *AutomaticMessageRule) AnchorTime(appt *Appointment) (time.Time, bool) {
	offset := time.Duration(r.OffsetMinutes) * time.Minute
	switch r.Trigger {
	case TriggerBeforeAppointment:
		return appt.StartTime.Add(-offset), true
	case TriggerAfterCompletion:
		if appt.FinalizedAt == nil {
			return time.Time{}, false
		}
		return appt.FinalizedAt.Add(offset), true
	}
	return time.Time{}, false
}

// EligibleStatus проверяет, подходит ли статус визита под триггер правила
// Отмененные и no_show визиты исключаются всегда, независимо от реестра отправок
func (r *AutomaticMessageRule) EligibleStatus(status AppointmentStatus) bool {
	switch r.Trigger {
	case TriggerBeforeAppointment:
		return status == StatusScheduled || status == StatusConfirmed
	case TriggerAfterCompletion:
		return status == StatusCompleted
	}
	return false
}

// DispatchStatus результат обработки пары (правило, визит)
// Реестр отправок append-only: уникальность (appointmentId, ruleId)
// гарантирует доставку не более одного раза
type DispatchStatus string

const (
	DispatchSent    DispatchStatus = "sent"
	DispatchSkipped DispatchStatus = "skipped"
	DispatchFailed  DispatchStatus = "failed"
)