package models

import (
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
)

// Request модели

// RecurrenceRequest шаблон повторения блока
type RecurrenceRequest struct {
	Frequency string     `json:"frequency"`          // daily | weekly
	Interval  int        `json:"interval,omitempty"` // каждые N дней/недель, по умолчанию 1
	Until     *time.Time `json:"until,omitempty"`
}

// CreateTimeBlockRequest запрос на создание блокировки времени
type CreateTimeBlockRequest struct {
	EmployeeID int64              `json:"employeeId"`
	Type       string             `json:"type"`
	Title      *string            `json:"title,omitempty"`
	StartTime  time.Time          `json:"startTime"`
	EndTime    time.Time          `json:"endTime"`
	AllDay     bool               `json:"allDay,omitempty"`
	Recurrence *RecurrenceRequest `json:"recurrence,omitempty"`
	Notes      *string            `json:"notes,omitempty"`
}

// UpdateTimeBlockRequest запрос на изменение блокировки времени
type UpdateTimeBlockRequest struct {
	Type       *string            `json:"type,omitempty"`
	Title      *string            `json:"title,omitempty"`
	StartTime  *time.Time         `json:"startTime,omitempty"`
	EndTime    *time.Time         `json:"endTime,omitempty"`
	AllDay     *bool              `json:"allDay,omitempty"`
	Recurrence *RecurrenceRequest `json:"recurrence,omitempty"`
	Notes      *string            `json:"notes,omitempty"`
}

// Response модели

// RecurrenceResponse шаблон повторения в ответе
type RecurrenceResponse struct {
	Frequency string     `json:"frequency"`
	Interval  int        `json:"interval"`
	Until     *time.Time `json:"until,omitempty"`
}

// TimeBlockResponse ответ с данными блокировки
type TimeBlockResponse struct {
	ID         int64               `json:"id"`
	EmployeeID int64               `json:"employeeId"`
	Type       string              `json:"type"`
	Title      *string             `json:"title,omitempty"`
	StartTime  time.Time           `json:"startTime"`
	EndTime    time.Time           `json:"endTime"`
	AllDay     bool                `json:"allDay"`
	Recurrence *RecurrenceResponse `json:"recurrence,omitempty"`
	Notes      *string             `json:"notes,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// ToDomainRecurrence конвертирует request в domain шаблон
func (r *RecurrenceRequest) ToDomainRecurrence() *domain.RecurrencePattern {
	interval := r.Interval
	if interval < 1 {
		interval = 1
	}
	return &domain.RecurrencePattern{
		Frequency: domain.RecurrenceFrequency(r.Frequency),
		Interval:  interval,
		Until:     r.Until,
	}
}

// FromDomainTimeBlock конвертирует domain модель в response
func FromDomainTimeBlock(b *domain.TimeBlock) *TimeBlockResponse {
	resp := &TimeBlockResponse{
		ID:         b.ID,
		EmployeeID: b.EmployeeID,
		Type:       string(b.Type),
		Title:      b.Title,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		AllDay:     b.AllDay,
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	if b.Recurrence != nil {
		resp.Recurrence = &RecurrenceResponse{
			Frequency: string(b.Recurrence.Frequency),
			Interval:  b.Recurrence.Interval,
			Until:     b.Recurrence.Until,
		}
	}
	return resp
}
