package models

import (
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
)

// Request модели

// CreateExceptionRequest запрос на создание исключения из графика
type CreateExceptionRequest struct {
	TimetableID     int64   `json:"timetableId"`
	Date            string  `json:"date"` // "2025-10-15"
	Type            string  `json:"type"` // day_off | custom_hours | vacation
	Title           *string `json:"title,omitempty"`
	Reason          *string `json:"reason,omitempty"`
	CustomStartTime *string `json:"customStartTime,omitempty"` // "10:00", только для custom_hours
	CustomEndTime   *string `json:"customEndTime,omitempty"`   // "16:00", только для custom_hours
	IsAllDay        bool    `json:"isAllDay,omitempty"`
	UserID          int64   `json:"userId"`
}

// Response модели

// ExceptionResponse ответ с данными исключения
type ExceptionResponse struct {
	ID              int64      `json:"id"`
	TimetableID     int64      `json:"timetableId"`
	Date            string     `json:"date"`
	Type            string     `json:"type"`
	Title           *string    `json:"title,omitempty"`
	Reason          *string    `json:"reason,omitempty"`
	CustomStartTime *string    `json:"customStartTime,omitempty"`
	CustomEndTime   *string    `json:"customEndTime,omitempty"`
	IsAllDay        bool       `json:"isAllDay"`
	IsPending       bool       `json:"isPending"`
	CreatedByID     int64      `json:"createdById"`
	ApprovedByID    *int64     `json:"approvedById,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// FromDomainException конвертирует domain модель в response
func FromDomainException(e *domain.TimetableException) *ExceptionResponse {
	resp := &ExceptionResponse{
		ID:           e.ID,
		TimetableID:  e.TimetableID,
		Date:         e.Date.Format(domain.DateFormat),
		Type:         string(e.Type),
		Title:        e.Title,
		Reason:       e.Reason,
		IsAllDay:     e.IsAllDay,
		IsPending:    e.IsPending,
		CreatedByID:  e.CreatedByID,
		ApprovedByID: e.ApprovedByID,
		ApprovedAt:   e.ApprovedAt,
		CreatedAt:    e.CreatedAt,
	}
	if e.CustomStartTime != nil {
		s := e.CustomStartTime.String()
		resp.CustomStartTime = &s
	}
	if e.CustomEndTime != nil {
		s := e.CustomEndTime.String()
		resp.CustomEndTime = &s
	}
	return resp
}
