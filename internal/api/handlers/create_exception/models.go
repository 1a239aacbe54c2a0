package create_exception

import (
	"github.com/salonbw/SBW-SchedulingService/internal/service/timetables/models"
)

// CreateExceptionRequest HTTP request model
type CreateExceptionRequest struct {
	Date            string  `json:"date"` // "2025-10-15"
	Type            string  `json:"type"` // day_off | custom_hours | vacation
	Title           *string `json:"title,omitempty"`
	Reason          *string `json:"reason,omitempty"`
	CustomStartTime *string `json:"customStartTime,omitempty"` // "10:00"
	CustomEndTime   *string `json:"customEndTime,omitempty"`   // "16:00"
	IsAllDay        bool    `json:"isAllDay,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateExceptionRequest) ToServiceRequest(userID, timetableID int64) *models.CreateExceptionRequest {
	return &models.CreateExceptionRequest{
		TimetableID:     timetableID,
		Date:            r.Date,
		Type:            r.Type,
		Title:           r.Title,
		Reason:          r.Reason,
		CustomStartTime: r.CustomStartTime,
		CustomEndTime:   r.CustomEndTime,
		IsAllDay:        r.IsAllDay,
		UserID:          userID,
	}
}
