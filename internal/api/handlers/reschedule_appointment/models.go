package reschedule_appointment

import (
	"time"

	rescheduleAppointment "github.com/salonbw/SBW-SchedulingService/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewStart      string  `json:"newStart"`                // RFC3339
	NewEnd        *string `json:"newEnd,omitempty"`        // RFC3339; не задан — по длительности услуги
	NewEmployeeID *int64  `json:"newEmployeeId,omitempty"` // не задан — исполнитель не меняется
	Force         bool    `json:"force,omitempty"`         // пропустить проверку рабочих часов
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(userID, appointmentID int64) (*rescheduleAppointment.Request, error) {
	newStart, err := time.Parse(time.RFC3339, r.NewStart)
	if err != nil {
		return nil, err
	}

	req := &rescheduleAppointment.Request{
		UserID:        userID,
		AppointmentID: appointmentID,
		NewStart:      newStart,
		NewEmployeeID: r.NewEmployeeID,
		Force:         r.Force,
	}

	if r.NewEnd != nil {
		newEnd, err := time.Parse(time.RFC3339, *r.NewEnd)
		if err != nil {
			return nil, err
		}
		req.NewEnd = &newEnd
	}

	return req, nil
}

// ConflictResponse запись о блокирующем элементе
type ConflictResponse struct {
	SourceType string `json:"sourceType"`
	SourceID   int64  `json:"sourceId,omitempty"`
	Start      string `json:"start"` // RFC3339
	End        string `json:"end"`   // RFC3339
}

// ConflictsResponse тело ответа 409 со списком блокирующих записей
type ConflictsResponse struct {
	Message   string             `json:"message"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"clientId"`
	EmployeeID int64  `json:"employeeId"`
	ServiceID  int64  `json:"serviceId"`
	StartTime  string `json:"startTime"` // RFC3339
	EndTime    string `json:"endTime"`   // RFC3339
	Status     string `json:"status"`
	UpdatedAt  string `json:"updatedAt"` // RFC3339
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		ClientID:   resp.ClientID,
		EmployeeID: resp.EmployeeID,
		ServiceID:  resp.ServiceID,
		StartTime:  resp.StartTime.Format(time.RFC3339),
		EndTime:    resp.EndTime.Format(time.RFC3339),
		Status:     resp.Status,
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflicts конвертирует список конфликтов в тело ответа 409
func FromConflicts(message string, conflicts []rescheduleAppointment.Conflict) *ConflictsResponse {
	result := make([]ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		result = append(result, ConflictResponse{
			SourceType: c.SourceType,
			SourceID:   c.SourceID,
			Start:      c.Start.Format(time.RFC3339),
			End:        c.End.Format(time.RFC3339),
		})
	}
	return &ConflictsResponse{Message: message, Conflicts: result}
}
