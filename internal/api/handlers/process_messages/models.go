package process_messages

import (
	processMessages "github.com/salonbw/SBW-SchedulingService/internal/usecase/process_messages"
)

// OutcomeResponse итог обработки одной пары (правило, визит)
type OutcomeResponse struct {
	RuleID        int64  `json:"ruleId"`
	AppointmentID int64  `json:"appointmentId"`
	Status        string `json:"status"` // sent | skipped | failed
	Detail        string `json:"detail,omitempty"`
}

// ProcessMessagesResponse HTTP response model
type ProcessMessagesResponse struct {
	Sent     int               `json:"sent"`
	Skipped  int               `json:"skipped"`
	Failed   int               `json:"failed"`
	Outcomes []OutcomeResponse `json:"outcomes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *processMessages.Response) *ProcessMessagesResponse {
	outcomes := make([]OutcomeResponse, 0, len(resp.Outcomes))
	for _, o := range resp.Outcomes {
		outcomes = append(outcomes, OutcomeResponse{
			RuleID:        o.RuleID,
			AppointmentID: o.AppointmentID,
			Status:        o.Status,
			Detail:        o.Detail,
		})
	}
	return &ProcessMessagesResponse{
		Sent:     resp.Sent,
		Skipped:  resp.Skipped,
		Failed:   resp.Failed,
		Outcomes: outcomes,
	}
}
