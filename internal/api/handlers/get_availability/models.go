package get_availability

import (
	"time"

	"github.com/salonbw/SBW-SchedulingService/internal/domain"
	getAvailability "github.com/salonbw/SBW-SchedulingService/internal/usecase/get_availability"
)

// IntervalResponse временной интервал в ответе
type IntervalResponse struct {
	Start string `json:"start"` // RFC3339
	End   string `json:"end"`   // RFC3339
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	EmployeeID       int64              `json:"employeeId"`
	Date             string             `json:"date"` // "2025-10-15"
	WorkingIntervals []IntervalResponse `json:"workingIntervals"`
	FreeIntervals    []IntervalResponse `json:"freeIntervals"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		EmployeeID:       resp.EmployeeID,
		Date:             resp.Date.Format(domain.DateFormat),
		WorkingIntervals: toIntervalResponses(resp.WorkingIntervals),
		FreeIntervals:    toIntervalResponses(resp.FreeIntervals),
	}
}

func toIntervalResponses(intervals []getAvailability.Interval) []IntervalResponse {
	result := make([]IntervalResponse, 0, len(intervals))
	for _, iv := range intervals {
		result = append(result, IntervalResponse{
			Start: iv.Start.Format(time.RFC3339),
			End:   iv.End.Format(time.RFC3339),
		})
	}
	return result
}
