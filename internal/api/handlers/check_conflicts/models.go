package check_conflicts

import (
	"time"

	checkConflicts "github.com/salonbw/SBW-SchedulingService/internal/usecase/check_conflicts"
)

// ConflictResponse запись о блокирующем элементе
type ConflictResponse struct {
	SourceType string `json:"sourceType"` // appointment | timeblock | outside_hours
	SourceID   int64  `json:"sourceId,omitempty"`
	Start      string `json:"start"` // RFC3339
	End        string `json:"end"`   // RFC3339
}

// CheckConflictsResponse HTTP response model
type CheckConflictsResponse struct {
	HasConflicts bool               `json:"hasConflicts"`
	Conflicts    []ConflictResponse `json:"conflicts"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflicts.Response) *CheckConflictsResponse {
	conflicts := make([]ConflictResponse, 0, len(resp.Conflicts))
	for _, c := range resp.Conflicts {
		conflicts = append(conflicts, ConflictResponse{
			SourceType: c.SourceType,
			SourceID:   c.SourceID,
			Start:      c.Start.Format(time.RFC3339),
			End:        c.End.Format(time.RFC3339),
		})
	}
	return &CheckConflictsResponse{
		HasConflicts: resp.HasConflicts,
		Conflicts:    conflicts,
	}
}
