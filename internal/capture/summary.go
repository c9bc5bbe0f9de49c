package capture

import (
	"math"
	"time"

	"github.com/darthcode66/Snap-Self/internal/models"
)

// Summary is the read-only view of a session's outcome.
type Summary struct {
	SessionID         string               `json:"sessionId"`
	Status            models.SessionStatus `json:"status"`
	Total             int                  `json:"total"`
	Photographed      int                  `json:"photographed"`
	Absent            int                  `json:"absent"`
	Pending           int                  `json:"pending"`
	CompletionPercent int                  `json:"completionPercent"`
	AbsentPercent     int                  `json:"absentPercent"`
	DurationMinutes   *int                 `json:"durationMinutes,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	CompletedAt       *time.Time           `json:"completedAt,omitempty"`
}

// Summarize computes percentages from the persisted session counters.
// Duration is only reported once the session has a completion time.
func Summarize(session models.PhotoSession) Summary {
	s := Summary{
		SessionID:         session.ID,
		Status:            session.Status,
		Total:             session.TotalStudents,
		Photographed:      session.Photographed,
		Absent:            session.Absent,
		Pending:           session.Pending,
		CompletionPercent: percent(session.Photographed+session.Absent, session.TotalStudents),
		AbsentPercent:     percent(session.Absent, session.TotalStudents),
		CreatedAt:         session.CreatedAt,
		CompletedAt:       session.CompletedAt,
	}
	if session.CompletedAt != nil {
		minutes := int(math.Round(session.CompletedAt.Sub(session.CreatedAt).Minutes()))
		s.DurationMinutes = &minutes
	}
	return s
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
