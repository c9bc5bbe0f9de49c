package dto

import "github.com/darthcode66/Snap-Self/internal/models"

// CreateSessionRequest starts a capture run for a class.
type CreateSessionRequest struct {
	ClassID     string           `json:"classId" validate:"required"`
	PhotoPrefix string           `json:"photoPrefix" validate:"required,max=50"`
	StartNumber *int             `json:"startNumber" validate:"omitempty,min=0"`
	SortOrder   models.SortOrder `json:"sortOrder" validate:"omitempty,oneof=ALPHABETICAL REGISTRATION_NUMBER"`
}

// UpdateSessionRequest is a sparse PATCH: absent fields stay untouched, explicit zeros overwrite.
type UpdateSessionRequest struct {
	Status              *models.SessionStatus `json:"status" validate:"omitempty,oneof=SCHEDULED IN_PROGRESS PAUSED COMPLETED"`
	CurrentStudentIndex *int                  `json:"currentStudentIndex" validate:"omitempty,min=0"`
	Photographed        *int                  `json:"photographed" validate:"omitempty,min=0"`
	Absent              *int                  `json:"absent" validate:"omitempty,min=0"`
	Pending             *int                  `json:"pending" validate:"omitempty,min=0"`
}

// Changes converts the request into a repository update.
func (r UpdateSessionRequest) Changes() models.SessionChanges {
	return models.SessionChanges{
		Status:              r.Status,
		CurrentStudentIndex: r.CurrentStudentIndex,
		Photographed:        r.Photographed,
		Absent:              r.Absent,
		Pending:             r.Pending,
	}
}

// MarkStudentRequest records one student's capture outcome.
type MarkStudentRequest struct {
	StudentID string            `json:"studentId" validate:"required"`
	Status    models.MarkStatus `json:"status" validate:"required,oneof=PHOTOGRAPHED ABSENT PENDING"`
}

// DeleteResponse acknowledges a removal.
type DeleteResponse struct {
	Success bool `json:"success"`
}
