package models

import "time"

// SessionStatus enumerates the capture lifecycle.
type SessionStatus string

const (
	SessionStatusScheduled  SessionStatus = "SCHEDULED"
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusPaused     SessionStatus = "PAUSED"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
)

// SortOrder selects how a session roster is ordered.
type SortOrder string

const (
	SortOrderAlphabetical       SortOrder = "ALPHABETICAL"
	SortOrderRegistrationNumber SortOrder = "REGISTRATION_NUMBER"
)

// PhotoSession is one capture run against a class roster snapshot.
type PhotoSession struct {
	ID                  string        `db:"id" json:"id"`
	ClassID             string        `db:"class_id" json:"classId"`
	PhotographerID      string        `db:"photographer_id" json:"photographerId"`
	PhotoPrefix         string        `db:"photo_prefix" json:"photoPrefix"`
	StartNumber         int           `db:"start_number" json:"startNumber"`
	SortOrder           SortOrder     `db:"sort_order" json:"sortOrder"`
	TotalStudents       int           `db:"total_students" json:"totalStudents"`
	Photographed        int           `db:"photographed" json:"photographed"`
	Absent              int           `db:"absent" json:"absent"`
	Pending             int           `db:"pending" json:"pending"`
	CurrentStudentIndex int           `db:"current_student_index" json:"currentStudentIndex"`
	Status              SessionStatus `db:"status" json:"status"`
	CreatedAt           time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updatedAt"`
	CompletedAt         *time.Time    `db:"completed_at" json:"completedAt,omitempty"`
}

// SessionListItem is a session joined with its class and school names.
type SessionListItem struct {
	PhotoSession
	ClassName  string `db:"class_name" json:"className"`
	SchoolID   string `db:"school_id" json:"schoolId"`
	SchoolName string `db:"school_name" json:"schoolName"`
}

// SessionFilter narrows session listings.
type SessionFilter struct {
	PhotographerID string
	ClassID        string
}

// SessionDetail carries a session with its class, school, ordered roster and photos.
type SessionDetail struct {
	PhotoSession
	Class    *Class    `json:"class"`
	School   *School   `json:"school"`
	Students []Student `json:"students"`
	Photos   []Photo   `json:"photos"`
}

// SessionChanges is a sparse update; nil fields keep the stored value.
type SessionChanges struct {
	Status              *SessionStatus
	CurrentStudentIndex *int
	Photographed        *int
	Absent              *int
	Pending             *int
}

// Empty reports whether no field is set.
func (c SessionChanges) Empty() bool {
	return c.Status == nil && c.CurrentStudentIndex == nil && c.Photographed == nil && c.Absent == nil && c.Pending == nil
}
