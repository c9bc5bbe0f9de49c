package models

import "time"

// MarkStatus is the per-student outcome recorded during capture.
type MarkStatus string

const (
	MarkPhotographed MarkStatus = "PHOTOGRAPHED"
	MarkAbsent       MarkStatus = "ABSENT"
	MarkPending      MarkStatus = "PENDING"
)

// SessionMark persists which students were handled in a session.
type SessionMark struct {
	SessionID string     `db:"session_id" json:"sessionId"`
	StudentID string     `db:"student_id" json:"studentId"`
	Status    MarkStatus `db:"status" json:"status"`
	MarkedAt  time.Time  `db:"marked_at" json:"markedAt"`
}
