package models

import "time"

// Photo records one uploaded image for a student within a session.
type Photo struct {
	ID        string    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"sessionId"`
	StudentID string    `db:"student_id" json:"studentId"`
	UserID    string    `db:"user_id" json:"userId"`
	Filename  string    `db:"filename" json:"filename"`
	Size      int64     `db:"size" json:"size"`
	Format    string    `db:"format" json:"format"`
	URL       string    `db:"url" json:"url"`
	Width     int       `db:"width" json:"width"`
	Height    int       `db:"height" json:"height"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
