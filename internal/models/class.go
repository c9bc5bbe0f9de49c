package models

import "time"

// Class is a school cohort identified by (school, grade, section, year).
type Class struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Grade     string    `db:"grade" json:"grade"`
	Section   string    `db:"section" json:"section"`
	Year      int       `db:"year" json:"year"`
	SchoolID  string    `db:"school_id" json:"schoolId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ClassSummary extends Class with roster and session counts.
type ClassSummary struct {
	Class
	StudentCount int `db:"student_count" json:"studentCount"`
	SessionCount int `db:"session_count" json:"sessionCount"`
}

// ClassDetail is a class with its owning school and students ordered by sort key.
type ClassDetail struct {
	Class
	School   *School   `json:"school,omitempty"`
	Students []Student `json:"students"`
}
