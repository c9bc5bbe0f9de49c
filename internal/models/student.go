package models

import "time"

// Student belongs to a class. SortName is derived once when the row is created.
type Student struct {
	ID                 string    `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	SortName           string    `db:"sort_name" json:"sortName"`
	RegistrationNumber *string   `db:"registration_number" json:"registrationNumber,omitempty"`
	HasAuthorization   bool      `db:"has_authorization" json:"hasAuthorization"`
	HasPaid            bool      `db:"has_paid" json:"hasPaid"`
	ClassID            string    `db:"class_id" json:"classId"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// Registration returns the registration number or an empty string.
func (s Student) Registration() string {
	if s.RegistrationNumber == nil {
		return ""
	}
	return *s.RegistrationNumber
}
