package models

import "time"

// School is a photographer-owned institution; everything beneath it inherits its owner.
type School struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	CNPJ           *string   `db:"cnpj" json:"cnpj,omitempty"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Email          *string   `db:"email" json:"email,omitempty"`
	Street         *string   `db:"street" json:"street,omitempty"`
	Number         *string   `db:"number" json:"number,omitempty"`
	Complement     *string   `db:"complement" json:"complement,omitempty"`
	Neighborhood   *string   `db:"neighborhood" json:"neighborhood,omitempty"`
	City           *string   `db:"city" json:"city,omitempty"`
	State          *string   `db:"state" json:"state,omitempty"`
	ZipCode        *string   `db:"zip_code" json:"zipCode,omitempty"`
	PhotographerID string    `db:"photographer_id" json:"photographerId"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// SchoolSummary is a school row decorated with its class count for listings.
type SchoolSummary struct {
	School
	ClassCount int `db:"class_count" json:"classCount"`
}
