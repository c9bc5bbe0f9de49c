package models

import (
	"strings"
	"time"
)

// UserRole represents the roles an identity-provider user can hold.
type UserRole string

const (
	RolePhotographer UserRole = "PHOTOGRAPHER"
)

// ParseUserRole normalises a token role claim. An absent claim means PHOTOGRAPHER.
func ParseUserRole(raw string) UserRole {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return RolePhotographer
	}
	return UserRole(raw)
}

// DefaultPhotographerName is stored when the identity provider supplies no display name.
const DefaultPhotographerName = "Fotógrafo"

// User mirrors an identity-provider account locally so schools can reference it.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Role      UserRole  `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
