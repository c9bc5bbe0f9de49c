package models

// Identity is the authenticated caller resolved once per request from a bearer token.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   UserRole
}

// DisplayName returns the identity name or the photographer fallback.
func (i *Identity) DisplayName() string {
	if i == nil || i.Name == "" {
		return DefaultPhotographerName
	}
	return i.Name
}
