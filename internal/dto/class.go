package dto

// CreateClassRequest requires the full class identity.
type CreateClassRequest struct {
	SchoolID string `json:"schoolId" validate:"required"`
	Name     string `json:"name" validate:"required,max=100"`
	Grade    string `json:"grade" validate:"required,max=50"`
	Section  string `json:"section" validate:"required,max=20"`
	Year     int    `json:"year" validate:"required,min=1900,max=3000"`
}
