package dto

import "github.com/darthcode66/Snap-Self/internal/models"

// CreateStudentRequest adds one student to a class.
type CreateStudentRequest struct {
	ClassID            string  `json:"classId" validate:"required"`
	Name               string  `json:"name" validate:"required,max=200"`
	RegistrationNumber *string `json:"registrationNumber" validate:"omitempty,max=50"`
	HasAuthorization   bool    `json:"hasAuthorization"`
	HasPaid            bool    `json:"hasPaid"`
}

// ImportStudent is one candidate row of a roster import.
type ImportStudent struct {
	Name    string `json:"name" validate:"max=200"`
	Grade   string `json:"grade,omitempty"`
	Section string `json:"section,omitempty"`
}

// ImportStudentsRequest is the batch import payload.
type ImportStudentsRequest struct {
	ClassID  string          `json:"classId" validate:"required"`
	Students []ImportStudent `json:"students" validate:"required,min=1,dive"`
}

// ImportStudentsResponse reports what the import created.
type ImportStudentsResponse struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Students []models.Student `json:"students"`
}

// ImportFileOptions are the form fields sent alongside a roster file.
type ImportFileOptions struct {
	ClassID    string `form:"classId"`
	Encoding   string `form:"encoding"`
	NameColumn string `form:"nameColumn"`
}

// ImportPreviewResponse shows how a roster file was read without writing anything.
type ImportPreviewResponse struct {
	Columns    []string        `json:"columns"`
	NameColumn string          `json:"nameColumn"`
	Delimiter  string          `json:"delimiter"`
	Encoding   string          `json:"encoding"`
	RowCount   int             `json:"rowCount"`
	Students   []ImportStudent `json:"students"`
}
