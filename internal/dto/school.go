package dto

// SchoolRequest carries school creation and update payloads.
type SchoolRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	CNPJ         *string `json:"cnpj" validate:"omitempty,max=20"`
	Phone        *string `json:"phone" validate:"omitempty,max=30"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Street       *string `json:"street"`
	Number       *string `json:"number"`
	Complement   *string `json:"complement"`
	Neighborhood *string `json:"neighborhood"`
	City         *string `json:"city"`
	State        *string `json:"state" validate:"omitempty,max=2"`
	ZipCode      *string `json:"zipCode" validate:"omitempty,max=10"`
}
