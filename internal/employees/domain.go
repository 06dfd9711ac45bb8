package employees

import (
	"strings"
	"time"
)

// Employee is a staff record managed by the API.
type Employee struct {
	ID         int64      `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Department string     `json:"department,omitempty"`
	Position   string     `json:"position,omitempty"`
	HiredAt    *time.Time `json:"hired_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ListFilter narrows List results.
type ListFilter struct {
	Department string
}

// CreateEmployeeRequest is the body of POST /employees.
type CreateEmployeeRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"max=100"`
	Position   string `json:"position" validate:"max=100"`
	HiredAt    string `json:"hired_at" validate:"omitempty,datetime=2006-01-02"`
}

// ValidationMessages implements shared.MessageProvider.
func (CreateEmployeeRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"first_name.required": "El nombre es obligatorio",
		"last_name.required":  "Los apellidos son obligatorios",
		"email.required":      "El email es obligatorio",
		"email.email":         "El email debe ser válido",
		"hired_at.datetime":   "La fecha de alta debe tener el formato AAAA-MM-DD",
	}
}

func (r CreateEmployeeRequest) toEmployee() (Employee, error) {
	emp := Employee{
		FirstName:  strings.TrimSpace(r.FirstName),
		LastName:   strings.TrimSpace(r.LastName),
		Email:      strings.TrimSpace(r.Email),
		Department: strings.TrimSpace(r.Department),
		Position:   strings.TrimSpace(r.Position),
	}
	if r.HiredAt != "" {
		hired, err := time.Parse(time.DateOnly, r.HiredAt)
		if err != nil {
			return Employee{}, err
		}
		emp.HiredAt = &hired
	}
	return emp, nil
}
