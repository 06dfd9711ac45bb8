package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account able to log in.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        RoleSet   `json:"roles"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ValidationMessages implements shared.MessageProvider.
func (LoginRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"email.required":    "El email es obligatorio",
		"password.required": "La contraseña es obligatoria",
	}
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Password2 string `json:"password2"`
}

// ValidationMessages implements shared.MessageProvider.
func (RegisterRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"email.required":    "El email es obligatorio",
		"email.email":       "El email debe ser válido",
		"password.required": "La contraseña es obligatoria",
		"password.min":      "La contraseña debe tener al menos 6 caracteres",
		"password.max":      "La contraseña no puede superar los 72 caracteres",
	}
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	Subject string  `json:"email"`
	Roles   RoleSet `json:"roles"`
}
