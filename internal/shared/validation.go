package shared

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries one message per failing field, keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// MessageProvider lets request types supply human-readable messages keyed by
// "field.tag", e.g. "email.required".
type MessageProvider interface {
	ValidationMessages() map[string]string
}

// Validator wraps validator.Validate and reports failures as *ValidationError.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator that names fields after their json tag.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates every field of s and collects all failures.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("shared: validate: %w", err)
	}
	var messages map[string]string
	if provider, ok := s.(MessageProvider); ok {
		messages = provider.ValidationMessages()
	}
	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := out.Fields[field]; seen {
			continue
		}
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			out.Fields[field] = msg
			continue
		}
		out.Fields[field] = defaultMessage(fe)
	}
	return out
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio", fe.Field())
	case "email":
		return fmt.Sprintf("El campo %s debe ser un email válido", fe.Field())
	case "min":
		return fmt.Sprintf("El campo %s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("El campo %s no puede superar los %s caracteres", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("El campo %s no es válido", fe.Field())
	}
}
