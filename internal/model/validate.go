package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateUpdate checks a LocationUpdate for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the update is valid.
func ValidateUpdate(u *LocationUpdate) error {
	var ve ValidationError

	if strings.TrimSpace(u.ID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "id", Message: "is required"})
	}

	if u.Latitude < -90 || u.Latitude > 90 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "latitude",
			Message: fmt.Sprintf("must be between -90 and 90, got %g", u.Latitude),
		})
	}

	if u.Longitude < -180 || u.Longitude > 180 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "longitude",
			Message: fmt.Sprintf("must be between -180 and 180, got %g", u.Longitude),
		})
	}

	if !u.Trigger.Valid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "trigger",
			Message: fmt.Sprintf("invalid value %q", u.Trigger),
		})
	}

	if u.EmittedAt.IsZero() {
		ve.Errors = append(ve.Errors, FieldError{Field: "emitted_at", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
