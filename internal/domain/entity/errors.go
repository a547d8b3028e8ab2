package entity

import "fmt"

// ValidationError marks malformed or missing input on a public form or
// webhook payload. Handlers map it to a 400 with the message as-is; no
// internal detail leaks through it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
