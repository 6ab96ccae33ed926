package colour

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned when a colour string cannot be parsed.
	ErrInvalidFormat = errors.New("invalid colour format")

	// ErrInvalidRange is returned when a numeric channel is outside its valid range.
	ErrInvalidRange = errors.New("value out of range")
)

// ValidationError reports an invalid input or configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
