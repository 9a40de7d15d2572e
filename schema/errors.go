package schema

import (
	"errors"
	"fmt"
)

// ValidationError indicates that a network response was received but failed
// the domain's shape checks. It is handled exactly like a network failure:
// a malformed payload never reaches the caller as a success.
type ValidationError struct {
	Domain Domain // Data domain whose decoder rejected the payload
	Field  string // Offending field, when known
	Reason string // Human-readable reason
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s response: field %q %s", e.Domain, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s response: %s", e.Domain, e.Reason)
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
