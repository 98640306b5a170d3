package scoring

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel kind all validation failures wrap, so
// callers can errors.Is without caring about the field.
var ErrValidation = errors.New("invalid submission")

// ValidationError rejects a single submission and names the offending
// field. The store is never touched when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission: %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func newValidationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
