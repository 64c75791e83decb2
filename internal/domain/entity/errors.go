package entity

import "fmt"

// ValidationKind identifies which business rule a ValidationError violated.
type ValidationKind string

const (
	KindUnsupportedType   ValidationKind = "unsupported_type"
	KindSizeExceeded      ValidationKind = "size_exceeded"
	KindDurationUnset     ValidationKind = "duration_unset"
	KindDurationExceeded  ValidationKind = "duration_exceeded"
	KindInvalidFilename   ValidationKind = "invalid_filename"
	KindEmptyErrorMessage ValidationKind = "empty_error_message"
	KindEmptyEnhancedText ValidationKind = "empty_enhanced_text"
)

// ValidationError is returned when an entity-level business rule is violated.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(kind ValidationKind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidTransitionError is returned when a state-machine transition is
// attempted from a state that does not permit it.
type InvalidTransitionError struct {
	Op     string
	State  string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s in %s state: %s", e.Op, e.State, e.Reason)
}
