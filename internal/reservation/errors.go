package reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrPastDate is returned when a date before today is picked.
	ErrPastDate = errors.New("reservation: date is in the past")
	// ErrInvalidSlot is returned for a time that is not one of the hourly slots.
	ErrInvalidSlot = errors.New("reservation: invalid time slot")
	// ErrInvalidTab is returned for an unknown widget tab.
	ErrInvalidTab = errors.New("reservation: invalid tab")
	// ErrClosed is returned when a torn-down controller is used.
	ErrClosed = errors.New("reservation: controller closed")
)

// ValidationKind names why a submission was rejected.
type ValidationKind string

const (
	MissingField ValidationKind = "missing_field"
	UnknownRoom  ValidationKind = "unknown_room"
)

// ValidationError reports a rejected submission. The form is left untouched.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("reservation: %s is required", e.Field)
	case UnknownRoom:
		return fmt.Sprintf("reservation: unknown room %q", e.Value)
	}
	return "reservation: validation failed"
}

// IsValidation reports whether err is a *ValidationError of the given kind.
func IsValidation(err error, kind ValidationKind) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr) && vErr.Kind == kind
}
