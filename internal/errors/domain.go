package errors

import (
	stderrors "errors"
	"fmt"
)

// ValidationError reports a rejected field at a creation boundary. The
// operation that returned it did not change any state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidation returns a *ValidationError for field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ReferenceError reports an operation on a goal, group or task the
// aggregate does not know about.
type ReferenceError struct {
	Kind string
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

// NewReference returns a *ReferenceError for an entity of the given kind.
func NewReference(kind, id string) error {
	return &ReferenceError{Kind: kind, ID: id}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return stderrors.As(err, &v)
}

// IsReference reports whether err wraps a *ReferenceError.
func IsReference(err error) bool {
	var r *ReferenceError
	return stderrors.As(err, &r)
}
