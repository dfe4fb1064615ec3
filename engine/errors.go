package engine

import (
	"errors"
	"fmt"
)

// Error kinds raised by the ranking engine. Callers match them with errors.Is.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrIncompleteData     = errors.New("incomplete evaluation data")
	ErrInvalidScore       = errors.New("invalid score")
	ErrEmptyConfiguration = errors.New("empty configuration")
	ErrNotFound           = errors.New("not found")
)

// CalculationError carries the failed precondition in a form that can be shown
// to whoever triggered the calculation.
type CalculationError struct {
	Kind   error
	Reason string
}

// Error implements the error interface
func (e *CalculationError) Error() string {
	return e.Reason
}

// Unwrap returns the error kind so errors.Is works against the sentinels above
func (e *CalculationError) Unwrap() error {
	return e.Kind
}

// NewError builds a CalculationError of the given kind
func NewError(kind error, format string, args ...any) error {
	return &CalculationError{
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the sentinel kind of err, or nil for infrastructure errors.
func KindOf(err error) error {
	for _, kind := range []error{ErrUnauthorized, ErrIncompleteData, ErrInvalidScore, ErrEmptyConfiguration, ErrNotFound} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
