package trace

import (
	"errors"
	"fmt"
)

// Domain errors for trace construction.
var (
	// ErrInvalidInput indicates a value the algorithms cannot order (NaN, Inf,
	// or a non-integer key for a distribution sort).
	ErrInvalidInput = errors.New("trace: invalid input")
)

// InputError wraps ErrInvalidInput with the offending position.
type InputError struct {
	Index   int
	Value   float64
	Reason  string
	Wrapped error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: value %v at index %d: %s", e.Wrapped.Error(), e.Value, e.Index, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}
