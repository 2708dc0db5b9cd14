package trace

import "math"

// Validate rejects NaN and infinite values.
func Validate(v Values) error {
	for i, x := range v {
		if math.IsNaN(x) {
			return &InputError{Index: i, Value: x, Reason: "not a number", Wrapped: ErrInvalidInput}
		}
		if math.IsInf(x, 0) {
			return &InputError{Index: i, Value: x, Reason: "not finite", Wrapped: ErrInvalidInput}
		}
	}
	return nil
}

// ValidateKeys additionally requires integer-valued keys, and non-negative
// ones when nonNegative is set. Distribution sorts index tables by key.
func ValidateKeys(v Values, nonNegative bool) error {
	if err := Validate(v); err != nil {
		return err
	}
	for i, x := range v {
		if x != math.Trunc(x) {
			return &InputError{Index: i, Value: x, Reason: "not an integer key", Wrapped: ErrInvalidInput}
		}
		if nonNegative && x < 0 {
			return &InputError{Index: i, Value: x, Reason: "negative key", Wrapped: ErrInvalidInput}
		}
	}
	return nil
}
