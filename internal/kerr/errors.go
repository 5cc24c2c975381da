package kerr

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter indicates an input outside the physical domain.
var ErrInvalidParameter = errors.New("kerr: invalid parameter")

// ParameterError wraps ErrInvalidParameter with the offending input.
type ParameterError struct {
	Name  string
	Value float64
	Want  string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%v: %s = %g (want %s)", ErrInvalidParameter, e.Name, e.Value, e.Want)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
