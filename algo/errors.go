package algo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfRange is matched by every RangeError.
	ErrOutOfRange = errors.New("algo: argument out of range")

	// ErrUnsupportedHamiltonian is matched by UnsupportedHamiltonianError.
	ErrUnsupportedHamiltonian = errors.New("algo: unsupported hamiltonian")
)

// RangeError reports a numeric argument outside its admissible range.
type RangeError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("algo: %s = %g: %s", e.Param, e.Value, e.Reason)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// UnsupportedHamiltonianError names a Hamiltonian outside the fixed set.
type UnsupportedHamiltonianError struct {
	Name string
}

func (e *UnsupportedHamiltonianError) Error() string {
	return fmt.Sprintf("algo: unsupported hamiltonian %q (supported: %s)", e.Name, strings.Join(HamiltonianNames(), ", "))
}

func (e *UnsupportedHamiltonianError) Unwrap() error {
	return ErrUnsupportedHamiltonian
}
