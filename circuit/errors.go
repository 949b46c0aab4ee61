package circuit

import (
	"errors"
	"fmt"
)

var (
	// ErrQubitIndex is matched by every QubitIndexError.
	ErrQubitIndex = errors.New("circuit: invalid qubit index")

	// ErrTooManyQubits is returned when a register exceeds MaxQubits.
	ErrTooManyQubits = errors.New("circuit: register exceeds the dense simulation ceiling")

	// ErrNonUnitaryResult flags a composed matrix that drifted off the unitary
	// group. It indicates a numeric defect, never bad user input.
	ErrNonUnitaryResult = errors.New("circuit: composed unitary failed the unitarity check")

	// ErrNotUnitary is returned when a caller-supplied matrix is not unitary.
	ErrNotUnitary = errors.New("circuit: matrix is not unitary")

	// ErrParam is returned for malformed angle expressions.
	ErrParam = errors.New("circuit: invalid parameter expression")
)

// QubitIndexError reports a gate application whose qubit list does not fit
// the gate or the register.
type QubitIndexError struct {
	Gate      string
	Qubits    []int
	NumQubits int
	Reason    string
}

func (e *QubitIndexError) Error() string {
	return fmt.Sprintf("circuit: %s on qubits %v of a %d-qubit register: %s", e.Gate, e.Qubits, e.NumQubits, e.Reason)
}

func (e *QubitIndexError) Unwrap() error {
	return ErrQubitIndex
}
