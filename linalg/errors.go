package linalg

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is matched by every DimensionError.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrZeroNorm is returned when normalizing a vector whose norm is zero.
	ErrZeroNorm = errors.New("linalg: cannot normalize a zero-norm vector")

	// ErrNotNormalized is returned when a unit vector is required but the
	// input norm differs from 1 by more than the tolerance.
	ErrNotNormalized = errors.New("linalg: state is not normalized")

	// ErrNotHermitian is returned by the eigen solver for non-Hermitian input.
	ErrNotHermitian = errors.New("linalg: matrix is not hermitian")

	// ErrEigenFailed is returned when the underlying eigen solver does not converge.
	ErrEigenFailed = errors.New("linalg: eigen decomposition failed")
)

// DimensionError describes which operation received incompatible shapes.
type DimensionError struct {
	Op   string
	Want string
	Got  string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("linalg: %s: dimension mismatch: want %s, got %s", e.Op, e.Want, e.Got)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

func shape(m Matrix) string {
	return fmt.Sprintf("%dx%d", m.Rows(), m.Cols())
}
