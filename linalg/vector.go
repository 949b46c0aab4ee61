package linalg

import (
	"math"
	"math/cmplx"
	"strconv"
)

// NormTolerance is how far a state's norm may drift from 1 and still count
// as normalized.
const NormTolerance = 1e-9

// Vector is a complex state vector; an n-qubit register has length 2^n.
type Vector []complex128

// Basis returns the computational basis vector |index⟩ of the given dimension.
func Basis(dim, index int) Vector {
	v := make(Vector, dim)
	v[index] = 1
	return v
}

func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

// Norm returns the Euclidean norm ‖v‖₂.
func (v Vector) Norm() float64 {
	var sum float64
	for _, a := range v {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

// IsNormalized reports whether |‖v‖ − 1| ≤ tol.
func (v Vector) IsNormalized(tol float64) bool {
	return len(v) > 0 && math.Abs(v.Norm()-1) <= tol
}

// Probabilities returns |v_i|² for each basis state, in basis order.
func (v Vector) Probabilities() []float64 {
	probs := make([]float64, len(v))
	for i, a := range v {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

// Normalize returns v/‖v‖.
func Normalize(v Vector) (Vector, error) {
	norm := v.Norm()
	if norm == 0 {
		return nil, ErrZeroNorm
	}
	out := make(Vector, len(v))
	for i, a := range v {
		out[i] = a / complex(norm, 0)
	}
	return out, nil
}

// Inner returns ⟨a|b⟩, conjugating a.
func Inner(a, b Vector) (complex128, error) {
	if len(a) != len(b) {
		return 0, &DimensionError{Op: "inner", Want: strconv.Itoa(len(a)), Got: strconv.Itoa(len(b))}
	}
	var sum complex128
	for i := range a {
		sum += cmplx.Conj(a[i]) * b[i]
	}
	return sum, nil
}

// Fidelity returns |⟨a|b⟩|² for pure states.
func Fidelity(a, b Vector) (float64, error) {
	ip, err := Inner(a, b)
	if err != nil {
		return 0, err
	}
	abs := cmplx.Abs(ip)
	return abs * abs, nil
}

// Bloch is a point on or inside the Bloch sphere.
type Bloch struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Length returns the Euclidean length of the Bloch vector.
func (b Bloch) Length() float64 {
	return math.Sqrt(b.X*b.X + b.Y*b.Y + b.Z*b.Z)
}

// BlochVector maps a normalized single-qubit state to (x, y, z).
// The caller normalizes; an unnormalized state is rejected.
func BlochVector(v Vector) (Bloch, error) {
	if len(v) != 2 {
		return Bloch{}, &DimensionError{Op: "bloch", Want: "2", Got: strconv.Itoa(len(v))}
	}
	if !v.IsNormalized(NormTolerance) {
		return Bloch{}, ErrNotNormalized
	}
	c := cmplx.Conj(v[0]) * v[1]
	p0 := real(v[0] * cmplx.Conj(v[0]))
	p1 := real(v[1] * cmplx.Conj(v[1]))
	return Bloch{
		X: 2 * real(c),
		Y: 2 * imag(c),
		Z: p0 - p1,
	}, nil
}
