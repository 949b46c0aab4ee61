package linalg

import (
	"math"
	"math/cmplx"
	"strconv"
)

// Matrix is a dense, row-major complex matrix.
type Matrix [][]complex128

// NewMatrix allocates a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]complex128, cols)
	}
	return m
}

// Identity returns the n x n identity.
func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	for i := range n {
		m[i][i] = 1
	}
	return m
}

// Diagonal returns the square matrix with d on its diagonal.
func Diagonal(d ...complex128) Matrix {
	m := NewMatrix(len(d), len(d))
	for i, v := range d {
		m[i][i] = v
	}
	return m
}

func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the length of the first row, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// IsSquare reports whether m is non-empty, square and not ragged.
func (m Matrix) IsSquare() bool {
	n := len(m)
	if n == 0 {
		return false
	}
	for _, row := range m {
		if len(row) != n {
			return false
		}
	}
	return true
}

func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]complex128(nil), row...)
	}
	return out
}

// Mul returns a·b. Zero entries of a are skipped, so multiplying by the
// sparse full-register expansion of a gate costs O(nnz(a)·cols(b)).
func Mul(a, b Matrix) (Matrix, error) {
	if a.Cols() != b.Rows() {
		return nil, &DimensionError{Op: "mul", Want: "a.cols == b.rows", Got: shape(a) + " · " + shape(b)}
	}
	out := NewMatrix(a.Rows(), b.Cols())
	for i, row := range a {
		dst := out[i]
		for k, aik := range row {
			if aik == 0 {
				continue
			}
			for j, bkj := range b[k] {
				dst[j] += aik * bkj
			}
		}
	}
	return out, nil
}

// Add returns a+b.
func Add(a, b Matrix) (Matrix, error) {
	return combine("add", a, b, func(x, y complex128) complex128 { return x + y })
}

// Sub returns a-b.
func Sub(a, b Matrix) (Matrix, error) {
	return combine("sub", a, b, func(x, y complex128) complex128 { return x - y })
}

func combine(op string, a, b Matrix, f func(x, y complex128) complex128) (Matrix, error) {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return nil, &DimensionError{Op: op, Want: shape(a), Got: shape(b)}
	}
	out := NewMatrix(a.Rows(), a.Cols())
	for i := range a {
		for j := range a[i] {
			out[i][j] = f(a[i][j], b[i][j])
		}
	}
	return out, nil
}

// Scale returns c·m.
func (m Matrix) Scale(c complex128) Matrix {
	out := NewMatrix(m.Rows(), m.Cols())
	for i, row := range m {
		for j, v := range row {
			out[i][j] = c * v
		}
	}
	return out
}

// Dagger returns the conjugate transpose m†.
func (m Matrix) Dagger() Matrix {
	out := NewMatrix(m.Cols(), m.Rows())
	for i, row := range m {
		for j, v := range row {
			out[j][i] = cmplx.Conj(v)
		}
	}
	return out
}

// Kron returns the Kronecker product a⊗b.
func Kron(a, b Matrix) Matrix {
	br, bc := b.Rows(), b.Cols()
	out := NewMatrix(a.Rows()*br, a.Cols()*bc)
	for i, arow := range a {
		for j, aij := range arow {
			if aij == 0 {
				continue
			}
			for k, brow := range b {
				for l, bkl := range brow {
					out[i*br+k][j*bc+l] = aij * bkl
				}
			}
		}
	}
	return out
}

// MulVec returns m·v.
func (m Matrix) MulVec(v Vector) (Vector, error) {
	if m.Cols() != len(v) {
		return nil, &DimensionError{Op: "mulvec", Want: "vector of length " + strconv.Itoa(m.Cols()), Got: strconv.Itoa(len(v))}
	}
	out := make(Vector, m.Rows())
	for i, row := range m {
		var sum complex128
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
	return out, nil
}

// Norm returns the Frobenius norm.
func (m Matrix) Norm() float64 {
	var sum float64
	for _, row := range m {
		for _, v := range row {
			sum += real(v)*real(v) + imag(v)*imag(v)
		}
	}
	return math.Sqrt(sum)
}

// MaxAbs returns the largest entry modulus.
func (m Matrix) MaxAbs() float64 {
	var best float64
	for _, row := range m {
		for _, v := range row {
			best = max(best, cmplx.Abs(v))
		}
	}
	return best
}

// IsZero reports whether every entry has modulus at most tol.
func (m Matrix) IsZero(tol float64) bool {
	for _, row := range m {
		for _, x := range row {
			if !(cmplx.Abs(x) <= tol) {
				return false
			}
		}
	}
	return true
}

// ApproxEqual compares entry-wise within tol. A NaN entry never compares
// equal.
func ApproxEqual(a, b Matrix, tol float64) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if !(cmplx.Abs(a[i][j]-b[i][j]) <= tol) {
				return false
			}
		}
	}
	return true
}

// IsUnitary reports whether ‖m†m − I‖ ≤ tol, measured entry-wise.
func IsUnitary(m Matrix, tol float64) bool {
	if !m.IsSquare() {
		return false
	}
	prod, err := Mul(m.Dagger(), m)
	if err != nil {
		return false
	}
	return ApproxEqual(prod, Identity(m.Rows()), tol)
}

// IsHermitian reports whether m equals m† within tol.
func IsHermitian(m Matrix, tol float64) bool {
	if !m.IsSquare() {
		return false
	}
	return ApproxEqual(m, m.Dagger(), tol)
}
