package circuit

import (
	"fmt"

	"qdeck/linalg"
)

// Unitary composes the circuit into U = G_k·…·G_1, so the first gate added
// is the first applied to a state through U·|ψ⟩. An empty circuit yields the
// identity.
func (c *Circuit) Unitary() (linalg.Matrix, error) {
	u := linalg.Identity(c.Dim())
	for _, app := range c.apps {
		full, err := Expand(app.Gate.Matrix, app.Qubits, c.numQubits)
		if err != nil {
			return nil, fmt.Errorf("circuit: expand %s: %w", app, err)
		}
		if u, err = linalg.Mul(full, u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Run applies the composed unitary to a normalized state of length 2^n.
func (c *Circuit) Run(state linalg.Vector) (linalg.Vector, error) {
	if err := c.checkState(state); err != nil {
		return nil, err
	}
	u, err := c.Unitary()
	if err != nil {
		return nil, err
	}
	return u.MulVec(state)
}

// RunFromZero applies the circuit to |0…0⟩.
func (c *Circuit) RunFromZero() (linalg.Vector, error) {
	return c.Run(linalg.Basis(c.Dim(), 0))
}

func (c *Circuit) checkState(state linalg.Vector) error {
	if len(state) != c.Dim() {
		return &linalg.DimensionError{Op: "run", Want: fmt.Sprintf("state of length %d", c.Dim()), Got: fmt.Sprintf("%d", len(state))}
	}
	if !state.IsNormalized(linalg.NormTolerance) {
		return linalg.ErrNotNormalized
	}
	return nil
}

// CheckUnitary asserts u†u = I within tol. A failure is a numeric defect in
// composition, reported as ErrNonUnitaryResult.
func CheckUnitary(u linalg.Matrix, tol float64) error {
	if !linalg.IsUnitary(u, tol) {
		return fmt.Errorf("%w (dim %d, tol %g)", ErrNonUnitaryResult, u.Rows(), tol)
	}
	return nil
}
