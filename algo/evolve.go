package algo

import (
	"fmt"
	"math"

	"qdeck/gate"
	"qdeck/linalg"
)

// EvolveResult is a state propagated by exp(−iHt).
type EvolveResult struct {
	Hamiltonian   string        `json:"hamiltonian"`
	Time          float64       `json:"time"`
	Initial       linalg.Vector `json:"-"`
	State         linalg.Vector `json:"-"`
	Probabilities []float64     `json:"probabilities"`
	Bloch         linalg.Bloch  `json:"bloch_vector"`
}

func (EvolveResult) Kind() string { return "evolve" }

// Evolve applies exp(−iHt) for the named Hamiltonian to a normalized
// single-qubit state.
func Evolve(state linalg.Vector, name string, t float64) (EvolveResult, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return EvolveResult{}, &RangeError{Param: "time", Value: t, Reason: "must be finite"}
	}
	h, err := Hamiltonian(name)
	if err != nil {
		return EvolveResult{}, err
	}
	if len(state) != h.Rows() {
		return EvolveResult{}, &linalg.DimensionError{Op: "evolve", Want: fmt.Sprintf("state of length %d", h.Rows()), Got: fmt.Sprintf("%d", len(state))}
	}
	if !state.IsNormalized(linalg.NormTolerance) {
		return EvolveResult{}, linalg.ErrNotNormalized
	}

	u, err := linalg.ExpHermitian(h, t, gate.Tolerance)
	if err != nil {
		return EvolveResult{}, fmt.Errorf("algo: propagator for %s: %w", name, err)
	}
	out, err := u.MulVec(state)
	if err != nil {
		return EvolveResult{}, err
	}
	// Renormalize away rounding so the Bloch check sees a unit vector.
	if out, err = linalg.Normalize(out); err != nil {
		return EvolveResult{}, err
	}
	bloch, err := linalg.BlochVector(out)
	if err != nil {
		return EvolveResult{}, err
	}
	return EvolveResult{
		Hamiltonian:   name,
		Time:          t,
		Initial:       state.Clone(),
		State:         out,
		Probabilities: out.Probabilities(),
		Bloch:         bloch,
	}, nil
}
