package algo

import (
	"fmt"

	"qdeck/circuit"
	"qdeck/gate"
	"qdeck/linalg"
)

// MatrixRep looks up each named gate and reports its matrix and whether it
// is unitary and Hermitian within tol.
func MatrixRep(names []string, tol float64) (MatrixRepResult, error) {
	if len(names) == 0 {
		return MatrixRepResult{}, &RangeError{Param: "operators", Reason: "need at least one operator"}
	}
	ops := make([]OperatorInfo, 0, len(names))
	for _, name := range names {
		g, err := gate.Lookup(name)
		if err != nil {
			return MatrixRepResult{}, err
		}
		ops = append(ops, OperatorInfo{
			Name:      g.Name,
			Matrix:    g.Matrix,
			Unitary:   linalg.IsUnitary(g.Matrix, tol),
			Hermitian: linalg.IsHermitian(g.Matrix, tol),
		})
	}
	return MatrixRepResult{Operators: ops}, nil
}

// Commutator computes [A, B] and {A, B} for two named gates. The pair
// commutes when every entry of [A, B] is within tol of zero.
func Commutator(a, b string, tol float64) (CommutatorResult, error) {
	ga, err := gate.Lookup(a)
	if err != nil {
		return CommutatorResult{}, err
	}
	gb, err := gate.Lookup(b)
	if err != nil {
		return CommutatorResult{}, err
	}
	comm, err := linalg.Commutator(ga.Matrix, gb.Matrix)
	if err != nil {
		return CommutatorResult{}, fmt.Errorf("algo: [%s, %s]: %w", ga.Name, gb.Name, err)
	}
	anti, err := linalg.Anticommutator(ga.Matrix, gb.Matrix)
	if err != nil {
		return CommutatorResult{}, fmt.Errorf("algo: {%s, %s}: %w", ga.Name, gb.Name, err)
	}
	return CommutatorResult{
		Operators:      [2]string{ga.Name, gb.Name},
		Commutator:     comm,
		Anticommutator: anti,
		Norm:           comm.Norm(),
		Commute:        comm.IsZero(tol),
	}, nil
}

// BlochOf returns the Bloch vector of a normalized single-qubit state.
func BlochOf(state linalg.Vector) (BlochResult, error) {
	b, err := linalg.BlochVector(state)
	if err != nil {
		return BlochResult{}, err
	}
	return BlochResult{State: state.Clone(), Vector: b}, nil
}

// ProbabilitiesOf returns |ψ_i|² for a normalized state.
func ProbabilitiesOf(state linalg.Vector) (ProbabilitiesResult, error) {
	if !state.IsNormalized(linalg.NormTolerance) {
		return ProbabilitiesResult{}, linalg.ErrNotNormalized
	}
	return ProbabilitiesResult{State: state.Clone(), Probabilities: state.Probabilities()}, nil
}

// Compose returns the full unitary of c and asserts it is unitary within tol.
func Compose(c *circuit.Circuit, tol float64) (UnitaryResult, error) {
	u, err := c.Unitary()
	if err != nil {
		return UnitaryResult{}, err
	}
	if err := circuit.CheckUnitary(u, tol); err != nil {
		return UnitaryResult{}, err
	}
	return UnitaryResult{
		Qubits:  c.NumQubits(),
		Gates:   describe(c),
		Depth:   c.Depth(),
		Unitary: u,
		QASM:    c.ToQASM(),
	}, nil
}

func describe(c *circuit.Circuit) []string {
	apps := c.Applications()
	out := make([]string, len(apps))
	for i, app := range apps {
		out[i] = app.String()
	}
	return out
}
