package algo

import (
	"math"

	"qdeck/circuit"
	"qdeck/linalg"
)

// BellResult is the outcome of preparing |Φ⁺⟩ from |00⟩.
type BellResult struct {
	Initial       linalg.Vector `json:"-"`
	State         linalg.Vector `json:"-"`
	Probabilities []float64     `json:"probabilities"`
	Fidelity      float64       `json:"fidelity"`
	Gates         []string      `json:"gates"`
	Description   string        `json:"description"`
}

func (BellResult) Kind() string { return "bell_state" }

// PhiPlus returns (|00⟩ + |11⟩)/√2.
func PhiPlus() linalg.Vector {
	s := complex(1/math.Sqrt2, 0)
	return linalg.Vector{s, 0, 0, s}
}

// BellCircuit returns [H(0), CNOT(0,1)] on two qubits.
func BellCircuit() (*circuit.Circuit, error) {
	c, err := circuit.New(2)
	if err != nil {
		return nil, err
	}
	if err := c.AddGate("H", 0); err != nil {
		return nil, err
	}
	if err := c.AddGate("CNOT", 0, 1); err != nil {
		return nil, err
	}
	return c, nil
}

// Bell runs BellCircuit on |00⟩ and reports the fidelity |⟨ψ|Φ⁺⟩|².
func Bell() (BellResult, error) {
	c, err := BellCircuit()
	if err != nil {
		return BellResult{}, err
	}
	initial := linalg.Basis(c.Dim(), 0)
	state, err := c.Run(initial)
	if err != nil {
		return BellResult{}, err
	}
	fidelity, err := linalg.Fidelity(state, PhiPlus())
	if err != nil {
		return BellResult{}, err
	}
	return BellResult{
		Initial:       initial,
		State:         state,
		Probabilities: state.Probabilities(),
		Fidelity:      fidelity,
		Gates:         describe(c),
		Description:   "Bell state preparation: H(0), CNOT(0,1)",
	}, nil
}
