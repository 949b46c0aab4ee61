package algo

import (
	"qdeck/circuit"
)

// TeleportationResult describes the shape of the teleportation circuit. No
// measurement collapse is simulated, so it carries resource counts rather
// than outcomes.
type TeleportationResult struct {
	Description        string   `json:"description"`
	GateCount          int      `json:"circuit_gates"`
	Depth              int      `json:"depth"`
	ResourceQubits     int      `json:"resource_qubits"`
	ClassicalBits      int      `json:"classical_bits"`
	SuccessProbability float64  `json:"success_probability"`
	Gates              []string `json:"gates"`
	QASM               string   `json:"qasm"`
}

func (TeleportationResult) Kind() string { return "teleportation" }

// TeleportationCircuit prepares a Bell pair on qubits 1 and 2, puts qubit 0
// in |+⟩, and performs the Bell-basis rotation on qubits 0 and 1 before
// measuring them.
func TeleportationCircuit() (*circuit.Circuit, error) {
	c, err := circuit.New(3)
	if err != nil {
		return nil, err
	}
	steps := []struct {
		name   string
		qubits []int
	}{
		{"H", []int{1}},
		{"CNOT", []int{1, 2}},
		{"H", []int{0}},
		{"CNOT", []int{0, 1}},
		{"H", []int{0}},
	}
	for _, s := range steps {
		if err := c.AddGate(s.name, s.qubits...); err != nil {
			return nil, err
		}
	}
	for q := range 2 {
		if err := c.Measure(q, q); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Teleportation reports the resource counts of TeleportationCircuit.
func Teleportation() (TeleportationResult, error) {
	c, err := TeleportationCircuit()
	if err != nil {
		return TeleportationResult{}, err
	}
	return TeleportationResult{
		Description:        "Teleport state from qubit 0 to qubit 2 via Bell pair",
		GateCount:          c.Len(),
		Depth:              c.Depth(),
		ResourceQubits:     c.NumQubits(),
		ClassicalBits:      c.NumClassicalBits(),
		SuccessProbability: 1,
		Gates:              describe(c),
		QASM:               c.ToQASM(),
	}, nil
}
