package algo

import (
	"qdeck/linalg"
)

// Result is the value returned by every routed task. Kind names the task
// that produced it.
type Result interface {
	Kind() string
}

// OperatorInfo describes one named operator.
type OperatorInfo struct {
	Name      string        `json:"name"`
	Matrix    linalg.Matrix `json:"-"`
	Unitary   bool          `json:"unitary"`
	Hermitian bool          `json:"hermitian"`
}

// MatrixRepResult lists the matrix of each requested operator.
type MatrixRepResult struct {
	Operators []OperatorInfo `json:"operators"`
}

func (MatrixRepResult) Kind() string { return "matrix_rep" }

// CommutatorResult holds [A, B] and {A, B} for a pair of operators.
type CommutatorResult struct {
	Operators      [2]string     `json:"operators"`
	Commutator     linalg.Matrix `json:"-"`
	Anticommutator linalg.Matrix `json:"-"`
	Norm           float64       `json:"commutator_norm"`
	Commute        bool          `json:"commute"`
}

func (CommutatorResult) Kind() string { return "commutator" }

// BlochResult is the Bloch vector of a normalized single-qubit state.
type BlochResult struct {
	State  linalg.Vector `json:"-"`
	Vector linalg.Bloch  `json:"bloch_vector"`
}

func (BlochResult) Kind() string { return "bloch" }

// ProbabilitiesResult is the Born-rule distribution of a normalized state.
type ProbabilitiesResult struct {
	State         linalg.Vector `json:"-"`
	Probabilities []float64     `json:"probabilities"`
}

func (ProbabilitiesResult) Kind() string { return "probabilities" }

// UnitaryResult is the composed unitary of an operator program.
type UnitaryResult struct {
	Qubits  int           `json:"qubits"`
	Gates   []string      `json:"gates"`
	Depth   int           `json:"depth"`
	Unitary linalg.Matrix `json:"-"`
	QASM    string        `json:"qasm"`
}

func (UnitaryResult) Kind() string { return "unitary" }
