package algo

import (
	"fmt"
	"math"

	"qdeck/circuit"
	"qdeck/linalg"
)

// MaxGroverQubits bounds Grover registers. The oracle and the reflection
// about |0…0⟩ are stored as dense 2^n x 2^n diagonals.
const MaxGroverQubits = 10

// GroverResult reports the closed-form success probability alongside the
// probability obtained by simulating the circuit.
type GroverResult struct {
	Qubits               int     `json:"num_qubits"`
	Marked               int     `json:"marked_item"`
	Iterations           int     `json:"iterations"`
	SuccessProbability   float64 `json:"success_probability"`
	SimulatedProbability float64 `json:"simulated_probability"`
	Depth                int     `json:"circuit_depth"`
	GateCount            int     `json:"gate_count"`
	Speedup              string  `json:"speedup"`
}

func (GroverResult) Kind() string { return "grover" }

// GroverIterations returns floor(π/4 · √(2^n)).
func GroverIterations(n int) int {
	return int(math.Pi / 4 * math.Sqrt(float64(int(1)<<n)))
}

// GroverSuccess returns sin²((2k+1)·arcsin(1/√(2^n))) for k iterations.
func GroverSuccess(n, k int) float64 {
	theta := math.Asin(1 / math.Sqrt(float64(int(1)<<n)))
	s := math.Sin(float64(2*k+1) * theta)
	return s * s
}

// GroverCircuit builds H on every qubit followed by the given number of
// (oracle, diffusion) rounds. The oracle flips the phase of |marked⟩; the
// diffusion is H^⊗n · (2|0⟩⟨0| − I) · H^⊗n.
func GroverCircuit(n, marked, iterations int) (*circuit.Circuit, error) {
	if err := checkGrover(n, marked); err != nil {
		return nil, err
	}
	c, err := circuit.New(n)
	if err != nil {
		return nil, err
	}

	// Listing qubits high to low makes the custom matrices' row index equal
	// the basis index.
	register := make([]int, n)
	for i := range register {
		register[i] = n - 1 - i
	}
	dim := 1 << n
	oracle := phaseFlip(dim, func(i int) bool { return i == marked })
	reflect := phaseFlip(dim, func(i int) bool { return i != 0 })

	hadamardAll := func() error {
		for q := range n {
			if err := c.AddGate("H", q); err != nil {
				return err
			}
		}
		return nil
	}

	if err := hadamardAll(); err != nil {
		return nil, err
	}
	for range iterations {
		if err := c.AddMatrix("ORACLE", oracle, register...); err != nil {
			return nil, err
		}
		if err := hadamardAll(); err != nil {
			return nil, err
		}
		if err := c.AddMatrix("REFLECT0", reflect, register...); err != nil {
			return nil, err
		}
		if err := hadamardAll(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Grover runs the optimal number of iterations for n qubits and reports
// both the analytic and the simulated probability of measuring marked.
func Grover(n, marked int) (GroverResult, error) {
	if err := checkGrover(n, marked); err != nil {
		return GroverResult{}, err
	}
	k := GroverIterations(n)
	c, err := GroverCircuit(n, marked, k)
	if err != nil {
		return GroverResult{}, err
	}
	final, err := c.Simulate(linalg.Basis(c.Dim(), 0))
	if err != nil {
		return GroverResult{}, fmt.Errorf("algo: grover simulation: %w", err)
	}
	return GroverResult{
		Qubits:               n,
		Marked:               marked,
		Iterations:           k,
		SuccessProbability:   GroverSuccess(n, k),
		SimulatedProbability: final.Probabilities()[marked],
		Depth:                c.Depth(),
		GateCount:            c.Len(),
		Speedup:              "O(√N) vs O(N) classical",
	}, nil
}

func checkGrover(n, marked int) error {
	if n < 1 || n > MaxGroverQubits {
		return &RangeError{Param: "num_qubits", Value: float64(n), Reason: fmt.Sprintf("must be in [1, %d]", MaxGroverQubits)}
	}
	if marked < 0 || marked >= 1<<n {
		return &RangeError{Param: "marked_item", Value: float64(marked), Reason: fmt.Sprintf("must be in [0, %d) for %d qubits", 1<<n, n)}
	}
	return nil
}

// phaseFlip returns the diagonal matrix with −1 where flip(i) holds and 1
// elsewhere.
func phaseFlip(dim int, flip func(int) bool) linalg.Matrix {
	d := make([]complex128, dim)
	for i := range d {
		d[i] = 1
		if flip(i) {
			d[i] = -1
		}
	}
	return linalg.Diagonal(d...)
}
