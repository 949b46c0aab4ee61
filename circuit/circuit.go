// Package circuit models an append-only list of gate applications over an
// n-qubit register and composes them into the register's full unitary.
//
// Qubit q corresponds to bit q of a basis-state index, so |q1 q0⟩ = |10⟩ is
// index 2. Unitaries are dense 2^n x 2^n matrices; registers are capped at
// MaxQubits because every expanded gate costs O(4^n) memory.
package circuit

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"qdeck/gate"
	"qdeck/linalg"
)

// MaxQubits is the largest register the dense composer accepts.
const MaxQubits = 12

// Application is one gate placed on specific qubits. For multi-qubit gates
// the first listed qubit selects the most significant row bit of the gate
// matrix, so CNOT on (c, t) uses c as control. Custom marks a matrix added
// with AddMatrix, whose name is only a label and may match a registry gate.
type Application struct {
	Gate   gate.Gate
	Qubits []int
	Params []float64
	Custom bool
}

// String renders the application as NAME(params) q[a],q[b].
func (a Application) String() string {
	var sb strings.Builder
	sb.WriteString(a.Gate.Name)
	if len(a.Params) > 0 {
		parts := make([]string, len(a.Params))
		for i, p := range a.Params {
			parts[i] = FormatParam(p)
		}
		fmt.Fprintf(&sb, "(%s)", strings.Join(parts, ","))
	}
	for i, q := range a.Qubits {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "q[%d]", q)
	}
	return sb.String()
}

// Measurement records that a qubit is read into a classical bit. It is
// metadata only; no collapse is simulated.
type Measurement struct {
	Qubit int `json:"qubit"`
	Bit   int `json:"bit"`
}

// Circuit holds the gate list of a fixed-size register.
type Circuit struct {
	numQubits    int
	apps         []Application
	measurements []Measurement
}

// New creates an empty circuit on numQubits qubits.
func New(numQubits int) (*Circuit, error) {
	if numQubits < 1 {
		return nil, &QubitIndexError{Gate: "register", NumQubits: numQubits, Reason: "need at least one qubit"}
	}
	if numQubits > MaxQubits {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyQubits, numQubits, MaxQubits)
	}
	return &Circuit{numQubits: numQubits}, nil
}

func (c *Circuit) NumQubits() int {
	return c.numQubits
}

// Dim returns the state dimension 2^n.
func (c *Circuit) Dim() int {
	return 1 << c.numQubits
}

// Len returns the number of gate applications.
func (c *Circuit) Len() int {
	return len(c.apps)
}

// Applications returns a copy of the gate list in program order.
func (c *Circuit) Applications() []Application {
	return slices.Clone(c.apps)
}

// Measurements returns a copy of the measurement list.
func (c *Circuit) Measurements() []Measurement {
	return slices.Clone(c.measurements)
}

// NumClassicalBits returns one more than the highest classical bit written.
func (c *Circuit) NumClassicalBits() int {
	n := 0
	for _, m := range c.measurements {
		n = max(n, m.Bit+1)
	}
	return n
}

// AddGate appends a registry gate on the given qubits.
func (c *Circuit) AddGate(name string, qubits ...int) error {
	g, err := gate.Lookup(name)
	if err != nil {
		return err
	}
	return c.add(Application{Gate: g, Qubits: slices.Clone(qubits)})
}

// AddRotation appends a parametrized single-qubit gate (RX, RY, RZ, P). The
// angle must be finite.
func (c *Circuit) AddRotation(name string, theta float64, qubit int) error {
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return fmt.Errorf("%w: %s angle %g is not finite", ErrParam, name, theta)
	}
	g, err := gate.Rotation(name, theta)
	if err != nil {
		return err
	}
	return c.add(Application{Gate: g, Qubits: []int{qubit}, Params: []float64{theta}})
}

// AddMatrix appends an arbitrary unitary acting on the given qubits. The
// matrix must be 2^k x 2^k for k = len(qubits) and unitary within
// gate.Tolerance. The circuit keeps m itself; callers must not modify it
// afterwards, which lets repeated blocks share one matrix.
func (c *Circuit) AddMatrix(label string, m linalg.Matrix, qubits ...int) error {
	k := len(qubits)
	if k == 0 || k > c.numQubits || !m.IsSquare() || m.Rows() != 1<<k {
		return &linalg.DimensionError{Op: "add matrix " + label, Want: fmt.Sprintf("%dx%d", 1<<k, 1<<k), Got: fmt.Sprintf("%dx%d", m.Rows(), m.Cols())}
	}
	if !linalg.IsUnitary(m, gate.Tolerance) {
		return fmt.Errorf("circuit: add matrix %s: %w", label, ErrNotUnitary)
	}
	g := gate.Gate{Name: label, Arity: k, Matrix: m}
	return c.add(Application{Gate: g, Qubits: slices.Clone(qubits), Custom: true})
}

// Measure records a measurement of qubit into classical bit.
func (c *Circuit) Measure(qubit, bit int) error {
	if qubit < 0 || qubit >= c.numQubits {
		return &QubitIndexError{Gate: "MEASURE", Qubits: []int{qubit}, NumQubits: c.numQubits, Reason: "index out of range"}
	}
	if bit < 0 {
		return &QubitIndexError{Gate: "MEASURE", Qubits: []int{qubit}, NumQubits: c.numQubits, Reason: fmt.Sprintf("negative classical bit %d", bit)}
	}
	c.measurements = append(c.measurements, Measurement{Qubit: qubit, Bit: bit})
	return nil
}

func (c *Circuit) add(app Application) error {
	if err := c.validate(app.Gate, app.Qubits); err != nil {
		return err
	}
	c.apps = append(c.apps, app)
	return nil
}

func (c *Circuit) validate(g gate.Gate, qubits []int) error {
	fail := func(reason string) error {
		return &QubitIndexError{Gate: g.Name, Qubits: slices.Clone(qubits), NumQubits: c.numQubits, Reason: reason}
	}
	if len(qubits) != g.Arity {
		return fail(fmt.Sprintf("gate acts on %d qubit(s), got %d", g.Arity, len(qubits)))
	}
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if q < 0 || q >= c.numQubits {
			return fail(fmt.Sprintf("index %d out of range", q))
		}
		if seen[q] {
			return fail(fmt.Sprintf("qubit %d listed twice", q))
		}
		seen[q] = true
	}
	return nil
}
