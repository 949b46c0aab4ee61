package task

import (
	"errors"
	"math"
	"math/cmplx"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"qdeck/circuit"
	"qdeck/gate"
	"qdeck/linalg"
)

// ParseState parses comma-separated amplitudes. Each token is a real number
// or a complex literal such as "0.5+0.5i", "-i" or "1-2j". A lone number is
// a basis shortcut: zero is |0⟩, anything else |1⟩. The result is not
// normalized.
func ParseState(s string) (linalg.Vector, error) {
	input := strings.TrimSpace(s)
	if input == "" {
		return nil, &ParseError{What: "state", Input: s, Reason: "empty"}
	}

	if !strings.Contains(input, ",") {
		v, err := strconv.ParseFloat(input, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ParseError{What: "state", Input: s, Token: input, Reason: "want a basis index or a comma-separated amplitude list"}
		}
		if v == 0 {
			return linalg.Basis(2, 0), nil
		}
		return linalg.Basis(2, 1), nil
	}

	parts := strings.Split(input, ",")
	state := make(linalg.Vector, len(parts))
	for i, part := range parts {
		amp, err := parseAmplitude(part)
		if err != nil {
			return nil, &ParseError{What: "state", Input: s, Token: strings.TrimSpace(part), Reason: err.Error()}
		}
		state[i] = amp
	}
	return state, nil
}

// ParseStateNormalized parses s and normalizes the result.
func ParseStateNormalized(s string) (linalg.Vector, error) {
	state, err := ParseState(s)
	if err != nil {
		return nil, err
	}
	return linalg.Normalize(state)
}

func parseAmplitude(tok string) (complex128, error) {
	tok = strings.ToLower(strings.Join(strings.Fields(tok), ""))
	if tok == "" {
		return 0, errEmptyToken
	}
	tok = strings.ReplaceAll(tok, "j", "i")
	// A bare imaginary unit carries an implicit coefficient of one.
	if strings.HasSuffix(tok, "i") {
		if n := len(tok); n == 1 || tok[n-2] == '+' || tok[n-2] == '-' {
			tok = tok[:n-1] + "1i"
		}
	}
	v, err := strconv.ParseComplex(tok, 128)
	if err != nil {
		return 0, errBadAmplitude
	}
	if cmplx.IsNaN(v) || cmplx.IsInf(v) {
		return 0, errNonFinite
	}
	return v, nil
}

var (
	errEmptyToken   = errors.New("empty amplitude")
	errBadAmplitude = errors.New("not a real or complex number")
	errNonFinite    = errors.New("amplitude must be finite")
)

// ParseOperators splits a comma- or space-separated list of gate names and
// resolves each against the registry, returning canonical names.
func ParseOperators(s string) ([]string, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil, &ParseError{What: "operators", Input: s, Reason: "no operators"}
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		g, err := gate.Lookup(f)
		if err != nil {
			return nil, &ParseError{What: "operators", Input: s, Token: f, Reason: "unknown gate", Err: err}
		}
		names[i] = g.Name
	}
	return names, nil
}

// stepExpr matches NAME, NAME(angle) followed by one or more :qubit indices.
var stepExpr = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)(?:\(([^()]*)\))?((?::-?\d+)+)$`)

// Step is one parsed program item.
type Step struct {
	Name   string
	Param  string
	Qubits []int
}

// ParseSteps parses a gate program such as "H:0, CNOT:0:1, RZ(pi/4):1,
// MEASURE:1:0". Items are separated by commas or semicolons; for MEASURE the
// second index is the classical bit.
func ParseSteps(s string) ([]Step, error) {
	var steps []Step
	for item := range strings.FieldsFuncSeq(s, func(r rune) bool { return r == ',' || r == ';' || r == '\n' }) {
		item = strings.Join(strings.Fields(item), "")
		if item == "" {
			continue
		}
		m := stepExpr.FindStringSubmatch(item)
		if m == nil {
			return nil, &ParseError{What: "program", Input: s, Token: item, Reason: "want NAME[(angle)]:q[:q...]"}
		}
		var qubits []int
		for q := range strings.SplitSeq(strings.TrimPrefix(m[3], ":"), ":") {
			idx, err := strconv.Atoi(q)
			if err != nil {
				return nil, &ParseError{What: "program", Input: s, Token: item, Reason: "bad qubit index"}
			}
			qubits = append(qubits, idx)
		}
		steps = append(steps, Step{Name: strings.ToUpper(m[1]), Param: m[2], Qubits: qubits})
	}
	if len(steps) == 0 {
		return nil, &ParseError{What: "program", Input: s, Reason: "no gates"}
	}
	return steps, nil
}

// ParseProgram builds a circuit from a gate program. When numQubits is zero
// the register is sized to the highest referenced qubit. Input that starts
// with an OpenQASM header is read with circuit.ParseQASM, whose qreg
// declaration fixes the size.
func ParseProgram(s string, numQubits int) (*circuit.Circuit, error) {
	if circuit.IsQASM(s) {
		return circuit.ParseQASM(s)
	}
	steps, err := ParseSteps(s)
	if err != nil {
		return nil, err
	}
	if numQubits == 0 {
		numQubits = RegisterSize(steps)
	}
	c, err := circuit.New(numQubits)
	if err != nil {
		return nil, err
	}
	for _, st := range steps {
		if err := apply(c, st); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RegisterSize returns one more than the highest qubit the steps touch.
func RegisterSize(steps []Step) int {
	n := 0
	for _, st := range steps {
		qubits := st.Qubits
		if isMeasure(st.Name) {
			qubits = qubits[:1]
		}
		for _, q := range qubits {
			n = max(n, q+1)
		}
	}
	return n
}

func isMeasure(name string) bool {
	return name == "MEASURE" || name == "M"
}

func apply(c *circuit.Circuit, st Step) error {
	switch {
	case isMeasure(st.Name):
		if len(st.Qubits) != 2 {
			return &ParseError{What: "program", Input: st.Name, Reason: "MEASURE takes :qubit:bit"}
		}
		return c.Measure(st.Qubits[0], st.Qubits[1])
	case gate.IsRotation(st.Name):
		if st.Param == "" {
			return &ParseError{What: "program", Input: st.Name, Reason: "rotation needs an angle"}
		}
		if len(st.Qubits) != 1 {
			return &ParseError{What: "program", Input: st.Name, Reason: "rotation acts on one qubit"}
		}
		theta, err := circuit.ParseParamExpr(st.Param)
		if err != nil {
			return err
		}
		return c.AddRotation(st.Name, theta, st.Qubits[0])
	case st.Param != "":
		return &ParseError{What: "program", Input: st.Name, Token: st.Param, Reason: "gate takes no angle"}
	default:
		return c.AddGate(st.Name, st.Qubits...)
	}
}
