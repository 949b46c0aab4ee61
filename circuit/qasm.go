package circuit

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrQASM is returned for statements ParseQASM cannot read. Gate and
// register errors keep their own sentinels.
var ErrQASM = errors.New("circuit: invalid OpenQASM")

// qasmNames maps registry names onto qelib1.inc spellings.
var qasmNames = map[string]string{
	"CNOT":    "cx",
	"TOFFOLI": "ccx",
	"PHASE":   "s",
	"I":       "id",
}

// ToQASM renders the circuit as OpenQASM 2.0. Custom matrices have no QASM
// spelling and are emitted as comments.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", max(c.NumClassicalBits(), 1))

	for _, app := range c.apps {
		qubits := make([]string, len(app.Qubits))
		for i, q := range app.Qubits {
			qubits[i] = fmt.Sprintf("q[%d]", q)
		}
		operands := strings.Join(qubits, ", ")

		name, known := qasmNames[app.Gate.Name]
		if !known {
			name = strings.ToLower(app.Gate.Name)
		}
		switch {
		case app.Custom:
			fmt.Fprintf(&sb, "// unitary %s %s\n", app.Gate.Name, operands)
		case len(app.Params) > 0:
			params := make([]string, len(app.Params))
			for i, p := range app.Params {
				params[i] = FormatParam(p)
			}
			fmt.Fprintf(&sb, "%s(%s) %s;\n", name, strings.Join(params, ", "), operands)
		default:
			fmt.Fprintf(&sb, "%s %s;\n", name, operands)
		}
	}

	for _, m := range c.measurements {
		fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", m.Qubit, m.Bit)
	}
	return sb.String()
}

var (
	qregRegex    = regexp.MustCompile(`^qreg\s+\w+\[(\d+)\]\s*;$`)
	measureRegex = regexp.MustCompile(`^measure\s+\w+\[(\d+)\]\s*->\s*\w+\[(\d+)\]\s*;$`)
	gateRegex    = regexp.MustCompile(`^([a-z][a-z0-9_]*)(?:\(([^)]*)\))?\s+(\w+\[\d+\](?:\s*,\s*\w+\[\d+\])*)\s*;$`)
	operandRegex = regexp.MustCompile(`\w+\[(\d+)\]`)
)

// IsQASM reports whether src starts with an OpenQASM header.
func IsQASM(src string) bool {
	return strings.HasPrefix(strings.TrimSpace(src), "OPENQASM")
}

// ParseQASM reads the OpenQASM 2.0 subset ToQASM writes: one qreg, gates
// from the registry or the rotation set, and trailing measurements. Custom
// unitaries have no QASM spelling, so a "// unitary" comment is an error.
func ParseQASM(src string) (*Circuit, error) {
	var c *Circuit
	for n, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		lineErr := func(format string, args ...any) error {
			return fmt.Errorf("%w: line %d: %s", ErrQASM, n+1, fmt.Sprintf(format, args...))
		}

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "// unitary"):
			return nil, lineErr("custom unitary %q cannot be rebuilt", strings.TrimSpace(strings.TrimPrefix(line, "// unitary")))
		case strings.HasPrefix(line, "//"),
			strings.HasPrefix(line, "OPENQASM"),
			strings.HasPrefix(line, "include"),
			strings.HasPrefix(line, "creg"),
			strings.HasPrefix(line, "barrier"):
			continue
		}

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			if c != nil {
				return nil, lineErr("only one qreg is supported")
			}
			size, _ := strconv.Atoi(m[1])
			var err error
			if c, err = New(size); err != nil {
				return nil, err
			}
			continue
		}
		if c == nil {
			return nil, lineErr("statement before qreg")
		}

		if m := measureRegex.FindStringSubmatch(line); m != nil {
			q, _ := strconv.Atoi(m[1])
			bit, _ := strconv.Atoi(m[2])
			if err := c.Measure(q, bit); err != nil {
				return nil, err
			}
			continue
		}

		m := gateRegex.FindStringSubmatch(line)
		if m == nil {
			return nil, lineErr("unrecognized statement %q", line)
		}
		var qubits []int
		for _, op := range operandRegex.FindAllStringSubmatch(m[3], -1) {
			q, _ := strconv.Atoi(op[1])
			qubits = append(qubits, q)
		}
		name := strings.ToUpper(m[1])

		if m[2] == "" {
			if err := c.AddGate(name, qubits...); err != nil {
				return nil, err
			}
			continue
		}
		params, err := ParseParams(m[2])
		if err != nil {
			return nil, err
		}
		if len(params) != 1 || len(qubits) != 1 {
			return nil, lineErr("%s takes one angle and one qubit", m[1])
		}
		if err := c.AddRotation(name, params[0], qubits[0]); err != nil {
			return nil, err
		}
	}
	if c == nil {
		return nil, fmt.Errorf("%w: no qreg declaration", ErrQASM)
	}
	return c, nil
}
