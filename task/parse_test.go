package task

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qdeck/circuit"
	"qdeck/gate"
	"qdeck/linalg"
)

func TestParseState(t *testing.T) {
	const s = 0.7071067811865476
	tests := []struct {
		input string
		want  linalg.Vector
	}{
		{"1,0", linalg.Vector{1, 0}},
		{"0, 1", linalg.Vector{0, 1}},
		{"0.7071067811865476,0.7071067811865476", linalg.Vector{complex(s, 0), complex(s, 0)}},
		{"1+0i,0-1j", linalg.Vector{1, -1i}},
		{"i,0", linalg.Vector{1i, 0}},
		{"-i, 1", linalg.Vector{-1i, 1}},
		{"0.5+0.5i,0.5-0.5i", linalg.Vector{0.5 + 0.5i, 0.5 - 0.5i}},
		{"1+i,2j,3", linalg.Vector{1 + 1i, 2i, 3}},
		{"1e-1, 0", linalg.Vector{0.1, 0}},
		{"0", linalg.Vector{1, 0}},
		{"1", linalg.Vector{0, 1}},
		{"2.5", linalg.Vector{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseState(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStateErrors(t *testing.T) {
	tests := []struct {
		input string
		token string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a,b", "a"},
		{"1,,0", ""},
		{"1,inf", "inf"},
		{"1,2k", "2k"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseState(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.token, pe.Token)
			assert.Equal(t, "state", pe.What)
		})
	}
}

func TestParseStateNormalized(t *testing.T) {
	v, err := ParseStateNormalized("3,4i")
	require.NoError(t, err)
	assert.InDelta(t, 1, v.Norm(), 1e-12)
	assert.InDelta(t, 0.6, real(v[0]), 1e-12)

	_, err = ParseStateNormalized("0,0")
	assert.ErrorIs(t, err, linalg.ErrZeroNorm)
}

func TestParseOperators(t *testing.T) {
	ops, err := ParseOperators("x, Y z,cx  ccx")
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z", "CNOT", "TOFFOLI"}, ops)

	_, err = ParseOperators(" , ")
	assert.ErrorIs(t, err, ErrParse)

	_, err = ParseOperators("X,FOO")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "FOO", pe.Token)
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, gate.ErrUnknownGate)

	var unknown *gate.UnknownGateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "FOO", unknown.Name)
}

func TestParseProgram(t *testing.T) {
	tests := []struct {
		name    string
		program string
		qubits  int
		gates   int
		measure int
	}{
		{"bell", "H:0,CNOT:0:1", 2, 2, 0},
		{"rotation", "RX(pi/2):1", 2, 1, 0},
		{"semicolons and spaces", "h:0; cx : 0 : 2 ;rz( 3*pi/4 ):2", 3, 3, 0},
		{"toffoli", "X:0,X:1,CCX:0:1:2", 3, 3, 0},
		{"measure does not size register by bit", "H:0,MEASURE:0:4", 1, 1, 1},
		{"openqasm", "OPENQASM 2.0;\nqreg q[3];\nh q[0];\ncx q[0], q[1];\nmeasure q[1] -> c[0];\n", 3, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseProgram(tt.program, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.qubits, c.NumQubits())
			assert.Equal(t, tt.gates, c.Len())
			assert.Len(t, c.Measurements(), tt.measure)
		})
	}
}

func TestParseProgramParams(t *testing.T) {
	c, err := ParseProgram("RZ(pi/4):0", 1)
	require.NoError(t, err)
	app := c.Applications()[0]
	assert.InDelta(t, math.Pi/4, app.Params[0], 1e-12)
	assert.Equal(t, "RZ", app.Gate.Name)
}

func TestParseProgramErrors(t *testing.T) {
	tests := []struct {
		name    string
		program string
		qubits  int
		target  error
	}{
		{"empty", " , ", 0, ErrParse},
		{"no qubit", "H0", 0, ErrParse},
		{"rotation without angle", "RX:0", 0, ErrParse},
		{"angle on fixed gate", "H(pi):0", 0, ErrParse},
		{"bad angle", "RY(tau):0", 0, circuit.ErrParam},
		{"unknown gate", "FOO:0", 0, gate.ErrUnknownGate},
		{"wrong arity", "CNOT:0", 0, circuit.ErrQubitIndex},
		{"out of range", "H:3", 2, circuit.ErrQubitIndex},
		{"too many qubits", "H:12", 0, circuit.ErrTooManyQubits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProgram(tt.program, tt.qubits)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(" " + string(k) + " ")
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseKind("Bell_State")
	require.NoError(t, err)
	assert.Equal(t, KindBellState, got)

	_, err = ParseKind("vqe")
	assert.ErrorIs(t, err, ErrUnsupportedTask)
	var ue *UnsupportedTaskError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "vqe", ue.Name)
	assert.Contains(t, err.Error(), "particle_in_box")
}
