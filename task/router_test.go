package task

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qdeck/algo"
	"qdeck/circuit"
	"qdeck/gate"
	"qdeck/linalg"
)

func TestRouteEveryKind(t *testing.T) {
	r := NewRouter(nil)
	requests := map[Kind]Request{
		KindMatrixRep:     {Operators: []string{"X", "H"}},
		KindCommutator:    {Operators: []string{"X", "Y"}},
		KindBloch:         {State: "1,1"},
		KindProbabilities: {State: "1,0,0,1"},
		KindUnitary:       {Program: "H:0,CNOT:0:1"},
		KindBellState:     {},
		KindTeleportation: {},
		KindGrover:        {Qubits: Int(3), Marked: Int(5)},
		KindCustom:        {Hamiltonian: "pauli_y"},
		KindSHO:           {NMax: Int(4), Omega: Float(0.5)},
		KindParticleInBox: {Length: Float(2)},
		KindEvolve:        {State: "0", Hamiltonian: "pauli_x", Time: Float(math.Pi)},
	}
	require.Len(t, requests, len(Kinds()))

	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			req := requests[k]
			req.Task = string(k)
			res, err := r.Route(req)
			require.NoError(t, err)
			assert.Equal(t, string(k), res.Kind())

			_, err = Encode(res)
			assert.NoError(t, err)
		})
	}
}

func TestRouteBlochRoundTrip(t *testing.T) {
	r := NewRouter(nil)
	tests := []struct {
		state string
		want  linalg.Bloch
	}{
		{"1,0", linalg.Bloch{Z: 1}},
		{"0,1", linalg.Bloch{Z: -1}},
		{"0.7071067811865476,0.7071067811865476", linalg.Bloch{X: 1}},
		{"1,i", linalg.Bloch{Y: 1}},
		{"3,0", linalg.Bloch{Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			res, err := r.Route(Request{Task: "bloch", State: tt.state})
			require.NoError(t, err)
			got := res.(algo.BlochResult).Vector
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-9)
		})
	}
}

func TestRouteDefaults(t *testing.T) {
	r := NewRouter(nil)

	res, err := r.Route(Request{Task: "grover"})
	require.NoError(t, err)
	g := res.(algo.GroverResult)
	assert.Equal(t, DefaultGroverQubits, g.Qubits)
	assert.Equal(t, DefaultGroverMarked, g.Marked)
	assert.Equal(t, 1, g.Iterations)

	res, err = r.Route(Request{Task: "sho"})
	require.NoError(t, err)
	assert.Len(t, res.(algo.OscillatorResult).EnergyLevels, DefaultSHOLevels+1)

	res, err = r.Route(Request{Task: "particle_in_box"})
	require.NoError(t, err)
	assert.Len(t, res.(algo.BoxResult).EnergyLevels, DefaultBoxLevels)

	res, err = r.Route(Request{Task: "grover", Marked: Int(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, res.(algo.GroverResult).Marked)
}

func TestRouteErrors(t *testing.T) {
	r := NewRouter(nil)
	tests := []struct {
		name   string
		req    Request
		target error
	}{
		{"unknown task", Request{Task: "qaoa"}, ErrUnsupportedTask},
		{"commutator needs two", Request{Task: "commutator", Operators: []string{"X"}}, ErrInvalidRequest},
		{"matrix rep needs one", Request{Task: "matrix_rep"}, ErrInvalidRequest},
		{"unknown operator", Request{Task: "matrix_rep", Operators: []string{"W"}}, gate.ErrUnknownGate},
		{"unknown commutator operand", Request{Task: "commutator", Operators: []string{"X", "W"}}, gate.ErrUnknownGate},
		{"non-finite rotation", Request{Task: "unitary", Program: "RX(nan):0"}, circuit.ErrParam},
		{"non-finite qasm rotation", Request{Task: "unitary", Program: "OPENQASM 2.0;\nqreg q[1];\nrx(inf) q[0];"}, circuit.ErrParam},
		{"grover marked out of range", Request{Task: "grover", Qubits: Int(2), Marked: Int(4)}, algo.ErrOutOfRange},
		{"grover above router ceiling", Request{Task: "grover", Qubits: Int(11)}, circuit.ErrTooManyQubits},
		{"unitary above router ceiling", Request{Task: "unitary", Program: "H:10"}, circuit.ErrTooManyQubits},
		{"openqasm above router ceiling", Request{Task: "unitary", Program: "OPENQASM 2.0;\nqreg q[11];"}, circuit.ErrTooManyQubits},
		{"openqasm custom unitary", Request{Task: "unitary", Program: "OPENQASM 2.0;\nqreg q[1];\n// unitary ORACLE q[0]"}, circuit.ErrQASM},
		{"custom without hamiltonian", Request{Task: "custom"}, ErrInvalidRequest},
		{"custom unsupported", Request{Task: "custom", Hamiltonian: "ising"}, algo.ErrUnsupportedHamiltonian},
		{"bloch on two qubits", Request{Task: "bloch", State: "1,0,0,0"}, linalg.ErrDimensionMismatch},
		{"bloch zero state", Request{Task: "bloch", State: "0,0"}, linalg.ErrZeroNorm},
		{"bloch bad token", Request{Task: "bloch", State: "1,x"}, ErrParse},
		{"probabilities odd length", Request{Task: "probabilities", State: "1,0,0"}, ErrInvalidRequest},
		{"evolve without state", Request{Task: "evolve", Hamiltonian: "pauli_z"}, ErrInvalidRequest},
		{"sho negative levels", Request{Task: "sho", NMax: Int(-1)}, algo.ErrOutOfRange},
		{"sho too many levels", Request{Task: "sho", NMax: Int(2_000_000_000)}, algo.ErrOutOfRange},
		{"box too many levels", Request{Task: "particle_in_box", NMax: Int(algo.MaxLevels + 1)}, algo.ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Route(tt.req)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestRouterCeilingIsConfigurable(t *testing.T) {
	r := NewRouter(nil)
	r.MaxQubits = 2
	_, err := r.Route(Request{Task: "grover", Qubits: Int(3)})
	assert.ErrorIs(t, err, circuit.ErrTooManyQubits)

	// The router never exceeds the composer's own ceiling.
	r.MaxQubits = 50
	assert.Equal(t, circuit.MaxQubits, r.maxQubits())
}

func TestEncodeUsesComplexPairs(t *testing.T) {
	res, err := algo.Bell()
	require.NoError(t, err)
	data, err := Encode(res)
	require.NoError(t, err)

	var decoded struct {
		Final         []Complex `json:"final_state"`
		Probabilities []float64 `json:"probabilities"`
		Fidelity      float64   `json:"fidelity"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Final, 4)
	assert.InDelta(t, 1/math.Sqrt2, decoded.Final[0].Real, 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, decoded.Final[3].Real, 1e-12)
	assert.InDelta(t, 1, decoded.Fidelity, 1e-12)
	assert.NotContains(t, string(data), "State")

	v := DecodeVector(decoded.Final)
	assert.True(t, v.IsNormalized(1e-9))
}

func TestEncodeMatrix(t *testing.T) {
	res, err := NewRouter(nil).Route(Request{Task: "commutator", Operators: []string{"X", "Y"}})
	require.NoError(t, err)
	data, err := Encode(res)
	require.NoError(t, err)

	var decoded struct {
		Commutator [][]Complex `json:"commutator"`
		Commute    bool        `json:"commute"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Complex{Real: 0, Imag: 2}, decoded.Commutator[0][0])
	assert.Equal(t, Complex{Real: 0, Imag: -2}, decoded.Commutator[1][1])
	assert.False(t, decoded.Commute)
}

func TestRouteAll(t *testing.T) {
	r := NewRouter(nil)
	reqs := []Request{
		{ID: "bell", Task: "bell_state"},
		{Task: "grover", Qubits: Int(3), Marked: Int(2)},
		{ID: "bad", Task: "nope"},
		{Task: "custom", Hamiltonian: "pauli_z"},
	}
	for i := range 20 {
		reqs = append(reqs, Request{ID: strings.Repeat("x", i+1), Task: "sho", NMax: Int(i)})
	}

	resps, err := r.RouteAll(context.Background(), reqs, 4)
	require.NoError(t, err)
	require.Len(t, resps, len(reqs))

	assert.Equal(t, "bell", resps[0].ID)
	assert.False(t, resps[0].Failed())

	_, err = uuid.Parse(resps[1].ID)
	assert.NoError(t, err, "missing IDs are filled with UUIDs")

	assert.True(t, resps[2].Failed())
	assert.Contains(t, resps[2].Error, "unsupported task")
	assert.Nil(t, resps[2].Result)

	for i, resp := range resps[4:] {
		assert.Equal(t, strings.Repeat("x", i+1), resp.ID, "order is preserved")
		assert.False(t, resp.Failed())
	}
}

func TestRouteAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	resps, err := NewRouter(nil).RouteAll(ctx, []Request{{Task: "bell_state"}, {Task: "grover"}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, resps, "requests that never ran are not reported")

	var buf bytes.Buffer
	require.NoError(t, WriteResponses(&buf, resps))
	assert.Empty(t, buf.String())
}

func TestUnencodableResultStaysInItsResponse(t *testing.T) {
	bad := respond(Request{ID: "bad", Task: "bloch"}, algo.BlochResult{Vector: linalg.Bloch{X: math.NaN()}}, nil)
	assert.True(t, bad.Failed())
	assert.Contains(t, bad.Error, "encode bloch result")
	assert.Nil(t, bad.Result)

	good := NewRouter(nil).Respond(Request{ID: "good", Task: "bell_state"})
	require.False(t, good.Failed())

	var buf bytes.Buffer
	require.NoError(t, WriteResponses(&buf, []Response{bad, good}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"id":"bad"`)
	assert.Contains(t, lines[0], `"error"`)
	assert.Contains(t, lines[1], `"id":"good"`)
	assert.Contains(t, lines[1], `"final_state"`)
}

func TestReadWriteRequests(t *testing.T) {
	input := `{"id":"a","task":"bell_state"}

{"task":"grover","num_qubits":2,"marked_item":3}
`
	reqs, err := ReadRequests(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "a", reqs[0].ID)
	require.NotNil(t, reqs[1].Marked)
	assert.Equal(t, 3, *reqs[1].Marked)

	resps, err := NewRouter(nil).RouteAll(context.Background(), reqs, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteResponses(&buf, resps))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"id":"a"`)

	_, err = ReadRequests(strings.NewReader("{not json"))
	assert.ErrorIs(t, err, ErrParse)
}
