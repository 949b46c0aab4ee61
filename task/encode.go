package task

import (
	"fmt"

	"github.com/goccy/go-json"

	"qdeck/algo"
	"qdeck/linalg"
)

// Complex is the transport form of a complex number.
type Complex struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

func (c Complex) Value() complex128 {
	return complex(c.Real, c.Imag)
}

// EncodeVector converts amplitudes to {real, imag} pairs.
func EncodeVector(v linalg.Vector) []Complex {
	out := make([]Complex, len(v))
	for i, a := range v {
		out[i] = Complex{Real: real(a), Imag: imag(a)}
	}
	return out
}

// DecodeVector is the inverse of EncodeVector.
func DecodeVector(pairs []Complex) linalg.Vector {
	out := make(linalg.Vector, len(pairs))
	for i, c := range pairs {
		out[i] = c.Value()
	}
	return out
}

// EncodeMatrix converts a matrix to nested {real, imag} rows.
func EncodeMatrix(m linalg.Matrix) [][]Complex {
	out := make([][]Complex, len(m))
	for i, row := range m {
		out[i] = EncodeVector(row)
	}
	return out
}

type operatorWire struct {
	algo.OperatorInfo
	Elements [][]Complex `json:"matrix"`
}

type matrixRepWire struct {
	Operators []operatorWire `json:"operators"`
}

type commutatorWire struct {
	algo.CommutatorResult
	CommutatorElems     [][]Complex `json:"commutator"`
	AnticommutatorElems [][]Complex `json:"anticommutator"`
}

type blochWire struct {
	algo.BlochResult
	StateElems []Complex `json:"state"`
}

type probabilitiesWire struct {
	algo.ProbabilitiesResult
	StateElems []Complex `json:"state"`
}

type unitaryWire struct {
	algo.UnitaryResult
	UnitaryElems [][]Complex `json:"unitary"`
}

type bellWire struct {
	algo.BellResult
	InitialElems []Complex `json:"initial_state"`
	FinalElems   []Complex `json:"final_state"`
}

type hamiltonianWire struct {
	algo.HamiltonianResult
	GroundElems []Complex `json:"ground_state"`
}

type evolveWire struct {
	algo.EvolveResult
	InitialElems []Complex `json:"initial_state"`
	FinalElems   []Complex `json:"final_state"`
}

// Payload converts a result into its transport shape, replacing every
// complex field with {real, imag} pairs. Results without complex fields are
// returned as-is.
func Payload(res algo.Result) (any, error) {
	switch r := res.(type) {
	case algo.MatrixRepResult:
		ops := make([]operatorWire, len(r.Operators))
		for i, op := range r.Operators {
			ops[i] = operatorWire{OperatorInfo: op, Elements: EncodeMatrix(op.Matrix)}
		}
		return matrixRepWire{Operators: ops}, nil
	case algo.CommutatorResult:
		return commutatorWire{
			CommutatorResult:    r,
			CommutatorElems:     EncodeMatrix(r.Commutator),
			AnticommutatorElems: EncodeMatrix(r.Anticommutator),
		}, nil
	case algo.BlochResult:
		return blochWire{BlochResult: r, StateElems: EncodeVector(r.State)}, nil
	case algo.ProbabilitiesResult:
		return probabilitiesWire{ProbabilitiesResult: r, StateElems: EncodeVector(r.State)}, nil
	case algo.UnitaryResult:
		return unitaryWire{UnitaryResult: r, UnitaryElems: EncodeMatrix(r.Unitary)}, nil
	case algo.BellResult:
		return bellWire{BellResult: r, InitialElems: EncodeVector(r.Initial), FinalElems: EncodeVector(r.State)}, nil
	case algo.HamiltonianResult:
		return hamiltonianWire{HamiltonianResult: r, GroundElems: EncodeVector(r.GroundState)}, nil
	case algo.EvolveResult:
		return evolveWire{EvolveResult: r, InitialElems: EncodeVector(r.Initial), FinalElems: EncodeVector(r.State)}, nil
	case algo.TeleportationResult, algo.GroverResult, algo.OscillatorResult, algo.BoxResult:
		return r, nil
	default:
		return nil, fmt.Errorf("task: no transport encoding for %T", res)
	}
}

// Encode returns the JSON transport form of a result.
func Encode(res algo.Result) ([]byte, error) {
	p, err := Payload(res)
	if err != nil {
		return nil, err
	}
	return json.Marshal(p)
}
