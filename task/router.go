package task

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"qdeck/algo"
	"qdeck/circuit"
	"qdeck/gate"
	"qdeck/linalg"
)

// DefaultMaxQubits is the register ceiling a Router applies when none is
// configured.
const DefaultMaxQubits = 10

// Router dispatches requests to the algorithm library. It reads no global
// state; everything it needs is in its fields.
type Router struct {
	// MaxQubits rejects larger registers before any unitary is built.
	MaxQubits int
	// Tol is the unitarity and Hermiticity tolerance.
	Tol    float64
	Logger *log.Logger
}

// NewRouter returns a Router with default limits. A nil logger discards
// output.
func NewRouter(logger *log.Logger) *Router {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Router{MaxQubits: DefaultMaxQubits, Tol: gate.Tolerance, Logger: logger}
}

func (r *Router) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}

func (r *Router) tol() float64 {
	if r.Tol <= 0 {
		return gate.Tolerance
	}
	return r.Tol
}

func (r *Router) maxQubits() int {
	if r.MaxQubits <= 0 {
		return DefaultMaxQubits
	}
	return min(r.MaxQubits, circuit.MaxQubits)
}

// Route validates req and runs its task.
func (r *Router) Route(req Request) (algo.Result, error) {
	kind, err := ParseKind(req.Task)
	if err != nil {
		return nil, err
	}
	logger := r.logger().With("task", kind)
	if req.ID != "" {
		logger = logger.With("id", req.ID)
	}

	start := time.Now()
	res, err := r.dispatch(kind, req)
	if err != nil {
		logger.Debug("task failed", "err", err)
		return nil, err
	}
	logger.Debug("task done", "elapsed", time.Since(start))
	return res, nil
}

func (r *Router) dispatch(kind Kind, req Request) (algo.Result, error) {
	switch kind {
	case KindMatrixRep:
		ops, err := r.operators(kind, req, 0)
		if err != nil {
			return nil, err
		}
		return algo.MatrixRep(ops, r.tol())
	case KindCommutator:
		ops, err := r.operators(kind, req, 2)
		if err != nil {
			return nil, err
		}
		return algo.Commutator(ops[0], ops[1], r.tol())
	case KindBloch:
		state, err := r.state(kind, req)
		if err != nil {
			return nil, err
		}
		return algo.BlochOf(state)
	case KindProbabilities:
		state, err := r.state(kind, req)
		if err != nil {
			return nil, err
		}
		return algo.ProbabilitiesOf(state)
	case KindUnitary:
		c, err := r.program(kind, req)
		if err != nil {
			return nil, err
		}
		return algo.Compose(c, r.tol())
	case KindBellState:
		return algo.Bell()
	case KindTeleportation:
		return algo.Teleportation()
	case KindGrover:
		n := intOr(req.Qubits, DefaultGroverQubits)
		if err := r.checkQubits(n); err != nil {
			return nil, err
		}
		return algo.Grover(n, intOr(req.Marked, DefaultGroverMarked))
	case KindCustom:
		if req.Hamiltonian == "" {
			return nil, invalid(kind, "hamiltonian is required")
		}
		return algo.CustomHamiltonian(req.Hamiltonian)
	case KindSHO:
		return algo.HarmonicOscillator(intOr(req.NMax, DefaultSHOLevels), floatOr(req.Omega, DefaultOmega))
	case KindParticleInBox:
		return algo.ParticleInBox(floatOr(req.Length, DefaultBoxLength), intOr(req.NMax, DefaultBoxLevels))
	case KindEvolve:
		if req.Hamiltonian == "" {
			return nil, invalid(kind, "hamiltonian is required")
		}
		state, err := r.state(kind, req)
		if err != nil {
			return nil, err
		}
		return algo.Evolve(state, req.Hamiltonian, floatOr(req.Time, 0))
	default:
		return nil, &UnsupportedTaskError{Name: string(kind)}
	}
}

// operators resolves req.Operators against the registry. exact > 0 demands
// exactly that many names; zero accepts any non-empty list.
func (r *Router) operators(kind Kind, req Request, exact int) ([]string, error) {
	if len(req.Operators) == 0 {
		return nil, invalid(kind, "operators are required")
	}
	ops, err := ParseOperators(strings.Join(req.Operators, ","))
	if err != nil {
		return nil, err
	}
	if exact > 0 && len(ops) != exact {
		return nil, invalid(kind, "want %d operators, got %d", exact, len(ops))
	}
	return ops, nil
}

func (r *Router) state(kind Kind, req Request) (linalg.Vector, error) {
	if req.State == "" {
		return nil, invalid(kind, "state is required")
	}
	state, err := ParseStateNormalized(req.State)
	if err != nil {
		return nil, err
	}
	if len(state)&(len(state)-1) != 0 {
		return nil, invalid(kind, "state length %d is not a power of two", len(state))
	}
	if n := bitLen(len(state)); n > r.maxQubits() {
		return nil, r.tooMany(n)
	}
	return state, nil
}

func (r *Router) program(kind Kind, req Request) (*circuit.Circuit, error) {
	if req.Program == "" {
		return nil, invalid(kind, "program is required")
	}
	if circuit.IsQASM(req.Program) {
		c, err := circuit.ParseQASM(req.Program)
		if err != nil {
			return nil, err
		}
		if err := r.checkQubits(c.NumQubits()); err != nil {
			return nil, err
		}
		return c, nil
	}
	steps, err := ParseSteps(req.Program)
	if err != nil {
		return nil, err
	}
	n := intOr(req.Qubits, RegisterSize(steps))
	if err := r.checkQubits(n); err != nil {
		return nil, err
	}
	c, err := circuit.New(n)
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

func (r *Router) checkQubits(n int) error {
	if n > r.maxQubits() {
		return r.tooMany(n)
	}
	return nil
}

func (r *Router) tooMany(n int) error {
	return fmt.Errorf("%w: %d qubits requested, router limit is %d", circuit.ErrTooManyQubits, n, r.maxQubits())
}

// bitLen returns log2(dim) for a power of two.
func bitLen(dim int) int {
	n := 0
	for dim > 1 {
		dim >>= 1
		n++
	}
	return n
}
