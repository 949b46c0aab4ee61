package algo

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"qdeck/gate"
	"qdeck/linalg"
)

// DegeneracyTol is how close an eigenvalue must be to the ground energy to
// count toward the degeneracy.
const DegeneracyTol = 1e-10

// hamiltonians maps the supported names onto registry operators.
var hamiltonians = map[string]string{
	"pauli_x": "X",
	"pauli_y": "Y",
	"pauli_z": "Z",
}

// HamiltonianNames returns the supported Hamiltonian names, sorted.
func HamiltonianNames() []string {
	return slices.Sorted(maps.Keys(hamiltonians))
}

// Hamiltonian returns the matrix for a supported name, matched
// case-insensitively.
func Hamiltonian(name string) (linalg.Matrix, error) {
	op, ok := hamiltonians[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &UnsupportedHamiltonianError{Name: name}
	}
	g, err := gate.Lookup(op)
	if err != nil {
		return nil, err
	}
	return g.Matrix, nil
}

// HamiltonianResult is the exact diagonalization of a named Hamiltonian.
type HamiltonianResult struct {
	Name            string        `json:"hamiltonian"`
	Method          string        `json:"method"`
	Eigenvalues     []float64     `json:"eigenvalues"`
	GroundEnergy    float64       `json:"ground_state_energy"`
	ExcitedEnergies []float64     `json:"excited_state_energies"`
	GroundState     linalg.Vector `json:"-"`
	Degeneracy      int           `json:"degeneracy"`
}

func (HamiltonianResult) Kind() string { return "custom" }

// CustomHamiltonian diagonalizes the named Hamiltonian. Eigenvalues are
// ascending and the ground state is the eigenvector of the lowest one.
func CustomHamiltonian(name string) (HamiltonianResult, error) {
	h, err := Hamiltonian(name)
	if err != nil {
		return HamiltonianResult{}, err
	}
	values, vectors, err := linalg.Eigh(h, gate.Tolerance)
	if err != nil {
		return HamiltonianResult{}, fmt.Errorf("algo: diagonalize %s: %w", name, err)
	}

	ground := values[0]
	degeneracy := 0
	for _, v := range values {
		if v-ground < DegeneracyTol {
			degeneracy++
		}
	}
	return HamiltonianResult{
		Name:            strings.ToLower(strings.TrimSpace(name)),
		Method:          "exact_diagonalization",
		Eigenvalues:     values,
		GroundEnergy:    ground,
		ExcitedEnergies: slices.Clone(values[1:]),
		GroundState:     vectors.Column(0),
		Degeneracy:      degeneracy,
	}, nil
}
