package task

import (
	"strings"
)

// Kind is one of the tasks a Router can dispatch.
type Kind string

const (
	KindMatrixRep     Kind = "matrix_rep"
	KindCommutator    Kind = "commutator"
	KindBloch         Kind = "bloch"
	KindProbabilities Kind = "probabilities"
	KindUnitary       Kind = "unitary"
	KindBellState     Kind = "bell_state"
	KindTeleportation Kind = "teleportation"
	KindGrover        Kind = "grover"
	KindCustom        Kind = "custom"
	KindSHO           Kind = "sho"
	KindParticleInBox Kind = "particle_in_box"
	KindEvolve        Kind = "evolve"
)

var kinds = []Kind{
	KindMatrixRep,
	KindCommutator,
	KindBloch,
	KindProbabilities,
	KindUnitary,
	KindBellState,
	KindTeleportation,
	KindGrover,
	KindCustom,
	KindSHO,
	KindParticleInBox,
	KindEvolve,
}

// Kinds returns every supported task kind in menu order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind matches s case-insensitively against the supported kinds.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", &UnsupportedTaskError{Name: s}
}

func (k Kind) String() string {
	return string(k)
}
