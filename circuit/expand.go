package circuit

import (
	"fmt"

	"qdeck/linalg"
)

// Expand lifts a 2^k x 2^k gate acting on qubits into the full 2^n space.
//
// Entry (i, j) of the result is g[row(i), row(j)] when i and j agree on every
// bit outside qubits, and zero otherwise, where row(x) packs
// bit_{qubits[0]}(x) … bit_{qubits[k-1]}(x) with qubits[0] most significant.
// For k = 1 this is g[bit_t(i), bit_t(j)]; for k = 2 on (c, t) it is
// g[2·bit_c(i)+bit_t(i), 2·bit_c(j)+bit_t(j)].
//
// Only the 2^k candidate columns of each row are visited; every other entry
// is already zero.
func Expand(g linalg.Matrix, qubits []int, numQubits int) (linalg.Matrix, error) {
	k := len(qubits)
	if !g.IsSquare() || g.Rows() != 1<<k {
		return nil, &linalg.DimensionError{Op: "expand", Want: fmt.Sprintf("%dx%d", 1<<k, 1<<k), Got: fmt.Sprintf("%dx%d", g.Rows(), g.Cols())}
	}
	mask := 0
	for _, q := range qubits {
		if q < 0 || q >= numQubits || mask&(1<<q) != 0 {
			return nil, &QubitIndexError{Gate: "expand", Qubits: qubits, NumQubits: numQubits, Reason: "invalid or repeated qubit"}
		}
		mask |= 1 << q
	}

	dim := 1 << numQubits
	out := linalg.NewMatrix(dim, dim)
	for i := range dim {
		r := gather(i, qubits)
		base := i &^ mask
		for col := range 1 << k {
			out[i][base|scatter(col, qubits)] = g[r][col]
		}
	}
	return out, nil
}

// gather packs the bits of index at the given qubit positions, first qubit
// most significant.
func gather(index int, qubits []int) int {
	r := 0
	for _, q := range qubits {
		r = r<<1 | (index>>q)&1
	}
	return r
}

// scatter is the inverse of gather: it places the bits of packed back at the
// qubit positions.
func scatter(packed int, qubits []int) int {
	k := len(qubits)
	index := 0
	for idx, q := range qubits {
		index |= ((packed >> (k - 1 - idx)) & 1) << q
	}
	return index
}
