package circuit

import (
	"qdeck/linalg"
)

// Simulate applies each gate directly to a copy of state without building
// the 2^n x 2^n unitary. It visits every amplitude once per gate, so it is
// the cheap path for callers that only need the final state; results match
// Run.
func (c *Circuit) Simulate(state linalg.Vector) (linalg.Vector, error) {
	if err := c.checkState(state); err != nil {
		return nil, err
	}
	amps := state.Clone()
	for _, app := range c.apps {
		if isDiagonal(app.Gate.Matrix) {
			applyDiagonal(amps, app.Gate.Matrix, app.Qubits)
			continue
		}
		applyDense(amps, app.Gate.Matrix, app.Qubits)
	}
	return amps, nil
}

// applyDiagonal multiplies each amplitude by the phase its qubit bits select.
func applyDiagonal(amps linalg.Vector, g linalg.Matrix, qubits []int) {
	for i := range amps {
		r := gather(i, qubits)
		if d := g[r][r]; d != 1 {
			amps[i] *= d
		}
	}
}

// applyDense walks each 2^k-dimensional block of amplitudes that share all
// bits outside qubits and multiplies it by g.
func applyDense(amps linalg.Vector, g linalg.Matrix, qubits []int) {
	mask := 0
	for _, q := range qubits {
		mask |= 1 << q
	}
	size := len(g)
	offsets := make([]int, size)
	for r := range size {
		offsets[r] = scatter(r, qubits)
	}
	block := make([]complex128, size)
	for base := range amps {
		if base&mask != 0 {
			continue
		}
		for r, off := range offsets {
			block[r] = amps[base|off]
		}
		for r, off := range offsets {
			var sum complex128
			for col, x := range g[r] {
				if x != 0 {
					sum += x * block[col]
				}
			}
			amps[base|off] = sum
		}
	}
}

func isDiagonal(g linalg.Matrix) bool {
	for i, row := range g {
		for j, x := range row {
			if i != j && x != 0 {
				return false
			}
		}
	}
	return true
}
