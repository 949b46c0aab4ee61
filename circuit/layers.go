package circuit

// Moments groups application indices into layers: each gate is placed one
// step after the latest gate that touches any of its qubits, so gates on
// disjoint qubits share a step.
func (c *Circuit) Moments() [][]int {
	next := make([]int, c.numQubits)
	var moments [][]int
	for idx, app := range c.apps {
		step := 0
		for _, q := range app.Qubits {
			step = max(step, next[q])
		}
		for _, q := range app.Qubits {
			next[q] = step + 1
		}
		for len(moments) <= step {
			moments = append(moments, nil)
		}
		moments[step] = append(moments[step], idx)
	}
	return moments
}

// Depth returns the number of moments.
func (c *Circuit) Depth() int {
	return len(c.Moments())
}
