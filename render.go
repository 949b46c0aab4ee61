package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"qdeck/algo"
	"qdeck/circuit"
	"qdeck/linalg"
)

// maxTableDim caps how many rows and columns of a matrix are drawn.
const maxTableDim = 16

// ──────────────────────────── Number formatting ────────────────────────────

func formatFloat(x float64) string {
	if math.Abs(x) < 5e-5 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', 4, 64)
}

// formatComplex renders an amplitude compactly: 0.7071, -1.0000i, 0.5000+0.5000i.
func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	reZero, imZero := math.Abs(re) < 5e-5, math.Abs(im) < 5e-5
	switch {
	case reZero && imZero:
		return "0"
	case imZero:
		return formatFloat(re)
	case reZero:
		return formatFloat(im) + "i"
	case im < 0:
		return formatFloat(re) + "-" + formatFloat(-im) + "i"
	default:
		return formatFloat(re) + "+" + formatFloat(im) + "i"
	}
}

// basisLabel renders |q_{n-1}…q_0⟩ for basis index i.
func basisLabel(i, n int) string {
	return fmt.Sprintf("|%0*b⟩", n, i)
}

func qubitsFor(dim int) int {
	n := 0
	for 1<<n < dim {
		n++
	}
	return max(n, 1)
}

// ──────────────────────────── Tables ────────────────────────────

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}

// renderMatrix draws m with basis-state headers, clipped to maxTableDim.
func renderMatrix(m linalg.Matrix) string {
	rows, cols := min(m.Rows(), maxTableDim), min(m.Cols(), maxTableDim)
	n := qubitsFor(max(m.Rows(), m.Cols()))

	headers := make([]string, cols+1)
	for j := range cols {
		headers[j+1] = basisLabel(j, n)
	}
	t := newTable().Headers(headers...)
	for i := range rows {
		row := make([]string, cols+1)
		row[0] = basisLabel(i, n)
		for j := range cols {
			row[j+1] = formatComplex(m[i][j])
		}
		t.Row(row...)
	}

	out := t.String()
	if rows < m.Rows() || cols < m.Cols() {
		out += "\n" + dimStyle.Render(fmt.Sprintf("showing %dx%d of %dx%d", rows, cols, m.Rows(), m.Cols()))
	}
	return out
}

// renderKV draws a two-column key/value table.
func renderKV(pairs ...[2]string) string {
	t := newTable()
	for _, p := range pairs {
		t.Row(p[0], p[1])
	}
	return t.String()
}

// renderVector lists the non-negligible amplitudes of v.
func renderVector(v linalg.Vector) string {
	n := qubitsFor(len(v))
	t := newTable().Headers("basis", "amplitude")
	shown := 0
	for i, a := range v {
		if cmplx.Abs(a) < 5e-5 {
			continue
		}
		if shown == maxTableDim {
			t.Row("…", "")
			break
		}
		t.Row(basisLabel(i, n), formatComplex(a))
		shown++
	}
	return t.String()
}

// renderProbabilities draws a horizontal bar per basis state, skipping
// states with zero probability once the register exceeds four states.
func renderProbabilities(probs []float64) string {
	n := qubitsFor(len(probs))
	var sb strings.Builder
	for i, p := range probs {
		if len(probs) > 4 && p < 5e-5 {
			continue
		}
		filled := int(math.Round(p * barW))
		fmt.Fprintf(&sb, "%s %s%s %s\n",
			qubitLabelStyle.Render(basisLabel(i, n)),
			barStyle.Render(strings.Repeat("█", filled)),
			dimStyle.Render(strings.Repeat("░", barW-filled)),
			formatFloat(p))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// ──────────────────────────── Circuit diagram ────────────────────────────

// wireCell centres sym on a cellW-wide stretch of wire.
func wireCell(sym string) string {
	w := ansi.StringWidth(sym)
	if w >= cellW {
		return sym
	}
	left := (cellW - w) / 2
	return strings.Repeat("─", left) + sym + strings.Repeat("─", cellW-w-left)
}

// gateSymbol returns the glyph drawn on qubit position pos of app.
func gateSymbol(app circuit.Application, pos int) string {
	last := pos == len(app.Qubits)-1
	if !app.Custom {
		switch app.Gate.Name {
		case "CNOT", "TOFFOLI":
			if last {
				return "⊕"
			}
			return "●"
		case "CZ":
			return "●"
		case "SWAP":
			return "×"
		}
	}
	label := app.Gate.Name
	if len(app.Params) > 0 {
		label += "(" + circuit.FormatParam(app.Params[0]) + ")"
	}
	if len(app.Qubits) > 1 {
		label = "[" + label + "]"
	}
	return ansi.Truncate(label, cellW-2, "…")
}

// renderCircuit draws one wire per qubit, one column per moment, with
// measurements in a final column.
func renderCircuit(c *circuit.Circuit) string {
	n := c.NumQubits()
	apps := c.Applications()
	moments := c.Moments()
	measured := map[int]int{}
	for _, m := range c.Measurements() {
		measured[m.Qubit] = m.Bit
	}

	wires := make([]strings.Builder, n)
	links := make([]strings.Builder, n)
	for q := range n {
		wires[q].WriteString(qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", q))) + "──")
		links[q].WriteString(strings.Repeat(" ", labelVisualW))
	}

	for _, moment := range moments {
		cells := make([]string, n)
		spans := make([]bool, n)
		for _, idx := range moment {
			app := apps[idx]
			lo, hi := app.Qubits[0], app.Qubits[0]
			for pos, q := range app.Qubits {
				cells[q] = gateStyle.Render(gateSymbol(app, pos))
				lo, hi = min(lo, q), max(hi, q)
			}
			for q := lo; q < hi; q++ {
				spans[q] = true
				if cells[q+1] == "" && q+1 < hi {
					cells[q+1] = "┼"
				}
			}
		}
		for q := range n {
			sym := cells[q]
			if sym == "" {
				sym = "─"
			}
			wires[q].WriteString(wireCell(sym))
			if spans[q] {
				half := cellW / 2
				links[q].WriteString(strings.Repeat(" ", half) + "│" + strings.Repeat(" ", cellW-half-1))
			} else {
				links[q].WriteString(strings.Repeat(" ", cellW))
			}
		}
	}

	if len(measured) > 0 {
		for q := range n {
			if bit, ok := measured[q]; ok {
				wires[q].WriteString(wireCell(activeStyle.Render(fmt.Sprintf("M→c%d", bit))))
			} else {
				wires[q].WriteString(wireCell("─"))
			}
		}
	}

	var sb strings.Builder
	for q := range n {
		sb.WriteString(wires[q].String())
		if q < n-1 {
			sb.WriteString("\n")
			sb.WriteString(strings.TrimRight(links[q].String(), " "))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// ──────────────────────────── Results ────────────────────────────

func section(title, body string) string {
	return titleStyle.Render(title) + "\n" + body
}

// renderResult lays out a task result for the terminal. diagram may be
// nil when the task has no circuit.
func renderResult(res algo.Result, diagram *circuit.Circuit) string {
	var parts []string
	if diagram != nil {
		parts = append(parts, section("Circuit", renderCircuit(diagram)))
	}

	switch r := res.(type) {
	case algo.MatrixRepResult:
		for _, op := range r.Operators {
			title := fmt.Sprintf("%s  unitary=%t hermitian=%t", op.Name, op.Unitary, op.Hermitian)
			parts = append(parts, section(title, renderMatrix(op.Matrix)))
		}
	case algo.CommutatorResult:
		a, b := r.Operators[0], r.Operators[1]
		parts = append(parts,
			section(fmt.Sprintf("[%s, %s]", a, b), renderMatrix(r.Commutator)),
			section(fmt.Sprintf("{%s, %s}", a, b), renderMatrix(r.Anticommutator)),
			renderKV([2]string{"‖[A,B]‖", formatFloat(r.Norm)}, [2]string{"commute", strconv.FormatBool(r.Commute)}))
	case algo.BlochResult:
		parts = append(parts, section("Bloch vector", renderKV(
			[2]string{"x", formatFloat(r.Vector.X)},
			[2]string{"y", formatFloat(r.Vector.Y)},
			[2]string{"z", formatFloat(r.Vector.Z)},
			[2]string{"|r|", formatFloat(r.Vector.Length())})))
	case algo.ProbabilitiesResult:
		parts = append(parts, section("Probabilities", renderProbabilities(r.Probabilities)))
	case algo.UnitaryResult:
		parts = append(parts,
			renderKV([2]string{"qubits", strconv.Itoa(r.Qubits)}, [2]string{"gates", strconv.Itoa(len(r.Gates))}, [2]string{"depth", strconv.Itoa(r.Depth)}),
			section("Unitary", renderMatrix(r.Unitary)))
	case algo.BellResult:
		parts = append(parts,
			section("Final state", renderVector(r.State)),
			section("Probabilities", renderProbabilities(r.Probabilities)),
			renderKV([2]string{"fidelity with Φ⁺", formatFloat(r.Fidelity)}))
	case algo.TeleportationResult:
		parts = append(parts, section(r.Description, renderKV(
			[2]string{"gates", strconv.Itoa(r.GateCount)},
			[2]string{"depth", strconv.Itoa(r.Depth)},
			[2]string{"resource qubits", strconv.Itoa(r.ResourceQubits)},
			[2]string{"classical bits", strconv.Itoa(r.ClassicalBits)})))
	case algo.GroverResult:
		parts = append(parts, section(fmt.Sprintf("Grover search for %s", basisLabel(r.Marked, r.Qubits)), renderKV(
			[2]string{"iterations", strconv.Itoa(r.Iterations)},
			[2]string{"success probability", formatFloat(r.SuccessProbability)},
			[2]string{"simulated probability", formatFloat(r.SimulatedProbability)},
			[2]string{"depth", strconv.Itoa(r.Depth)},
			[2]string{"gates", strconv.Itoa(r.GateCount)},
			[2]string{"speedup", r.Speedup})))
	case algo.HamiltonianResult:
		values := make([]string, len(r.Eigenvalues))
		for i, v := range r.Eigenvalues {
			values[i] = formatFloat(v)
		}
		parts = append(parts,
			section(r.Name, renderKV(
				[2]string{"eigenvalues", strings.Join(values, ", ")},
				[2]string{"ground energy", formatFloat(r.GroundEnergy)},
				[2]string{"degeneracy", strconv.Itoa(r.Degeneracy)})),
			section("Ground state", renderVector(r.GroundState)))
	case algo.OscillatorResult:
		parts = append(parts, section(fmt.Sprintf("Harmonic oscillator ω=%g", r.Omega), renderLevels(r.EnergyLevels, 0)))
	case algo.BoxResult:
		parts = append(parts, section(fmt.Sprintf("Particle in a box L=%g", r.Length), renderLevels(r.EnergyLevels, 1)))
	case algo.EvolveResult:
		parts = append(parts,
			section(fmt.Sprintf("exp(-i·%s·%g)|ψ⟩", r.Hamiltonian, r.Time), renderVector(r.State)),
			section("Probabilities", renderProbabilities(r.Probabilities)),
			renderKV([2]string{"bloch", fmt.Sprintf("(%s, %s, %s)", formatFloat(r.Bloch.X), formatFloat(r.Bloch.Y), formatFloat(r.Bloch.Z))}))
	default:
		parts = append(parts, fmt.Sprintf("%+v", res))
	}
	return strings.Join(parts, "\n\n")
}

func renderLevels(levels []float64, first int) string {
	t := newTable().Headers("n", "E_n")
	for i, e := range levels {
		t.Row(strconv.Itoa(first+i), formatFloat(e))
	}
	return t.String()
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// position (x, y), measuring columns without ANSI escapes.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, line := range strings.Split(overlay, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLines[row] = spliceAt(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

func spliceAt(bg, overlay string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	right := ansi.TruncateLeft(bg, x+ansi.StringWidth(overlay), "")
	return left + overlay + right
}
