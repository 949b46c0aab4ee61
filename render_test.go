package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"qdeck/algo"
	"qdeck/circuit"
	"qdeck/linalg"
)

func TestFormatComplex(t *testing.T) {
	tests := []struct {
		input complex128
		want  string
	}{
		{0, "0"},
		{complex(1e-6, -1e-6), "0"},
		{complex(0.70710678, 0), "0.7071"},
		{complex(0, -1), "-1.0000i"},
		{complex(0.5, 0.5), "0.5000+0.5000i"},
		{complex(0.5, -0.5), "0.5000-0.5000i"},
	}

	for _, tt := range tests {
		if got := formatComplex(tt.input); got != tt.want {
			t.Errorf("formatComplex(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBasisLabel(t *testing.T) {
	tests := []struct {
		index, qubits int
		want          string
	}{
		{0, 1, "|0⟩"},
		{0, 2, "|00⟩"},
		{5, 3, "|101⟩"},
		{3, 2, "|11⟩"},
	}

	for _, tt := range tests {
		if got := basisLabel(tt.index, tt.qubits); got != tt.want {
			t.Errorf("basisLabel(%d, %d) = %q, want %q", tt.index, tt.qubits, got, tt.want)
		}
	}
}

func TestQubitsFor(t *testing.T) {
	for dim, want := range map[int]int{1: 1, 2: 1, 4: 2, 5: 3, 8: 3, 1024: 10} {
		if got := qubitsFor(dim); got != want {
			t.Errorf("qubitsFor(%d) = %d, want %d", dim, got, want)
		}
	}
}

func TestWireCellWidth(t *testing.T) {
	for _, sym := range []string{"─", "H", "RX(pi/2)", "⊕"} {
		if w := ansi.StringWidth(wireCell(sym)); w != cellW {
			t.Errorf("wireCell(%q) is %d wide, want %d", sym, w, cellW)
		}
	}
}

func TestRenderCircuit(t *testing.T) {
	c, err := algo.TeleportationCircuit()
	if err != nil {
		t.Fatal(err)
	}
	out := ansi.Strip(renderCircuit(c))

	for _, want := range []string{"q[0]", "q[1]", "q[2]", "H", "●", "⊕", "│", "M→c0", "M→c1"} {
		if !strings.Contains(out, want) {
			t.Errorf("diagram missing %q:\n%s", want, out)
		}
	}

	// Three wires separated by two link rows.
	if lines := strings.Split(out, "\n"); len(lines) != 5 {
		t.Errorf("diagram has %d lines, want 5:\n%s", len(lines), out)
	}
}

func TestGateSymbol(t *testing.T) {
	c, err := circuit.New(3)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddGate("TOFFOLI", 0, 1, 2); err != nil {
		t.Fatal(err)
	}
	if err := c.AddRotation("RZ", 3.14159265358979, 0); err != nil {
		t.Fatal(err)
	}
	if err := c.AddMatrix("CNOT", linalg.Identity(4), 1, 2); err != nil {
		t.Fatal(err)
	}
	apps := c.Applications()

	tests := []struct {
		app  circuit.Application
		pos  int
		want string
	}{
		{apps[0], 0, "●"},
		{apps[0], 1, "●"},
		{apps[0], 2, "⊕"},
		{apps[1], 0, "RZ(pi)"},
		{apps[2], 0, "[CNOT]"},
		{apps[2], 1, "[CNOT]"},
	}
	for _, tt := range tests {
		if got := gateSymbol(tt.app, tt.pos); got != tt.want {
			t.Errorf("gateSymbol(%s, %d) = %q, want %q", tt.app, tt.pos, got, tt.want)
		}
	}
}

func TestRenderResult(t *testing.T) {
	res, err := algo.Grover(3, 5)
	if err != nil {
		t.Fatal(err)
	}
	out := ansi.Strip(renderResult(res, nil))
	for _, want := range []string{"Grover search for |101⟩", "iterations", "simulated probability"} {
		if !strings.Contains(out, want) {
			t.Errorf("result missing %q:\n%s", want, out)
		}
	}

	bell, err := algo.Bell()
	if err != nil {
		t.Fatal(err)
	}
	c, err := algo.BellCircuit()
	if err != nil {
		t.Fatal(err)
	}
	out = ansi.Strip(renderResult(bell, c))
	for _, want := range []string{"Circuit", "|00⟩", "|11⟩", "0.7071", "fidelity"} {
		if !strings.Contains(out, want) {
			t.Errorf("result missing %q:\n%s", want, out)
		}
	}
}

func TestOverlayAt(t *testing.T) {
	tests := []struct {
		name    string
		bg      string
		overlay string
		x, y    int
		want    string
	}{
		{"inside", "aaaaa\nbbbbb\nccccc", "XY", 1, 1, "aaaaa\nbXYbb\nccccc"},
		{"past line end", "ab", "XY", 4, 0, "ab  XY"},
		{"clipped rows", "aaa\nbbb", "X\nY\nZ", 0, 1, "aaa\nXbb"},
		{"negative row", "aaa\nbbb", "X\nY", 0, -1, "Yaa\nbbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlayAt(tt.bg, tt.overlay, tt.x, tt.y); got != tt.want {
				t.Errorf("overlayAt() = %q, want %q", got, tt.want)
			}
		})
	}
}
