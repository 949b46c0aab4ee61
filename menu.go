package main

import (
	"fmt"
	"strings"

	"qdeck/task"
)

// inputKind says how the editor text feeds a task.
type inputKind int

const (
	inputNone inputKind = iota
	inputOperators
	inputState
	inputProgram
)

// menuItem represents a single task choice in the menu.
type menuItem struct {
	name        string
	kind        task.Kind
	input       inputKind
	hamiltonian string
	hint        string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// taskMenu defines the task picker categories and items.
var taskMenu = []menuCategory{
	{
		name: "Operators",
		items: []menuItem{
			{name: "Matrix form", kind: task.KindMatrixRep, input: inputOperators, hint: "X, H, CNOT"},
			{name: "Commutator", kind: task.KindCommutator, input: inputOperators, hint: "X, Y"},
		},
	},
	{
		name: "States",
		items: []menuItem{
			{name: "Bloch vector", kind: task.KindBloch, input: inputState, hint: "1, i"},
			{name: "Probabilities", kind: task.KindProbabilities, input: inputState, hint: "1, 0, 0, 1"},
			{name: "Evolve under X", kind: task.KindEvolve, input: inputState, hamiltonian: "pauli_x", hint: "1, 0"},
			{name: "Evolve under Z", kind: task.KindEvolve, input: inputState, hamiltonian: "pauli_z", hint: "1, 1"},
		},
	},
	{
		name: "Circuits",
		items: []menuItem{
			{name: "Unitary", kind: task.KindUnitary, input: inputProgram, hint: "H:0, CNOT:0:1 or OpenQASM"},
			{name: "Bell state", kind: task.KindBellState},
			{name: "Teleportation", kind: task.KindTeleportation},
			{name: "Grover search", kind: task.KindGrover},
		},
	},
	{
		name: "Models",
		items: []menuItem{
			{name: "Pauli-X", kind: task.KindCustom, hamiltonian: "pauli_x"},
			{name: "Pauli-Y", kind: task.KindCustom, hamiltonian: "pauli_y"},
			{name: "Pauli-Z", kind: task.KindCustom, hamiltonian: "pauli_z"},
			{name: "Oscillator", kind: task.KindSHO},
			{name: "Particle in box", kind: task.KindParticleInBox},
		},
	},
}

// request builds the task request for item from the editor contents.
func (item menuItem) request(text string, time float64) task.Request {
	req := task.Request{Task: string(item.kind), Hamiltonian: item.hamiltonian}
	text = strings.TrimSpace(text)
	switch item.input {
	case inputOperators:
		req.Operators = strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ' ' || r == '\n' })
	case inputState:
		req.State = strings.Join(strings.Fields(text), "")
	case inputProgram:
		req.Program = text
	}
	if item.kind == task.KindEvolve {
		req.Time = task.Float(time)
	}
	return req
}

// renderMenu renders the floating task-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Run Task"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range taskMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(taskMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 44)))
	sb.WriteString("\n")

	cat := taskMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
		}
		sb.WriteString(dimStyle.Render(string(item.kind)))
		if item.hint != "" {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.hint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Run  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
