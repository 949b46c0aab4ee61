// Package gate is the process-wide catalog of quantum gate matrices.
//
// The registry is built once when the package initialises and is never
// mutated afterwards, so it may be read from any number of goroutines.
package gate

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"slices"
	"strings"

	"qdeck/linalg"
)

// Tolerance is the unitarity tolerance fixed gates are checked against.
const Tolerance = 1e-10

// ErrUnknownGate is matched by every UnknownGateError.
var ErrUnknownGate = errors.New("gate: unknown gate")

// UnknownGateError names the gate that could not be resolved.
type UnknownGateError struct {
	Name string
}

func (e *UnknownGateError) Error() string {
	return fmt.Sprintf("gate: unknown gate %q (available: %s)", e.Name, strings.Join(Names(), ", "))
}

func (e *UnknownGateError) Unwrap() error {
	return ErrUnknownGate
}

// Gate is a named unitary acting on Arity qubits.
type Gate struct {
	Name   string
	Arity  int
	Matrix linalg.Matrix
}

// Dim returns the matrix dimension 2^Arity.
func (g Gate) Dim() int {
	return 1 << g.Arity
}

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)
	tPhase   = cmplx.Exp(complex(0, math.Pi/4))
)

// fixedGates lists the registered matrices. Two-qubit matrices index their
// rows as 2·bit(first qubit) + bit(second qubit).
var fixedGates = []Gate{
	{Name: "I", Arity: 1, Matrix: linalg.Matrix{{1, 0}, {0, 1}}},
	{Name: "X", Arity: 1, Matrix: linalg.Matrix{{0, 1}, {1, 0}}},
	{Name: "Y", Arity: 1, Matrix: linalg.Matrix{{0, -1i}, {1i, 0}}},
	{Name: "Z", Arity: 1, Matrix: linalg.Matrix{{1, 0}, {0, -1}}},
	{Name: "H", Arity: 1, Matrix: linalg.Matrix{{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}}},
	{Name: "S", Arity: 1, Matrix: linalg.Matrix{{1, 0}, {0, 1i}}},
	{Name: "SDG", Arity: 1, Matrix: linalg.Matrix{{1, 0}, {0, -1i}}},
	{Name: "T", Arity: 1, Matrix: linalg.Matrix{{1, 0}, {0, tPhase}}},
	{Name: "TDG", Arity: 1, Matrix: linalg.Matrix{{1, 0}, {0, cmplx.Conj(tPhase)}}},
	{Name: "PHASE", Arity: 1, Matrix: linalg.Matrix{{1, 0}, {0, 1i}}},
	{Name: "SX", Arity: 1, Matrix: linalg.Matrix{{0.5 + 0.5i, 0.5 - 0.5i}, {0.5 - 0.5i, 0.5 + 0.5i}}},
	{Name: "CNOT", Arity: 2, Matrix: linalg.Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}},
	{Name: "CZ", Arity: 2, Matrix: linalg.Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	}},
	{Name: "SWAP", Arity: 2, Matrix: linalg.Matrix{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	}},
	{Name: "TOFFOLI", Arity: 3, Matrix: toffoli()},
}

// aliases maps QASM-style spellings onto registered names.
var aliases = map[string]string{
	"CX":  "CNOT",
	"CCX": "TOFFOLI",
	"ID":  "I",
}

var registry = buildRegistry()

func toffoli() linalg.Matrix {
	m := linalg.Identity(8)
	m[6][6], m[6][7] = 0, 1
	m[7][6], m[7][7] = 1, 0
	return m
}

func buildRegistry() map[string]Gate {
	reg := make(map[string]Gate, len(fixedGates))
	for _, g := range fixedGates {
		if g.Matrix.Rows() != g.Dim() || !linalg.IsUnitary(g.Matrix, Tolerance) {
			panic(fmt.Sprintf("gate: registered matrix for %s is not a %dx%d unitary", g.Name, g.Dim(), g.Dim()))
		}
		reg[g.Name] = g
	}
	return reg
}

// canonical upper-cases name and resolves aliases.
func canonical(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	if a, ok := aliases[n]; ok {
		return a
	}
	return n
}

// Lookup returns a copy of the registered gate; the caller may modify its
// matrix without affecting the registry.
func Lookup(name string) (Gate, error) {
	g, ok := registry[canonical(name)]
	if !ok {
		return Gate{}, &UnknownGateError{Name: name}
	}
	g.Matrix = g.Matrix.Clone()
	return g, nil
}

// Names returns the registered gate names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
