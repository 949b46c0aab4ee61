// Package linalg holds the dense complex matrix and state-vector algebra used
// by the gate registry, the circuit composer and the algorithm library.
//
// Matrices are row-major [][]complex128 values and every operation returns a
// fresh result; nothing here mutates its arguments.
package linalg
