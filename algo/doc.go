// Package algo builds the canonical circuits and exactly solvable models the
// task front-end exposes: Bell preparation, the teleportation circuit shape,
// Grover search, exact diagonalization of named Hamiltonians, and closed-form
// spectra for the harmonic oscillator and the particle in a box.
//
// Every function is a pure function of its arguments. Results carry native
// complex values; the task package converts them to {real, imag} pairs at the
// transport boundary.
package algo
