// Package task is the front-end of the engine. It parses state strings,
// operator lists and gate programs, dispatches requests over a closed set of
// task kinds, and encodes results with complex numbers as {real, imag}
// pairs.
package task
