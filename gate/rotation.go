package gate

import (
	"math"
	"math/cmplx"
	"strings"

	"qdeck/linalg"
)

// Rx returns the rotation about the X axis by theta.
func Rx(theta float64) linalg.Matrix {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return linalg.Matrix{{c, js}, {js, c}}
}

// Ry returns the rotation about the Y axis by theta.
func Ry(theta float64) linalg.Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return linalg.Matrix{{c, -s}, {s, c}}
}

// Rz returns diag(e^{-iθ/2}, e^{iθ/2}).
func Rz(theta float64) linalg.Matrix {
	phase := cmplx.Exp(complex(0, theta/2))
	return linalg.Matrix{{cmplx.Conj(phase), 0}, {0, phase}}
}

// P returns the phase shift diag(1, e^{iλ}).
func P(lambda float64) linalg.Matrix {
	return linalg.Matrix{{1, 0}, {0, cmplx.Exp(complex(0, lambda))}}
}

var rotations = map[string]func(float64) linalg.Matrix{
	"RX": Rx,
	"RY": Ry,
	"RZ": Rz,
	"P":  P,
	"U1": P,
}

// IsRotation reports whether name is a single-angle parametrized gate.
func IsRotation(name string) bool {
	_, ok := rotations[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

// Rotation builds the named parametrized gate for the given angle.
func Rotation(name string, theta float64) (Gate, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	build, ok := rotations[n]
	if !ok {
		return Gate{}, &UnknownGateError{Name: name}
	}
	return Gate{Name: n, Arity: 1, Matrix: build(theta)}, nil
}
