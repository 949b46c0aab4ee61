package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	v, err := Normalize(Vector{3, 4i})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, real(v[0]), tol)
	assert.InDelta(t, 0.8, imag(v[1]), tol)
	assert.True(t, v.IsNormalized(NormTolerance))

	_, err = Normalize(Vector{0, 0})
	assert.ErrorIs(t, err, ErrZeroNorm)
}

func TestBlochVector(t *testing.T) {
	s := 1 / math.Sqrt2
	tests := []struct {
		name  string
		state Vector
		want  Bloch
	}{
		{"|0>", Vector{1, 0}, Bloch{0, 0, 1}},
		{"|1>", Vector{0, 1}, Bloch{0, 0, -1}},
		{"|+>", Vector{complex(s, 0), complex(s, 0)}, Bloch{1, 0, 0}},
		{"|->", Vector{complex(s, 0), complex(-s, 0)}, Bloch{-1, 0, 0}},
		{"|+i>", Vector{complex(s, 0), complex(0, s)}, Bloch{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BlochVector(tt.state)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-9)
			assert.InDelta(t, 1, got.Length(), 1e-9)
		})
	}
}

func TestBlochVectorRejectsBadInput(t *testing.T) {
	_, err := BlochVector(Vector{1, 0, 0, 0})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = BlochVector(Vector{1, 1})
	assert.ErrorIs(t, err, ErrNotNormalized)
}

func TestFidelityAndProbabilities(t *testing.T) {
	s := complex(1/math.Sqrt2, 0)
	phi := Vector{s, 0, 0, s}

	f, err := Fidelity(phi, phi)
	require.NoError(t, err)
	assert.InDelta(t, 1, f, tol)

	f, err = Fidelity(phi, Basis(4, 1))
	require.NoError(t, err)
	assert.InDelta(t, 0, f, tol)

	probs := phi.Probabilities()
	assert.InDeltaSlice(t, []float64{0.5, 0, 0, 0.5}, probs, tol)

	_, err = Inner(phi, Basis(2, 0))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
