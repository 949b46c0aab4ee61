package algo

import (
	"fmt"
	"math"
)

// GridPoints is the number of samples in every returned wavefunction.
const GridPoints = 200

// MaxLevels bounds the n_max of both ladder models.
const MaxLevels = 10_000

// OscillatorResult holds the harmonic-oscillator ladder in natural units
// (ħ = m = 1) and the ground-state wavefunction sampled on [-5, 5].
type OscillatorResult struct {
	Omega          float64   `json:"omega"`
	NMax           int       `json:"n_max"`
	EnergyLevels   []float64 `json:"energy_levels"`
	GroundStateX   []float64 `json:"ground_state_x"`
	GroundStatePsi []float64 `json:"ground_state_psi"`
	Units          string    `json:"units"`
}

func (OscillatorResult) Kind() string { return "sho" }

// HarmonicOscillator returns E_n = ω(n + ½) for n = 0…nMax.
func HarmonicOscillator(nMax int, omega float64) (OscillatorResult, error) {
	if nMax < 0 || nMax > MaxLevels {
		return OscillatorResult{}, &RangeError{Param: "n_max", Value: float64(nMax), Reason: fmt.Sprintf("must be in [0, %d]", MaxLevels)}
	}
	if !(omega > 0) || math.IsInf(omega, 0) {
		return OscillatorResult{}, &RangeError{Param: "omega", Value: omega, Reason: "must be positive and finite"}
	}

	levels := make([]float64, nMax+1)
	for n := range levels {
		levels[n] = omega * (float64(n) + 0.5)
	}
	xs := linspace(-5, 5, GridPoints)
	psi := make([]float64, len(xs))
	norm := math.Pow(omega/math.Pi, 0.25)
	for i, x := range xs {
		psi[i] = norm * math.Exp(-omega*x*x/2)
	}
	return OscillatorResult{
		Omega:          omega,
		NMax:           nMax,
		EnergyLevels:   levels,
		GroundStateX:   xs,
		GroundStatePsi: psi,
		Units:          "natural_units",
	}, nil
}

// Wavefunction is one sampled eigenfunction.
type Wavefunction struct {
	N      int       `json:"n"`
	Energy float64   `json:"energy"`
	X      []float64 `json:"x"`
	Psi    []float64 `json:"psi"`
}

// BoxResult holds the infinite-well spectrum and its lowest eigenfunctions.
type BoxResult struct {
	Length        float64        `json:"length"`
	NMax          int            `json:"n_max"`
	EnergyLevels  []float64      `json:"energy_levels"`
	Wavefunctions []Wavefunction `json:"wavefunctions"`
	Units         string         `json:"units"`
}

func (BoxResult) Kind() string { return "particle_in_box" }

// boxWavefunctions caps how many eigenfunctions ParticleInBox samples.
const boxWavefunctions = 3

// ParticleInBox returns E_n = n²π²/(2L²) for n = 1…nMax and samples
// ψ_n(x) = √(2/L)·sin(nπx/L) for the lowest few levels.
func ParticleInBox(length float64, nMax int) (BoxResult, error) {
	if !(length > 0) || math.IsInf(length, 0) {
		return BoxResult{}, &RangeError{Param: "length", Value: length, Reason: "must be positive and finite"}
	}
	if nMax < 1 || nMax > MaxLevels {
		return BoxResult{}, &RangeError{Param: "n_max", Value: float64(nMax), Reason: fmt.Sprintf("must be in [1, %d]", MaxLevels)}
	}

	levels := make([]float64, nMax)
	for i := range levels {
		n := float64(i + 1)
		levels[i] = n * n * math.Pi * math.Pi / (2 * length * length)
	}

	xs := linspace(0, length, GridPoints)
	amp := math.Sqrt(2 / length)
	waves := make([]Wavefunction, 0, min(nMax, boxWavefunctions))
	for n := 1; n <= min(nMax, boxWavefunctions); n++ {
		psi := make([]float64, len(xs))
		for i, x := range xs {
			psi[i] = amp * math.Sin(float64(n)*math.Pi*x/length)
		}
		waves = append(waves, Wavefunction{N: n, Energy: levels[n-1], X: xs, Psi: psi})
	}
	return BoxResult{
		Length:        length,
		NMax:          nMax,
		EnergyLevels:  levels,
		Wavefunctions: waves,
		Units:         "natural_units",
	}, nil
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
