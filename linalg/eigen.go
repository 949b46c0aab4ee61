package linalg

import (
	"cmp"
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Eigh diagonalizes a Hermitian matrix exactly.
//
// The n x n complex problem H = A + iB is solved as the 2n x 2n real
// symmetric problem [[A, -B], [B, A]], whose spectrum is H's spectrum with
// every eigenvalue doubled. Each complex eigenvector u+iv appears as the real
// pair [u; v] and [-v; u], so one representative per complex direction is
// kept from every degenerate cluster.
//
// Eigenvalues come back ascending; column k of vectors is the unit
// eigenvector for values[k], phase-fixed so its first non-negligible entry is
// real and positive.
func Eigh(h Matrix, tol float64) ([]float64, Matrix, error) {
	if !h.IsSquare() {
		return nil, nil, &DimensionError{Op: "eigh", Want: "square matrix", Got: shape(h)}
	}
	if !IsHermitian(h, tol) {
		return nil, nil, ErrNotHermitian
	}

	n := h.Rows()
	data := make([]float64, 4*n*n)
	set := func(i, j int, x float64) { data[i*2*n+j] = x }
	for i := range n {
		for j := range n {
			a, b := real(h[i][j]), imag(h[i][j])
			set(i, j, a)
			set(i, j+n, -b)
			set(i+n, j, b)
			set(i+n, j+n, a)
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(2*n, data), true); !ok {
		return nil, nil, ErrEigenFailed
	}
	realVals := es.Values(nil)
	var realVecs mat.Dense
	es.VectorsTo(&realVecs)

	scale := 1.0
	for _, v := range realVals {
		scale = max(scale, math.Abs(v))
	}
	clusterTol := 1e-8 * scale

	values := make([]float64, 0, n)
	vectors := make([]Vector, 0, n)
	for start := 0; start < len(realVals); {
		end := start + 1
		for end < len(realVals) && realVals[end]-realVals[start] <= clusterTol {
			end++
		}

		candidates := make([]Vector, 0, end-start)
		for k := start; k < end; k++ {
			z := make(Vector, n)
			for i := range n {
				z[i] = complex(realVecs.At(i, k), realVecs.At(i+n, k))
			}
			candidates = append(candidates, z)
		}

		var cluster []Vector
		for range (end - start) / 2 {
			best, bestNorm := -1, 0.0
			for c, z := range candidates {
				r := residual(z, cluster).Norm()
				if r > bestNorm {
					best, bestNorm = c, r
				}
			}
			if best < 0 {
				return nil, nil, ErrEigenFailed
			}
			u := residual(candidates[best], cluster)
			for i := range u {
				u[i] /= complex(bestNorm, 0)
			}
			cluster = append(cluster, u)
			candidates = append(candidates[:best], candidates[best+1:]...)
		}
		// A cluster may join nearly equal but distinct eigenvalues; each
		// chosen vector carries its own Rayleigh quotient.
		clusterVals := make([]float64, len(cluster))
		for c, u := range cluster {
			hu, err := h.MulVec(u)
			if err != nil {
				return nil, nil, err
			}
			ip, _ := Inner(u, hu)
			clusterVals[c] = real(ip)
		}
		order := make([]int, len(cluster))
		for c := range order {
			order[c] = c
		}
		slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(clusterVals[a], clusterVals[b]) })
		for _, c := range order {
			values = append(values, clusterVals[c])
			vectors = append(vectors, fixPhase(cluster[c]))
		}
		start = end
	}
	if len(values) != n {
		return nil, nil, ErrEigenFailed
	}

	out := NewMatrix(n, n)
	for k, u := range vectors {
		for i := range n {
			out[i][k] = u[i]
		}
	}
	return values, out, nil
}

// residual removes the components of z along each orthonormal vector in basis.
func residual(z Vector, basis []Vector) Vector {
	r := z.Clone()
	for _, b := range basis {
		c, _ := Inner(b, r)
		for i := range r {
			r[i] -= c * b[i]
		}
	}
	return r
}

func fixPhase(u Vector) Vector {
	for _, a := range u {
		if cmplx.Abs(a) > 1e-12 {
			phase := a / complex(cmplx.Abs(a), 0)
			out := make(Vector, len(u))
			for i, x := range u {
				out[i] = x / phase
			}
			return out
		}
	}
	return u
}

// Column returns column k of m as a vector.
func (m Matrix) Column(k int) Vector {
	v := make(Vector, m.Rows())
	for i, row := range m {
		v[i] = row[k]
	}
	return v
}

// ExpHermitian returns the propagator e^{-iHt} for Hermitian H, built from
// its eigenbasis: V·diag(e^{-iλt})·V†.
func ExpHermitian(h Matrix, t float64, tol float64) (Matrix, error) {
	values, vecs, err := Eigh(h, tol)
	if err != nil {
		return nil, err
	}
	phases := make([]complex128, len(values))
	for i, lambda := range values {
		phases[i] = cmplx.Exp(complex(0, -lambda*t))
	}
	left, err := Mul(vecs, Diagonal(phases...))
	if err != nil {
		return nil, err
	}
	return Mul(left, vecs.Dagger())
}
