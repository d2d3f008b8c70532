package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/quantfold/keydriver/schema"
)

// minEigenvalue is the positive-definiteness floor for the predictor
// correlation matrix. Below it the orthogonal transform is unstable.
const minEigenvalue = 1e-6

// johnsonWeights decomposes the model R-squared into non-negative term-level
// shares via Johnson's orthogonalization of the term correlation matrix.
//
// The eigendecomposition R = V L V^T gives the orthogonal transform
// Phi = V L^(1/2); the correlations between the orthogonal components and the
// outcome are r_z = L^(-1/2) V^T r_xy, and each term's raw weight is
// sum_j Phi_ij^2 * r_z_j^2. Raw weights are rescaled so their total equals
// the fitted model R-squared exactly.
func johnsonWeights(rxx *mat.SymDense, rxy []float64, r2 float64) ([]float64, error) {
	p := len(rxy)

	var eig mat.EigenSym
	if !eig.Factorize(rxx, true) {
		return nil, fmt.Errorf("eigendecomposition failed for %d x %d correlation matrix", p, p)
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Clamp rounding-induced negative eigenvalues to zero, then refuse when
	// the matrix is not sufficiently positive definite.
	minVal := math.Inf(1)
	for i, v := range vals {
		if v < 0 {
			vals[i] = 0
		}
		if vals[i] < minVal {
			minVal = vals[i]
		}
	}
	if minVal < minEigenvalue {
		return nil, schema.NewSingularCorrelation(minVal)
	}

	// r_z_j^2: squared correlation between orthogonal component j and outcome.
	rz2 := make([]float64, p)
	for j := range p {
		var dot float64
		for i := range p {
			dot += vecs.At(i, j) * rxy[i]
		}
		dot /= math.Sqrt(vals[j])
		rz2[j] = dot * dot
	}

	raw := make([]float64, p)
	var total float64
	for i := range p {
		for j := range p {
			phi := vecs.At(i, j) * math.Sqrt(vals[j])
			raw[i] += phi * phi * rz2[j]
		}
		total += raw[i]
	}

	// Exact rescale so the weights partition the fitted R-squared.
	if total > 0 {
		scale := r2 / total
		for i := range raw {
			raw[i] *= scale
		}
	}
	return raw, nil
}
