package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/quantfold/keydriver/schema"
)

// condTolerance is the relative singular-value cutoff below which a design
// column is treated as linearly dependent on the others.
const condTolerance = 1e-10

// fitResult is one weighted least-squares fit: an intercept, one coefficient
// per requested term, and the weighted coefficient of determination.
type fitResult struct {
	intercept float64
	coefs     []float64
	r2        float64
}

// fit solves the weighted least-squares problem for the selected terms via a
// singular value decomposition of the sqrt-weight scaled design. A
// rank-deficient design is fatal and names the implicated drivers.
func (dm *designMatrix) fit(termIdx []int) (*fitResult, error) {
	n := dm.rows
	p := len(termIdx) + 1 // intercept plus one column per term

	x := mat.NewDense(n, p, nil)
	b := mat.NewVecDense(n, nil)
	for i := range n {
		s := 1.0
		if dm.w != nil {
			s = math.Sqrt(dm.w[i])
		}
		x.Set(i, 0, s)
		for j, t := range termIdx {
			x.Set(i, j+1, s*dm.cols[t][i])
		}
		b.SetVec(i, s*dm.y[i])
	}

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, fmt.Errorf("svd factorization failed for %d x %d design", n, p)
	}
	sv := svd.Values(nil)

	tol := sv[0] * condTolerance
	rank := 0
	for _, s := range sv {
		if s > tol {
			rank++
		}
	}

	var v mat.Dense
	svd.VTo(&v)
	if rank < p {
		return nil, schema.NewAliasedCoefficient(dm.aliasedDrivers(&v, termIdx, rank, p))
	}

	var u mat.Dense
	svd.UTo(&u)

	// beta = V * diag(1/sv) * U^T * b
	c := make([]float64, p)
	for j := range p {
		var dot float64
		for i := range n {
			dot += u.At(i, j) * b.AtVec(i)
		}
		c[j] = dot / sv[j]
	}
	beta := make([]float64, p)
	for i := range p {
		for j := range p {
			beta[i] += v.At(i, j) * c[j]
		}
	}

	res := &fitResult{intercept: beta[0], coefs: beta[1:]}
	res.r2 = dm.rSquared(termIdx, res)
	return res, nil
}

// aliasedDrivers names the drivers implicated in the design's null space.
// Row 0 of V is the intercept and is skipped.
func (dm *designMatrix) aliasedDrivers(v *mat.Dense, termIdx []int, rank, p int) []string {
	seen := make(map[string]bool)
	var drivers []string
	for j := rank; j < p; j++ {
		for i := 1; i < p; i++ {
			if math.Abs(v.At(i, j)) < 1e-8 {
				continue
			}
			d := dm.terms[termIdx[i-1]].Driver
			if !seen[d] {
				seen[d] = true
				drivers = append(drivers, d)
			}
		}
	}
	return drivers
}

// rSquared computes the weighted coefficient of determination for a fit.
func (dm *designMatrix) rSquared(termIdx []int, fr *fitResult) float64 {
	ybar := weightedMean(dm.y, dm.w)
	var sse, sst float64
	for i := range dm.rows {
		yhat := fr.intercept
		for j, t := range termIdx {
			yhat += fr.coefs[j] * dm.cols[t][i]
		}
		wi := 1.0
		if dm.w != nil {
			wi = dm.w[i]
		}
		sse += wi * (dm.y[i] - yhat) * (dm.y[i] - yhat)
		sst += wi * (dm.y[i] - ybar) * (dm.y[i] - ybar)
	}
	if sst == 0 {
		return 0
	}
	return 1 - sse/sst
}
