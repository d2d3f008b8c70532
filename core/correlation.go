package core

import (
	"gonum.org/v1/gonum/mat"

	"github.com/quantfold/keydriver/schema"
)

// CorrelationResult holds the symmetric (optionally weighted) Pearson
// correlation matrix over the outcome and the numeric drivers. Entries are
// NaN where either weighted standard deviation is zero.
type CorrelationResult struct {
	Names  []string
	Matrix *mat.SymDense
}

// At returns the correlation between two named variables.
func (c *CorrelationResult) At(a, b string) float64 {
	return c.Matrix.At(c.index(a), c.index(b))
}

func (c *CorrelationResult) index(name string) int {
	for i, n := range c.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// correlationEngine computes the outcome+driver correlation matrix for a run.
// Categorical drivers have no defined correlation and are excluded.
func correlationEngine(ds *schema.Dataset, specs []schema.DriverSpec, outcome string) *CorrelationResult {
	names := []string{outcome}
	cols := [][]float64{ds.Column(outcome).Values}
	for _, spec := range specs {
		if spec.Kind != schema.NumericKind {
			continue
		}
		names = append(names, spec.Name)
		cols = append(cols, ds.Column(spec.Name).Values)
	}
	return &CorrelationResult{Names: names, Matrix: pearsonMatrix(cols, ds.Weights)}
}

// pearsonMatrix builds the symmetric correlation matrix for a column set.
func pearsonMatrix(cols [][]float64, w []float64) *mat.SymDense {
	p := len(cols)
	m := mat.NewSymDense(p, nil)
	for i := range p {
		m.SetSym(i, i, 1)
		for j := i + 1; j < p; j++ {
			m.SetSym(i, j, weightedCorrelation(cols[i], cols[j], w))
		}
	}
	return m
}

// termCorrelations returns the term-by-term correlation matrix and the
// term/outcome correlation vector used by the orthogonal decomposition.
func (dm *designMatrix) termCorrelations() (*mat.SymDense, []float64) {
	rxx := pearsonMatrix(dm.cols, dm.w)
	rxy := make([]float64, len(dm.cols))
	for i, col := range dm.cols {
		rxy[i] = weightedCorrelation(col, dm.y, dm.w)
	}
	return rxx, rxy
}
