package core

import (
	"github.com/quantfold/keydriver/schema"
)

// designMatrix holds the numeric design for one analysis run: one column per
// model term, the outcome vector, and the optional raw observation weights.
// Weights stay unnormalized; every downstream statistic is a ratio in which
// the weight scale cancels, so a constant weight vector reproduces the
// unweighted result exactly.
type designMatrix struct {
	rows  int
	terms []schema.Term
	cols  [][]float64
	y     []float64
	w     []float64 // nil for an unweighted run

	driverOrder []string
	driverTerms map[string][]int // driver name -> indices into terms/cols
}

// buildDesignMatrix expands the driver specs into design columns. Numeric
// drivers map to their raw values; categorical drivers are dummy coded with
// the first (sorted) level as the reference.
func buildDesignMatrix(ds *schema.Dataset, specs []schema.DriverSpec, outcome string) *designMatrix {
	dm := &designMatrix{
		rows:        ds.Rows,
		y:           ds.Column(outcome).Values,
		w:           ds.Weights,
		driverTerms: make(map[string][]int, len(specs)),
	}

	for _, spec := range specs {
		col := ds.Column(spec.Name)
		dm.driverOrder = append(dm.driverOrder, spec.Name)

		if spec.Kind == schema.NumericKind {
			dm.driverTerms[spec.Name] = []int{len(dm.terms)}
			dm.terms = append(dm.terms, schema.Term{Driver: spec.Name, Label: spec.Name})
			dm.cols = append(dm.cols, col.Values)
			continue
		}

		var idx []int
		for _, term := range schema.TermsFor(spec) {
			level := term.Label[len(spec.Name)+1:] // strip "name=" prefix
			dummy := make([]float64, ds.Rows)
			for row, v := range col.Levels {
				if v == level {
					dummy[row] = 1
				}
			}
			idx = append(idx, len(dm.terms))
			dm.terms = append(dm.terms, term)
			dm.cols = append(dm.cols, dummy)
		}
		dm.driverTerms[spec.Name] = idx
	}
	return dm
}

// allTerms returns the indices of every term in design order.
func (dm *designMatrix) allTerms() []int {
	idx := make([]int, len(dm.terms))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// termsForDrivers returns the design indices for a driver subset, preserving
// driver order so a categorical driver's terms always move as one unit.
func (dm *designMatrix) termsForDrivers(drivers []string) []int {
	var idx []int
	for _, d := range drivers {
		idx = append(idx, dm.driverTerms[d]...)
	}
	return idx
}
