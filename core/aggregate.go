package core

import (
	"math"

	"github.com/quantfold/keydriver/schema"
)

// aggregated holds driver-level scores after mapping term-level beta and
// relative-weight results back to their owning drivers. For a purely numeric
// run each driver owns a single term, so aggregation is the identity.
type aggregated struct {
	betaAbs   []float64 // sum of |beta_std| over the driver's terms
	betaStd   []float64 // signed beta_std of the largest-magnitude term
	relWeight []float64 // summed relative weights, in R-squared units
	direction []schema.Direction
}

// aggregateTerms folds term-level results into driver-level scores in driver
// order. Direction is the sign of the dominant term, or mixed when the
// driver's terms disagree.
func aggregateTerms(dm *designMatrix, termBeta, termRel []float64) *aggregated {
	n := len(dm.driverOrder)
	agg := &aggregated{
		betaAbs:   make([]float64, n),
		betaStd:   make([]float64, n),
		relWeight: make([]float64, n),
		direction: make([]schema.Direction, n),
	}

	for di, d := range dm.driverOrder {
		var lead float64
		var pos, neg bool
		for _, t := range dm.driverTerms[d] {
			b := termBeta[t]
			agg.betaAbs[di] += math.Abs(b)
			agg.relWeight[di] += termRel[t]
			if math.Abs(b) > math.Abs(lead) {
				lead = b
			}
			if b > 0 {
				pos = true
			}
			if b < 0 {
				neg = true
			}
		}
		agg.betaStd[di] = lead
		switch {
		case pos && neg:
			agg.direction[di] = schema.MixedDirection
		case lead > 0:
			agg.direction[di] = schema.PositiveDirection
		case lead < 0:
			agg.direction[di] = schema.NegativeDirection
		default:
			agg.direction[di] = schema.NoDirection
		}
	}
	return agg
}
