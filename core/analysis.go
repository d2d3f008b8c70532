package core

import (
	"github.com/quantfold/keydriver/schema"
)

// Options tunes an analysis run without changing its results.
type Options struct {
	// Workers bounds the pool used for independent subset fits during the
	// Shapley enumeration. Values below 1 mean a single worker.
	Workers int
}

// Run executes the full importance decomposition for one observation set:
//
//	validate -> fit base model -> {correlation, beta} -> relative weights ->
//	shapley -> term aggregation -> consolidation
//
// The pipeline is linear with no retries: every computation is deterministic,
// so retrying identical input cannot change the outcome. Any guard failure
// aborts the whole run; no partial importance table is ever returned, because
// percentages are only meaningful once the full decomposition has completed.
func Run(ds *schema.Dataset, specs []schema.DriverSpec, outcome string, opts Options) (*schema.ImportanceTable, error) {
	if refusals := validateRun(ds, specs, outcome); len(refusals) > 0 {
		return nil, joinRefusals(refusals)
	}

	dm := buildDesignMatrix(ds, specs, outcome)

	full, err := dm.fit(dm.allTerms())
	if err != nil {
		return nil, err
	}

	corr := correlationEngine(ds, specs, outcome)
	termBeta := betaWeights(dm, full)

	rxx, rxy := dm.termCorrelations()
	termRel, err := johnsonWeights(rxx, rxy, full.r2)
	if err != nil {
		return nil, err
	}

	shapVals, err := newShapleyEngine(dm, opts.Workers).values()
	if err != nil {
		return nil, err
	}

	agg := aggregateTerms(dm, termBeta, termRel)
	return consolidate(specs, agg, shapVals, corr, full.r2, ds, outcome), nil
}
