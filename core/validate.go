package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/quantfold/keydriver/schema"
)

// DeriveSpecs builds the immutable driver specifications for a run. The
// numeric/categorical decision is made exactly once, here; the engine never
// re-inspects column types mid-computation.
func DeriveSpecs(ds *schema.Dataset, driverNames []string, labels map[string]string) ([]schema.DriverSpec, error) {
	specs := make([]schema.DriverSpec, 0, len(driverNames))
	for _, name := range driverNames {
		col := ds.Column(name)
		if col == nil {
			return nil, schema.NewInputValidation(
				fmt.Sprintf("driver column %q not found in dataset", name), name)
		}
		label := labels[name]
		if col.Kind == schema.NumericKind {
			specs = append(specs, schema.NumericSpec(name, label))
			continue
		}
		specs = append(specs, schema.CategoricalSpec(name, label, distinctLevels(col.Levels)))
	}
	return specs, nil
}

// validateRun is the pure validation pass. It collects every violation
// against the observation set and driver specifications before any numeric
// work begins, so a known-fatal condition never wastes a partial computation.
func validateRun(ds *schema.Dataset, specs []schema.DriverSpec, outcome string) []*schema.Refusal {
	var refusals []*schema.Refusal

	if len(specs) == 0 {
		refusals = append(refusals, schema.NewInputValidation("no drivers specified"))
	}
	if len(specs) > schema.MaxShapleyDrivers {
		refusals = append(refusals, schema.NewTooManyDrivers(len(specs)))
	}

	out := ds.Column(outcome)
	switch {
	case out == nil:
		refusals = append(refusals, schema.NewInputValidation(
			fmt.Sprintf("outcome column %q not found in dataset", outcome), outcome))
	case out.Kind != schema.NumericKind:
		refusals = append(refusals, schema.NewInputValidation(
			fmt.Sprintf("outcome column %q must be numeric", outcome), outcome))
	}

	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if spec.Name == outcome {
			refusals = append(refusals, schema.NewInputValidation(
				fmt.Sprintf("driver %q is also the outcome", spec.Name), spec.Name))
		}
		if seen[spec.Name] {
			refusals = append(refusals, schema.NewInputValidation(
				fmt.Sprintf("driver %q is listed more than once", spec.Name), spec.Name))
		}
		seen[spec.Name] = true
	}

	if r := validateWeights(ds); r != nil {
		refusals = append(refusals, r)
	}

	if rows, ok := completeCaseCheck(ds, len(specs)); !ok {
		refusals = append(refusals, schema.NewInsufficientSample(rows, len(specs)))
	}

	// Variance checks only make sense once the columns exist.
	if out != nil && out.Kind == schema.NumericKind {
		if weightedVariance(out.Values, ds.Weights) == 0 {
			refusals = append(refusals, schema.NewZeroVarianceOutcome(outcome))
		}
	}
	for _, spec := range specs {
		col := ds.Column(spec.Name)
		if col == nil {
			continue // reported by DeriveSpecs or the existence checks above
		}
		switch spec.Kind {
		case schema.NumericKind:
			if weightedVariance(col.Values, ds.Weights) == 0 {
				refusals = append(refusals, schema.NewZeroVarianceDriver(spec.Name))
			}
		case schema.CategoricalKind:
			if len(spec.Levels) < 2 {
				refusals = append(refusals, schema.NewZeroVarianceDriver(spec.Name))
			}
		}
	}

	return refusals
}

// validateWeights enforces finite, non-negative, not-all-zero weights.
func validateWeights(ds *schema.Dataset) *schema.Refusal {
	if ds.Weights == nil {
		return nil
	}
	var total float64
	for i, w := range ds.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return schema.NewInputValidation(
				fmt.Sprintf("weight at row %d is not finite", i))
		}
		if w < 0 {
			return schema.NewInputValidation(
				fmt.Sprintf("weight at row %d is negative (%g)", i, w))
		}
		total += w
	}
	if total == 0 {
		return schema.NewInputValidation("all observation weights are zero")
	}
	return nil
}

// completeCaseCheck applies the max(30, 10*driverCount) sample floor.
func completeCaseCheck(ds *schema.Dataset, drivers int) (int, bool) {
	required := schema.MinSampleFloor
	if perDriver := schema.MinSamplePerDriver * drivers; perDriver > required {
		required = perDriver
	}
	return ds.Rows, ds.Rows >= required
}

// joinRefusals folds the collected violations into a single error. Callers
// can still reach each refusal through errors.As / schema.AsRefusal.
func joinRefusals(refusals []*schema.Refusal) error {
	if len(refusals) == 1 {
		return refusals[0]
	}
	errs := make([]error, len(refusals))
	for i, r := range refusals {
		errs[i] = r
	}
	return errors.Join(errs...)
}

// distinctLevels returns the unique level values in first-seen order.
func distinctLevels(levels []string) []string {
	seen := make(map[string]bool, 8)
	var out []string
	for _, l := range levels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}
