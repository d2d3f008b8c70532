package core

import (
	"sort"

	"github.com/quantfold/keydriver/core/algo"
	"github.com/quantfold/keydriver/schema"
)

// consolidate merges the four method outputs into one ranked importance
// table. It is a pure function of its inputs: per-method percentages, ranks
// by descending magnitude with ties averaged, the average rank over the
// methods available to each driver, and a default sort by descending Shapley
// value.
func consolidate(
	specs []schema.DriverSpec,
	agg *aggregated,
	shapVals []float64,
	corr *CorrelationResult,
	r2 float64,
	ds *schema.Dataset,
	outcome string,
) *schema.ImportanceTable {
	n := len(specs)

	shapPct := totalShares(shapVals)
	relPct := percentShares(agg.relWeight)
	betaPct := percentShares(agg.betaAbs)

	shapRank := algo.RanksDescending(absValues(shapVals))
	relRank := algo.RanksDescending(agg.relWeight)
	betaRank := algo.RanksDescending(agg.betaAbs)
	corrRank := correlationRanks(specs, corr, outcome)

	records := make([]schema.ImportanceRecord, n)
	for i, spec := range specs {
		rec := schema.ImportanceRecord{
			Driver:       spec.Name,
			Label:        spec.DisplayLabel(),
			Kind:         spec.Kind,
			ShapleyPct:   shapPct[i],
			ShapleyValue: shapVals[i],
			RelWeightPct: relPct[i],
			BetaPct:      betaPct[i],
			BetaStd:      agg.betaStd[i],
			Direction:    agg.direction[i],
			Ranks: map[schema.Method]float64{
				schema.ShapleyMethod:        shapRank[i],
				schema.RelativeWeightMethod: relRank[i],
				schema.BetaWeightMethod:     betaRank[i],
			},
		}
		if spec.Kind == schema.NumericKind {
			rec.Correlation = corr.At(outcome, spec.Name)
			rec.HasCorrelation = true
			rec.Ranks[schema.CorrelationMethod] = corrRank[spec.Name]
		}
		var rankSum float64
		for _, r := range rec.Ranks {
			rankSum += r
		}
		rec.AvgRank = rankSum / float64(len(rec.Ranks))
		records[i] = rec
	}

	sort.SliceStable(records, func(a, b int) bool {
		return records[a].ShapleyValue > records[b].ShapleyValue
	})

	return &schema.ImportanceTable{
		Outcome:    outcome,
		RSquared:   r2,
		SampleSize: ds.Rows,
		Weighted:   ds.Weighted(),
		Records:    records,
	}
}

// totalShares normalizes signed values against their plain (not absolute)
// total. A total of exactly zero yields all zeros by definition, even when
// individual contributions cancel rather than vanish.
func totalShares(values []float64) []float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	pct := make([]float64, len(values))
	if total == 0 {
		return pct
	}
	for i, v := range values {
		pct[i] = v / total * 100
	}
	return pct
}

// correlationRanks ranks |correlation| across the numeric drivers only;
// categorical drivers have no defined correlation and receive no rank.
func correlationRanks(specs []schema.DriverSpec, corr *CorrelationResult, outcome string) map[string]float64 {
	var names []string
	var values []float64
	for _, spec := range specs {
		if spec.Kind != schema.NumericKind {
			continue
		}
		names = append(names, spec.Name)
		values = append(values, corr.At(outcome, spec.Name))
	}
	ranks := algo.RanksDescending(absValues(values))
	out := make(map[string]float64, len(names))
	for i, name := range names {
		out[name] = ranks[i]
	}
	return out
}
