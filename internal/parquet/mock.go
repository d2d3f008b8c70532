package parquet

import "time"

// MockFetchImportanceRuns returns sample run metadata for demos and tests.
func MockFetchImportanceRuns() []ImportanceRun {
	now := time.Now().UTC()
	end1 := now.Add(-55 * time.Minute)
	dur1 := int32(850)
	params1 := `{"outcome":"satisfaction","drivers":["price","quality","support"]}`
	end2 := now.Add(-10 * time.Minute)
	dur2 := int32(1320)
	params2 := `{"outcome":"nps","drivers":["wait_time","resolution","channel"],"weight":"resp_weight"}`

	return []ImportanceRun{
		{
			RunID:         1,
			StartTime:     now.Add(-1 * time.Hour),
			EndTime:       &end1,
			RunDurationMs: &dur1,
			TotalDrivers:  3,
			ConfigParams:  &params1,
		},
		{
			RunID:         2,
			StartTime:     now.Add(-15 * time.Minute),
			EndTime:       &end2,
			RunDurationMs: &dur2,
			TotalDrivers:  3,
			ConfigParams:  &params2,
		},
	}
}

// MockFetchImportanceRows returns sample per-driver rows for demos and tests.
func MockFetchImportanceRows() []ImportanceRow {
	corrPrice := -0.62
	corrQuality := 0.74
	corrWait := -0.58

	return []ImportanceRow{
		{
			RunID: 1, Outcome: "satisfaction", Driver: "quality", Label: "Product Quality",
			Kind: "numeric", ShapleyPct: 48.3, ShapleyValue: 0.31, RelWeightPct: 47.1,
			BetaPct: 45.0, BetaStd: 0.55, Direction: "+", Correlation: &corrQuality, AvgRank: 1.0,
		},
		{
			RunID: 1, Outcome: "satisfaction", Driver: "price", Label: "Unit Price",
			Kind: "numeric", ShapleyPct: 33.4, ShapleyValue: 0.21, RelWeightPct: 34.6,
			BetaPct: 36.2, BetaStd: -0.41, Direction: "-", Correlation: &corrPrice, AvgRank: 2.0,
		},
		{
			RunID: 1, Outcome: "satisfaction", Driver: "support", Label: "Support Tier",
			Kind: "categorical", ShapleyPct: 18.3, ShapleyValue: 0.12, RelWeightPct: 18.3,
			BetaPct: 18.8, BetaStd: 0.2, Direction: "mixed", AvgRank: 3.0,
		},
		{
			RunID: 2, Outcome: "nps", Driver: "wait_time", Label: "Wait Time",
			Kind: "numeric", ShapleyPct: 61.0, ShapleyValue: 0.4, RelWeightPct: 60.2,
			BetaPct: 58.7, BetaStd: -0.6, Direction: "-", Correlation: &corrWait, AvgRank: 1.0,
		},
	}
}
