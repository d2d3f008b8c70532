package schema

// ImportanceRecord is one driver's row in the consolidated importance table.
// Percentages are shares of each method's total importance; ranks are
// descending by magnitude with ties averaged.
type ImportanceRecord struct {
	Driver string     `json:"driver"`
	Label  string     `json:"label"`
	Kind   DriverKind `json:"kind"`

	ShapleyPct   float64 `json:"shapley_pct"`
	ShapleyValue float64 `json:"shapley_value"` // unnormalized, in R-squared units
	RelWeightPct float64 `json:"relative_weight_pct"`
	BetaPct      float64 `json:"beta_weight_pct"`
	BetaStd      float64 `json:"beta_std"` // signed standardized coefficient

	Direction Direction `json:"direction"`

	// Correlation is defined for numeric drivers only.
	Correlation    float64 `json:"correlation"`
	HasCorrelation bool    `json:"has_correlation"`

	Ranks   map[Method]float64 `json:"ranks"`
	AvgRank float64            `json:"avg_rank"`
}

// ImportanceTable is the final output of an analysis run: one record per
// driver, sorted by descending Shapley value.
type ImportanceTable struct {
	Outcome    string             `json:"outcome"`
	RSquared   float64            `json:"r_squared"`
	SampleSize int                `json:"sample_size"`
	Weighted   bool               `json:"weighted"`
	Records    []ImportanceRecord `json:"records"`
}
