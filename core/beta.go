package core

import "math"

// betaWeights standardizes the fitted coefficients into outcome
// standard-deviation units: beta_std = beta * (sd_x / sd_y). The returned
// slice is term-level; driver-level aggregation happens downstream.
func betaWeights(dm *designMatrix, fr *fitResult) []float64 {
	sy := weightedStdDev(dm.y, dm.w)
	std := make([]float64, len(dm.cols))
	for i, col := range dm.cols {
		std[i] = fr.coefs[i] * weightedStdDev(col, dm.w) / sy
	}
	return std
}

// percentShares converts non-negative magnitudes into percentage shares of
// their total. A zero total yields all zeros rather than a division by zero.
func percentShares(values []float64) []float64 {
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

// absValues returns the element-wise absolute values.
func absValues(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Abs(v)
	}
	return out
}
