package core

import "math"

// Population-style weighted moments. Weights are used raw; every caller
// consumes ratios of these quantities, so the weight scale cancels and a
// constant weight vector reproduces the unweighted result bit-for-bit up to
// rounding. A nil weight slice means uniform weights.

// weightedMean returns sum(w*x)/sum(w).
func weightedMean(x, w []float64) float64 {
	if w == nil {
		var sum float64
		for _, v := range x {
			sum += v
		}
		return sum / float64(len(x))
	}
	var sum, wsum float64
	for i, v := range x {
		sum += w[i] * v
		wsum += w[i]
	}
	return sum / wsum
}

// weightedCovariance returns sum(w*(x-mx)*(y-my))/sum(w).
func weightedCovariance(x, y, w []float64) float64 {
	mx := weightedMean(x, w)
	my := weightedMean(y, w)
	var sum, wsum float64
	for i := range x {
		wi := 1.0
		if w != nil {
			wi = w[i]
		}
		sum += wi * (x[i] - mx) * (y[i] - my)
		wsum += wi
	}
	return sum / wsum
}

// weightedVariance returns the population-style weighted variance.
func weightedVariance(x, w []float64) float64 {
	return weightedCovariance(x, x, w)
}

// weightedStdDev returns the population-style weighted standard deviation.
func weightedStdDev(x, w []float64) float64 {
	return math.Sqrt(weightedVariance(x, w))
}

// weightedCorrelation returns the weighted Pearson correlation, or NaN when
// either weighted standard deviation is zero.
func weightedCorrelation(x, y, w []float64) float64 {
	sx := weightedStdDev(x, w)
	sy := weightedStdDev(y, w)
	if sx == 0 || sy == 0 {
		return math.NaN()
	}
	return weightedCovariance(x, y, w) / (sx * sy)
}
