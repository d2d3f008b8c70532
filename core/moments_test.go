package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWeightedMean tests the weighted mean calculation.
func TestWeightedMean(t *testing.T) {
	tests := []struct {
		name     string
		x        []float64
		w        []float64
		expected float64
		delta    float64
	}{
		{"unweighted", []float64{1, 2, 3, 4}, nil, 2.5, 1e-12},
		{"constant weights match unweighted", []float64{1, 2, 3, 4}, []float64{3, 3, 3, 3}, 2.5, 1e-12},
		{"weights sum to one", []float64{10, 20}, []float64{0.25, 0.75}, 17.5, 1e-12},
		{"zero weight drops the row", []float64{1, 100}, []float64{1, 0}, 1.0, 1e-12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, weightedMean(tt.x, tt.w), tt.delta)
		})
	}
}

// TestWeightedVariance tests the population-style weighted variance.
func TestWeightedVariance(t *testing.T) {
	tests := []struct {
		name     string
		x        []float64
		w        []float64
		expected float64
		delta    float64
	}{
		{"unweighted", []float64{1, -1, 1, -1}, nil, 1.0, 1e-12},
		{"constant column", []float64{5, 5, 5}, nil, 0.0, 1e-12},
		// Weights that sum to one must not blow up a (sum(w)-1) divisor.
		{"fractional weights", []float64{1, -1}, []float64{0.5, 0.5}, 1.0, 1e-12},
		{"integer weights repeat rows", []float64{0, 3}, []float64{2, 1}, 2.0, 1e-12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, weightedVariance(tt.x, tt.w), tt.delta)
		})
	}
}

// TestWeightedCorrelation tests the weighted Pearson correlation.
func TestWeightedCorrelation(t *testing.T) {
	tests := []struct {
		name     string
		x        []float64
		y        []float64
		w        []float64
		expected float64
		delta    float64
	}{
		{"perfect positive", []float64{1, 2, 3}, []float64{2, 4, 6}, nil, 1.0, 1e-12},
		{"perfect negative", []float64{1, 2, 3}, []float64{3, 2, 1}, nil, -1.0, 1e-12},
		{"orthogonal", []float64{1, -1, 1, -1}, []float64{1, 1, -1, -1}, nil, 0.0, 1e-12},
		{"weight scale cancels", []float64{1, 2, 3}, []float64{2, 4, 6}, []float64{10, 10, 10}, 1.0, 1e-12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, weightedCorrelation(tt.x, tt.y, tt.w), tt.delta)
		})
	}
}

// TestWeightedCorrelationDegenerate tests the NaN contract for flat inputs.
func TestWeightedCorrelationDegenerate(t *testing.T) {
	flat := []float64{2, 2, 2}
	varying := []float64{1, 2, 3}
	assert.True(t, math.IsNaN(weightedCorrelation(flat, varying, nil)))
	assert.True(t, math.IsNaN(weightedCorrelation(varying, flat, nil)))
}
