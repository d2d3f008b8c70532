package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRanksDescending tests rank assignment with averaged ties.
func TestRanksDescending(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected []float64
	}{
		{"strictly decreasing", []float64{9, 5, 1}, []float64{1, 2, 3}},
		{"strictly increasing", []float64{1, 5, 9}, []float64{3, 2, 1}},
		{"two-way tie", []float64{5, 3, 5, 1}, []float64{1.5, 3, 1.5, 4}},
		{"all tied", []float64{2, 2, 2}, []float64{2, 2, 2}},
		{"single value", []float64{7}, []float64{1}},
		{"empty", nil, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RanksDescending(tt.values)
			assert.Len(t, got, len(tt.values))
			for i := range tt.expected {
				assert.InDelta(t, tt.expected[i], got[i], 1e-12)
			}
		})
	}
}

// TestRanksDescendingSum tests that averaged ties preserve the rank total
// n(n+1)/2.
func TestRanksDescendingSum(t *testing.T) {
	values := []float64{4, 4, 2, 9, 2, 2}
	var sum float64
	for _, r := range RanksDescending(values) {
		sum += r
	}
	assert.InDelta(t, 21.0, sum, 1e-12)
}
