package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestShapleyKernel tests the exact ordering weights for small player counts.
func TestShapleyKernel(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected []float64
	}{
		{"single player", 1, []float64{1}},
		{"two players", 2, []float64{0.5, 0.5}},
		{"three players", 3, []float64{1.0 / 3, 1.0 / 6, 1.0 / 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShapleyKernel(tt.n)
			assert.Len(t, got, tt.n)
			for k := range tt.expected {
				assert.InDelta(t, tt.expected[k], got[k], 1e-12)
			}
		})
	}
}

// TestShapleyKernelNormalization tests that the kernel weights, counted over
// all subsets of the other players, sum to one for every supported n.
func TestShapleyKernelNormalization(t *testing.T) {
	for n := 1; n <= 15; n++ {
		kernel := ShapleyKernel(n)
		var sum float64
		for mask := range 1 << (n - 1) {
			sum += kernel[SubsetSize(mask)]
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "n=%d", n)
	}
}

// TestSubsetSize tests the bitmask population count.
func TestSubsetSize(t *testing.T) {
	tests := []struct {
		name     string
		mask     int
		expected int
	}{
		{"empty", 0, 0},
		{"one bit", 0b1000, 1},
		{"mixed bits", 0b1011, 3},
		{"fifteen bits", 1<<15 - 1, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SubsetSize(tt.mask))
		})
	}
}
