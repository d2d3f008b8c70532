package algo

import "math/bits"

// ShapleyKernel returns the exact ordering weights for n players, indexed by
// the size k of a subset drawn from the other n-1 players:
//
//	kernel[k] = k! * (n-k-1)! / n!
//
// With n capped at 15 every factorial is exactly representable in a float64.
func ShapleyKernel(n int) []float64 {
	kernel := make([]float64, n)
	nf := factorial(n)
	for k := range n {
		kernel[k] = factorial(k) * factorial(n-k-1) / nf
	}
	return kernel
}

// SubsetSize returns the population count of a subset bitmask.
func SubsetSize(mask int) int {
	return bits.OnesCount(uint(mask))
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
