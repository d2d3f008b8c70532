package algo

import "testing"

// FuzzSubsetSize fuzzes the popcount against bit-by-bit removal.
func FuzzSubsetSize(f *testing.F) {
	seeds := []uint16{0, 1, 0b1010, 0x7fff, 0xffff}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw uint16) {
		mask := int(raw)
		size := SubsetSize(mask)
		if size < 0 || size > 16 {
			t.Fatalf("size %d out of range for mask %#x", size, mask)
		}

		// Clearing one set bit at a time must walk the size down to zero.
		remaining := mask
		for steps := size; steps > 0; steps-- {
			lowest := remaining & -remaining
			remaining &^= lowest
			if got := SubsetSize(remaining); got != steps-1 {
				t.Fatalf("after clearing %#x: got size %d, want %d", lowest, got, steps-1)
			}
		}
		if remaining != 0 {
			t.Fatalf("mask %#x not exhausted after %d removals", mask, size)
		}
	})
}

// FuzzShapleyKernel fuzzes kernel construction for valid player counts.
func FuzzShapleyKernel(f *testing.F) {
	for _, seed := range []int{1, 2, 3, 8, 15} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, n int) {
		if n < 1 || n > 15 {
			t.Skip()
		}
		kernel := ShapleyKernel(n)
		if len(kernel) != n {
			t.Fatalf("kernel length %d, want %d", len(kernel), n)
		}

		// Summed over all subsets of the other n-1 players the weights form
		// a probability distribution.
		var total float64
		for mask := 0; mask < 1<<(n-1); mask++ {
			total += kernel[SubsetSize(mask)]
		}
		if total < 1-1e-9 || total > 1+1e-9 {
			t.Fatalf("kernel mass %v, want 1", total)
		}
	})
}
