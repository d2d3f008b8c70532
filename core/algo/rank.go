// Package algo has ranking and combinatorial helpers for the importance engine.
package algo

import "sort"

// RanksDescending assigns rank 1 to the largest value. Tied values share the
// average of the positions they occupy, so ranks always sum to n(n+1)/2.
func RanksDescending(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	ranks := make([]float64, n)
	for pos := 0; pos < n; {
		end := pos + 1
		for end < n && values[order[end]] == values[order[pos]] {
			end++
		}
		// Positions pos..end-1 hold a tie group; average their 1-based ranks.
		avg := float64(pos+end+1) / 2
		for i := pos; i < end; i++ {
			ranks[order[i]] = avg
		}
		pos = end
	}
	return ranks
}
