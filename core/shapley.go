package core

import (
	"sync"
	"sync/atomic"

	"github.com/quantfold/keydriver/core/algo"
	"github.com/quantfold/keydriver/schema"
)

// shapleyEngine allocates the explained variance across drivers by their
// exact Shapley values: every driver subset is enumerated as a bitmask over
// driver indices, the reduced model's R-squared is cached per mask, and each
// driver receives its ordering-weighted average marginal contribution.
//
// The subset cache stores one scalar per mask, so memory stays O(2^n)
// float64s; each reduced fit is discarded as soon as its R-squared is read.
type shapleyEngine struct {
	dm      *designMatrix
	workers int

	// fitCount tracks reduced-model fits for instrumentation.
	fitCount atomic.Int64
}

func newShapleyEngine(dm *designMatrix, workers int) *shapleyEngine {
	if workers < 1 {
		workers = 1
	}
	return &shapleyEngine{dm: dm, workers: workers}
}

// values returns one Shapley value per driver, in driver order and in
// R-squared units. Their sum equals the full-model R-squared up to rounding.
func (e *shapleyEngine) values() ([]float64, error) {
	n := len(e.dm.driverOrder)
	if n > schema.MaxShapleyDrivers {
		return nil, schema.NewTooManyDrivers(n)
	}

	cache, err := e.populateCache(n)
	if err != nil {
		return nil, err
	}

	kernel := algo.ShapleyKernel(n)
	vals := make([]float64, n)
	for i := range n {
		bit := 1 << i
		for mask := range len(cache) {
			if mask&bit != 0 {
				continue
			}
			k := algo.SubsetSize(mask)
			vals[i] += kernel[k] * (cache[mask|bit] - cache[mask])
		}
	}
	return vals, nil
}

// populateCache fits every non-empty subset and records its R-squared at the
// subset's bitmask index. Mask 0 (the empty subset) keeps its zero value by
// definition. Subset fits are independent, so they fan out over a bounded
// worker pool; each mask is consumed by exactly one worker, so every cache
// slot is written exactly once with no contention.
func (e *shapleyEngine) populateCache(n int) ([]float64, error) {
	size := 1 << n
	cache := make([]float64, size)

	masks := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for range e.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for mask := range masks {
				r2, err := e.fitSubset(mask)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				cache[mask] = r2
			}
		}()
	}

	for mask := 1; mask < size; mask++ {
		masks <- mask
	}
	close(masks)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return cache, nil
}

// fitSubset fits the reduced model for one driver bitmask. A categorical
// driver's dummy terms enter and leave the design as one unit.
func (e *shapleyEngine) fitSubset(mask int) (float64, error) {
	var termIdx []int
	for i, d := range e.dm.driverOrder {
		if mask&(1<<i) != 0 {
			termIdx = append(termIdx, e.dm.driverTerms[d]...)
		}
	}
	e.fitCount.Add(1)
	fr, err := e.dm.fit(termIdx)
	if err != nil {
		return 0, err
	}
	return fr.r2, nil
}
