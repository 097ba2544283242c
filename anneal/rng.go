// Package anneal - randomness helpers.
//
// Every random decision of a run (start city, shuffle, neighbor positions,
// acceptance draws) comes from one *rand.Rand owned by that run. Callers that
// need reproducibility pass WithSeed or WithRand; otherwise a seed is drawn
// from the clock and reported in Result.Seed so the run can be replayed.
//
// math/rand.Rand is NOT goroutine-safe; never share one across concurrent runs.
package anneal

import (
	"math/rand"
	"time"
)

// clockSeed returns a fresh seed from the wall clock.
func clockSeed() int64 { return time.Now().UnixNano() }

// newRand returns a deterministic generator for seed.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// shuffleInPlace performs a Fisher–Yates shuffle of a.
//
// Complexity: O(n) time, O(1) extra space.
func shuffleInPlace(a []int, rng *rand.Rand) {
	var i, j int
	for i = len(a) - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// identity returns [0, 1, …, n-1].
func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return p
}
