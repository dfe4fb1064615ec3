// Package engine implements the two-stage ranking calculation: a per-judge
// Weighted Product pass and a V-weighted Borda aggregation over its output.
// Everything in this package is pure; persistence lives in the service layer.
package engine

import (
	"math"
	"sort"
)

// PreferenceEpsilon is the absolute tolerance under which two V-values are
// considered tied. It is absolute, so near-ties of very different magnitudes
// are not treated consistently.
const PreferenceEpsilon = 1.0e-12

// CompetitionRanks assigns Standard Competition Ranking (1-2-2-4) to values,
// higher values first. A value equal to the immediately preceding sorted value
// (|a-b| < epsilon, or a == b) shares its rank; any other value is ranked by
// its 1-based position. The returned slice is aligned with the input.
func CompetitionRanks(values []float64, epsilon float64) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	ranks := make([]int, len(values))
	for pos, idx := range order {
		if pos > 0 {
			prev := order[pos-1]
			if sameValue(values[idx], values[prev], epsilon) {
				ranks[idx] = ranks[prev]
				continue
			}
		}
		ranks[idx] = pos + 1
	}

	return ranks
}

func sameValue(a, b, epsilon float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < epsilon
}
