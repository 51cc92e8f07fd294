package schedule

import (
	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/pairs"
	"golang.org/x/exp/slices"
)

// Resume removes from pending every pair already present in existing and
// returns the remainder, preserving order.
//
// This makes reruns of the pipeline idempotent: a fully computed dataset
// resumes with an empty pair set and performs no oracle calls.
func Resume(pending []ged.Pair, existing []ged.Pair) []ged.Pair {
	if len(existing) == 0 {
		return pending
	}

	sorted := append([]ged.Pair(nil), existing...)
	pairs.Sort(sorted)

	remainder := make([]ged.Pair, 0, len(pending))
	for _, pair := range pending {
		if _, found := slices.BinarySearchFunc(sorted, pair, ged.Pair.Compare); !found {
			remainder = append(remainder, pair)
		}
	}
	return remainder
}
