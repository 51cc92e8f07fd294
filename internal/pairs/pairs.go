// Package pairs builds the set of graph pairs to be processed by the pipeline.
package pairs

import (
	"fmt"
	"math/rand"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"golang.org/x/exp/slices"
)

//spellchecker:words dedup

// All returns every pair (a, b) with a < b over a dataset of n graphs,
// in lexicographic order.
func All(n int) []ged.Pair {
	all := make([]ged.Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			all = append(all, ged.Pair{Source: ged.GraphID(i), Target: ged.GraphID(j)})
		}
	}
	return all
}

// RandomK samples k distinct pairs uniformly at random over a dataset of n
// graphs, using the given seed.
//
// Draws that hit an already chosen pair are rejected and redrawn.
// When k is not smaller than the number of available pairs, sampling would
// never terminate early anyways and RandomK falls back to All.
func RandomK(n, k int, seed int64) []ged.Pair {
	if k >= n*(n-1)/2 {
		return All(n)
	}

	gen := rand.New(rand.NewSource(seed))

	chosen := make(map[ged.Pair]struct{}, k)
	sampled := make([]ged.Pair, 0, k)
	for len(sampled) < k {
		a := ged.GraphID(gen.Intn(n))
		b := ged.GraphID(gen.Intn(n))
		if a == b {
			continue
		}

		pair := ged.MakePair(a, b)
		if _, ok := chosen[pair]; ok {
			continue
		}
		chosen[pair] = struct{}{}
		sampled = append(sampled, pair)
	}

	Sort(sampled)
	return sampled
}

// FromIDs expands a list of graph ids into all pairs (a, b) with a < b where
// both a and b occur in ids, in lexicographic order.
//
// An id outside [0, n) is a configuration error.
func FromIDs(ids []ged.GraphID, n int) ([]ged.Pair, error) {
	for _, id := range ids {
		if id < 0 || int(id) >= n {
			return nil, fmt.Errorf("graph id %d out of range [0, %d)", id, n)
		}
	}

	var expanded []ged.Pair
	for _, a := range ids {
		for _, b := range ids {
			if a < b {
				expanded = append(expanded, ged.Pair{Source: a, Target: b})
			}
		}
	}

	Sort(expanded)
	return slices.Compact(expanded), nil
}

// Sort sorts the given pairs lexicographically by (Source, Target).
// Downstream chunking relies on this order being deterministic.
func Sort(pairs []ged.Pair) {
	slices.SortFunc(pairs, ged.Pair.Compare)
}
