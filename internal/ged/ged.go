// Package ged defines the core data types shared by the mapping pipeline.
package ged

//spellchecker:words injective

// GraphID is the index of a graph within an ordered dataset.
// It is stable for the lifetime of the dataset.
type GraphID int

// Pair identifies a single undirected matching problem between two graphs.
// A valid Pair always has Source < Target; use MakePair to normalize.
//
// Pairs are the unit of work and the unit of persistence.
type Pair struct {
	Source GraphID
	Target GraphID
}

// MakePair returns the normalized pair for the two given graph ids.
func MakePair(a, b GraphID) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{Source: a, Target: b}
}

// Compare compares two pairs lexicographically by (Source, Target).
func (pair Pair) Compare(other Pair) int {
	switch {
	case pair.Source != other.Source:
		return int(pair.Source) - int(other.Source)
	default:
		return int(pair.Target) - int(other.Target)
	}
}

// Less reports if pair sorts strictly before other.
func (pair Pair) Less(other Pair) bool {
	return pair.Compare(other) < 0
}

// Result holds one computed mapping between the two graphs of a pair.
//
// ForwardMap maps node indices of the source graph to node indices of the
// target graph, BackwardMap the other way around.
// Both are partial: a node may be mapped to a value outside the other
// graph's node range, meaning it is deleted (or inserted).
//
// A Result is immutable once it passed the validity check; a repaired
// result supersedes the old one, it is never mutated in place.
type Result struct {
	Pair Pair

	Distance   float64
	LowerBound float64
	UpperBound float64

	ForwardMap  []int
	BackwardMap []int

	Runtime float64 // runtime of the oracle call, in seconds
}

// Keys extracts the pair keys of the given results, in order.
func Keys(results []Result) []Pair {
	keys := make([]Pair, len(results))
	for i, res := range results {
		keys[i] = res.Pair
	}
	return keys
}
