package ged

import "math"

//spellchecker:words injectivity

// Policy selects how strictly a result is checked for structural corruption.
type Policy int

const (
	// PolicyDefault flags a result invalid only when both the forward and
	// the backward map contain a duplicate value.
	//
	// A one-sided duplicate is tolerated.
	// This mirrors the historical behavior of the mapping tooling; use
	// PolicyStrict to reject one-sided duplicates as well.
	PolicyDefault Policy = iota

	// PolicyStrict flags a result invalid when either direction contains a
	// duplicate value.
	PolicyStrict
)

// IntegralEpsilon is the tolerance used by CheckIntegral.
const IntegralEpsilon = 1e-6

// Valid checks a single result for structural validity under the given policy.
//
// A direction "duplicates" when its map contains fewer distinct values than
// entries, violating injectivity of the partial node correspondence.
func Valid(result Result, policy Policy) bool {
	forward := duplicates(result.ForwardMap)
	backward := duplicates(result.BackwardMap)

	if policy == PolicyStrict {
		return !forward && !backward
	}
	return !(forward && backward)
}

// CheckResults checks all given results under the given policy and returns
// the indices of invalid results, in order.
func CheckResults(results []Result, policy Policy) (invalid []int) {
	for i, result := range results {
		if !Valid(result, policy) {
			invalid = append(invalid, i)
		}
	}
	return
}

// CheckIntegral returns the indices of results whose distance is not within
// IntegralEpsilon of an integer.
// It is only meaningful for edit cost models known to produce integral
// distances.
func CheckIntegral(results []Result) (invalid []int) {
	for i, result := range results {
		if math.Abs(result.Distance-math.Round(result.Distance)) > IntegralEpsilon {
			invalid = append(invalid, i)
		}
	}
	return
}

// duplicates checks if values contains any value twice.
func duplicates(values []int) bool {
	seen := make(map[int]struct{}, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			return true
		}
		seen[value] = struct{}{}
	}
	return false
}
