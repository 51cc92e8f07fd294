package schedule

import (
	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/oracle"
)

// Repair recomputes the results at the given invalid indices and replaces
// each with its recomputation when that one passes the validity check.
//
// Repair is bounded to exactly one pass: every invalid index costs exactly
// one serial oracle call on a fresh single-use session, and a result that
// is still invalid after recomputation is left in place.
// The indices of such residual invalid results are returned; the caller is
// responsible for surfacing them.
func Repair(results []ged.Result, invalid []int, cfg Config, policy ged.Policy) []int {
	var residual []int

	for _, index := range invalid {
		pair := results[index].Pair

		repaired, err := oracle.ComputeSingle(cfg.Oracle, cfg.Dataset, cfg.Options, pair)
		if err != nil {
			cfg.Stats.LogError("repair pair", err, "source", pair.Source, "target", pair.Target)
			residual = append(residual, index)
			continue
		}

		if !ged.Valid(repaired, policy) {
			residual = append(residual, index)
			continue
		}

		results[index] = repaired
		cfg.Stats.Log("repaired mapping", "source", pair.Source, "target", pair.Target)
	}

	return residual
}
