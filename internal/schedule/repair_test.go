//spellchecker:words schedule
package schedule_test

//spellchecker:words sync atomic testing github gedpath internal ged graphs oracle schedule
import (
	"sync/atomic"
	"testing"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/graphs"
	"github.com/FAU-CDI/gedpath/internal/oracle"
	"github.com/FAU-CDI/gedpath/internal/schedule"
)

// countingOracle produces fixed results and counts its oracle calls.
type countingOracle struct {
	valid bool // produce valid or invalid results

	calls atomic.Int64
}

func (co *countingOracle) NewSession(dataset *graphs.Dataset, opts oracle.Options) (oracle.Session, error) {
	return &countingSession{oracle: co}, nil
}

type countingSession struct {
	oracle *countingOracle
}

func (session *countingSession) Compute(pairs []ged.Pair) ([]ged.Result, error) {
	results := make([]ged.Result, len(pairs))
	for i, pair := range pairs {
		session.oracle.calls.Add(1)

		result := ged.Result{Pair: pair, Distance: 1}
		if session.oracle.valid {
			result.ForwardMap = []int{0, 1}
			result.BackwardMap = []int{1, 0}
		} else {
			result.ForwardMap = []int{0, 0}
			result.BackwardMap = []int{1, 1}
		}
		results[i] = result
	}
	return results, nil
}

func (session *countingSession) Close() error {
	return nil
}

// corruptedResults returns four results of which three are invalid.
func corruptedResults() []ged.Result {
	corrupt := func(source, target ged.GraphID) ged.Result {
		return ged.Result{
			Pair:        ged.Pair{Source: source, Target: target},
			ForwardMap:  []int{0, 0},
			BackwardMap: []int{1, 1},
		}
	}

	return []ged.Result{
		corrupt(0, 1),
		{Pair: ged.Pair{Source: 0, Target: 2}, ForwardMap: []int{0, 1}, BackwardMap: []int{1, 0}},
		corrupt(0, 3),
		corrupt(1, 2),
	}
}

func TestRepair(t *testing.T) {
	t.Parallel()

	results := corruptedResults()
	invalid := ged.CheckResults(results, ged.PolicyDefault)
	if len(invalid) != 3 {
		t.Fatalf("got %d invalid results, want 3", len(invalid))
	}

	co := &countingOracle{valid: true}
	residual := schedule.Repair(results, invalid, schedule.Config{Oracle: co}, ged.PolicyDefault)

	if len(residual) != 0 {
		t.Errorf("residual = %v, want empty", residual)
	}
	// exactly one oracle call per invalid result
	if calls := co.calls.Load(); calls != 3 {
		t.Errorf("oracle was called %d times, want 3", calls)
	}

	for _, index := range invalid {
		if !ged.Valid(results[index], ged.PolicyDefault) {
			t.Errorf("result %d is still invalid", index)
		}
	}
	// the valid result was not touched
	if results[1].Distance != 0 {
		t.Errorf("valid result was recomputed: %+v", results[1])
	}
}

func TestRepairSinglePass(t *testing.T) {
	t.Parallel()

	results := corruptedResults()
	invalid := ged.CheckResults(results, ged.PolicyDefault)

	// an oracle that keeps producing invalid results
	co := &countingOracle{valid: false}
	residual := schedule.Repair(results, invalid, schedule.Config{Oracle: co}, ged.PolicyDefault)

	// no retries: one call per invalid result, all of them residual
	if calls := co.calls.Load(); calls != 3 {
		t.Errorf("oracle was called %d times, want 3", calls)
	}
	if len(residual) != 3 {
		t.Fatalf("got %d residual results, want 3", len(residual))
	}
	for i, index := range residual {
		if index != invalid[i] {
			t.Errorf("residual[%d] = %d, want %d", i, index, invalid[i])
		}
	}
}
