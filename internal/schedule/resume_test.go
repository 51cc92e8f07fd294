//spellchecker:words schedule
package schedule_test

//spellchecker:words testing github gedpath internal ged schedule
import (
	"testing"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/schedule"
)

func TestResume(t *testing.T) {
	t.Parallel()

	pending := []ged.Pair{
		{Source: 0, Target: 1},
		{Source: 0, Target: 2},
		{Source: 1, Target: 2},
		{Source: 1, Target: 3},
	}
	existing := []ged.Pair{
		{Source: 1, Target: 2},
		{Source: 0, Target: 1},
	}

	remainder := schedule.Resume(pending, existing)

	want := []ged.Pair{
		{Source: 0, Target: 2},
		{Source: 1, Target: 3},
	}
	if len(remainder) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(remainder), len(want))
	}
	for i := range want {
		if remainder[i] != want[i] {
			t.Errorf("pair %d = %v, want %v", i, remainder[i], want[i])
		}
	}
}

func TestResumeIdempotent(t *testing.T) {
	t.Parallel()

	pending := []ged.Pair{
		{Source: 0, Target: 1},
		{Source: 2, Target: 3},
	}

	// resuming against the full pending set leaves nothing to do
	if remainder := schedule.Resume(pending, pending); len(remainder) != 0 {
		t.Errorf("Resume() = %v, want empty", remainder)
	}

	// resuming against nothing changes nothing
	remainder := schedule.Resume(pending, nil)
	if len(remainder) != len(pending) {
		t.Fatalf("got %d pairs, want %d", len(remainder), len(pending))
	}
	for i := range pending {
		if remainder[i] != pending[i] {
			t.Errorf("pair %d = %v, want %v", i, remainder[i], pending[i])
		}
	}
}
