//spellchecker:words store
package store_test

//spellchecker:words filepath testing github gedpath internal ged store
import (
	"path/filepath"
	"testing"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/store"
)

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	results, err := store.Load(filepath.Join(t.TempDir(), "missing.bin"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if results != nil {
		t.Errorf("Load() = %v, want nil", results)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deep", "toy_mapping.bin")

	results := []ged.Result{
		{Pair: ged.Pair{Source: 2, Target: 3}, Distance: 4, ForwardMap: []int{0, 1}, BackwardMap: []int{1, 0}},
		{Pair: ged.Pair{Source: 0, Target: 1}, Distance: 2, ForwardMap: []int{1, 0}, BackwardMap: []int{0, 1}},
	}

	if err := store.Save(path, results); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}

	// the store is kept sorted by pair
	if got[0].Pair != (ged.Pair{Source: 0, Target: 1}) || got[1].Pair != (ged.Pair{Source: 2, Target: 3}) {
		t.Errorf("store is not sorted: %v, %v", got[0].Pair, got[1].Pair)
	}
	if got[0].Distance != 2 || got[1].Distance != 4 {
		t.Errorf("distances = %v, %v", got[0].Distance, got[1].Distance)
	}
	if got[1].ForwardMap[0] != 0 || got[1].ForwardMap[1] != 1 {
		t.Errorf("forward map = %v", got[1].ForwardMap)
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	if got := store.Path("root", "F2", "toy"); got != filepath.Join("root", "F2", "toy", "toy_mapping.bin") {
		t.Errorf("Path() = %q", got)
	}
	if got := store.PairFilePath("root", "F2", "toy"); got != filepath.Join("root", "F2", "toy", "graph_ids.txt") {
		t.Errorf("PairFilePath() = %q", got)
	}
	if got := store.ShardDir("root", "F2", "toy"); got != filepath.Join("root", "F2", "toy", "tmp") {
		t.Errorf("ShardDir() = %q", got)
	}
}
