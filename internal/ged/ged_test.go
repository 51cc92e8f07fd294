//spellchecker:words ged
package ged_test

//spellchecker:words testing github gedpath internal ged
import (
	"testing"

	"github.com/FAU-CDI/gedpath/internal/ged"
)

func TestMakePair(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		a, b ged.GraphID
		want ged.Pair
	}{
		{1, 3, ged.Pair{Source: 1, Target: 3}},
		{3, 1, ged.Pair{Source: 1, Target: 3}},
		{0, 0, ged.Pair{Source: 0, Target: 0}},
	} {
		if got := ged.MakePair(tt.a, tt.b); got != tt.want {
			t.Errorf("MakePair(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPairCompare(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		left, right ged.Pair
		want        int
	}{
		{ged.Pair{Source: 0, Target: 1}, ged.Pair{Source: 0, Target: 2}, -1},
		{ged.Pair{Source: 0, Target: 2}, ged.Pair{Source: 0, Target: 1}, 1},
		{ged.Pair{Source: 1, Target: 2}, ged.Pair{Source: 0, Target: 9}, 1},
		{ged.Pair{Source: 3, Target: 7}, ged.Pair{Source: 3, Target: 7}, 0},
	} {
		got := tt.left.Compare(tt.right)
		if sign(got) != tt.want {
			t.Errorf("(%v).Compare(%v) = %d, want sign %d", tt.left, tt.right, got, tt.want)
		}
		if tt.left.Less(tt.right) != (tt.want < 0) {
			t.Errorf("(%v).Less(%v) = %v, want %v", tt.left, tt.right, tt.left.Less(tt.right), tt.want < 0)
		}
	}
}

func sign(value int) int {
	switch {
	case value < 0:
		return -1
	case value > 0:
		return 1
	default:
		return 0
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()

	results := []ged.Result{
		{Pair: ged.Pair{Source: 0, Target: 1}},
		{Pair: ged.Pair{Source: 2, Target: 4}},
	}

	keys := ged.Keys(results)
	if len(keys) != 2 {
		t.Fatalf("got %d keys, want 2", len(keys))
	}
	if keys[0] != results[0].Pair || keys[1] != results[1].Pair {
		t.Errorf("Keys() = %v", keys)
	}
}
