//spellchecker:words pairs
package pairs_test

//spellchecker:words filepath testing github gedpath internal ged pairs
import (
	"os"
	"path/filepath"
	"testing"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/pairs"
)

func TestFileRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "graph_ids.txt")

	want := []ged.Pair{
		{Source: 0, Target: 3},
		{Source: 1, Target: 2},
		{Source: 5, Target: 9},
	}

	if err := pairs.WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := pairs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadFileNormalizes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "graph_ids.txt")
	if err := os.WriteFile(path, []byte("3 0\n\n2 1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := pairs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	want := []ged.Pair{
		{Source: 0, Target: 3},
		{Source: 1, Target: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadIDFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(path, []byte("4\n\n0\n2\n"), 0600); err != nil {
		t.Fatal(err)
	}

	ids, err := pairs.ReadIDFile(path)
	if err != nil {
		t.Fatalf("ReadIDFile() error = %v", err)
	}

	want := []ged.GraphID{4, 0, 2}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("id %d = %v, want %v", i, ids[i], want[i])
		}
	}
}

func TestReadIDFileMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(path, []byte("4\nnope\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := pairs.ReadIDFile(path); err == nil {
		t.Error("ReadIDFile() did not reject a malformed line")
	}
}
