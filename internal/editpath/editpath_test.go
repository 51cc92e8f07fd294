//spellchecker:words editpath
package editpath_test

//spellchecker:words testing github gedpath internal editpath ged graphs
import (
	"testing"

	"github.com/FAU-CDI/gedpath/internal/editpath"
	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/graphs"
)

func TestOperationString(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		op   editpath.Operation
		want string
	}{
		{editpath.Operation{Object: editpath.Node, Action: editpath.Insert}, "NodeInsertion"},
		{editpath.Operation{Object: editpath.Node, Action: editpath.Delete}, "NodeDeletion"},
		{editpath.Operation{Object: editpath.Node, Action: editpath.Relabel}, "NodeRelabeling"},
		{editpath.Operation{Object: editpath.Edge, Action: editpath.Insert}, "EdgeInsertion"},
		{editpath.Operation{Object: editpath.Edge, Action: editpath.Delete}, "EdgeDeletion"},
		{editpath.Operation{Object: editpath.Edge, Action: editpath.Relabel}, "EdgeRelabeling"},
	} {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindIndex(t *testing.T) {
	t.Parallel()

	for i, kind := range editpath.Kinds {
		if got := editpath.KindIndex(kind); got != i {
			t.Errorf("KindIndex(%v) = %d, want %d", kind, got, i)
		}
	}
}

// makePath builds a synthetic path of the given length between two pairs.
func makePath(source, target ged.GraphID, length int) editpath.Path {
	path := editpath.Path{Source: source, Target: target}
	for i := 0; i <= length; i++ {
		path.Graphs = append(path.Graphs, graphs.Graph{Labels: []int{i}})
	}
	for i := 0; i < length; i++ {
		path.Entries = append(path.Entries, editpath.LogEntry{
			Source: source,
			Step:   i,
			Target: target,
			Op:     editpath.Kinds[i%len(editpath.Kinds)],
		})
	}
	return path
}

func TestSplitFlattenRoundtrip(t *testing.T) {
	t.Parallel()

	want := []editpath.Path{
		makePath(0, 1, 3),
		makePath(0, 2, 1),
		makePath(1, 2, 4),
	}

	sequence, log := editpath.Flatten(want)
	if len(sequence) != 3+1+1+1+4+1 {
		t.Fatalf("flattened into %d graphs", len(sequence))
	}

	got, err := editpath.Split(sequence, log)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d paths, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Source != want[i].Source || got[i].Target != want[i].Target {
			t.Errorf("path %d is for pair (%d, %d), want (%d, %d)", i, got[i].Source, got[i].Target, want[i].Source, want[i].Target)
		}
		if got[i].Len() != want[i].Len() {
			t.Errorf("path %d has %d operations, want %d", i, got[i].Len(), want[i].Len())
		}
		if len(got[i].Graphs) != len(want[i].Graphs) {
			t.Errorf("path %d has %d graphs, want %d", i, len(got[i].Graphs), len(want[i].Graphs))
		}
	}
}

func TestSplitRejectsMismatch(t *testing.T) {
	t.Parallel()

	path := makePath(0, 1, 2)

	// too few graphs for the log
	if _, err := editpath.Split(path.Graphs[:2], path.Entries); err == nil {
		t.Error("Split() accepted a truncated sequence")
	}

	// leftover graphs after the last run
	sequence := append(append([]graphs.Graph(nil), path.Graphs...), graphs.Graph{})
	if _, err := editpath.Split(sequence, path.Entries); err == nil {
		t.Error("Split() accepted leftover graphs")
	}

	// a run whose steps do not increase
	broken := append([]editpath.LogEntry(nil), path.Entries...)
	broken[1].Step = 5
	if _, err := editpath.Split(path.Graphs, broken); err == nil {
		t.Error("Split() accepted a broken step sequence")
	}
}
