//spellchecker:words graphs
package graphs_test

//spellchecker:words testing github gedpath internal graphs
import (
	"testing"

	"github.com/FAU-CDI/gedpath/internal/graphs"
)

func TestMakeEdge(t *testing.T) {
	t.Parallel()

	if got := graphs.MakeEdge(3, 1, 7); got != (graphs.Edge{From: 1, To: 3, Label: 7}) {
		t.Errorf("MakeEdge(3, 1, 7) = %v", got)
	}
	if got := graphs.MakeEdge(1, 3, 7); got != (graphs.Edge{From: 1, To: 3, Label: 7}) {
		t.Errorf("MakeEdge(1, 3, 7) = %v", got)
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	original := graphs.Graph{
		Name:   "triangle",
		Labels: []int{1, 2, 3},
		Edges: []graphs.Edge{
			graphs.MakeEdge(0, 1, 0),
			graphs.MakeEdge(1, 2, 0),
			graphs.MakeEdge(0, 2, 0),
		},
	}

	clone := original.Clone()
	clone.Labels[0] = 99
	clone.Edges[0] = graphs.MakeEdge(0, 2, 5)

	if original.Labels[0] != 1 {
		t.Error("Clone() shares the label slice")
	}
	if original.Edges[0] != graphs.MakeEdge(0, 1, 0) {
		t.Error("Clone() shares the edge slice")
	}
}

func TestIsConnected(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name  string
		graph graphs.Graph
		want  bool
	}{
		{
			name:  "empty",
			graph: graphs.Graph{},
			want:  true,
		},
		{
			name:  "single node",
			graph: graphs.Graph{Labels: []int{1}},
			want:  true,
		},
		{
			name: "path",
			graph: graphs.Graph{
				Labels: []int{1, 1, 1},
				Edges:  []graphs.Edge{graphs.MakeEdge(0, 1, 0), graphs.MakeEdge(1, 2, 0)},
			},
			want: true,
		},
		{
			name: "isolated node",
			graph: graphs.Graph{
				Labels: []int{1, 1, 1},
				Edges:  []graphs.Edge{graphs.MakeEdge(0, 1, 0)},
			},
			want: false,
		},
		{
			name: "two components",
			graph: graphs.Graph{
				Labels: []int{1, 1, 1, 1},
				Edges:  []graphs.Edge{graphs.MakeEdge(0, 1, 0), graphs.MakeEdge(2, 3, 0)},
			},
			want: false,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.graph.IsConnected(); got != tt.want {
				t.Errorf("IsConnected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPairCount(t *testing.T) {
	t.Parallel()

	dataset := &graphs.Dataset{Graphs: make([]graphs.Graph, 10)}
	if got := dataset.PairCount(); got != 45 {
		t.Errorf("PairCount() = %d, want 45", got)
	}
}
