package editpath

import (
	"fmt"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/graphs"
)

// Materializer turns a validated mapping result into an explicit edit path.
//
// Implementations choose the order the operations are applied in; every
// implementation must guarantee the lock-step shape documented on [Path].
type Materializer interface {
	Materialize(result ged.Result, dataset *graphs.Dataset) (Path, error)
}

// DeleteFirst is a Materializer applying operations in a fixed order: edge
// deletions and relabelings, node deletions, node relabelings, node
// insertions, and finally edge insertions.
//
// Deleting edges before their endpoints keeps every intermediate graph well
// formed.
type DeleteFirst struct{}

var _ Materializer = DeleteFirst{}

// Materialize implements Materializer.
func (DeleteFirst) Materialize(result ged.Result, dataset *graphs.Dataset) (Path, error) {
	source := int(result.Pair.Source)
	target := int(result.Pair.Target)
	if source < 0 || source >= dataset.Len() || target < 0 || target >= dataset.Len() {
		return Path{}, fmt.Errorf("pair (%d, %d) out of range [0, %d)", source, target, dataset.Len())
	}

	walk := &pathWalk{
		source:  result.Pair.Source,
		target:  result.Pair.Target,
		goal:    &dataset.Graphs[target],
		current: dataset.Graphs[source].Clone(),
	}

	// image[i] is the target node the i-th current node maps to, -1 for
	// nodes scheduled for deletion.
	walk.image = make([]int, walk.current.NodeCount())
	for i := range walk.image {
		walk.image[i] = -1
		if i < len(result.ForwardMap) {
			if mapped := result.ForwardMap[i]; mapped >= 0 && mapped < walk.goal.NodeCount() {
				walk.image[i] = mapped
			}
		}
	}

	walk.record() // the unmodified source graph leads the sequence

	walk.editEdges()
	walk.deleteNodes()
	walk.relabelNodes()
	walk.insertNodes()
	walk.insertEdges()

	// the final intermediate carries the target graph's name
	walk.current.Name = walk.goal.Name

	path := Path{
		Source:  walk.source,
		Target:  walk.target,
		Graphs:  walk.sequence,
		Entries: walk.entries,
	}
	path.Graphs[len(path.Graphs)-1] = walk.current.Clone()
	return path, nil
}

// pathWalk holds the working state of a single materialization.
type pathWalk struct {
	source, target ged.GraphID
	goal           *graphs.Graph

	current graphs.Graph
	image   []int // current node index -> target node index, -1 when deleted

	sequence []graphs.Graph
	entries  []LogEntry
}

// record appends a snapshot of the current graph to the sequence.
func (walk *pathWalk) record() {
	walk.sequence = append(walk.sequence, walk.current.Clone())
}

// apply logs one operation and snapshots the graph it produced.
func (walk *pathWalk) apply(op Operation) {
	walk.entries = append(walk.entries, LogEntry{
		Source: walk.source,
		Step:   len(walk.entries),
		Target: walk.target,
		Op:     op,
	})
	walk.record()
}

// goalEdge looks up the target graph edge between two target node indices.
func (walk *pathWalk) goalEdge(a, b int) (graphs.Edge, bool) {
	want := graphs.MakeEdge(a, b, 0)
	for _, edge := range walk.goal.Edges {
		if edge.From == want.From && edge.To == want.To {
			return edge, true
		}
	}
	return graphs.Edge{}, false
}

// editEdges deletes every edge with no counterpart in the target graph and
// relabels edges whose counterpart carries a different label.
func (walk *pathWalk) editEdges() {
	// iterate over a snapshot; the graph shrinks while we delete
	snapshot := append([]graphs.Edge(nil), walk.current.Edges...)
	for _, edge := range snapshot {
		a, b := walk.image[edge.From], walk.image[edge.To]

		if a >= 0 && b >= 0 {
			goal, ok := walk.goalEdge(a, b)
			switch {
			case ok && goal.Label == edge.Label:
				continue
			case ok:
				walk.relabelEdge(edge, goal.Label)
				continue
			}
		}

		// an endpoint is scheduled for deletion, or the target lacks the edge
		walk.deleteEdge(edge)
	}
}

func (walk *pathWalk) deleteEdge(edge graphs.Edge) {
	for i, candidate := range walk.current.Edges {
		if candidate == edge {
			walk.current.Edges = append(walk.current.Edges[:i], walk.current.Edges[i+1:]...)
			break
		}
	}
	walk.apply(Operation{Edge, Delete})
}

func (walk *pathWalk) relabelEdge(edge graphs.Edge, label int) {
	for i, candidate := range walk.current.Edges {
		if candidate == edge {
			walk.current.Edges[i].Label = label
			break
		}
	}
	walk.apply(Operation{Edge, Relabel})
}

// deleteNodes removes all nodes without a target image.
// Nodes are removed from the highest index down so that pending indices
// stay valid; removal shifts every higher node index down by one.
func (walk *pathWalk) deleteNodes() {
	for node := walk.current.NodeCount() - 1; node >= 0; node-- {
		if walk.image[node] >= 0 {
			continue
		}

		walk.current.Labels = append(walk.current.Labels[:node], walk.current.Labels[node+1:]...)
		walk.image = append(walk.image[:node], walk.image[node+1:]...)
		for i, edge := range walk.current.Edges {
			from, to := edge.From, edge.To
			if from > node {
				from--
			}
			if to > node {
				to--
			}
			walk.current.Edges[i] = graphs.MakeEdge(from, to, edge.Label)
		}

		walk.apply(Operation{Node, Delete})
	}
}

// relabelNodes aligns the labels of all surviving nodes with their images.
func (walk *pathWalk) relabelNodes() {
	for node, image := range walk.image {
		if walk.current.Labels[node] == walk.goal.Labels[image] {
			continue
		}
		walk.current.Labels[node] = walk.goal.Labels[image]
		walk.apply(Operation{Node, Relabel})
	}
}

// insertNodes appends one node per target node without a preimage.
func (walk *pathWalk) insertNodes() {
	covered := make([]bool, walk.goal.NodeCount())
	for _, image := range walk.image {
		covered[image] = true
	}

	for node := 0; node < walk.goal.NodeCount(); node++ {
		if covered[node] {
			continue
		}
		walk.current.Labels = append(walk.current.Labels, walk.goal.Labels[node])
		walk.image = append(walk.image, node)
		walk.apply(Operation{Node, Insert})
	}
}

// insertEdges adds every target edge still missing from the current graph.
func (walk *pathWalk) insertEdges() {
	// preimage inverts image; after insertNodes it is total
	preimage := make([]int, walk.goal.NodeCount())
	for node, image := range walk.image {
		preimage[image] = node
	}

	present := make(map[graphs.Edge]struct{}, len(walk.current.Edges))
	for _, edge := range walk.current.Edges {
		present[graphs.MakeEdge(edge.From, edge.To, 0)] = struct{}{}
	}

	for _, goal := range walk.goal.Edges {
		edge := graphs.MakeEdge(preimage[goal.From], preimage[goal.To], goal.Label)
		if _, ok := present[graphs.MakeEdge(edge.From, edge.To, 0)]; ok {
			continue
		}
		walk.current.Edges = append(walk.current.Edges, edge)
		walk.apply(Operation{Edge, Insert})
	}
}

// MaterializeAll materializes one path per result, skipping nothing; callers
// filter invalid results beforehand.
func MaterializeAll(materializer Materializer, results []ged.Result, dataset *graphs.Dataset, onFinish func(done int)) ([]Path, error) {
	paths := make([]Path, 0, len(results))
	for i, result := range results {
		path, err := materializer.Materialize(result, dataset)
		if err != nil {
			return nil, fmt.Errorf("failed to materialize pair (%d, %d): %w", result.Pair.Source, result.Pair.Target, err)
		}
		paths = append(paths, path)
		if onFinish != nil {
			onFinish(i + 1)
		}
	}
	return paths, nil
}
