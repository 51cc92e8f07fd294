// Package graphs models the graph collections the pipeline operates on.
//
// Loading and preprocessing a dataset from its on-disk format is an external
// concern; this package only defines the shape such a loader must produce.
package graphs

//spellchecker:words relabeled

// Graph is a single undirected labeled graph.
type Graph struct {
	Name string

	// Labels holds one label per node; node indices are implicit.
	Labels []int

	// Edges holds the undirected edges, each normalized to from < to.
	Edges []Edge
}

// Edge is an undirected labeled edge between two node indices.
type Edge struct {
	From, To int
	Label    int
}

// MakeEdge returns the normalized edge between the two given node indices.
func MakeEdge(a, b, label int) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{From: a, To: b, Label: label}
}

// NodeCount returns the number of nodes in this graph.
func (graph *Graph) NodeCount() int {
	return len(graph.Labels)
}

// EdgeCount returns the number of edges in this graph.
func (graph *Graph) EdgeCount() int {
	return len(graph.Edges)
}

// Clone returns a deep copy of this graph.
func (graph *Graph) Clone() Graph {
	clone := Graph{
		Name:   graph.Name,
		Labels: append([]int(nil), graph.Labels...),
		Edges:  append([]Edge(nil), graph.Edges...),
	}
	return clone
}

// IsConnected checks if this graph is connected.
// The empty graph counts as connected.
func (graph *Graph) IsConnected() bool {
	count := graph.NodeCount()
	if count == 0 {
		return true
	}

	adjacency := make([][]int, count)
	for _, edge := range graph.Edges {
		adjacency[edge.From] = append(adjacency[edge.From], edge.To)
		adjacency[edge.To] = append(adjacency[edge.To], edge.From)
	}

	visited := make([]bool, count)
	queue := []int{0}
	visited[0] = true
	seen := 1

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[node] {
			if !visited[next] {
				visited[next] = true
				seen++
				queue = append(queue, next)
			}
		}
	}

	return seen == count
}

// Dataset is a fixed, ordered collection of graphs.
type Dataset struct {
	Name   string
	Graphs []Graph
}

// Len returns the number of graphs in this dataset.
func (dataset *Dataset) Len() int {
	return len(dataset.Graphs)
}

// PairCount returns the number of distinct unordered graph pairs.
func (dataset *Dataset) PairCount() int {
	n := dataset.Len()
	return n * (n - 1) / 2
}

// Loader loads a preprocessed dataset from a path.
//
// Implementations live outside of this module; tests use hand-built datasets.
type Loader interface {
	LoadDataset(name, path string) (*Dataset, error)
}
