package oracle

import (
	"fmt"
	"time"

	"github.com/FAU-CDI/gedpath/internal/editpath"
	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/graphs"
)

// Greedy is a cheap baseline Oracle matching nodes of equal labels in index
// order.
//
// It makes no optimality promises whatsoever; it exists so that the pipeline
// runs end to end without an external solver, and as the workhorse of the
// tests.
type Greedy struct{}

var _ Oracle = Greedy{}

// NewSession implements Oracle.
func (Greedy) NewSession(dataset *graphs.Dataset, opts Options) (Session, error) {
	return &greedySession{dataset: dataset}, nil
}

type greedySession struct {
	dataset *graphs.Dataset
}

func (session *greedySession) Compute(pairs []ged.Pair) ([]ged.Result, error) {
	results := make([]ged.Result, len(pairs))
	for i, pair := range pairs {
		result, err := session.compute(pair)
		if err != nil {
			return nil, err
		}
		results[i] = result
	}
	return results, nil
}

func (session *greedySession) compute(pair ged.Pair) (ged.Result, error) {
	if int(pair.Target) >= session.dataset.Len() || pair.Source < 0 {
		return ged.Result{}, fmt.Errorf("pair (%d, %d) out of range [0, %d)", pair.Source, pair.Target, session.dataset.Len())
	}

	start := time.Now()

	source := &session.dataset.Graphs[pair.Source]
	target := &session.dataset.Graphs[pair.Target]

	result := ged.Result{
		Pair:        pair,
		ForwardMap:  make([]int, source.NodeCount()),
		BackwardMap: make([]int, target.NodeCount()),
	}

	// assign each source node the first free target node of equal label;
	// unmatched nodes map to distinct values beyond the other graph's range,
	// marking them deleted (or inserted).
	used := make([]bool, target.NodeCount())
	for i := range result.BackwardMap {
		result.BackwardMap[i] = source.NodeCount() + i
	}
	for i, label := range source.Labels {
		result.ForwardMap[i] = target.NodeCount() + i
		for j, candidate := range target.Labels {
			if used[j] || candidate != label {
				continue
			}
			result.ForwardMap[i] = j
			result.BackwardMap[j] = i
			used[j] = true
			break
		}
	}

	// under a constant cost model the induced distance is the length of the
	// materialized edit path
	path, err := editpath.DeleteFirst{}.Materialize(result, session.dataset)
	if err != nil {
		return ged.Result{}, fmt.Errorf("failed to derive distance: %w", err)
	}
	result.Distance = float64(path.Len())
	result.UpperBound = result.Distance
	result.LowerBound = lowerBound(source, target)

	result.Runtime = time.Since(start).Seconds()
	return result, nil
}

func (session *greedySession) Close() error {
	session.dataset = nil
	return nil
}

// lowerBound is the trivial size-difference bound.
func lowerBound(source, target *graphs.Graph) float64 {
	nodes := source.NodeCount() - target.NodeCount()
	if nodes < 0 {
		nodes = -nodes
	}
	edges := source.EdgeCount() - target.EdgeCount()
	if edges < 0 {
		edges = -edges
	}
	return float64(nodes + edges)
}
