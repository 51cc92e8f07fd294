// Package editpath models edit paths: ordered sequences of atomic edit
// operations transforming one graph of a pair into the other, together with
// the intermediate graphs they produce.
package editpath

import (
	"errors"
	"fmt"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/graphs"
)

// Object is the kind of graph element an operation acts on.
type Object uint8

const (
	Node Object = iota
	Edge
)

func (object Object) String() string {
	switch object {
	case Node:
		return "Node"
	case Edge:
		return "Edge"
	default:
		return fmt.Sprintf("Object(%d)", uint8(object))
	}
}

// Action is what an operation does to its object.
type Action uint8

const (
	Insert Action = iota
	Delete
	Relabel
)

func (action Action) String() string {
	switch action {
	case Insert:
		return "Insertion"
	case Delete:
		return "Deletion"
	case Relabel:
		return "Relabeling"
	default:
		return fmt.Sprintf("Action(%d)", uint8(action))
	}
}

// Operation is a single atomic edit operation.
// Operations are order-significant within a path.
type Operation struct {
	Object Object
	Action Action
}

func (op Operation) String() string {
	return op.Object.String() + op.Action.String()
}

// Kinds lists the six operation kinds in canonical order.
// The order is shared by the statistics tables and the exports.
var Kinds = [6]Operation{
	{Node, Insert}, {Node, Delete}, {Node, Relabel},
	{Edge, Insert}, {Edge, Delete}, {Edge, Relabel},
}

// KindIndex returns the position of op within Kinds.
func KindIndex(op Operation) int {
	base := 0
	if op.Object == Edge {
		base = 3
	}
	return base + int(op.Action)
}

// LogEntry is one operation of one pair's edit path within a flat log.
//
// The full log for a pair is the maximal contiguous run of entries sharing
// (Source, Target); Step starts at 0 and increases by one per entry within
// that run.
type LogEntry struct {
	Source ged.GraphID
	Step   int
	Target ged.GraphID
	Op     Operation
}

// Path pairs the edit operations for one pair with the intermediate graphs
// they produce.
//
// A path of L operations holds L+1 graphs: the source graph, one graph per
// applied operation, the last of which equals the target graph.
// Entries[i].Op transforms Graphs[i] into Graphs[i+1].
type Path struct {
	Source ged.GraphID
	Target ged.GraphID

	Graphs  []graphs.Graph
	Entries []LogEntry
}

// Len returns the number of operations on this path.
func (path *Path) Len() int {
	return len(path.Entries)
}

var errLogMismatch = errors.New("operation log and graph sequence are out of step")

// Split reconstructs the per-pair paths from a flat operation log and the
// parallel intermediate graph sequence.
//
// A new run begins whenever Step resets to 0; a run of L entries consumes
// L+1 graphs from sequence.
// Split relies on the materializer's lock-step guarantee: the sequence and
// the log must have been produced together, one graph per entry plus one
// extra leading graph per run.
func Split(sequence []graphs.Graph, log []LogEntry) ([]Path, error) {
	var paths []Path

	offset := 0 // offset of the current run's first graph within sequence
	for start := 0; start < len(log); {
		end := start + 1
		for end < len(log) && log[end].Step != 0 {
			end++
		}

		run := log[start:end]
		length := len(run)
		if offset+length+1 > len(sequence) {
			return nil, errLogMismatch
		}
		for i, entry := range run {
			if entry.Step != i || entry.Source != run[0].Source || entry.Target != run[0].Target {
				return nil, errLogMismatch
			}
		}

		paths = append(paths, Path{
			Source:  run[0].Source,
			Target:  run[0].Target,
			Graphs:  sequence[offset : offset+length+1],
			Entries: run,
		})

		offset += length + 1
		start = end
	}

	if offset != len(sequence) {
		return nil, errLogMismatch
	}
	return paths, nil
}

// Flatten is the inverse of Split: it concatenates the graph sequences and
// logs of the given paths into the flat representation.
func Flatten(paths []Path) (sequence []graphs.Graph, log []LogEntry) {
	for _, path := range paths {
		sequence = append(sequence, path.Graphs...)
		log = append(log, path.Entries...)
	}
	return
}
