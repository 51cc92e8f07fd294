// Package storages holds materialized intermediate graph sequences.
//
// Small runs stay in memory; for large datasets the sequence is spilled to a
// disk-backed store so that the analyzer never has to hold every
// intermediate graph at once.
package storages

import (
	"io"
	"path/filepath"

	"github.com/FAU-CDI/gedpath/internal/graphs"
	"github.com/tkw1536/pkglib/iterator"
)

// Engine initializes and returns new sequence storages.
type Engine interface {
	NewStorage(name string) (Storage, error)
}

// NewEngine creates a new Engine backed by the disk at the provided path.
// If path is the empty string, a memory-backed engine is returned instead.
func NewEngine(path string) Engine {
	if path == "" {
		return MemoryEngine{}
	}
	return DiskEngine{
		Path: filepath.Join(path, "sequences"),
	}
}

// Storage is an append-only store for one intermediate graph sequence.
type Storage interface {
	io.Closer

	// Append adds the next graph to the sequence.
	// Calls to Append are serialized by the caller.
	Append(graph graphs.Graph) error

	// Count returns the number of graphs appended so far.
	Count() (int64, error)

	// Get returns the graph at the given position of the sequence.
	Get(index int64) (graphs.Graph, error)

	// Graphs iterates over the sequence in order.
	// It may only be called after all Append calls have happened.
	Graphs() iterator.Iterator[graphs.Graph]
}
