package storages

import (
	"fmt"

	"github.com/FAU-CDI/gedpath/internal/graphs"
	"github.com/tkw1536/pkglib/iterator"
)

// MemoryEngine holds graph sequences in memory.
type MemoryEngine struct{}

var _ Engine = MemoryEngine{}

// NewStorage implements Engine.
func (MemoryEngine) NewStorage(string) (Storage, error) {
	return &memoryStorage{}, nil
}

type memoryStorage struct {
	sequence []graphs.Graph
}

func (storage *memoryStorage) Append(graph graphs.Graph) error {
	storage.sequence = append(storage.sequence, graph)
	return nil
}

func (storage *memoryStorage) Count() (int64, error) {
	return int64(len(storage.sequence)), nil
}

func (storage *memoryStorage) Get(index int64) (graphs.Graph, error) {
	if index < 0 || index >= int64(len(storage.sequence)) {
		return graphs.Graph{}, fmt.Errorf("index %d out of range [0, %d)", index, len(storage.sequence))
	}
	return storage.sequence[index], nil
}

func (storage *memoryStorage) Graphs() iterator.Iterator[graphs.Graph] {
	return iterator.Slice(storage.sequence)
}

func (storage *memoryStorage) Close() error {
	storage.sequence = nil
	return nil
}
