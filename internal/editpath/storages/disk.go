package storages

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FAU-CDI/gedpath/internal/graphs"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/tkw1536/pkglib/iterator"
)

//spellchecker:words leveldb

// DiskEngine spills graph sequences to disk below Path.
type DiskEngine struct {
	Path string
}

var _ Engine = DiskEngine{}

// NewStorage implements Engine.
// An existing storage at the same name is wiped.
func (de DiskEngine) NewStorage(name string) (Storage, error) {
	path := filepath.Join(de.Path, name+".leveldb")

	// If the path already exists, wipe it
	if _, err := os.Stat(path); err == nil {
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("failed to cleanup path: %w", err)
		}
	}
	if err := os.MkdirAll(de.Path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database file: %w", err)
	}

	return &diskStorage{db: db, path: path}, nil
}

type diskStorage struct {
	db   *leveldb.DB
	path string

	count int64
}

func (storage *diskStorage) Append(graph graphs.Graph) error {
	value, err := marshalGraph(graph)
	if err != nil {
		return err
	}

	if err := storage.db.Put(sequenceKey(storage.count), value, nil); err != nil {
		return fmt.Errorf("failed to put graph: %w", err)
	}
	storage.count++
	return nil
}

func (storage *diskStorage) Count() (int64, error) {
	return storage.count, nil
}

func (storage *diskStorage) Get(index int64) (graphs.Graph, error) {
	if index < 0 || index >= storage.count {
		return graphs.Graph{}, fmt.Errorf("index %d out of range [0, %d)", index, storage.count)
	}

	value, err := storage.db.Get(sequenceKey(index), nil)
	if err != nil {
		return graphs.Graph{}, fmt.Errorf("failed to get graph: %w", err)
	}
	return unmarshalGraph(value)
}

func (storage *diskStorage) Graphs() iterator.Iterator[graphs.Graph] {
	return iterator.New(func(generator iterator.Generator[graphs.Graph]) {
		defer generator.Return()

		it := storage.db.NewIterator(nil, nil)
		defer it.Release()

		for it.Next() {
			graph, err := unmarshalGraph(it.Value())
			if generator.YieldError(err) {
				return
			}
			if generator.Yield(graph) {
				return
			}
		}

		generator.YieldError(it.Error())
	})
}

// Close closes the underlying database and removes its files; sequence
// storages are scratch space for a single run, not an archive.
func (storage *diskStorage) Close() error {
	err := storage.db.Close()
	if e2 := os.RemoveAll(storage.path); e2 != nil {
		err = errors.Join(err, fmt.Errorf("failed to remove storage: %w", e2))
	}
	return err
}

// sequenceKey encodes an index so that leveldb's lexicographic key order
// matches the sequence order.
func sequenceKey(index int64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], uint64(index))
	return key[:]
}

func marshalGraph(graph graphs.Graph) ([]byte, error) {
	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(graph); err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}
	return buffer.Bytes(), nil
}

func unmarshalGraph(value []byte) (graph graphs.Graph, err error) {
	if err := gob.NewDecoder(bytes.NewReader(value)).Decode(&graph); err != nil {
		return graph, fmt.Errorf("failed to decode graph: %w", err)
	}
	return graph, nil
}
