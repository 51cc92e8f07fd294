// Package store reads and writes persisted collections of mapping results.
//
// One store file exists per (method, dataset) combination; it holds the
// canonical, validated results sorted by pair key, at most one result per
// pair.
package store

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/pkg/gobs"
	"golang.org/x/exp/slices"
)

//spellchecker:words gobs

// Path returns the canonical store path for the given method and dataset
// below root.
func Path(root, method, dataset string) string {
	return filepath.Join(root, method, dataset, dataset+"_mapping.bin")
}

// PairFilePath returns the path of the sampled-pair side file next to the
// canonical store.
func PairFilePath(root, method, dataset string) string {
	return filepath.Join(root, method, dataset, "graph_ids.txt")
}

// ShardDir returns the temporary shard directory for the given method and
// dataset below root.
func ShardDir(root, method, dataset string) string {
	return filepath.Join(root, method, dataset, "tmp")
}

// Load reads a result store from path.
// A non-existing path yields an empty store and no error.
func Load(path string) (results []ged.Result, e error) {
	file, err := os.Open(path) // #nosec G304 -- explicit parameter
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close store: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	results, err = gobs.DecodeSlice[ged.Result](gob.NewDecoder(file), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to decode store: %w", err)
	}
	return results, nil
}

// Save writes the given results to path, sorted by pair key.
// The parent directory is created when missing.
func Save(path string, results []ged.Result) (e error) {
	Sort(results)

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	file, err := os.Create(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close store: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	if err := gobs.EncodeSlice(gob.NewEncoder(file), results); err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	return nil
}

// Sort sorts results in place by pair key.
// The sort is stable so that equal keys, which only occur on an upstream
// bug, keep their relative order.
func Sort(results []ged.Result) {
	slices.SortStableFunc(results, func(a, b ged.Result) int {
		return a.Pair.Compare(b.Pair)
	})
}
