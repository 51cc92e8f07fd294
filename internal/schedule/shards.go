package schedule

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/store"
	"github.com/FAU-CDI/gedpath/pkg/gobs"
)

//spellchecker:words gobs

// shardSuffix is the naming convention shared by the scheduler and the
// merge stage; only files carrying it are picked up by Merge.
const shardSuffix = "_mapping.shard"

// shardPath derives the chunk-private shard path for the given worker and
// chunk, avoiding any write contention between workers.
func shardPath(dir, dataset string, worker, chunk int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_w%d_c%d%s", dataset, worker, chunk, shardSuffix))
}

// writeShard writes the results of a single chunk to path.
func writeShard(path string, results []ged.Result) (e error) {
	file, err := os.Create(path) // #nosec G304 -- derived from shard dir
	if err != nil {
		return fmt.Errorf("failed to create shard: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close shard: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	if err := gobs.EncodeSlice(gob.NewEncoder(file), results); err != nil {
		return fmt.Errorf("failed to encode shard: %w", err)
	}
	return nil
}

// readShard reads a single shard file.
func readShard(path string) (results []ged.Result, e error) {
	file, err := os.Open(path) // #nosec G304 -- derived from shard dir
	if err != nil {
		return nil, fmt.Errorf("failed to open shard: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close shard: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	results, err = gobs.DecodeSlice[ged.Result](gob.NewDecoder(file), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to decode shard: %w", err)
	}
	return results, nil
}

// Merge combines all shards below shardDir with the canonical store at
// storePath and returns the number of results merged in from shards.
//
// The canonical store is only written after every shard decoded cleanly, so
// a broken shard never corrupts the existing store.
// After a successful write the merged shards are deleted, making a second
// Merge with no new shards a no-op on the store contents.
func Merge(shardDir, storePath string) (merged int, e error) {
	entries, err := os.ReadDir(shardDir)
	if errors.Is(err, os.ErrNotExist) {
		entries = nil
	} else if err != nil {
		return 0, fmt.Errorf("failed to read shard directory: %w", err)
	}

	var shards []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), shardSuffix) {
			continue
		}
		shards = append(shards, filepath.Join(shardDir, entry.Name()))
	}

	results, err := store.Load(storePath)
	if err != nil {
		return 0, fmt.Errorf("failed to load canonical store: %w", err)
	}

	for _, shard := range shards {
		partial, err := readShard(shard)
		if err != nil {
			return 0, fmt.Errorf("failed to read shard %q: %w", shard, err)
		}
		results = append(results, partial...)
		merged += len(partial)
	}

	if err := store.Save(storePath, results); err != nil {
		return 0, fmt.Errorf("failed to save canonical store: %w", err)
	}

	// shards are only removed once the canonical store holds their results
	for _, shard := range shards {
		if err := os.Remove(shard); err != nil {
			return merged, fmt.Errorf("failed to remove shard %q: %w", shard, err)
		}
	}
	return merged, nil
}
