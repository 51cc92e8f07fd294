package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/graphs"
	"github.com/FAU-CDI/gedpath/internal/pairs"
	"github.com/FAU-CDI/gedpath/internal/store"
)

// buildPairs determines the requested pair set from the flags.
//
// A sampled pair set is persisted beside the store; re-running with the same
// flags reuses the persisted set so that resumption sees identical pairs
// regardless of the sampling seed.
func buildPairs(dataset *graphs.Dataset) ([]ged.Pair, error) {
	switch {
	case idFile != "":
		ids, err := pairs.ReadIDFile(idFile)
		if err != nil {
			return nil, err
		}
		return pairs.FromIDs(ids, dataset.Len())
	case kPairs > 0:
		return samplePairs(dataset)
	default:
		return pairs.All(dataset.Len()), nil
	}
}

func samplePairs(dataset *graphs.Dataset) ([]ged.Pair, error) {
	path := store.PairFilePath(out, method, dataset.Name)

	sampled, err := pairs.ReadFile(path)
	if err == nil {
		return sampled, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	sampled = pairs.RandomK(dataset.Len(), kPairs, seed)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}
	if err := pairs.WriteFile(path, sampled); err != nil {
		return nil, err
	}
	return sampled, nil
}
