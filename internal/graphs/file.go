package graphs

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FAU-CDI/gedpath/pkg/gobs"
)

// LoadDataset reads a preprocessed dataset blob from path.
func LoadDataset(path string) (dataset *Dataset, e error) {
	file, err := os.Open(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close dataset: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	decoder := gob.NewDecoder(file)

	dataset = &Dataset{}
	if err := decoder.Decode(&dataset.Name); err != nil {
		return nil, fmt.Errorf("failed to decode dataset name: %w", err)
	}
	dataset.Graphs, err = gobs.DecodeSlice[Graph](decoder, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to decode graphs: %w", err)
	}
	return dataset, nil
}

// SaveDataset writes the given dataset as a blob to path.
func SaveDataset(path string, dataset *Dataset) (e error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	file, err := os.Create(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close dataset: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(dataset.Name); err != nil {
		return fmt.Errorf("failed to encode dataset name: %w", err)
	}
	if err := gobs.EncodeSlice(encoder, dataset.Graphs); err != nil {
		return fmt.Errorf("failed to encode graphs: %w", err)
	}
	return nil
}
