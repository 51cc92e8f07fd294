// Package gedpath provides shared glue for the gedpath commands.
package gedpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var errNoDataset = errors.New("dataset name must not be empty")

// FindDataset locates the preprocessed blob for the named dataset below root.
// FindDataset does not guarantee that the contents are loadable.
func FindDataset(root, name string) (string, error) {
	if name == "" {
		return "", errNoDataset
	}

	path := filepath.Join(root, name+".bin")
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to find dataset %q: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("dataset %q is not a regular file", path)
	}
	return path, nil
}
