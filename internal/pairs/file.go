package pairs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/FAU-CDI/gedpath/internal/ged"
)

// WriteFile persists the given pairs to path for reproducibility, one pair
// per line as two whitespace-separated integers.
func WriteFile(path string, pairs []ged.Pair) (e error) {
	file, err := os.Create(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return fmt.Errorf("failed to create pair file: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close pair file: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	writer := bufio.NewWriter(file)
	for _, pair := range pairs {
		if _, err := fmt.Fprintf(writer, "%d %d\n", pair.Source, pair.Target); err != nil {
			return fmt.Errorf("failed to write pair: %w", err)
		}
	}
	return writer.Flush()
}

// ReadFile reads a pair file previously written by WriteFile.
func ReadFile(path string) (pairs []ged.Pair, e error) {
	file, err := os.Open(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return nil, fmt.Errorf("failed to open pair file: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close pair file: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed pair line %q", line)
		}

		source, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("malformed pair line %q: %w", line, err)
		}
		target, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("malformed pair line %q: %w", line, err)
		}
		pairs = append(pairs, ged.MakePair(ged.GraphID(source), ged.GraphID(target)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan pair file: %w", err)
	}
	return pairs, nil
}

// ReadIDFile reads a plain graph id file, one id per line.
func ReadIDFile(path string) (ids []ged.GraphID, e error) {
	file, err := os.Open(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return nil, fmt.Errorf("failed to open id file: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close id file: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		id, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("malformed id line %q: %w", line, err)
		}
		ids = append(ids, ged.GraphID(id))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan id file: %w", err)
	}
	return ids, nil
}
