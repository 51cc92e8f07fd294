// Package exporter writes analysis reports and mapping results to CSV files
// or an SQL database.
package exporter

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/FAU-CDI/gedpath/internal/editpath"
	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/pathstats"
)

// CSVReport writes one file per statistic and one positions file per
// operation kind into dir, prefixing every filename with prefix.
//
// Statistic files carry the header "value" and one row per sample value.
// Positions files carry the header "positions" and one row per path holding
// that path's literal operation positions, comma-joined; a blank row means
// the path has no operations of that kind.
func CSVReport(dir, prefix string, report *pathstats.Report) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	for _, sample := range report.Samples {
		path := filepath.Join(dir, prefix+"_"+sample.Name+".csv")
		if err := writeValues(path, sample.Values); err != nil {
			return fmt.Errorf("failed to write %q: %w", path, err)
		}
	}

	for kind, op := range editpath.Kinds {
		path := filepath.Join(dir, prefix+"_"+op.String()+"_Positions.csv")
		if err := writePositions(path, report.Paths, kind); err != nil {
			return fmt.Errorf("failed to write %q: %w", path, err)
		}
	}

	return nil
}

// CSVResults writes one row per mapping result to path.
func CSVResults(path string, results []ged.Result) (e error) {
	file, err := os.Create(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close csv: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString("source,target,distance,lower_bound,upper_bound,runtime\n"); err != nil {
		return err
	}
	for _, result := range results {
		_, err := fmt.Fprintf(writer, "%d,%d,%s,%s,%s,%s\n",
			result.Pair.Source, result.Pair.Target,
			formatFloat(result.Distance), formatFloat(result.LowerBound),
			formatFloat(result.UpperBound), formatFloat(result.Runtime),
		)
		if err != nil {
			return err
		}
	}
	return writer.Flush()
}

func writeValues(path string, values []float64) (e error) {
	file, err := os.Create(path) // #nosec G304 -- derived from export dir
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close csv: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString("value\n"); err != nil {
		return err
	}
	for _, value := range values {
		if _, err := writer.WriteString(formatFloat(value) + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func writePositions(path string, paths []pathstats.PathSummary, kind int) (e error) {
	file, err := os.Create(path) // #nosec G304 -- derived from export dir
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close csv: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString("positions\n"); err != nil {
		return err
	}
	for _, summary := range paths {
		positions := make([]string, len(summary.Positions[kind]))
		for i, position := range summary.Positions[kind] {
			positions[i] = strconv.Itoa(position)
		}
		if _, err := writer.WriteString(strings.Join(positions, ",") + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// formatFloat renders a float without a trailing ".0" for integral values.
func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
