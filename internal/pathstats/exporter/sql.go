package exporter

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/FAU-CDI/gedpath/internal/editpath"
	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/pathstats"
	"github.com/huandu/go-sqlbuilder"
)

//spellchecker:words sqlbuilder

// SQL exports reports and mapping results into an sql database.
type SQL struct {
	DB *sql.DB

	BatchSize   int // BatchSize for insert statements
	MaxQueryVar int // Maximum number of query variables (overrides BatchSize)
}

var errInsufficientQueryVars = errors.New("MaxQueryVar smaller than a single row")

// exec executes an sql query.
func (s *SQL) exec(query string, args []any) error {
	_, err := s.DB.Exec(query, args...)
	return err
}

// execInsert executes an insert into the given table, the given columns, and the given values.
// When this would exceed limits on maximum number of query variables, multiple inserts are executed.
func (s *SQL) execInsert(table string, columns []string, values [][]any) error {
	// nothing to insert!
	if len(values) == 0 {
		return nil
	}

	// determine the chunk size based on total number of query variables
	chunkSize := s.MaxQueryVar / len(columns)
	if chunkSize == 0 {
		return errInsufficientQueryVars
	}

	// maybe the user requested an even smaller batch size!
	if s.BatchSize > 0 && s.BatchSize < chunkSize {
		chunkSize = s.BatchSize
	}

	for i := 0; i < len(values); i += chunkSize {
		insert := sqlbuilder.InsertInto(table)
		insert.Cols(columns...)

		chunkEnd := i + chunkSize
		if chunkEnd > len(values) {
			chunkEnd = len(values)
		}

		for _, v := range values[i:chunkEnd] {
			insert.Values(v...)
		}

		if err := s.exec(insert.Build()); err != nil {
			return err
		}
	}

	return nil
}

// createTable creates a table with the given name and column definitions,
// dropping any previous version.
func (s *SQL) createTable(name string, columns string) error {
	if err := s.exec("DROP TABLE IF EXISTS "+quote(name), nil); err != nil {
		return fmt.Errorf("failed to drop table %q: %w", name, err)
	}
	if err := s.exec("CREATE TABLE "+quote(name)+" ("+columns+")", nil); err != nil {
		return fmt.Errorf("failed to create table %q: %w", name, err)
	}
	return nil
}

func quote(name string) string {
	return "`" + name + "`"
}

// Report writes the per-path summaries, the statistic summaries and the
// position histograms of report into the tables "<prefix>_paths",
// "<prefix>_stats" and "<prefix>_histogram".
func (s *SQL) Report(prefix string, report *pathstats.Report) error {
	if err := s.exportPaths(prefix+"_paths", report.Paths); err != nil {
		return err
	}
	if err := s.exportStats(prefix+"_stats", report.Samples); err != nil {
		return err
	}
	return s.exportHistograms(prefix+"_histogram", report)
}

func (s *SQL) exportPaths(table string, paths []pathstats.PathSummary) error {
	columns := []string{"source", "target", "length", "disconnected"}
	definitions := "source INTEGER, target INTEGER, length INTEGER, disconnected REAL"
	for _, op := range editpath.Kinds {
		columns = append(columns, op.String())
		definitions += ", " + quote(op.String()) + " INTEGER"
	}

	if err := s.createTable(table, definitions); err != nil {
		return err
	}

	values := make([][]any, len(paths))
	for i, summary := range paths {
		row := []any{int(summary.Source), int(summary.Target), summary.Length, summary.Disconnected}
		for _, total := range summary.Totals {
			row = append(row, total)
		}
		values[i] = row
	}
	return s.execInsert(table, columns, values)
}

func (s *SQL) exportStats(table string, samples []pathstats.Sample) error {
	err := s.createTable(table, "name TEXT, count INTEGER, mean REAL, stddev REAL, min REAL, max REAL")
	if err != nil {
		return err
	}

	values := make([][]any, len(samples))
	for i, sample := range samples {
		values[i] = []any{
			sample.Name, sample.Stats.Count, sample.Stats.Mean,
			sample.Stats.Stddev, sample.Stats.Min, sample.Stats.Max,
		}
	}
	return s.execInsert(table, []string{"name", "count", "mean", "stddev", "min", "max"}, values)
}

func (s *SQL) exportHistograms(table string, report *pathstats.Report) error {
	if err := s.createTable(table, "kind TEXT, bucket INTEGER, count INTEGER"); err != nil {
		return err
	}

	var values [][]any
	for bucket, count := range report.Histogram {
		values = append(values, []any{"All", bucket, count})
	}
	for kind, histogram := range report.KindHistograms {
		for bucket, count := range histogram {
			values = append(values, []any{editpath.Kinds[kind].String(), bucket, count})
		}
	}
	return s.execInsert(table, []string{"kind", "bucket", "count"}, values)
}

// Results writes one row per mapping result into the given table.
func (s *SQL) Results(table string, results []ged.Result) error {
	err := s.createTable(table,
		"source INTEGER, target INTEGER, distance REAL, lower_bound REAL, upper_bound REAL, runtime REAL")
	if err != nil {
		return err
	}

	values := make([][]any, len(results))
	for i, result := range results {
		values[i] = []any{
			int(result.Pair.Source), int(result.Pair.Target),
			result.Distance, result.LowerBound, result.UpperBound, result.Runtime,
		}
	}
	return s.execInsert(table,
		[]string{"source", "target", "distance", "lower_bound", "upper_bound", "runtime"}, values)
}
