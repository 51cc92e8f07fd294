//spellchecker:words exporter
package exporter_test

//spellchecker:words database testing github gedpath internal editpath ged graphs pathstats exporter glebarez sqlite
import (
	"database/sql"
	"testing"

	"github.com/FAU-CDI/gedpath/internal/editpath"
	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/graphs"
	"github.com/FAU-CDI/gedpath/internal/pathstats"
	"github.com/FAU-CDI/gedpath/internal/pathstats/exporter"
	_ "github.com/glebarez/go-sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM `" + table + "`").Scan(&count); err != nil {
		t.Fatalf("failed to count %q: %v", table, err)
	}
	return count
}

func TestSQLReport(t *testing.T) {
	t.Parallel()

	db := openMemory(t)

	insertion := editpath.Operation{Object: editpath.Node, Action: editpath.Insert}
	report := pathstats.Analyze([]editpath.Path{
		{
			Source: 0, Target: 1,
			Graphs: []graphs.Graph{{Labels: []int{1}}, {Labels: []int{1, 1}}},
			Entries: []editpath.LogEntry{
				{Source: 0, Step: 0, Target: 1, Op: insertion},
			},
		},
	})

	export := &exporter.SQL{DB: db, BatchSize: 2, MaxQueryVar: 100}
	if err := export.Report("toy", report); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if got := countRows(t, db, "toy_paths"); got != 1 {
		t.Errorf("toy_paths holds %d rows, want 1", got)
	}
	if got := countRows(t, db, "toy_stats"); got != len(report.Samples) {
		t.Errorf("toy_stats holds %d rows, want %d", got, len(report.Samples))
	}
	// one histogram per kind plus the overall one, ten buckets each
	if got := countRows(t, db, "toy_histogram"); got != (len(editpath.Kinds)+1)*pathstats.Buckets {
		t.Errorf("toy_histogram holds %d rows, want %d", got, (len(editpath.Kinds)+1)*pathstats.Buckets)
	}

	var length int
	if err := db.QueryRow("SELECT length FROM `toy_paths`").Scan(&length); err != nil {
		t.Fatalf("failed to query path: %v", err)
	}
	if length != 1 {
		t.Errorf("path length = %d, want 1", length)
	}
}

func TestSQLResults(t *testing.T) {
	t.Parallel()

	db := openMemory(t)

	results := []ged.Result{
		{Pair: ged.Pair{Source: 0, Target: 1}, Distance: 2},
		{Pair: ged.Pair{Source: 0, Target: 2}, Distance: 3},
		{Pair: ged.Pair{Source: 1, Target: 2}, Distance: 4},
	}

	// a tiny batch size forces multiple insert statements
	export := &exporter.SQL{DB: db, BatchSize: 1, MaxQueryVar: 100}
	if err := export.Results("toy_mappings", results); err != nil {
		t.Fatalf("Results() error = %v", err)
	}

	if got := countRows(t, db, "toy_mappings"); got != len(results) {
		t.Errorf("toy_mappings holds %d rows, want %d", got, len(results))
	}

	var distance float64
	if err := db.QueryRow("SELECT distance FROM `toy_mappings` WHERE source = 1 AND target = 2").Scan(&distance); err != nil {
		t.Fatalf("failed to query mapping: %v", err)
	}
	if distance != 4 {
		t.Errorf("distance = %v, want 4", distance)
	}
}

func TestSQLInsufficientQueryVars(t *testing.T) {
	t.Parallel()

	db := openMemory(t)

	export := &exporter.SQL{DB: db, MaxQueryVar: 2}
	if err := export.Results("toy_mappings", []ged.Result{{}}); err == nil {
		t.Error("Results() accepted a MaxQueryVar smaller than a row")
	}
}
