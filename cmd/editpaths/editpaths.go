// Command editpaths materializes edit paths for computed mappings and
// analyzes where along each path the different kinds of edit operations
// occur.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/FAU-CDI/gedpath"
	"github.com/FAU-CDI/gedpath/internal/editpath"
	"github.com/FAU-CDI/gedpath/internal/editpath/storages"
	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/graphs"
	"github.com/FAU-CDI/gedpath/internal/oracle"
	"github.com/FAU-CDI/gedpath/internal/pathstats"
	"github.com/FAU-CDI/gedpath/internal/pathstats/exporter"
	"github.com/FAU-CDI/gedpath/internal/stats"
	"github.com/FAU-CDI/gedpath/internal/store"
	"github.com/pkg/profile"
)

var errBothSqliteAndMysql = errors.New("both -sqlite and -mysql were given")
var errNoResults = errors.New("store holds no mappings, run mappings first")

func main() {
	st := stats.NewStats(os.Stderr)
	defer st.Close()

	if debugProfile != "" {
		defer profile.Start(profile.ProfilePath(debugProfile)).Stop()
	}

	if len(nArgs) != 1 || datasetName == "" {
		st.Log("Usage: editpaths [-help] [...flags] -dataset name /path/to/datasets")
		os.Exit(1)
	}
	if sqlite != "" && mysql != "" {
		st.LogFatal("parse arguments", errBothSqliteAndMysql)
	}

	if listen != "" {
		go serveMonitor(st, listen)
	}

	// locate and load the dataset
	path, err := gedpath.FindDataset(nArgs[0], datasetName)
	if err != nil {
		st.LogFatal("find dataset", err)
	}

	var dataset *graphs.Dataset
	err = st.DoStage(stats.StageLoadDataset, func() (err error) {
		dataset, err = graphs.LoadDataset(path)
		return
	})
	if err != nil {
		st.LogFatal("load dataset", err)
	}

	st.StoreDatasetStats(stats.DatasetStats{
		Name:   dataset.Name,
		Graphs: dataset.Len(),
		Pairs:  dataset.PairCount(),
	})

	// load the mapping store
	var results []ged.Result
	err = st.DoStage(stats.StageLoadStore, func() (err error) {
		results, err = store.Load(store.Path(mappings, method, dataset.Name))
		return
	})
	if err != nil {
		st.LogFatal("load store", err)
	}
	if len(results) == 0 {
		st.LogFatal("load store", errNoResults)
	}

	policy := ged.PolicyDefault
	if strict {
		policy = ged.PolicyStrict
	}

	// invalid mappings have no faithful edit path, skip them
	if invalid := ged.CheckResults(results, policy); len(invalid) > 0 {
		st.Log("skipping invalid mappings", "count", len(invalid))
		results = dropIndices(results, invalid)
	}

	// sample a subset of the mappings
	if num > 0 && num < len(results) {
		random := rand.New(rand.NewSource(seed))
		random.Shuffle(len(results), func(i, j int) {
			results[i], results[j] = results[j], results[i]
		})
		results = results[:num]
		store.Sort(results)
		st.Log("sampled mappings", "num", num, "seed", seed)
	}

	// materialize one edit path per mapping
	var paths []editpath.Path
	err = st.DoStage(stats.StageMaterialize, func() (err error) {
		total := len(results)
		paths, err = editpath.MaterializeAll(editpath.DeleteFirst{}, results, dataset, func(done int) {
			st.SetCT(done, total)
		})
		return
	})
	if err != nil {
		st.LogFatal("materialize", err)
	}

	// round-trip the intermediate graphs through the configured engine
	engine := storages.NewEngine(cache)
	if cache != "" {
		st.Log("caching sequences on-disk", "path", cache)
	}
	paths, err = throughStorage(engine, dataset.Name, paths)
	if err != nil {
		st.LogFatal("store sequences", err)
	}

	var report *pathstats.Report
	err = st.DoStage(stats.StageAnalyze, func() error {
		report = pathstats.Analyze(paths)
		return nil
	})
	if err != nil {
		st.LogFatal("analyze", err)
	}

	for _, sample := range report.Samples {
		st.Log("sample", "name", sample.Name, "count", sample.Stats.Count, "mean", sample.Stats.Mean, "min", sample.Stats.Min, "max", sample.Stats.Max)
	}

	switch {
	case mysql != "":
		doSQL("mysql", mysql, report, results, st)
	case sqlite != "":
		doSQL("sqlite", sqlite, report, results, st)
	}

	if csvDir != "" {
		err = st.DoStage(stats.StageExportCSV, func() error {
			return exporter.CSVReport(csvDir, dataset.Name, report)
		})
		if err != nil {
			st.LogFatal("export csv", err)
		}
	}

	st.Log("analysis complete", "paths", len(report.Paths), "took", st.Diff())
}

// throughStorage writes the flattened graph sequence into a fresh storage,
// reads it back, and reassembles the per-pair paths.
func throughStorage(engine storages.Engine, name string, paths []editpath.Path) (_ []editpath.Path, e error) {
	sequence, log := editpath.Flatten(paths)

	storage, err := engine.NewStorage(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}
	defer func() {
		if e2 := storage.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close storage: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	for _, graph := range sequence {
		if err := storage.Append(graph); err != nil {
			return nil, fmt.Errorf("failed to append graph: %w", err)
		}
	}

	count, err := storage.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count graphs: %w", err)
	}
	if count != int64(len(sequence)) {
		return nil, fmt.Errorf("storage holds %d graphs, expected %d", count, len(sequence))
	}

	stored := make([]graphs.Graph, 0, len(sequence))
	it := storage.Graphs()
	defer it.Close()

	for it.Next() {
		stored = append(stored, it.Datum())
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("failed to read graphs: %w", err)
	}

	return editpath.Split(stored, log)
}

// dropIndices removes the results at the given ascending indices.
func dropIndices(results []ged.Result, drop []int) []ged.Result {
	kept := results[:0]
	next := 0
	for i, result := range results {
		if next < len(drop) && drop[next] == i {
			next++
			continue
		}
		kept = append(kept, result)
	}
	return kept
}

// ===================

var nArgs []string
var datasetName string
var mappings = "processed"
var method = string(oracle.MethodF2)
var num int
var seed int64 = 42
var strict bool
var cache string
var csvDir string
var sqlite string
var mysql string
var listen string
var debugProfile = ""

func init() {
	var legalFlag bool = false
	flag.BoolVar(&legalFlag, "legal", legalFlag, "Display legal notices and exit")

	flag.StringVar(&datasetName, "dataset", datasetName, "Name of the dataset to analyze")
	flag.StringVar(&mappings, "mappings", mappings, "Directory the mapping store is kept in")
	flag.StringVar(&method, "method", method, "Matching method the mappings were computed with")
	flag.IntVar(&num, "num", num, "Analyze only this many randomly sampled mappings")
	flag.Int64Var(&seed, "seed", seed, "Seed used for mapping sampling")
	flag.BoolVar(&strict, "strict", strict, "Treat a mapping as invalid when either direction contains duplicates")
	flag.StringVar(&cache, "cache", cache, "During analysis, cache intermediate graphs in the given directory as opposed to memory")
	flag.StringVar(&csvDir, "csv", csvDir, "Export CSV files into the given directory")
	flag.StringVar(&sqlite, "sqlite", sqlite, "Export an sqlite database to the given path")
	flag.StringVar(&mysql, "mysql", mysql, "Export a mysql database. Use a connection string of the form `username:password@host/database`")
	flag.StringVar(&listen, "listen", listen, "Serve progress information on the given address")
	flag.StringVar(&debugProfile, "debug-profile", debugProfile, "write out a debugging profile to the given path")

	defer func() {
		if legalFlag {
			fmt.Print(gedpath.LegalText())
			os.Exit(0)
		}
	}()

	flag.Parse()
	nArgs = flag.Args()
}
