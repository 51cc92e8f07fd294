// Command mappings computes graph edit distance mappings for a dataset and
// maintains them in an on-disk store that later runs resume from.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/FAU-CDI/gedpath"
	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/graphs"
	"github.com/FAU-CDI/gedpath/internal/oracle"
	"github.com/FAU-CDI/gedpath/internal/pathstats/exporter"
	"github.com/FAU-CDI/gedpath/internal/schedule"
	"github.com/FAU-CDI/gedpath/internal/stats"
	"github.com/FAU-CDI/gedpath/internal/store"
	"github.com/pkg/profile"
)

var errBothPairsAndIDs = errors.New("both -pairs and -ids were given")

func main() {
	st := stats.NewStats(os.Stderr)
	defer st.Close()

	if debugProfile != "" {
		defer profile.Start(profile.ProfilePath(debugProfile)).Stop()
	}

	if len(nArgs) != 1 || datasetName == "" {
		st.Log("Usage: mappings [-help] [...flags] -dataset name /path/to/datasets")
		os.Exit(1)
	}
	if kPairs > 0 && idFile != "" {
		st.LogFatal("parse arguments", errBothPairsAndIDs)
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
	st.Log("loaded dataset", "name", dataset.Name, "graphs", dataset.Len(), "pairs", dataset.PairCount())

	policy := ged.PolicyDefault
	if strict {
		policy = ged.PolicyStrict
	}

	opts := oracle.Options{
		Cost:          oracle.CostModel(cost),
		Method:        oracle.Method(method),
		MethodOptions: methodOptions,
	}

	storePath := store.Path(out, method, dataset.Name)
	shardDir := store.ShardDir(out, method, dataset.Name)

	// load previously computed results, if any
	var existing []ged.Result
	err = st.DoStage(stats.StageLoadStore, func() (err error) {
		existing, err = store.Load(storePath)
		return
	})
	if err != nil {
		st.LogFatal("load store", err)
	}

	// determine the requested pair set
	var requested []ged.Pair
	err = st.DoStage(stats.StagePairs, func() (err error) {
		requested, err = buildPairs(dataset)
		return
	})
	if err != nil {
		st.LogFatal("build pairs", err)
	}

	// skip pairs the store already holds
	var pending []ged.Pair
	err = st.DoStage(stats.StageResume, func() error {
		pending = schedule.Resume(requested, ged.Keys(existing))
		return nil
	})
	if err != nil {
		st.LogFatal("resume", err)
	}
	st.Log("resuming computation", "requested", len(requested), "existing", len(existing), "pending", len(pending))

	// compute the pending pairs in chunks
	var reports []schedule.ChunkReport
	err = st.DoStage(stats.StageCompute, func() (err error) {
		reports, err = schedule.Schedule(pending, schedule.Config{
			Oracle:   oracle.Greedy{},
			Dataset:  dataset,
			Options:  opts,
			Workers:  threads,
			ShardDir: shardDir,
			Stats:    st,
		})
		return
	})
	if err != nil {
		st.LogFatal("compute", err)
	}
	for _, report := range schedule.Failed(reports) {
		st.LogError("chunk failed", report.Err, "worker", report.Worker, "chunk", report.Chunk, "pairs", len(report.Pairs))
	}

	// fold the shards into the store
	var merged int
	err = st.DoStage(stats.StageMerge, func() (err error) {
		merged, err = schedule.Merge(shardDir, storePath)
		return
	})
	if err != nil {
		st.LogFatal("merge", err)
	}
	st.Log("merged shards", "results", merged)

	// reload the merged store and repair invalid mappings
	var results []ged.Result
	results, err = store.Load(storePath)
	if err != nil {
		st.LogFatal("reload store", err)
	}

	invalid := ged.CheckResults(results, policy)
	if len(invalid) > 0 {
		st.Log("repairing invalid mappings", "count", len(invalid))

		var residual []int
		err = st.DoStage(stats.StageRepair, func() error {
			residual = schedule.Repair(results, invalid, schedule.Config{
				Oracle:  oracle.Greedy{},
				Dataset: dataset,
				Options: opts,
				Stats:   st,
			}, policy)
			return nil
		})
		if err != nil {
			st.LogFatal("repair", err)
		}
		for _, index := range residual {
			result := results[index]
			st.Log("mapping still invalid after repair", "source", result.Pair.Source, "target", result.Pair.Target)
		}

		err = st.DoStage(stats.StageSaveStore, func() error {
			return store.Save(storePath, results)
		})
		if err != nil {
			st.LogFatal("save store", err)
		}
	}

	if fractional := ged.CheckIntegral(results); len(fractional) > 0 {
		st.Log("store contains non-integral distances", "count", len(fractional))
	}

	if csvPath != "" {
		err = st.DoStage(stats.StageExportCSV, func() error {
			return exporter.CSVResults(csvPath, results)
		})
		if err != nil {
			st.LogFatal("export csv", err)
		}
	}

	st.Log("store up to date", "path", storePath, "results", len(results), "took", st.Diff())
}

// ===================

var nArgs []string
var datasetName string
var out = "processed"
var method = string(oracle.MethodF2)
var cost = string(oracle.CostConstant)
var methodOptions string
var threads = runtime.NumCPU()
var kPairs int
var seed int64 = 42
var idFile string
var strict bool
var csvPath string
var listen string
var debugProfile = ""

func init() {
	var legalFlag bool = false
	flag.BoolVar(&legalFlag, "legal", legalFlag, "Display legal notices and exit")

	flag.StringVar(&datasetName, "dataset", datasetName, "Name of the dataset to compute mappings for")
	flag.StringVar(&out, "out", out, "Directory to keep the mapping store in")
	flag.StringVar(&method, "method", method, "Matching method to use")
	flag.StringVar(&cost, "cost", cost, "Edit cost model to use")
	flag.StringVar(&methodOptions, "method-options", methodOptions, "Additional options passed to the matching method")
	flag.IntVar(&threads, "threads", threads, "Number of parallel workers")
	flag.IntVar(&kPairs, "pairs", kPairs, "Sample this many pairs instead of computing all pairs")
	flag.Int64Var(&seed, "seed", seed, "Seed used for pair sampling")
	flag.StringVar(&idFile, "ids", idFile, "Compute only the graph id pairs listed in the given file")
	flag.BoolVar(&strict, "strict", strict, "Treat a mapping as invalid when either direction contains duplicates")
	flag.StringVar(&csvPath, "csv", csvPath, "Export the final mappings as CSV to the given path")
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
