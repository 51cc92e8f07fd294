// Package schedule drives the computation of mapping results across a pool
// of workers.
//
// The scheduler partitions the pair set into chunks, hands chunks to workers
// dynamically, streams each chunk's results into a private shard file, and
// leaves failed chunks for a later incremental run.
// Merging the shards back into the canonical store and repairing corrupted
// results also live here; both run strictly after all workers have joined.
package schedule

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/graphs"
	"github.com/FAU-CDI/gedpath/internal/oracle"
	"github.com/FAU-CDI/gedpath/internal/stats"
)

//spellchecker:words dedup

// chunksPerWorker is the chunking factor for parallel runs.
// Fine-grained chunks let a fast worker pick up more chunks than a slow one,
// which evens out the load under dynamic assignment.
const chunksPerWorker = 10

// Config configures a scheduling run.
type Config struct {
	Oracle  oracle.Oracle
	Dataset *graphs.Dataset
	Options oracle.Options

	// Workers is the number of workers to use.
	// Values <= 1 select a single sequential pass without chunking.
	Workers int

	// ShardDir is the directory chunk shards are written to.
	// It is created when missing.
	ShardDir string

	Stats *stats.Stats
}

// ChunkReport describes the outcome of a single chunk.
//
// Oracle failures are captured here instead of crossing goroutine
// boundaries; a failed chunk's pairs stay unresolved and are picked up by
// the next incremental run.
type ChunkReport struct {
	Worker int
	Chunk  int

	Pairs []ged.Pair
	Err   error
}

// Failed returns the reports of failed chunks.
func Failed(reports []ChunkReport) (failed []ChunkReport) {
	for _, report := range reports {
		if report.Err != nil {
			failed = append(failed, report)
		}
	}
	return
}

// Schedule computes mapping results for the given pairs.
//
// Results are streamed into shard files below cfg.ShardDir; use Merge to
// combine them into the canonical store afterwards.
// The returned reports cover every chunk; a chunk error never aborts its
// siblings.
func Schedule(pairs []ged.Pair, cfg Config) ([]ChunkReport, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(cfg.ShardDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create shard directory: %w", err)
	}

	if cfg.Workers <= 1 {
		return scheduleSequential(pairs, cfg)
	}
	return scheduleParallel(pairs, cfg)
}

// scheduleSequential processes all pairs in a single pass, using one
// long-lived session and no chunking.
func scheduleSequential(pairs []ged.Pair, cfg Config) (reports []ChunkReport, e error) {
	session, err := cfg.Oracle.NewSession(cfg.Dataset, cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	defer func() {
		if e2 := session.Close(); e2 != nil {
			e2 = fmt.Errorf("failed to close session: %w", e2)
			if e == nil {
				e = e2
			} else {
				e = errors.Join(e, e2)
			}
		}
	}()

	report := ChunkReport{Worker: 0, Chunk: 0, Pairs: pairs}
	report.Err = computeChunk(session, pairs, shardPath(cfg.ShardDir, cfg.Dataset.Name, 0, 0))
	cfg.Stats.SetCT(1, 1)

	return []ChunkReport{report}, nil
}

// scheduleParallel processes the pairs with a pool of cfg.Workers workers
// claiming chunks dynamically.
func scheduleParallel(pairs []ged.Pair, cfg Config) ([]ChunkReport, error) {
	chunks := split(pairs, cfg.Workers*chunksPerWorker)
	reports := make([]ChunkReport, len(chunks))

	// next is the shared chunk cursor, completed feeds progress reporting.
	var next, completed atomic.Int64
	cfg.Stats.SetCT(0, len(chunks))

	var wg sync.WaitGroup
	for worker := 0; worker < cfg.Workers; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			// the session is created lazily on the first claimed chunk and
			// reused for every chunk this worker processes.
			var session oracle.Session
			defer func() {
				if session == nil {
					return
				}
				if err := session.Close(); err != nil {
					cfg.Stats.LogError("close session", err, "worker", worker)
				}
			}()

			for {
				chunk := int(next.Add(1)) - 1
				if chunk >= len(chunks) {
					return
				}

				reports[chunk] = ChunkReport{Worker: worker, Chunk: chunk, Pairs: chunks[chunk]}

				if session == nil {
					var err error
					session, err = cfg.Oracle.NewSession(cfg.Dataset, cfg.Options)
					if err != nil {
						// without a session this worker cannot make progress;
						// record the claimed chunk as failed and stop claiming.
						reports[chunk].Err = fmt.Errorf("failed to create session: %w", err)
						cfg.Stats.LogError("create session", err, "worker", worker)
						return
					}
				}

				shard := shardPath(cfg.ShardDir, cfg.Dataset.Name, worker, chunk)
				if err := computeChunk(session, chunks[chunk], shard); err != nil {
					reports[chunk].Err = err
					cfg.Stats.LogError("compute chunk", err, "worker", worker, "chunk", chunk)
				}

				cfg.Stats.SetCT(int(completed.Add(1)), len(chunks))
			}
		}(worker)
	}
	wg.Wait()

	return reports, nil
}

// computeChunk computes all pairs of a single chunk and writes the results
// to the given shard path.
func computeChunk(session oracle.Session, pairs []ged.Pair, shard string) error {
	results, err := session.Compute(pairs)
	if err != nil {
		return fmt.Errorf("failed to compute chunk: %w", err)
	}
	if err := writeShard(shard, results); err != nil {
		return fmt.Errorf("failed to write shard: %w", err)
	}
	return nil
}

// split splits pairs into up to count roughly equal contiguous chunks.
func split(pairs []ged.Pair, count int) [][]ged.Pair {
	if count < 1 {
		count = 1
	}

	size := (len(pairs) + count - 1) / count
	if size == 0 {
		size = 1
	}

	chunks := make([][]ged.Pair, 0, count)
	for start := 0; start < len(pairs); start += size {
		end := start + size
		if end > len(pairs) {
			end = len(pairs)
		}
		chunks = append(chunks, pairs[start:end])
	}
	return chunks
}
