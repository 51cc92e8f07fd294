// Package oracle wraps the external component computing graph edit distance
// mappings.
//
// A session is stateful and expensive to construct, but cheap to reuse; the
// scheduler therefore keeps one session per worker alive across chunks.
package oracle

import (
	"errors"
	"fmt"
	"io"

	"github.com/FAU-CDI/gedpath/internal/ged"
	"github.com/FAU-CDI/gedpath/internal/graphs"
)

// CostModel names an edit cost model understood by the oracle.
type CostModel string

// Method names a matching algorithm understood by the oracle.
type Method string

const (
	CostConstant CostModel = "CONSTANT"

	MethodF1     Method = "F1"
	MethodF2     Method = "F2"
	MethodRefine Method = "REFINE"
)

// Options configures a session.
type Options struct {
	Cost          CostModel
	Method        Method
	MethodOptions string // algorithm-specific option string, passed through verbatim
}

// Oracle creates sessions over a fixed dataset.
type Oracle interface {
	// NewSession initializes a new session holding the entire dataset.
	NewSession(dataset *graphs.Dataset, opts Options) (Session, error)
}

// Session computes mappings for batches of pairs.
// A session is not safe for concurrent use; each worker owns its own.
type Session interface {
	io.Closer

	// Compute computes one result per given pair, in order.
	Compute(pairs []ged.Pair) ([]ged.Result, error)
}

// ComputeSingle computes a single pair using a fresh, single-use session.
// It is used by the repair loop, which deliberately avoids reusing the
// session a corrupted result came from.
func ComputeSingle(oracle Oracle, dataset *graphs.Dataset, opts Options, pair ged.Pair) (result ged.Result, e error) {
	session, err := oracle.NewSession(dataset, opts)
	if err != nil {
		return result, fmt.Errorf("failed to create session: %w", err)
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

	results, err := session.Compute([]ged.Pair{pair})
	if err != nil {
		return result, fmt.Errorf("failed to compute pair: %w", err)
	}
	if len(results) != 1 {
		return result, fmt.Errorf("expected 1 result, but got %d", len(results))
	}
	return results[0], nil
}
