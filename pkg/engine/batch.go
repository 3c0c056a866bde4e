package engine

import (
	"context"
	"time"

	"github.com/mrhapile/hvac-diagnoser/pkg/types"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds AnalyzeBatch when no limit is given.
const DefaultBatchConcurrency = 4

// BatchResult is the outcome for one reading of a batch. Exactly one of
// Report and Err is set.
type BatchResult struct {
	Index  int                     `json:"index" yaml:"index"`
	Report *types.DiagnosticReport `json:"report,omitempty" yaml:"report,omitempty"`
	Error  string                  `json:"error,omitempty" yaml:"error,omitempty"`
	Err    error                   `json:"-" yaml:"-"`
}

// AnalyzeBatch analyzes independent readings concurrently against one
// snapshot. Results keep the input order. A failing reading does not stop
// the others; only context cancellation aborts the batch.
func AnalyzeBatch(ctx context.Context, snap *Snapshot, readings []types.FieldReading, at time.Time, limit int) ([]BatchResult, error) {
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}

	results := make([]BatchResult, len(readings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, reading := range readings {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := BatchResult{Index: i}
			rep, err := Analyze(snap, reading, at)
			if err != nil {
				res.Err = err
				res.Error = err.Error()
			} else {
				res.Report = &rep
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
