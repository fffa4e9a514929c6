package filter

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/stctl/swiftype"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of concurrent chunk evaluations
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the minimum chunk size for concurrent evaluation
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator evaluates a filter over large record sets in chunks.
// Small sets are evaluated sequentially.
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the records matching filter, in input order.
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter Filter, records []swiftype.Record) ([]swiftype.Record, error) {
	if len(records) == 0 {
		return []swiftype.Record{}, nil
	}

	if len(records) < e.batchSize || e.workerCount < 2 {
		return Apply(filter, records), nil
	}

	return e.evaluateConcurrent(ctx, filter, records)
}

func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter Filter, records []swiftype.Record) ([]swiftype.Record, error) {
	chunkSize := max(len(records)/e.workerCount, e.batchSize)
	chunks := slices.Collect(slices.Chunk(records, chunkSize))
	results := make([][]swiftype.Record, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i, chunk := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Apply(filter, chunk)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slices.Concat(results...), nil
}
