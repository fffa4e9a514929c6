// Package importer loads large document sets into a Swiftype document type
// through bounded, concurrent bulk requests.
package importer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/stctl/swiftype"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultBatchSize       = 100
	DefaultConcurrency     = 4
	DefaultMaxRetries      = 5
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMaxElapsedTime  = 2 * time.Minute

	// NoRetries disables retrying when set as Options.MaxRetries.
	NoRetries = -1
)

// DocumentWriter is the subset of the Swiftype API used by the importer.
type DocumentWriter interface {
	CreateDocuments(ctx context.Context, engineID, documentTypeID string, documents []swiftype.Record, opts ...swiftype.CallOption) ([]any, error)
	CreateOrUpdateDocuments(ctx context.Context, engineID, documentTypeID string, documents []swiftype.Record, opts ...swiftype.CallOption) ([]any, error)
}

// Options tunes an import.
type Options struct {
	BatchSize   int
	Concurrency int
	// MaxRetries caps retries per batch. Zero uses DefaultMaxRetries and
	// NoRetries sends each batch once.
	MaxRetries      int
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration
	// CreateOnly uses bulk_create instead of bulk_create_or_update.
	CreateOnly bool
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.InitialInterval <= 0 {
		o.InitialInterval = DefaultInitialInterval
	}
	if o.MaxElapsedTime <= 0 {
		o.MaxElapsedTime = DefaultMaxElapsedTime
	}
	return o
}

// Importer splits documents into batches and sends each batch as one bulk
// request. Retryable failures are retried with exponential backoff; the
// client itself never retries.
type Importer struct {
	writer DocumentWriter
	opts   Options
	logger zerolog.Logger
}

// New creates an importer writing through w.
func New(w DocumentWriter, opts Options, logger zerolog.Logger) *Importer {
	return &Importer{
		writer: w,
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// Result summarises an import.
type Result struct {
	Requested int
	Batches   int
	// Accepted counts documents the service reported as indexed.
	Accepted int
	// Rejected holds the positions of documents the service refused.
	Rejected []int
	Failed   []BatchError
}

// Err joins the batch failures, or returns nil.
func (r *Result) Err() error {
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// BatchError reports a batch that failed after all retries.
type BatchError struct {
	Start    int
	End      int
	Attempts int
	Err      error
}

// Error implements the error interface
func (e BatchError) Error() string {
	return fmt.Sprintf("batch %d-%d failed after %d attempt(s): %v", e.Start, e.End-1, e.Attempts, e.Err)
}

func (e BatchError) Unwrap() error {
	return e.Err
}

// Run imports documents into engineID/documentTypeID. Failed batches do not
// stop the others; only cancellation of ctx aborts the run.
func (im *Importer) Run(ctx context.Context, engineID, documentTypeID string, documents []swiftype.Record) (*Result, error) {
	result := &Result{Requested: len(documents)}
	if len(documents) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.opts.Concurrency)

	for start := 0; start < len(documents); start += im.opts.BatchSize {
		end := min(start+im.opts.BatchSize, len(documents))
		batch := documents[start:end]
		result.Batches++

		g.Go(func() error {
			statuses, attempts, err := im.send(gctx, engineID, documentTypeID, batch)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				im.logger.Error().Err(err).Int("start", start).Int("end", end).Int("attempts", attempts).Msg("Batch failed")
				result.Failed = append(result.Failed, BatchError{Start: start, End: end, Attempts: attempts, Err: err})
				return nil
			}

			for i, status := range statuses {
				if accepted, ok := status.(bool); ok && !accepted {
					result.Rejected = append(result.Rejected, start+i)
					continue
				}
				result.Accepted++
			}
			im.logger.Debug().Int("start", start).Int("end", end).Int("attempts", attempts).Msg("Batch imported")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	slices.Sort(result.Rejected)
	slices.SortFunc(result.Failed, func(a, b BatchError) int { return a.Start - b.Start })
	return result, nil
}

// send writes one batch, retrying transport failures, 429 and 5xx.
func (im *Importer) send(ctx context.Context, engineID, documentTypeID string, batch []swiftype.Record) ([]any, int, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = im.opts.InitialInterval
	exp.MaxElapsedTime = im.opts.MaxElapsedTime
	exp.Reset()

	policy := backoff.WithMaxRetries(exp, uint64(max(im.opts.MaxRetries, 0)))

	attempts := 0
	statuses, err := backoff.RetryWithData(func() ([]any, error) {
		attempts++
		var (
			out []any
			err error
		)
		if im.opts.CreateOnly {
			out, err = im.writer.CreateDocuments(ctx, engineID, documentTypeID, batch)
		} else {
			out, err = im.writer.CreateOrUpdateDocuments(ctx, engineID, documentTypeID, batch)
		}
		if err != nil && !swiftype.IsRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		return out, err
	}, backoff.WithContext(policy, ctx))

	return statuses, attempts, err
}
