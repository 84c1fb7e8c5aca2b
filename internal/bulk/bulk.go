// Package bulk applies a per-record action, such as a delete, to many record
// IDs in fixed-size batches with bounded concurrency inside each batch.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Batch configuration bounds.
const (
	DefaultBatchSize   = 20
	DefaultConcurrency = 4
	MaxBatchSize       = 1000
)

// Errors returned by NewRunner and Run.
var (
	ErrInvalidBatchSize = fmt.Errorf("batch size must be between 1 and %d", MaxBatchSize)
	ErrNilAction        = errors.New("bulk action cannot be nil")
	ErrNoIDs            = errors.New("no ids given")
)

// Action is applied to one record ID.
type Action func(ctx context.Context, id string) error

// Result is the outcome for one ID.
type Result struct {
	ID  string
	Err error
}

// Progress is reported after every batch.
type Progress struct {
	Total   int
	Done    int
	Failed  int
	Batch   int
	Batches int
}

// Runner splits IDs into batches and runs each batch concurrently.
// Batches run one after another so a canceled context stops between them.
type Runner struct {
	batchSize   int
	concurrency int
	onProgress  func(Progress)
}

// NewRunner returns a runner. A concurrency below 1 runs one action at a time.
func NewRunner(batchSize, concurrency int) (*Runner, error) {
	if batchSize < 1 || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Runner{batchSize: batchSize, concurrency: max(concurrency, 1)}, nil
}

// WithProgress sets a callback invoked after each batch.
func (r *Runner) WithProgress(fn func(Progress)) *Runner {
	r.onProgress = fn
	return r
}

// Run applies action to each distinct ID. Results keep the order of the
// first occurrence of each ID. Failed actions do not stop the run; their
// errors are joined into the returned error. If ctx is canceled the results
// so far are returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, ids []string, action Action) ([]Result, error) {
	if action == nil {
		return nil, ErrNilAction
	}
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, ErrNoIDs
	}

	results := make([]Result, len(ids))
	batches := (len(ids) + r.batchSize - 1) / r.batchSize
	progress := Progress{Total: len(ids), Batches: batches}

	for b := range batches {
		if err := ctx.Err(); err != nil {
			return results[:b*r.batchSize], err
		}

		start := b * r.batchSize
		end := min(start+r.batchSize, len(ids))

		var (
			g      errgroup.Group
			mu     sync.Mutex
			failed int
		)
		g.SetLimit(r.concurrency)
		for i := start; i < end; i++ {
			g.Go(func() error {
				err := action(ctx, ids[i])
				results[i] = Result{ID: ids[i], Err: err}
				if err != nil {
					mu.Lock()
					failed++
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()

		progress.Batch = b + 1
		progress.Done += end - start
		progress.Failed += failed
		if r.onProgress != nil {
			r.onProgress(progress)
		}
	}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.ID, res.Err))
		}
	}
	if len(errs) > 0 {
		return results, fmt.Errorf("%d of %d failed: %w", len(errs), len(ids), errors.Join(errs...))
	}
	return results, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
