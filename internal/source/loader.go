package source

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/quizgame/quizadmin/internal/listview"
	"github.com/quizgame/quizadmin/internal/logging"
)

// ErrStale is returned by Apply for a result that a newer fetch superseded.
var ErrStale = errors.New("stale fetch result discarded")

// Token identifies one fetch. Tokens increase monotonically per Loader.
type Token uint64

// Result is the outcome of a fetch started with Begin.
type Result[T any] struct {
	Token   Token
	Records []T
	Err     error
}

// Loader feeds a listview engine from a DataSource. Only the result of the
// most recently begun fetch is applied; older ones are discarded. A failed
// fetch leaves the engine's records untouched.
//
// Begin and Apply must be called from the goroutine that owns the engine;
// Fetch may run anywhere.
type Loader[T any] struct {
	src    DataSource[T]
	engine *listview.Engine[T]

	mu       sync.Mutex
	latest   Token
	inFlight bool
	loaded   bool
}

// NewLoader returns a Loader that writes into engine.
func NewLoader[T any](src DataSource[T], engine *listview.Engine[T]) *Loader[T] {
	return &Loader[T]{src: src, engine: engine}
}

// Source returns the underlying data source.
func (l *Loader[T]) Source() DataSource[T] {
	return l.src
}

// Engine returns the engine this loader writes into.
func (l *Loader[T]) Engine() *listview.Engine[T] {
	return l.engine
}

// Begin starts a fetch and returns its token. Any earlier fetch still
// running becomes stale.
func (l *Loader[T]) Begin() Token {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.latest++
	l.inFlight = true
	return l.latest
}

// Fetch calls FetchAll for token without touching the engine.
func (l *Loader[T]) Fetch(ctx context.Context, token Token) Result[T] {
	records, err := l.src.FetchAll(ctx)
	return Result[T]{Token: token, Records: records, Err: err}
}

// Apply stores a fetch result. It returns ErrStale when token is not the
// latest, the fetch error when the fetch failed, and nil once the records
// have replaced the engine's data.
func (l *Loader[T]) Apply(ctx context.Context, token Token, records []T, fetchErr error) error {
	logger := logging.FromContext(ctx).With().
		Str("component", "source").
		Uint64("token", uint64(token)).
		Logger()

	l.mu.Lock()
	if token != l.latest {
		latest := l.latest
		l.mu.Unlock()
		logger.Debug().Uint64("latest", uint64(latest)).Msg("discarding stale fetch result")
		return ErrStale
	}
	l.inFlight = false
	if fetchErr == nil {
		l.loaded = true
	}
	l.mu.Unlock()

	if fetchErr != nil {
		logger.Warn().Err(fetchErr).Msg("fetch failed, keeping previous records")
		return fetchErr
	}

	l.engine.ReplaceData(records)
	logger.Debug().Int("records", len(records)).Msg("applied fetch result")
	return nil
}

// ApplyResult is Apply for a Result.
func (l *Loader[T]) ApplyResult(ctx context.Context, r Result[T]) error {
	return l.Apply(ctx, r.Token, r.Records, r.Err)
}

// Refresh fetches and applies synchronously.
func (l *Loader[T]) Refresh(ctx context.Context) error {
	token := l.Begin()
	return l.ApplyResult(ctx, l.Fetch(ctx, token))
}

// Delete removes one record through the source, then refetches the whole
// collection. The engine is not patched locally.
func (l *Loader[T]) Delete(ctx context.Context, id string) error {
	if err := l.src.DeleteOne(ctx, id); err != nil {
		return fmt.Errorf("deleting %s: %w", id, err)
	}
	return l.Refresh(ctx)
}

// Loading reports whether the latest fetch has not been applied yet.
func (l *Loader[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}

// Loaded reports whether any fetch has succeeded.
func (l *Loader[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}
