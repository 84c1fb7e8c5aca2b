package source

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/quizgame/quizadmin/internal/cache"
	"github.com/quizgame/quizadmin/internal/logging"
)

// Cached serves FetchAll from a file cache while the entry is fresh and
// stores every successful fetch. Deletes invalidate the entry.
type Cached[T any] struct {
	inner DataSource[T]
	store *cache.FileStore
	key   string
}

// NewCached wraps inner. A nil or disabled store makes Cached a
// pass-through.
func NewCached[T any](inner DataSource[T], store *cache.FileStore, key string) *Cached[T] {
	return &Cached[T]{inner: inner, store: store, key: key}
}

func (c *Cached[T]) enabled() bool {
	return c.store != nil && c.store.IsEnabled()
}

// FetchAll implements DataSource.
func (c *Cached[T]) FetchAll(ctx context.Context) ([]T, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "cache").
		Str("key", c.key).
		Logger()

	if c.enabled() {
		entry, err := c.store.Get(c.key)
		switch {
		case err == nil:
			var records []T
			if jsonErr := json.Unmarshal(entry.Data, &records); jsonErr == nil {
				logger.Debug().Int("records", len(records)).Msg("cache hit")
				return records, nil
			}
			logger.Warn().Msg("corrupt cache entry, refetching")
		case errors.Is(err, cache.ErrNotFound), errors.Is(err, cache.ErrExpired):
			logger.Debug().Err(err).Msg("cache miss")
		default:
			logger.Warn().Err(err).Msg("cache read failed")
		}
	}

	records, err := c.inner.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	if c.enabled() {
		data, marshalErr := json.Marshal(records)
		if marshalErr == nil {
			marshalErr = c.store.Set(c.key, data)
		}
		if marshalErr != nil {
			logger.Warn().Err(marshalErr).Msg("cache write failed")
		}
	}
	return records, nil
}

// DeleteOne implements DataSource and invalidates the cached list.
func (c *Cached[T]) DeleteOne(ctx context.Context, id string) error {
	err := c.inner.DeleteOne(ctx, id)
	if invErr := c.Invalidate(); invErr != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "cache").
			Str("key", c.key).
			Err(invErr).
			Msg("cache invalidation failed")
	}
	return err
}

// Invalidate drops the cached list.
func (c *Cached[T]) Invalidate() error {
	if !c.enabled() {
		return nil
	}
	return c.store.Delete(c.key)
}
