package cli

import (
	"fmt"
	"time"

	"github.com/quizgame/quizadmin/internal/api"
	"github.com/quizgame/quizadmin/internal/cache"
	"github.com/quizgame/quizadmin/internal/config"
	"github.com/quizgame/quizadmin/internal/quiz"
	"github.com/quizgame/quizadmin/internal/source"
)

// deps are the collaborators a data command needs, built from the global
// config.
type deps struct {
	cfg    *config.Config
	client *api.Client
	store  *cache.FileStore
}

// newDeps validates the effective config and builds the API client and the
// list cache.
func newDeps() (*deps, error) {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, api.Options{
		Token:             cfg.API.Token,
		Timeout:           time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
	})

	store, err := newCacheStore(cfg)
	if err != nil {
		return nil, err
	}

	return &deps{cfg: cfg, client: client, store: store}, nil
}

func newCacheStore(cfg *config.Config) (*cache.FileStore, error) {
	dir, err := config.GetCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolving cache directory: %w", err)
	}
	ttl := cfg.Cache.TTLSeconds
	if ttl <= 0 {
		ttl = config.DefaultCacheTTLSeconds
	}
	store, err := cache.NewFileStore(dir, cfg.Cache.Enabled, ttl)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

func (d *deps) scoreSource() *source.Cached[quiz.Score] {
	return source.NewCached[quiz.Score](
		source.ScoreSource{API: d.client}, d.store, cache.Key(quiz.ScreenScore))
}

func (d *deps) topicSource() *source.Cached[quiz.Topic] {
	return source.NewCached[quiz.Topic](
		source.TopicSource{API: d.client}, d.store, cache.Key(quiz.ScreenTopic))
}

func (d *deps) subtopicSource(topicID string) *source.Cached[quiz.Subtopic] {
	return source.NewCached[quiz.Subtopic](
		source.SubtopicSource{API: d.client, TopicID: topicID}, d.store, cache.Key(quiz.ScreenSubtopic, topicID))
}

// invalidate drops the cached list for a screen after a write.
func (d *deps) invalidate(screen string, scope ...string) {
	if !d.store.IsEnabled() {
		return
	}
	if err := d.store.Delete(cache.Key(screen, scope...)); err != nil {
		logger.Warn().Err(err).Str("screen", screen).Msg("failed to invalidate cached list")
	}
}

// invalidateScreen drops every cached list of a screen, whatever its scope.
func (d *deps) invalidateScreen(screen string) {
	if !d.store.IsEnabled() {
		return
	}
	if _, err := d.store.DeleteScope(screen); err != nil {
		logger.Warn().Err(err).Str("screen", screen).Msg("failed to invalidate cached lists")
	}
}
