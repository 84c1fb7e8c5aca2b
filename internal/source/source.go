// Package source connects list screens to their data: the DataSource
// collaborator, the Loader that feeds a listview engine with last-write-wins
// fetch tokens, and an optional file-cache decorator.
package source

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/quizgame/quizadmin/internal/quiz"
)

// DataSource fetches a full collection and deletes single records.
// Implementations must be safe to call from a goroutine other than the one
// that owns the engine.
type DataSource[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	DeleteOne(ctx context.Context, id string) error
}

// Invalidator is implemented by sources that cache results.
type Invalidator interface {
	Invalidate() error
}

// Invalidate drops cached results if src caches, and is a no-op otherwise.
func Invalidate(src any) error {
	if inv, ok := src.(Invalidator); ok {
		return inv.Invalidate()
	}
	return nil
}

// Funcs adapts a pair of functions to DataSource.
type Funcs[T any] struct {
	Fetch  func(ctx context.Context) ([]T, error)
	Delete func(ctx context.Context, id string) error
}

// FetchAll calls Fetch.
func (f Funcs[T]) FetchAll(ctx context.Context) ([]T, error) {
	return f.Fetch(ctx)
}

// DeleteOne calls Delete.
func (f Funcs[T]) DeleteOne(ctx context.Context, id string) error {
	return f.Delete(ctx, id)
}

// ScoreAPI is the part of the API client the score screen needs.
type ScoreAPI interface {
	ListScores(ctx context.Context) ([]quiz.Score, error)
	DeleteScore(ctx context.Context, id string) error
}

// TopicAPI is the part of the API client the topic screen needs.
type TopicAPI interface {
	ListTopics(ctx context.Context) ([]quiz.Topic, error)
	GetTopic(ctx context.Context, id string) (quiz.Topic, error)
	DeleteTopic(ctx context.Context, id string) error
}

// SubtopicAPI is the part of the API client the subtopic screen needs.
type SubtopicAPI interface {
	ListSubtopics(ctx context.Context, topicID string) ([]quiz.Subtopic, error)
	DeleteSubtopic(ctx context.Context, id string) error
}

// ScoreSource lists and deletes scores.
type ScoreSource struct {
	API ScoreAPI
}

// FetchAll implements DataSource.
func (s ScoreSource) FetchAll(ctx context.Context) ([]quiz.Score, error) {
	return s.API.ListScores(ctx)
}

// DeleteOne implements DataSource.
func (s ScoreSource) DeleteOne(ctx context.Context, id string) error {
	return s.API.DeleteScore(ctx, id)
}

// TopicSource lists and deletes topics.
type TopicSource struct {
	API TopicAPI
}

// FetchAll implements DataSource.
func (s TopicSource) FetchAll(ctx context.Context) ([]quiz.Topic, error) {
	return s.API.ListTopics(ctx)
}

// DeleteOne implements DataSource.
func (s TopicSource) DeleteOne(ctx context.Context, id string) error {
	return s.API.DeleteTopic(ctx, id)
}

// SubtopicSource lists the subtopics of one topic.
type SubtopicSource struct {
	API     SubtopicAPI
	TopicID string
}

// FetchAll implements DataSource.
func (s SubtopicSource) FetchAll(ctx context.Context) ([]quiz.Subtopic, error) {
	return s.API.ListSubtopics(ctx, s.TopicID)
}

// DeleteOne implements DataSource.
func (s SubtopicSource) DeleteOne(ctx context.Context, id string) error {
	return s.API.DeleteSubtopic(ctx, id)
}

// TopicWithSubtopics fetches a topic and the subtopics in subtopics
// concurrently. If either call fails the other is canceled and the first
// error is returned.
func TopicWithSubtopics(
	ctx context.Context,
	topics TopicAPI,
	subtopics DataSource[quiz.Subtopic],
	topicID string,
) (quiz.Topic, []quiz.Subtopic, error) {
	var (
		topic quiz.Topic
		subs  []quiz.Subtopic
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		topic, err = topics.GetTopic(gctx, topicID)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = subtopics.FetchAll(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return quiz.Topic{}, nil, err
	}
	return topic, subs, nil
}
