package api

import (
	"context"
	"net/http"

	"github.com/quizgame/quizadmin/internal/quiz"
)

// ListScores returns every score.
func (c *Client) ListScores(ctx context.Context) ([]quiz.Score, error) {
	return list[quiz.Score](ctx, c, "/score")
}

// DeleteScore deletes one score.
func (c *Client) DeleteScore(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/score/"+escape(id), nil, nil)
}

// ListTopics returns every topic.
func (c *Client) ListTopics(ctx context.Context) ([]quiz.Topic, error) {
	return list[quiz.Topic](ctx, c, "/topic")
}

// GetTopic returns one topic.
func (c *Client) GetTopic(ctx context.Context, id string) (quiz.Topic, error) {
	var t quiz.Topic
	err := c.do(ctx, http.MethodGet, "/topic/"+escape(id), nil, &t)
	return t, err
}

// CreateTopic creates a topic and returns it as stored.
func (c *Client) CreateTopic(ctx context.Context, in quiz.TopicInput) (quiz.Topic, error) {
	var t quiz.Topic
	err := c.do(ctx, http.MethodPost, "/topic", in, &t)
	return t, err
}

// UpdateTopic replaces a topic's fields.
func (c *Client) UpdateTopic(ctx context.Context, id string, in quiz.TopicInput) (quiz.Topic, error) {
	var t quiz.Topic
	err := c.do(ctx, http.MethodPut, "/topic/"+escape(id), in, &t)
	return t, err
}

// DeleteTopic deletes a topic.
func (c *Client) DeleteTopic(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/topic/"+escape(id), nil, nil)
}

// ListSubtopics returns the subtopics of one topic.
func (c *Client) ListSubtopics(ctx context.Context, topicID string) ([]quiz.Subtopic, error) {
	return list[quiz.Subtopic](ctx, c, "/subtopic/topic/"+escape(topicID))
}

// CreateSubtopic creates a subtopic.
func (c *Client) CreateSubtopic(ctx context.Context, in quiz.SubtopicInput) (quiz.Subtopic, error) {
	var s quiz.Subtopic
	err := c.do(ctx, http.MethodPost, "/subtopic", in, &s)
	return s, err
}

// UpdateSubtopic replaces a subtopic's fields.
func (c *Client) UpdateSubtopic(ctx context.Context, id string, in quiz.SubtopicInput) (quiz.Subtopic, error) {
	var s quiz.Subtopic
	err := c.do(ctx, http.MethodPut, "/subtopic/"+escape(id), in, &s)
	return s, err
}

// DeleteSubtopic deletes a subtopic.
func (c *Client) DeleteSubtopic(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/subtopic/"+escape(id), nil, nil)
}
