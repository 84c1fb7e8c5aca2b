package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizgame/quizadmin/internal/api"
	"github.com/quizgame/quizadmin/internal/logging"
	"github.com/quizgame/quizadmin/internal/quiz"
)

func newServer(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL+"/api/", api.Options{Token: "tok", Timeout: 5 * time.Second})
	client.HTTPClient = server.Client()
	return client
}

func TestListScores(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/score", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, err := uuid.Parse(r.Header.Get(api.HeaderRequestID))
		assert.NoError(t, err, "request id is a uuid")
		assert.Contains(t, r.Header.Get("User-Agent"), "quizadmin/")

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"_id":"1","name":"Alice","score":9,"createOn":"2024-05-01T10:00:00Z"}]`)
	})

	scores, err := client.ListScores(context.Background())
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "Alice", scores[0].Name)
	assert.Equal(t, 9, scores[0].Score)
}

func TestList_NullAndEmptyBodiesAreEmpty(t *testing.T) {
	for name, body := range map[string]string{"null": "null", "empty": ""} {
		t.Run(name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, body)
			})

			topics, err := client.ListTopics(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, topics)
			assert.Empty(t, topics)
		})
	}
}

func TestTraceIDHeader(t *testing.T) {
	var got string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(api.HeaderTraceID)
		_, _ = io.WriteString(w, "[]")
	})

	ctx := logging.ContextWithTraceID(context.Background(), "01HTRACE")
	_, err := client.ListScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, "01HTRACE", got)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		notFound    bool
	}{
		{name: "404 json", status: http.StatusNotFound, body: `{"message":"Topic not found"}`, wantMessage: "Topic not found", notFound: true},
		{name: "500 text", status: http.StatusInternalServerError, body: "boom\n", wantMessage: "boom"},
		{name: "400 error field", status: http.StatusBadRequest, body: `{"error":"bad id"}`, wantMessage: "bad id"},
		{name: "403 empty", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.GetTopic(context.Background(), "t1")
			require.Error(t, err)

			var statusErr *api.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, tt.wantMessage, statusErr.Message)
			assert.Equal(t, "/topic/t1", statusErr.Path)
			assert.Equal(t, tt.notFound, errors.Is(err, api.ErrNotFound))
		})
	}
}

func TestTopicMutations(t *testing.T) {
	type call struct {
		method, path string
		body         map[string]any
	}
	var calls []call

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path}
		if r.Body != nil && r.ContentLength != 0 {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&c.body))
		}
		calls = append(calls, c)

		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = io.WriteString(w, `{"_id":"t9","topicName":"Physics","category":"Science"}`)
	})
	ctx := context.Background()
	in := quiz.TopicInput{TopicName: "Physics", Category: "Science"}

	created, err := client.CreateTopic(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "t9", created.ID)

	_, err = client.UpdateTopic(ctx, "t9", in)
	require.NoError(t, err)
	require.NoError(t, client.DeleteTopic(ctx, "t9"))

	require.Len(t, calls, 3)
	assert.Equal(t, call{http.MethodPost, "/api/topic", map[string]any{"topicName": "Physics", "category": "Science"}}, calls[0])
	assert.Equal(t, http.MethodPut, calls[1].method)
	assert.Equal(t, "/api/topic/t9", calls[1].path)
	assert.Equal(t, call{method: http.MethodDelete, path: "/api/topic/t9"}, calls[2])
}

func TestSubtopicEndpoints(t *testing.T) {
	var paths []string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.EscapedPath())
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"_id":"s1","topicId":"t 1","subtopicName":"Motion","time":5}]`)
		case http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		default:
			_, _ = io.WriteString(w, `{"_id":"s1","topicId":"t 1","subtopicName":"Motion","time":5}`)
		}
	})
	ctx := context.Background()

	subs, err := client.ListSubtopics(ctx, "t 1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, 5, subs[0].Time)

	in := quiz.SubtopicInput{TopicID: "t 1", SubtopicName: "Motion", Time: 5}
	_, err = client.CreateSubtopic(ctx, in)
	require.NoError(t, err)
	_, err = client.UpdateSubtopic(ctx, "s1", in)
	require.NoError(t, err)
	require.NoError(t, client.DeleteSubtopic(ctx, "s1"))
	require.NoError(t, client.DeleteScore(ctx, "sc1"))

	assert.Equal(t, []string{
		"GET /api/subtopic/topic/t%201",
		"POST /api/subtopic",
		"PUT /api/subtopic/s1",
		"DELETE /api/subtopic/s1",
		"DELETE /api/score/sc1",
	}, paths)
}

func TestRateLimiter(t *testing.T) {
	var hits atomic.Int32
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, "[]")
	})
	limited := api.NewClient(client.BaseURL, api.Options{RequestsPerSecond: 0.001})
	limited.HTTPClient = client.HTTPClient

	_, err := limited.ListScores(context.Background())
	require.NoError(t, err, "first request uses the burst")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = limited.ListScores(ctx)
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestContextCanceled(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "[]")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListScores(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
