package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizgame/quizadmin/internal/api"
	"github.com/quizgame/quizadmin/internal/cli"
	"github.com/quizgame/quizadmin/internal/cli/pagination"
	"github.com/quizgame/quizadmin/internal/config"
	"github.com/quizgame/quizadmin/internal/listview"
	"github.com/quizgame/quizadmin/internal/logging"
	"github.com/quizgame/quizadmin/internal/quiz"
)

// fakeQuizAPI serves the quiz REST endpoints from memory.
type fakeQuizAPI struct {
	mu        sync.Mutex
	scores    []quiz.Score
	topics    []quiz.Topic
	subtopics []quiz.Subtopic

	scoreLists int
	deleted    []string
	lastTopic  quiz.TopicInput
}

func (f *fakeQuizAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/score", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.scoreLists++
		writeBody(w, http.StatusOK, f.scores)
	})
	mux.HandleFunc("DELETE /api/score/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.PathValue("id") == "missing" {
			writeBody(w, http.StatusNotFound, map[string]string{"message": "score not found"})
			return
		}
		f.deleted = append(f.deleted, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/topic", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeBody(w, http.StatusOK, f.topics)
	})
	mux.HandleFunc("GET /api/topic/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, t := range f.topics {
			if t.ID == r.PathValue("id") {
				writeBody(w, http.StatusOK, t)
				return
			}
		}
		writeBody(w, http.StatusNotFound, map[string]string{"message": "topic not found"})
	})
	mux.HandleFunc("POST /api/topic", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var in quiz.TopicInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.lastTopic = in
		writeBody(w, http.StatusCreated, quiz.Topic{ID: "new-topic", TopicName: in.TopicName, Category: in.Category})
	})
	mux.HandleFunc("PUT /api/topic/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var in quiz.TopicInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.lastTopic = in
		writeBody(w, http.StatusOK, quiz.Topic{ID: r.PathValue("id"), TopicName: in.TopicName, Category: in.Category})
	})
	mux.HandleFunc("GET /api/subtopic/topic/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []quiz.Subtopic{}
		for _, s := range f.subtopics {
			if s.TopicID == r.PathValue("id") {
				out = append(out, s)
			}
		}
		writeBody(w, http.StatusOK, out)
	})
	mux.HandleFunc("DELETE /api/subtopic/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.PathValue("id")
		for i, s := range f.subtopics {
			if s.ID == id {
				f.subtopics = append(f.subtopics[:i], f.subtopics[i+1:]...)
				f.deleted = append(f.deleted, id)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeBody(w, http.StatusNotFound, map[string]string{"message": "subtopic not found"})
	})

	return mux
}

func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newFakeQuizAPI(t *testing.T, scores int) (*fakeQuizAPI, string) {
	t.Helper()
	f := &fakeQuizAPI{
		topics: []quiz.Topic{
			{ID: "t1", TopicName: "Physics", Category: "Science"},
			{ID: "t2", TopicName: "Poetry", Category: "Arts"},
		},
		subtopics: []quiz.Subtopic{
			{ID: "s1", TopicID: "t1", SubtopicName: "Optics", Time: 10},
			{ID: "s2", TopicID: "t1", SubtopicName: "Mechanics", Time: 15},
			{ID: "s3", TopicID: "t2", SubtopicName: "Sonnets", Time: 5},
		},
	}
	for i := range scores {
		f.scores = append(f.scores, quiz.Score{
			ID:       fmt.Sprintf("sc%02d", i),
			Name:     fmt.Sprintf("player%02d", i),
			Username: fmt.Sprintf("user%02d", i),
			Category: "Science",
			Topic:    "Physics",
			Subtopic: "Optics",
			Score:    i * 10,
		})
	}

	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return f, srv.URL + "/api"
}

// setupCLITest isolates config, project discovery and logging for one test.
func setupCLITest(t *testing.T, apiURL string) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvAPIURL, apiURL)
	t.Setenv(config.EnvAPIToken, "")
	t.Setenv(config.EnvPageSize, "")
	t.Setenv(config.EnvProjectDir, t.TempDir())
	t.Setenv(logging.EnvLogLevel, "error")
	t.Setenv(logging.EnvLogFormat, "")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := cli.NewRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

type scoreListJSON struct {
	Items      []quiz.Score              `json:"items"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

func TestScoreList_JSONPagination(t *testing.T) {
	_, url := newFakeQuizAPI(t, 25)
	setupCLITest(t, url)

	out, err := execute(t, "score", "list", "--sort", "score:desc", "--page", "2", "--output", "json")
	require.NoError(t, err)

	var got scoreListJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	require.Len(t, got.Items, 10)
	assert.Equal(t, 140, got.Items[0].Score)
	assert.Equal(t, 50, got.Items[9].Score)
	assert.Equal(t, pagination.PaginationMeta{
		CurrentPage: 2,
		PageSize:    10,
		TotalPages:  3,
		TotalItems:  25,
		HasPrevious: true,
		HasNext:     true,
		Sort:        "score:desc",
	}, got.Pagination)
}

func TestScoreList_SearchAndPageSize(t *testing.T) {
	_, url := newFakeQuizAPI(t, 25)
	setupCLITest(t, url)

	out, err := execute(t, "score", "list", "--search", "PLAYER1", "--page-size", "4", "-o", "json")
	require.NoError(t, err)

	var got scoreListJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 10, got.Pagination.TotalItems, "player10..player19")
	assert.Equal(t, 3, got.Pagination.TotalPages)
	assert.Equal(t, "PLAYER1", got.Pagination.Search)
	require.Len(t, got.Items, 4)
	assert.Equal(t, "player10", got.Items[0].Name, "unsorted keeps source order")
}

func TestScoreList_PageSizeFromEnv(t *testing.T) {
	_, url := newFakeQuizAPI(t, 25)
	setupCLITest(t, url)
	t.Setenv(config.EnvPageSize, "20")

	out, err := execute(t, "score", "list", "-o", "json")
	require.NoError(t, err)

	var got scoreListJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 20, got.Pagination.PageSize)
	assert.Len(t, got.Items, 20)
}

func TestScoreList_PastLastPage(t *testing.T) {
	_, url := newFakeQuizAPI(t, 5)
	setupCLITest(t, url)

	out, err := execute(t, "score", "list", "--page", "9", "-o", "json")
	require.NoError(t, err)

	var got scoreListJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got.Items)
	assert.NotNil(t, got.Items, "items is [] not null")
	assert.Equal(t, 9, got.Pagination.CurrentPage)
	assert.Equal(t, 1, got.Pagination.TotalPages)
	assert.True(t, got.Pagination.HasPrevious)
	assert.False(t, got.Pagination.HasNext)
}

func TestScoreList_Table(t *testing.T) {
	f, url := newFakeQuizAPI(t, 25)
	f.scores[3].Score = 12345
	setupCLITest(t, url)

	out, err := execute(t, "score", "list", "--sort", "score:desc", "--page-size", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "page 1 of 5 (25 items)")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines[2], "player03", "highest score first")
}

func TestScoreList_NDJSON(t *testing.T) {
	_, url := newFakeQuizAPI(t, 12)
	setupCLITest(t, url)

	out, err := execute(t, "score", "list", "-o", "ndjson")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 11)

	var meta struct {
		Pagination pagination.PaginationMeta `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &meta))
	assert.Equal(t, 12, meta.Pagination.TotalItems)
	assert.Equal(t, 2, meta.Pagination.TotalPages)

	var first quiz.Score
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &first))
	assert.Equal(t, "sc00", first.ID)
}

func TestScoreList_Errors(t *testing.T) {
	_, url := newFakeQuizAPI(t, 3)

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown sort field",
			args:    []string{"score", "list", "--sort", "rank"},
			wantErr: pagination.ErrInvalidSortField,
			wantMsg: "valid fields are",
		},
		{
			name:    "bad sort order",
			args:    []string{"score", "list", "--sort", "score:up"},
			wantErr: pagination.ErrInvalidSortOrder,
		},
		{
			name:    "bad sort direction",
			args:    []string{"score", "list", "--sort", "score:sideways"},
			wantErr: listview.ErrInvalidDirection,
		},
		{
			name:    "zero page",
			args:    []string{"score", "list", "--page", "0"},
			wantErr: pagination.ErrInvalidPage,
		},
		{
			name:    "interactive json",
			args:    []string{"score", "list", "--interactive", "-o", "json"},
			wantErr: cli.ErrInteractiveFormat,
		},
		{
			name:    "unknown output",
			args:    []string{"score", "list", "-o", "xml"},
			wantMsg: "unsupported output format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t, url)
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestScoreList_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, http.StatusInternalServerError, map[string]string{"message": "database offline"})
	}))
	t.Cleanup(srv.Close)
	setupCLITest(t, srv.URL+"/api")

	_, err := execute(t, "score", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching scores")
	assert.Contains(t, err.Error(), "database offline")

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestScoreDelete(t *testing.T) {
	f, url := newFakeQuizAPI(t, 3)
	setupCLITest(t, url)

	out, err := execute(t, "score", "delete", "sc01")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted score sc01")
	assert.Equal(t, []string{"sc01"}, f.deleted)
}

func TestScoreDelete_Many(t *testing.T) {
	f, url := newFakeQuizAPI(t, 3)
	setupCLITest(t, url)

	out, err := execute(t, "score", "delete", "sc00", "missing", "sc02", "sc00", "--concurrency", "2")
	require.Error(t, err)
	require.ErrorIs(t, err, api.ErrNotFound)
	assert.Contains(t, err.Error(), "1 of 3 failed")

	assert.Contains(t, out, "Deleted score sc00")
	assert.Contains(t, out, "Deleted score sc02")
	assert.NotContains(t, out, "Deleted score missing")
	assert.ElementsMatch(t, []string{"sc00", "sc02"}, f.deleted)
}

func TestTopicList_NoMatches(t *testing.T) {
	_, url := newFakeQuizAPI(t, 0)
	setupCLITest(t, url)

	out, err := execute(t, "topic", "list", "--search", "chemistry")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching records.")
	assert.Contains(t, out, "page 1 of 0 (0 items)")
}

func TestTopicList_IDNotSearchable(t *testing.T) {
	_, url := newFakeQuizAPI(t, 0)
	setupCLITest(t, url)

	out, err := execute(t, "topic", "list", "--search", "t1", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Items []quiz.Topic `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got.Items)
}

func TestTopicGet(t *testing.T) {
	_, url := newFakeQuizAPI(t, 0)
	setupCLITest(t, url)

	out, err := execute(t, "topic", "get", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "Physics")
	assert.Contains(t, out, "Science")

	_, err = execute(t, "topic", "get", "missing")
	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestTopicCreateAndUpdate(t *testing.T) {
	f, url := newFakeQuizAPI(t, 0)
	setupCLITest(t, url)

	out, err := execute(t, "topic", "create", "--name", "Astronomy", "--category", "Science")
	require.NoError(t, err)
	assert.Contains(t, out, `Created topic "Astronomy" (new-topic)`)
	assert.Equal(t, quiz.TopicInput{TopicName: "Astronomy", Category: "Science"}, f.lastTopic)

	out, err = execute(t, "topic", "update", "t1", "--category", "Natural Science", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, quiz.TopicInput{TopicName: "Physics", Category: "Natural Science"}, f.lastTopic,
		"unchanged fields are kept")

	var updated quiz.Topic
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, "t1", updated.ID)

	_, err = execute(t, "topic", "update", "t1")
	require.ErrorIs(t, err, cli.ErrNothingToUpdate)

	_, err = execute(t, "topic", "create")
	require.Error(t, err)
}

func TestSubtopicList(t *testing.T) {
	_, url := newFakeQuizAPI(t, 0)
	setupCLITest(t, url)

	out, err := execute(t, "subtopic", "list", "--topic", "t1", "--sort", "time:desc")
	require.NoError(t, err)

	assert.Contains(t, out, "Subtopics of Physics (Science)")
	assert.Contains(t, out, "page 1 of 1 (2 items)")
	assert.NotContains(t, out, "Sonnets")
	assert.Less(t, strings.Index(out, "Mechanics"), strings.Index(out, "Optics"))

	_, err = execute(t, "subtopic", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic")

	_, err = execute(t, "subtopic", "list", "--topic", "missing")
	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestListCache(t *testing.T) {
	f, url := newFakeQuizAPI(t, 3)
	setupCLITest(t, url)

	for range 2 {
		_, err := execute(t, "score", "list", "--cache-ttl", "5m", "-o", "json")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, f.scoreLists, "second list served from cache")

	out, err := execute(t, "cache", "status", "--cache-ttl", "5m")
	require.NoError(t, err)
	assert.Contains(t, out, "5m")
	assert.Contains(t, out, "1 (0 expired)")

	_, err = execute(t, "score", "delete", "sc00", "--cache-ttl", "5m")
	require.NoError(t, err)
	_, err = execute(t, "score", "list", "--cache-ttl", "5m", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, 2, f.scoreLists, "delete invalidates the cached list")

	out, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 cached lists")

	_, err = execute(t, "score", "list", "--no-cache", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, 3, f.scoreLists)

	_, err = execute(t, "score", "list", "--cache-ttl", "0")
	require.Error(t, err)
}

func TestSubtopicDelete_InvalidatesCachedLists(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "without topic", args: []string{"subtopic", "delete", "s1", "--cache-ttl", "5m"}},
		{name: "with topic", args: []string{"subtopic", "delete", "s1", "--topic", "t1", "--cache-ttl", "5m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, url := newFakeQuizAPI(t, 0)
			setupCLITest(t, url)

			out, err := execute(t, "subtopic", "list", "--topic", "t1", "--cache-ttl", "5m")
			require.NoError(t, err)
			assert.Contains(t, out, "Optics")

			out, err = execute(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, "Deleted subtopic s1")
			assert.Equal(t, []string{"s1"}, f.deleted)

			out, err = execute(t, "subtopic", "list", "--topic", "t1", "--cache-ttl", "5m")
			require.NoError(t, err)
			assert.NotContains(t, out, "Optics")
			assert.Contains(t, out, "page 1 of 1 (1 items)")
		})
	}
}

func TestVersionCmd(t *testing.T) {
	setupCLITest(t, "")

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "quizadmin ")
	assert.Contains(t, out, "commit:")
}
