package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/quizgame/quizadmin/internal/logging"
	"github.com/quizgame/quizadmin/pkg/version"
)

// Header names set on every request.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 4096

// Client talks to the quiz API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
	UserAgent  string
	Limiter    *rate.Limiter
}

// Options configure NewClient.
type Options struct {
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// NewClient returns a client for baseURL. A zero RequestsPerSecond disables
// rate limiting.
func NewClient(baseURL string, opts Options) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: opts.Timeout},
		Token:      opts.Token,
		UserAgent:  version.UserAgent(),
	}
	if opts.RequestsPerSecond > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return c
}

// do sends a request with an optional JSON body and decodes a JSON response
// into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	logger := logging.FromContext(ctx).With().
		Str("component", "api").
		Str("method", method).
		Str("path", path).
		Logger()

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s %s: waiting for rate limiter: %w", method, path, err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encoding body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s %s: building request: %w", method, path, err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set(HeaderTraceID, traceID)
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		logger.Debug().Err(err).Str("request_id", requestID).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// errorMessage extracts {"message": "..."} or falls back to the raw body.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(data))
}

// list GETs a JSON array; null or an empty body yields an empty slice.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func escape(id string) string {
	return url.PathEscape(id)
}
