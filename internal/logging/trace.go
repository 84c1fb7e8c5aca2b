package logging

import (
	"context"
	"crypto/rand"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type traceIDKey struct{}

// GenerateTraceID returns a new ULID string.
func GenerateTraceID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// ContextWithTraceID returns a copy of ctx carrying traceID.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// GetOrGenerateTraceID returns the trace ID in ctx, generating one if absent.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return GenerateTraceID()
}

// TraceHook adds trace_id to events logged with .Ctx(ctx).
type TraceHook struct{}

// Run implements zerolog.Hook.
func (TraceHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if id := TraceIDFromContext(e.GetCtx()); id != "" {
		e.Str("trace_id", id)
	}
}
