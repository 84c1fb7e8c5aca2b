// Package logging configures zerolog for quizadmin and carries loggers and
// trace IDs through context.Context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environment variables that override the configured log settings.
const (
	EnvLogLevel  = "QUIZADMIN_LOG_LEVEL"
	EnvLogFormat = "QUIZADMIN_LOG_FORMAT"
)

// Output and format names accepted in Config.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	OutputStderr  = "stderr"
	OutputFile    = "file"
	OutputDiscard = "discard"
)

// Config describes where and how to log.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// LogPathResult is the outcome of NewLoggerWithPath. When a log file was
// requested but could not be opened, the logger falls back to stderr and
// FallbackUsed is set.
type LogPathResult struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file, if one was opened.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger writing to w with the configured level and format.
func NewLogger(w io.Writer, cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	if cfg.Format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(lvl).Hook(TraceHook{}).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// NewLoggerWithPath builds a logger for cfg, opening cfg.File when the output is
// a file. Failure to open the file is not fatal.
func NewLoggerWithPath(cfg Config) LogPathResult {
	switch cfg.Output {
	case OutputDiscard:
		return LogPathResult{Logger: NewLogger(io.Discard, cfg)}
	case OutputFile:
		if cfg.File == "" {
			return LogPathResult{
				Logger:         NewLogger(os.Stderr, cfg),
				FallbackUsed:   true,
				FallbackReason: "no log file configured",
			}
		}
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
			return LogPathResult{
				Logger:         NewLogger(os.Stderr, cfg),
				FallbackUsed:   true,
				FallbackReason: err.Error(),
			}
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return LogPathResult{
				Logger:         NewLogger(os.Stderr, cfg),
				FallbackUsed:   true,
				FallbackReason: err.Error(),
			}
		}
		return LogPathResult{
			Logger:    NewLogger(f, cfg),
			UsingFile: true,
			FilePath:  cfg.File,
			file:      f,
		}
	default:
		return LogPathResult{Logger: NewLogger(os.Stderr, cfg)}
	}
}

// ComponentLogger returns l tagged with a component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells the user where logs are going.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user the log file could not be used.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file (%s), logging to stderr\n", reason)
}
