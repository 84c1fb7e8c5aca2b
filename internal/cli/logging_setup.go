package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quizgame/quizadmin/internal/config"
	"github.com/quizgame/quizadmin/internal/logging"
)

// tuiLogFile is where logs go while the interactive screen owns the
// terminal and no log file is configured.
const tuiLogFile = "quizadmin.log"

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	if envLevel := os.Getenv(logging.EnvLogLevel); envLevel != "" && !debug {
		loggingCfg.Level = envLevel
	}
	if envFormat := os.Getenv(logging.EnvLogFormat); envFormat != "" {
		loggingCfg.Format = envFormat
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}

// fileOnlyLogging returns ctx with a logger that never writes to the
// terminal: the configured log file, or quizadmin.log in the config
// directory. If no file can be opened logging is discarded. The returned
// func closes the file.
func fileOnlyLogging(ctx context.Context) (context.Context, func() error) {
	loggingCfg := config.GetLoggingConfig()
	if envLevel := os.Getenv(logging.EnvLogLevel); envLevel != "" {
		loggingCfg.Level = envLevel
	}
	if loggingCfg.File == "" {
		if dir, err := config.GetConfigDir(); err == nil {
			loggingCfg.File = filepath.Join(dir, "logs", tuiLogFile)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	l := result.Logger
	if !result.UsingFile {
		l = zerolog.Nop()
	}
	l = logging.ComponentLogger(l, "tui")
	return l.WithContext(ctx), result.Close
}
