package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quizgame/quizadmin/internal/cache"
	"github.com/quizgame/quizadmin/internal/config"
	"github.com/quizgame/quizadmin/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the quizadmin CLI.
// It loads configuration, wires up logging and tracing, and registers the
// score, topic, subtopic, config, cache and version subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "quizadmin",
		Short:   "Quiz game administration console",
		Long:    "quizadmin: search, sort and page through quiz scores, topics and subtopics",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "path to the config file (default $QUIZADMIN_HOME/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding a .quizadmin/config.yaml overlay")
	cmd.PersistentFlags().String("api-url", "", "quiz API base URL (overrides config file and env var)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().
		String("cache-ttl", "", "cache fetched lists for this long, in seconds or as a duration like 5m (enables the cache)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the list cache")

	cmd.AddCommand(
		newScoreCmd(), newTopicCmd(), newSubtopicCmd(),
		newConfigCmd(), newCacheCmd(), newVersionCmd(),
	)

	return cmd
}

// loadConfig builds the effective configuration and installs it as the
// global config. Precedence: defaults, global file, project overlay, env,
// then flags.
func loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()

	var cfg *config.Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		projectFlag, _ := cmd.Flags().GetString("project-dir")
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		projectDir := config.ResolveProjectDir(ctx, projectFlag, wd)
		config.SetResolvedProjectDir(projectDir)
		cfg = config.NewWithProjectDir(ctx, projectDir)
	}

	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	if raw, _ := cmd.Flags().GetString("cache-ttl"); raw != "" {
		ttl, err := cache.ParseTTL(raw)
		if err != nil {
			return fmt.Errorf("invalid --cache-ttl: %w", err)
		}
		cfg.Cache.Enabled = true
		cfg.Cache.TTLSeconds = ttl
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # List the ten best scores
  quizadmin score list --sort score:desc

  # Search topics and show the second page as JSON
  quizadmin topic list --search physics --page 2 --output json

  # Browse the subtopics of a topic interactively
  quizadmin subtopic list --topic 64b7f0c2e4 --interactive

  # Point at a different API for one command
  quizadmin score list --api-url https://quiz.example.com/api

  # Initialize configuration
  quizadmin config init

  # Set configuration values
  quizadmin config set output.default_format json`
