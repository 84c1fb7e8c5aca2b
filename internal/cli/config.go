package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quizgame/quizadmin/internal/config"
)

const redacted = "********"

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		newConfigInitCmd(), newConfigShowCmd(), newConfigGetCmd(),
		newConfigSetCmd(), newConfigPathCmd(),
	)
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force, project bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Long: `Write a configuration file with default values.

By default the global file ($QUIZADMIN_HOME/config.yaml) is written. With
--project, .quizadmin/config.yaml is written in the current project
directory instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				return initProjectConfig(cmd, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "write the project-local overlay instead of the global file")
	return cmd
}

// initProjectConfig creates .quizadmin/config.yaml in the resolved project
// directory, or under the working directory when none was found.
func initProjectConfig(cmd *cobra.Command, force bool) error {
	projectDir := config.GetResolvedProjectDir()
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		projectDir = filepath.Join(wd, config.ProjectDirName)
	}
	return writeDefaultConfig(cmd, filepath.Join(projectDir, "config.yaml"), force)
}

// initGlobalConfig creates the global config file, or the --config file.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	path, err := configTarget(cmd, false)
	if err != nil {
		return err
	}
	return writeDefaultConfig(cmd, path, force)
}

func writeDefaultConfig(cmd *cobra.Command, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	cfg := config.Default()
	cfg.SetPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}

func newConfigShowCmd() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetGlobalConfig()
			if cfg.API.Token != "" && !showSecrets {
				cfg.API.Token = redacted
			}
			data, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("marshalling config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print the API token instead of masking it")
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Print one effective configuration value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var project bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a value in the configuration file",
		Example: `  quizadmin config set api.base_url https://quiz.example.com/api
  quizadmin config set output.page_size 25 --project`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configTarget(cmd, project)
			if err != nil {
				return err
			}

			// Only the file's own values are rewritten, never env or flag overrides.
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("loading config %s: %w", path, err)
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("Set %s in %s\n", args[0], path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&project, "project", false, "write to the project-local overlay")
	return cmd
}

// configTarget picks the file config set writes: --config, the project
// overlay with --project, or the global file.
func configTarget(cmd *cobra.Command, project bool) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	if project {
		dir := config.GetResolvedProjectDir()
		if dir == "" {
			return "", fmt.Errorf("%w: run config init --project first", config.ErrNoProject)
		}
		return filepath.Join(dir, "config.yaml"), nil
	}
	return config.GetConfigPath()
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			global, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "global:  %s\n", global)
			if dir := config.GetResolvedProjectDir(); dir != "" {
				fmt.Fprintf(out, "project: %s\n", filepath.Join(dir, "config.yaml"))
			}
			return nil
		},
	}
}
