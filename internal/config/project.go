package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/quizgame/quizadmin/internal/logging"
)

// ProjectDirName is the directory holding a project-local config.yaml.
const ProjectDirName = ".quizadmin"

// EnvProjectDir overrides project directory discovery.
const EnvProjectDir = "QUIZADMIN_PROJECT_DIR"

// ErrNoProject is returned by FindProjectDir when no ancestor holds a
// .quizadmin directory.
var ErrNoProject = errors.New("no .quizadmin directory found")

// resolvedProjectDir holds the project directory chosen at startup.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the directory stored by SetResolvedProjectDir.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// FindProjectDir walks up from startDir looking for a .quizadmin directory
// and returns its absolute path. The user's config home is never treated as
// a project directory.
func FindProjectDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	globalDir, _ := GetConfigDir()

	for {
		candidate := filepath.Join(dir, ProjectDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() && candidate != globalDir {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// ResolveProjectDir determines the project-local .quizadmin directory.
// It checks, in order, flagValue (--project-dir), $QUIZADMIN_PROJECT_DIR,
// then a walk up from startDir. It returns "" when no project is found and
// never creates anything.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	dir, err := FindProjectDir(startDir)
	if err != nil {
		if !errors.Is(err, ErrNoProject) {
			logging.FromContext(ctx).Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}
	return dir
}

// NewWithProjectDir loads the global config and overlays the project-local
// config.yaml from projectDir, if any. Environment overrides still win.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()
	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global config")
		return cfg
	}
	merged.applyEnv()
	return merged
}

func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}
	if filepath.Base(abs) == ProjectDirName {
		return abs
	}
	return filepath.Join(abs, ProjectDirName)
}
