// Package config provides configuration loading from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/hmendes/storyflow/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	projectRoot   string // Directory holding the repo-local storyflow.toml
	globalConfDir string // Global config directory (e.g. ~/.config/storyflow)
}

// NewLoader creates a new Loader for the given project root.
func NewLoader(projectRoot string) *Loader {
	return &Loader{
		projectRoot:   projectRoot,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a Loader with a custom global config
// directory. This is useful for testing.
func NewLoaderWithGlobalDir(projectRoot, globalConfDir string) *Loader {
	return &Loader{
		projectRoot:   projectRoot,
		globalConfDir: globalConfDir,
	}
}

func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "storyflow")
}

// Load returns the merged configuration: defaults, overridden by the global
// config, overridden by the repository-local config.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	globalPath := filepath.Join(l.globalConfDir, "config.toml")
	global, err := l.loadFile(globalPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	repoPath := filepath.Join(l.projectRoot, domain.ConfigFileName)
	repo, err := l.loadFile(repoPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if global != nil {
		mergeConfig(base, global)
	}
	if repo != nil {
		mergeConfig(base, repo)
	}
	return base, nil
}

func (l *Loader) loadFile(path string) (*domain.Config, error) {
	content, err := os.ReadFile(path) //nolint:gosec // config paths are derived from fixed locations
	if err != nil {
		return nil, err
	}
	var cfg domain.Config
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig overlays non-zero fields of src onto dst.
func mergeConfig(dst, src *domain.Config) {
	if src.Project.TasksDir != "" {
		dst.Project.TasksDir = src.Project.TasksDir
	}
	if src.Git.BaseBranch != "" {
		dst.Git.BaseBranch = src.Git.BaseBranch
	}
	if src.Git.TimeoutSeconds > 0 {
		dst.Git.TimeoutSeconds = src.Git.TimeoutSeconds
	}
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
}
