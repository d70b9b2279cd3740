package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmendes/storyflow/internal/domain"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoader_Defaults(t *testing.T) {
	l := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "tasks", cfg.Project.TasksDir)
	assert.Equal(t, "main", cfg.Git.BaseBranch)
	assert.Equal(t, 30, cfg.Git.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoader_GlobalOverridesDefaults(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, filepath.Join(globalDir, "config.toml"), `
[git]
base_branch = "develop"

[log]
level = "debug"
`)

	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "develop", cfg.Git.BaseBranch)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched fields keep their defaults.
	assert.Equal(t, "tasks", cfg.Project.TasksDir)
	assert.Equal(t, 30, cfg.Git.TimeoutSeconds)
}

func TestLoader_RepoOverridesGlobal(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, filepath.Join(globalDir, "config.toml"), `
[git]
base_branch = "develop"
timeout_seconds = 10
`)

	projectRoot := t.TempDir()
	writeConfig(t, filepath.Join(projectRoot, domain.ConfigFileName), `
[project]
tasks_dir = "backlog"

[git]
base_branch = "trunk"
`)

	cfg, err := NewLoaderWithGlobalDir(projectRoot, globalDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "backlog", cfg.Project.TasksDir)
	assert.Equal(t, "trunk", cfg.Git.BaseBranch)
	// Repo file is silent on the timeout, so the global value wins.
	assert.Equal(t, 10, cfg.Git.TimeoutSeconds)
}

func TestLoader_MalformedTOML(t *testing.T) {
	projectRoot := t.TempDir()
	writeConfig(t, filepath.Join(projectRoot, domain.ConfigFileName), "not [valid toml")

	_, err := NewLoaderWithGlobalDir(projectRoot, t.TempDir()).Load()
	assert.Error(t, err)
}

func TestConfig_GitTimeout(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	assert.Equal(t, "30s", cfg.GitTimeout().String())
}
