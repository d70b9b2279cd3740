package domain

import "time"

// ConfigFileName is the name of the repository-local config file.
const ConfigFileName = "storyflow.toml"

// Config represents the application configuration.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Git     GitConfig     `toml:"git"`
	Log     LogConfig     `toml:"log"`
}

// ProjectConfig holds [project] settings.
type ProjectConfig struct {
	TasksDir string `toml:"tasks_dir"` // Relative to the repository root
}

// GitConfig holds [git] settings.
type GitConfig struct {
	BaseBranch     string `toml:"base_branch"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LogConfig holds [log] settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// NewDefaultConfig returns the configuration used when no config file
// exists.
func NewDefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{TasksDir: "tasks"},
		Git:     GitConfig{BaseBranch: "main", TimeoutSeconds: 30},
		Log:     LogConfig{Level: "info"},
	}
}

// GitTimeout returns the subprocess timeout as a duration.
func (c *Config) GitTimeout() time.Duration {
	return time.Duration(c.Git.TimeoutSeconds) * time.Second
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults, then global, then
	// repository-local).
	Load() (*Config, error)
}
