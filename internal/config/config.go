package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gravitrone/jsonedit/internal/document"
	"github.com/gravitrone/jsonedit/internal/store"
)

// Config holds editor preferences stored at ~/.jsonedit/config.
type Config struct {
	SearchMode  string `yaml:"search_mode,omitempty"`
	VimKeys     bool   `yaml:"vim_keys"`
	ConfirmQuit *bool  `yaml:"confirm_quit,omitempty"`
	StateFile   string `yaml:"state_file,omitempty"`
	LogFile     string `yaml:"log_file,omitempty"`
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".jsonedit", "config")
}

// Default is the configuration used when no file exists.
func Default() *Config {
	return &Config{}
}

// Load reads and parses the config file. A missing file yields defaults.
func Load() (*Config, error) {
	path := Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := document.ParseSearchMode(cfg.SearchMode); err != nil {
		return nil, fmt.Errorf("config search_mode: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk, creating its directory.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// ShouldConfirmQuit reports whether quitting with unsaved changes asks first.
func (c *Config) ShouldConfirmQuit() bool {
	return c.ConfirmQuit == nil || *c.ConfirmQuit
}

// DefaultSearchMode returns the configured starting search mode.
func (c *Config) DefaultSearchMode() document.SearchMode {
	mode, _ := document.ParseSearchMode(c.SearchMode)
	return mode
}

// LastPathFile returns where the last opened path is recorded.
func (c *Config) LastPathFile() (string, error) {
	if c.StateFile != "" {
		return c.StateFile, nil
	}
	return store.DefaultLastPathFile()
}
