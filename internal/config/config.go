// Package config loads and persists user preferences.
//
// Preferences live in a YAML file under the user config directory
// (~/.config/notare/config.yaml on Linux). A missing file is not an
// error: the zero configuration is fully usable.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/notare-dev/notare/internal/note"
)

const (
	appDirName     = "notare"
	configFileName = "config.yaml"
	logFileName    = "notare.log"

	defaultRootName = "notare"
)

// Theme overrides individual palette colors with "#rrggbb" values.
// Empty fields keep the built-in palette color.
type Theme struct {
	Accent    string `yaml:"accent,omitempty"`
	Selection string `yaml:"selection,omitempty"`
	Header    string `yaml:"header,omitempty"`
	Dim       string `yaml:"dim,omitempty"`
	Bold      string `yaml:"bold,omitempty"`
}

// Config holds the user-tunable settings.
type Config struct {
	// Editor overrides $EDITOR for opening notes.
	Editor string `yaml:"editor,omitempty"`
	// AutoSync runs a git sync when the session ends.
	AutoSync bool `yaml:"auto_sync"`
	// Sort names the startup document ordering: modified, name or size.
	Sort string `yaml:"sort,omitempty"`
	// Theme recolors parts of the interface.
	Theme Theme `yaml:"theme,omitempty"`

	path string `yaml:"-"`
}

// Default returns the configuration used when no file is present.
// Auto-sync stays off unless asked for; everything else is zero.
func Default() *Config {
	return &Config{}
}

// Load reads the configuration at path. A missing file yields the
// defaults with a nil error; an unreadable or malformed file yields the
// defaults alongside the error so callers can log and keep going.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		reset := Default()
		reset.path = path
		return reset, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration back to the file it was loaded from,
// creating parent directories as needed.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
		c.path = path
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SortMode interprets the configured sort name. Unknown names fall back
// to sorting by modification time.
func (c *Config) SortMode() note.SortMode {
	return note.ParseSortMode(c.Sort)
}

// SetSortMode records mode so the next Save persists it.
func (c *Config) SetSortMode(mode note.SortMode) {
	c.Sort = mode.String()
}

// Path reports where the configuration is (or will be) stored.
func (c *Config) Path() string {
	return c.path
}

// DefaultPath returns the standard location of the config file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LogPath returns the standard location of the session log file.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

// Dir returns the notare directory under the user config directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// DefaultRoot returns the note folder used when none is given on the
// command line.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home dir: %w", err)
	}
	return filepath.Join(home, defaultRootName), nil
}
