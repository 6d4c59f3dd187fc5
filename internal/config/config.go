package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"plotsort/internal/application"
)

//go:embed sample_config.toml
var sampleConfig string

// Environment variables read by Load
const (
	EnvConfig   = "PLOTSORT_CONFIG"
	EnvSource   = "PLOTSORT_SOURCE"
	EnvLogLevel = "PLOTSORT_LOG_LEVEL"
)

// History configures the run journal
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	Limit   int    `toml:"limit"`
}

// Lock configures where run lock files live
type Lock struct {
	Dir string `toml:"dir"`
}

// Config is the user configuration shared by the CLI, TUI and MCP server
type Config struct {
	SourceDir string  `toml:"source_dir"`
	LogLevel  string  `toml:"log_level"`
	Quiet     bool    `toml:"quiet"`
	History   History `toml:"history"`
	Lock      Lock    `toml:"lock"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LogLevel: "warn",
		History: History{
			Enabled: true,
			Limit:   20,
		},
	}
}

// Load reads the config file at path, or the default location when path is
// empty, then applies environment overrides. A missing file is not an error.
// Returns the config, the resolved file path, and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/plotsort/config.toml
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "plotsort", "config.toml"), nil
}

// Validate checks values that cannot be normalized
func (c *Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
		}
	}
	if c.History.Limit < 0 {
		return errors.New("history.limit must not be negative")
	}
	return nil
}

// CreateSample writes the commented sample configuration to path
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Sample returns the commented sample configuration
func Sample() string {
	return sampleConfig
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}

	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSource); v != "" {
		c.SourceDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) normalize() error {
	var err error
	if c.SourceDir, err = expandPath(c.SourceDir); err != nil {
		return fmt.Errorf("source_dir: %w", err)
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	if c.Lock.Dir, err = expandPath(c.Lock.Dir); err != nil {
		return fmt.Errorf("lock.dir: %w", err)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	pathValue, err := application.ResolveHome(pathValue)
	if err != nil {
		return "", err
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
