package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	EnvConfig  = "PANELS_CONFIG"
	EnvWorkers = "PANELS_WORKERS"
	EnvTimeout = "PANELS_TIMEOUT"
	EnvSession = "AOC_SESSION"
)

// Config holds settings shared by the panels and aocfetch commands.
// Values come from the config file, then the environment; command-line
// flags are applied on top by the caller.
type Config struct {
	Workers  int           `yaml:"workers"  json:"workers"`
	Timeout  time.Duration `yaml:"-"        json:"-"`
	Language string        `yaml:"language" json:"language"`
	Session  string        `yaml:"session"  json:"session"`
	CacheDir string        `yaml:"cacheDir" json:"cacheDir"`
	BaseURL  string        `yaml:"baseURL"  json:"baseURL"`

	RawTimeout string `yaml:"timeout" json:"timeout"`
}

// DefaultConfigPath returns $PANELS_CONFIG, or config.yaml in the user's
// config directory.
func DefaultConfigPath() (string, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return path, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "panels", "config.yaml"), nil
}

// LoadConfigFromFile loads a config from a YAML or JSON file.
// Tries YAML first, then falls back to JSON parsing.
func LoadConfigFromFile(filename string, warn io.Writer) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	if err := yaml.Unmarshal(data, &config); err != nil {
		if jsonErr := json.Unmarshal(data, &config); jsonErr != nil {
			return nil, fmt.Errorf("failed to parse config file as YAML or JSON: YAML error: %v, JSON error: %v", err, jsonErr)
		}
	}

	if config.RawTimeout != "" {
		config.Timeout, err = time.ParseDuration(config.RawTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout in %s: %w", filename, err)
		}
	}

	if config.Session != "" && warn != nil {
		if info, err := os.Stat(filename); err == nil && info.Mode().Perm() > 0600 {
			fmt.Fprintf(warn, "Warning: config file %s holds a session token and has overly permissive permissions (%o), consider chmod 600\n", filename, info.Mode().Perm())
		}
	}

	return &config, nil
}

// LoadConfig reads the default config file if it exists and applies
// environment overrides.
func LoadConfig(warn io.Writer) (*Config, error) {
	config := &Config{}

	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	if loaded, err := LoadConfigFromFile(path, warn); err == nil {
		config = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s: %q", EnvWorkers, v)
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvSession); v != "" {
		c.Session = v
	}
	return nil
}
