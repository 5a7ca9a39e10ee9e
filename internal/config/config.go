// Package config provides configuration management for twk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendAPI    = "api"
)

// DefaultActorID is the acting user when none is configured.
const DefaultActorID int64 = 1

// Config holds the twk configuration.
type Config struct {
	Backend      string `yaml:"backend,omitempty" json:"backend"`
	Database     string `yaml:"database,omitempty" json:"database"`
	URL          string `yaml:"url,omitempty" json:"url"`
	Email        string `yaml:"email,omitempty" json:"email"`
	APIToken     string `yaml:"api_token,omitempty" json:"api_token"`
	ActorID      int64  `yaml:"actor_id,omitempty" json:"actor_id"`
	LogLevel     string `yaml:"log_level,omitempty" json:"log_level"`
	LogFormat    string `yaml:"log_format,omitempty" json:"log_format"`
	OutputFormat string `yaml:"output_format,omitempty" json:"output_format"`
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendSQLite
	}
	if c.Backend == BackendSQLite && c.Database == "" {
		c.Database = DefaultDatabasePath()
	}
	if c.ActorID == 0 {
		c.ActorID = DefaultActorID
	}
}

// Validate checks that the fields required by the selected backend are
// present and valid.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.In(BackendSQLite, BackendAPI).Error("must be sqlite or api")),
		validation.Field(&c.ActorID, validation.Min(int64(0))),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")),
		validation.Field(&c.LogFormat, validation.In("console", "json", "pretty")),
		validation.Field(&c.OutputFormat, validation.In("table", "json", "plain")),
	)
	if err != nil {
		return err
	}

	switch c.Backend {
	case BackendAPI:
		if c.URL == "" {
			return errors.New("url is required")
		}
		if c.Email == "" {
			return errors.New("email is required")
		}
		if c.APIToken == "" {
			return errors.New("api_token is required")
		}
		// Validate URL scheme
		if !strings.HasPrefix(c.URL, "https://") && !strings.HasPrefix(c.URL, "http://localhost") {
			return errors.New("url must use https")
		}
	case BackendSQLite, "":
		if c.Database == "" {
			return errors.New("database is required")
		}
	}

	return nil
}

// NormalizeURL trims trailing slashes from the API URL.
func (c *Config) NormalizeURL() {
	c.URL = strings.TrimRight(c.URL, "/")
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: TWK_* → TASKWIKI_* → existing config value
func (c *Config) LoadFromEnv() {
	if v := getEnvWithFallback("TWK_BACKEND", "TASKWIKI_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := getEnvWithFallback("TWK_DATABASE", "TASKWIKI_DATABASE"); v != "" {
		c.Database = v
	}
	if v := getEnvWithFallback("TWK_URL", "TASKWIKI_URL"); v != "" {
		c.URL = v
	}
	if v := getEnvWithFallback("TWK_EMAIL", "TASKWIKI_EMAIL"); v != "" {
		c.Email = v
	}
	if v := getEnvWithFallback("TWK_API_TOKEN", "TASKWIKI_API_TOKEN"); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv("TWK_ACTOR_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.ActorID = id
		}
	}
	if v := os.Getenv("TWK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TWK_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("TWK_OUTPUT_FORMAT"); v != "" {
		c.OutputFormat = v
	}
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "twk", "config.yml")
	}

	// Fall back to ~/.config/twk/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".twk", "config.yml")
	}

	return filepath.Join(home, ".config", "twk", "config.yml")
}

// DefaultDatabasePath returns the default SQLite database path.
func DefaultDatabasePath() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "twk", "twk.db")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".twk", "twk.db")
	}

	return filepath.Join(home, ".local", "share", "twk", "twk.db")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with restricted permissions (user read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file, overrides it with environment
// variables and applies defaults.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		// If file doesn't exist, start with empty config
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}
