// Package cmdutil holds the helpers shared by twk commands: config loading,
// backend selection, logger construction and input reading.
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/open-cli-collective/taskwiki-cli/api"
	"github.com/open-cli-collective/taskwiki-cli/internal/config"
	"github.com/open-cli-collective/taskwiki-cli/internal/logging"
	"github.com/open-cli-collective/taskwiki-cli/internal/store"
	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

var configPath string

// SetConfigPath overrides the config file location for this process. An
// empty path restores the default.
func SetConfigPath(path string) {
	configPath = path
}

// ConfigPath returns the config file location in use.
func ConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// LoadConfig loads and validates the configuration.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'twk init' to configure)", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'twk init' to configure)", err)
	}
	cfg.NormalizeURL()
	return cfg, nil
}

// Connect loads the config and opens its backend. The caller closes the
// backend.
func Connect(ctx context.Context) (*config.Config, *Backend, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, backend, nil
}

// Backend is the collaborator selected by the config.
type Backend struct {
	smarttext.Collaborator

	Store  *store.Store
	Client *api.Client
}

// OpenBackend opens the configured backend. SQLite databases are created
// and migrated on first use.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	if cfg.Backend == config.BackendAPI {
		client := api.NewClient(cfg.URL, cfg.Email, cfg.APIToken)
		return &Backend{Collaborator: client, Client: client}, nil
	}

	if cfg.Database != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	s, err := store.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return &Backend{Collaborator: s, Store: s}, nil
}

// Close releases the backend.
func (b *Backend) Close() error {
	if b == nil || b.Store == nil {
		return nil
	}
	return b.Store.Close()
}

// NewLogger builds the named logger from the config. verbose forces debug
// output. It falls back to a discarding logger when the config holds an
// unusable setting.
func NewLogger(cfg *config.Config, name string, verbose bool) smarttext.Logger {
	level := cfg.LogLevel
	switch {
	case verbose:
		level = "debug"
	case level == "":
		level = "error"
	}
	provider, err := logging.NewProvider(logging.Config{Level: level, Format: cfg.LogFormat})
	if err != nil {
		return smarttext.NoOpLogger()
	}
	return provider.Logger(name)
}

// ReadInput reads the named file, or stdin when path is empty or "-".
func ReadInput(path string, stdin io.Reader) (string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	if stdin == nil {
		stdin = os.Stdin
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// InputArg returns the optional file argument.
func InputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
