package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid sqlite config",
			config: Config{Backend: BackendSQLite, Database: "/tmp/twk.db"},
		},
		{
			name:    "sqlite without database",
			config:  Config{Backend: BackendSQLite},
			wantErr: true,
			errMsg:  "database is required",
		},
		{
			name: "valid api config",
			config: Config{
				Backend:  BackendAPI,
				URL:      "https://board.example.com",
				Email:    "user@example.com",
				APIToken: "token123",
			},
		},
		{
			name: "api on localhost over http",
			config: Config{
				Backend:  BackendAPI,
				URL:      "http://localhost:8080",
				Email:    "user@example.com",
				APIToken: "token123",
			},
		},
		{
			name:    "missing URL",
			config:  Config{Backend: BackendAPI, Email: "user@example.com", APIToken: "token123"},
			wantErr: true,
			errMsg:  "url is required",
		},
		{
			name:    "missing email",
			config:  Config{Backend: BackendAPI, URL: "https://board.example.com", APIToken: "token123"},
			wantErr: true,
			errMsg:  "email is required",
		},
		{
			name:    "missing API token",
			config:  Config{Backend: BackendAPI, URL: "https://board.example.com", Email: "user@example.com"},
			wantErr: true,
			errMsg:  "api_token is required",
		},
		{
			name: "invalid URL scheme",
			config: Config{
				Backend:  BackendAPI,
				URL:      "ftp://board.example.com",
				Email:    "user@example.com",
				APIToken: "token123",
			},
			wantErr: true,
			errMsg:  "url must use https",
		},
		{
			name:    "unknown backend",
			config:  Config{Backend: "postgres", Database: "x"},
			wantErr: true,
			errMsg:  "must be sqlite or api",
		},
		{
			name:    "unknown output format",
			config:  Config{Backend: BackendSQLite, Database: "x", OutputFormat: "xml"},
			wantErr: true,
			errMsg:  "output_format",
		},
		{
			name:    "unknown log level",
			config:  Config{Backend: BackendSQLite, Database: "x", LogLevel: "loud"},
			wantErr: true,
			errMsg:  "log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join("/data", "twk", "twk.db"), cfg.Database)
	assert.Equal(t, DefaultActorID, cfg.ActorID)

	api := &Config{Backend: BackendAPI, ActorID: 9}
	api.ApplyDefaults()
	assert.Empty(t, api.Database)
	assert.Equal(t, int64(9), api.ActorID)
}

func TestConfig_NormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		inputURL string
		expected string
	}{
		{"no trailing slash", "https://board.example.com", "https://board.example.com"},
		{"trailing slash", "https://board.example.com/", "https://board.example.com"},
		{"several trailing slashes", "https://board.example.com//", "https://board.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{URL: tt.inputURL}
			cfg.NormalizeURL()
			assert.Equal(t, tt.expected, cfg.URL)
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		t.Setenv("TWK_BACKEND", "api")
		t.Setenv("TWK_DATABASE", "/tmp/env.db")
		t.Setenv("TWK_URL", "https://env.example.com")
		t.Setenv("TWK_EMAIL", "env@example.com")
		t.Setenv("TWK_API_TOKEN", "env-token")
		t.Setenv("TWK_ACTOR_ID", "42")
		t.Setenv("TWK_LOG_LEVEL", "debug")
		t.Setenv("TWK_LOG_FORMAT", "json")
		t.Setenv("TWK_OUTPUT_FORMAT", "plain")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, Config{
			Backend:      "api",
			Database:     "/tmp/env.db",
			URL:          "https://env.example.com",
			Email:        "env@example.com",
			APIToken:     "env-token",
			ActorID:      42,
			LogLevel:     "debug",
			LogFormat:    "json",
			OutputFormat: "plain",
		}, *cfg)
	})

	t.Run("empty env vars do not override", func(t *testing.T) {
		t.Setenv("TWK_URL", "https://override.example.com")
		t.Setenv("TWK_EMAIL", "")
		t.Setenv("TWK_ACTOR_ID", "not-a-number")

		cfg := &Config{
			URL:     "https://original.example.com",
			Email:   "original@example.com",
			ActorID: 3,
		}
		cfg.LoadFromEnv()

		assert.Equal(t, "https://override.example.com", cfg.URL)
		assert.Equal(t, "original@example.com", cfg.Email)
		assert.Equal(t, int64(3), cfg.ActorID)
	})

	t.Run("TASKWIKI_* fallback", func(t *testing.T) {
		t.Setenv("TWK_URL", "")
		t.Setenv("TASKWIKI_URL", "https://shared.example.com")
		t.Setenv("TWK_EMAIL", "twk@example.com")
		t.Setenv("TASKWIKI_EMAIL", "shared@example.com")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "https://shared.example.com", cfg.URL)
		assert.Equal(t, "twk@example.com", cfg.Email)
	})
}

func TestGetEnvWithFallback(t *testing.T) {
	t.Run("returns primary when set", func(t *testing.T) {
		t.Setenv("TEST_PRIMARY", "primary-value")
		t.Setenv("TEST_FALLBACK", "fallback-value")
		assert.Equal(t, "primary-value", getEnvWithFallback("TEST_PRIMARY", "TEST_FALLBACK"))
	})

	t.Run("returns fallback when primary empty", func(t *testing.T) {
		t.Setenv("TEST_PRIMARY", "")
		t.Setenv("TEST_FALLBACK", "fallback-value")
		assert.Equal(t, "fallback-value", getEnvWithFallback("TEST_PRIMARY", "TEST_FALLBACK"))
	})

	t.Run("returns empty when both empty", func(t *testing.T) {
		t.Setenv("TEST_PRIMARY", "")
		t.Setenv("TEST_FALLBACK", "")
		assert.Equal(t, "", getEnvWithFallback("TEST_PRIMARY", "TEST_FALLBACK"))
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		assert.Equal(t, filepath.Join("/xdg", "twk", "config.yml"), DefaultConfigPath())
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/home/tester")
		path := DefaultConfigPath()
		assert.True(t, strings.HasPrefix(path, "/home/tester"))
		assert.Contains(t, path, "twk")
		assert.Equal(t, ".yml", filepath.Ext(path))
	})
}

func TestConfig_Save_and_Load(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yml")

	original := Config{
		Backend:      BackendAPI,
		URL:          "https://board.example.com",
		Email:        "test@example.com",
		APIToken:     "test-token",
		ActorID:      7,
		LogLevel:     "info",
		OutputFormat: "json",
	}

	require.NoError(t, original.Save(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "config holds the API token")

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
}

func TestLoadWithEnv_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TWK_BACKEND", "")
	t.Setenv("TASKWIKI_BACKEND", "")
	t.Setenv("TWK_DATABASE", "/tmp/from-env.db")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/from-env.db", cfg.Database)
	assert.NoError(t, cfg.Validate())
}
