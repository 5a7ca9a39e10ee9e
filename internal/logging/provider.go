// Package logging adapts go-logger to the smarttext.Logger contract.
package logging

import (
	"context"
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

// Config holds the logger options exposed through the CLI config.
type Config struct {
	Level     string
	Format    string
	AddSource bool
}

// Provider hands out named loggers backed by one go-logger root.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds a provider. An empty level keeps go-logger's default;
// an empty format selects console output.
func NewProvider(cfg Config) (*Provider, error) {
	options := []glog.Option{}

	if cfg.Level != "" {
		level, ok := normalizeLevel(cfg.Level)
		if !ok {
			return nil, fmt.Errorf("logging: unsupported level %q", cfg.Level)
		}
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

// Logger returns the logger named name, or the root logger for "".
func (p *Provider) Logger(name string) *Logger {
	if p == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return wrap(p.root)
	}
	return wrap(p.root.GetLogger(name))
}

// Logger is a smarttext.Logger backed by go-logger. A nil *Logger discards
// everything.
type Logger struct {
	inner glog.Logger
}

var _ smarttext.Logger = (*Logger)(nil)

func wrap(inner glog.Logger) *Logger {
	if inner == nil {
		return nil
	}
	return &Logger{inner: inner}
}

func (l *Logger) Debug(msg string, args ...any) {
	if l != nil {
		l.inner.Debug(msg, args...)
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l != nil {
		l.inner.Info(msg, args...)
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	if l != nil {
		l.inner.Warn(msg, args...)
	}
}

func (l *Logger) Error(msg string, args ...any) {
	if l != nil {
		l.inner.Error(msg, args...)
	}
}

// WithContext returns a logger carrying ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if l == nil || ctx == nil {
		return l
	}
	return wrap(l.inner.WithContext(ctx))
}

// Levels lists the accepted level names.
var Levels = []string{"trace", "debug", "info", "warn", "error", "fatal"}

// Formats lists the accepted output formats.
var Formats = []string{"console", "json", "pretty"}

func normalizeLevel(level string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace, true
	case "debug":
		return glog.Debug, true
	case "info":
		return glog.Info, true
	case "warn", "warning":
		return glog.Warn, true
	case "error":
		return glog.Error, true
	case "fatal":
		return glog.Fatal, true
	}
	return "", false
}
