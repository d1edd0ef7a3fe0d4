// Package logging provides the service's JSON slog logger and the structured
// records it writes for events, queries, cache access and publishes.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LogLevel is the textual level read from LOG_LEVEL
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// slogLevel falls back to info for anything slog does not recognise
func (lvl LogLevel) slogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lvl)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type Config struct {
	Level       LogLevel
	ServiceName string
	Environment string
	Version     string
	Output      io.Writer
	AddSource   bool
}

// DefaultConfig reads LOG_LEVEL, ENVIRONMENT and VERSION. Output is stdout.
func DefaultConfig(serviceName string) *Config {
	config := &Config{
		Level:       LevelInfo,
		ServiceName: serviceName,
		Environment: "development",
		Version:     "unknown",
		Output:      os.Stdout,
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Level = LogLevel(strings.ToLower(v))
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		config.Environment = v
	}
	if v := os.Getenv("VERSION"); v != "" {
		config.Version = v
	}
	return config
}

// Logger is a slog.Logger with the service's structured helpers
type Logger struct {
	*slog.Logger
}

// New builds a JSON logger tagged with service, environment and version.
// Timestamps are written in UTC.
func New(config *Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       config.Level.slogLevel(),
		AddSource:   config.AddSource,
		ReplaceAttr: utcTime,
	})
	base := slog.New(handler).With(
		"service", config.ServiceName,
		"environment", config.Environment,
		"version", config.Version,
	)
	return &Logger{Logger: base}
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.TimeKey {
		return a
	}
	if t, ok := a.Value.Any().(time.Time); ok {
		a.Value = slog.StringValue(t.UTC().Format(time.RFC3339Nano))
	}
	return a
}

// SetDefault installs l as the process-wide slog logger
func (l *Logger) SetDefault() {
	slog.SetDefault(l.Logger)
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// WithError returns l unchanged when err is nil
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.with("error", err.Error())
}

func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

func (l *Logger) WithOperation(operation string) *Logger {
	return l.with("operation", operation)
}
