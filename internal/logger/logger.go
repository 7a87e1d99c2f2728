package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"
)

// FluentConfig configures the optional Fluent Bit sink.
type FluentConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string
	Tag     string
}

// Config controls where and how logs are written.
type Config struct {
	Level  string
	JSON   bool
	Color  bool
	Writer io.Writer
	Fluent FluentConfig
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the application logger. The returned close function flushes the
// Fluent Bit client when one was created.
func New(cfg Config) (*slog.Logger, func() error, error) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	level := ParseLevel(cfg.Level)

	var stdout slog.Handler
	switch {
	case cfg.JSON:
		stdout = slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{Level: level})
	default:
		stdout = tint.NewHandler(cfg.Writer, &tint.Options{
			Level:      level,
			TimeFormat: "2006-01-02 15:04:05",
			NoColor:    !cfg.Color,
		})
	}

	closeFn := func() error { return nil }
	if !cfg.Fluent.Enabled {
		return slog.New(stdout), closeFn, nil
	}

	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.Fluent.Host,
		FluentPort: cfg.Fluent.Port,
		Async:      true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create fluent client: %w", err)
	}

	fh := NewFluentHandler(client, cfg.Fluent.Tag, ParseLevel(cfg.Fluent.Level))
	return slog.New(NewMultiHandler(stdout, fh)), client.Close, nil
}
