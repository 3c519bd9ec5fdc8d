// Package logging configures structured logging with log/slog.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logging options.
type Config struct {
	// Level is the minimum log level to emit.
	Level slog.Level
	// JSON switches to JSON output (for running as a service).
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig reads LOG_LEVEL from the environment (DEBUG, INFO, WARN,
// ERROR; default INFO) and returns a text-output configuration.
func DefaultConfig() Config {
	level := slog.LevelInfo
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		level = parseLevel(s)
	}
	return Config{Level: level, Output: os.Stderr}
}

// ServerConfig is DefaultConfig with JSON output, used by the HTTP API.
func ServerConfig() Config {
	cfg := DefaultConfig()
	cfg.JSON = true
	return cfg
}

// Setup installs and returns the default slog logger.
func Setup(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
