// Package logging configures the structured logger used by the CLI and the
// HTTP service. The diagnostic core itself never logs.
//
// Logs go to stderr (text or JSON). A service attribute is attached to every
// record so output from several tools can be merged.
//
// Usage:
//
//	logger := logging.New(logging.Config{Level: logging.LevelInfo, Service: "hvacdiag"})
//	logger.Info("catalog loaded", "refrigerants", 3)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents log severity.
type Level int

const (
	// LevelDebug is for development troubleshooting.
	LevelDebug Level = iota

	// LevelInfo is for normal operational messages.
	// Example: "catalog loaded", "server listening"
	LevelInfo

	// LevelWarn is for potentially problematic situations.
	// Example: "catalog reload failed, keeping previous snapshot"
	LevelWarn

	// LevelError is for error conditions.
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel converts a config or flag value ("debug", "info", "warn",
// "error") to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Config configures logger behavior.
type Config struct {
	// Level is the minimum level to log.
	Level Level

	// JSON selects the JSON handler instead of key=value text.
	JSON bool

	// Service is attached to every record as the "service" attribute.
	Service string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates a logger with the given configuration.
func New(config Config) *slog.Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: config.Level.toSlogLevel(),
	}

	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	// Add service attribute to all logs
	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{
			slog.String("service", config.Service),
		})
	}

	return slog.New(handler)
}

// Init builds a logger and installs it as the slog default, so package-level
// slog calls in handlers pick it up.
func Init(config Config) *slog.Logger {
	logger := New(config)
	slog.SetDefault(logger)
	return logger
}
