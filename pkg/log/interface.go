// Package log provides a structured logging interface for stepreg.
//
// The interface is slog-compatible so that the selector, the loader and the
// CLI can log through zerolog (the default console backend) or log/slog
// (JSON or tint-colored text) without knowing which one is active.
//
// Example usage:
//
//	logger := log.NewZerologLogger(zerolog.New(os.Stderr)).With(
//	    log.ComponentKey, "stepwise",
//	)
//	logger.Info("candidate accepted",
//	    log.StageKey, "growing",
//	    log.CandidateKey, 4,
//	    log.FStatKey, 12.7,
//	)
package log

import (
	"context"
	"strings"

	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key/value pairs. An error value in key position is
// logged under the "error" key, so both of these are accepted:
//
//	logger.Error("selection failed", err, log.StageKey, "pruning")
//	logger.Error("selection failed", "error", err)
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
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

// ParseLevel converts "debug", "info", "warn" or "error" into a Level.
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
		return LevelInfo, errors.NewValidationError("log_level", "must be one of debug, info, warn, error", s)
	}
}
