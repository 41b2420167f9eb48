package log

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"

	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

// Output formats accepted by SetupLogger.
const (
	FormatConsole = "console" // zerolog ConsoleWriter
	FormatJSON    = "json"    // slog JSON with stack traces
	FormatText    = "text"    // slog through tint
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// SetupLogger builds the logger used by the CLI. JSON and text formats also
// become the process-wide slog default.
func SetupLogger(w io.Writer, level, format string) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatConsole, "":
		return NewConsoleLogger(w, lvl), nil
	case FormatJSON:
		ops := slog.HandlerOptions{
			Level: slog.Level(lvl),
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				switch attr.Key {
				case slog.LevelKey:
					attr.Key = "severity"
				case slog.MessageKey:
					attr.Key = "message"
				}
				return attr
			},
		}
		logger := slog.New(WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops)))
		slog.SetDefault(logger)
		return NewSlogLogger(logger), nil
	case FormatText:
		handler := tint.NewHandler(w, &tint.Options{
			Level:      slog.Level(lvl),
			TimeFormat: time.Kitchen,
		})
		logger := slog.New(WrapByErrFmtHandler(handler))
		slog.SetDefault(logger)
		return NewSlogLogger(logger), nil
	default:
		return nil, errors.NewValidationError("log_format", "must be one of console, json, text", format)
	}
}

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SlogLogger implements Logger on top of *slog.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps an existing slog logger.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

func (s *SlogLogger) Debug(msg string, fields ...any) { s.logger.Debug(msg, slogArgs(fields)...) }
func (s *SlogLogger) Info(msg string, fields ...any)  { s.logger.Info(msg, slogArgs(fields)...) }
func (s *SlogLogger) Warn(msg string, fields ...any)  { s.logger.Warn(msg, slogArgs(fields)...) }
func (s *SlogLogger) Error(msg string, fields ...any) { s.logger.Error(msg, slogArgs(fields)...) }

// With returns a child logger carrying fields on every record.
func (s *SlogLogger) With(fields ...any) Logger {
	return &SlogLogger{logger: s.logger.With(slogArgs(fields)...)}
}

// Enabled reports whether the handler emits records at level.
func (s *SlogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.logger.Enabled(ctx, slog.Level(level))
}

// slogArgs rewrites a bare error in key position into an ErrAttr so that
// ErrFmtHandler can attach its stack trace.
func slogArgs(fields []any) []any {
	args := make([]any, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		if err, ok := fields[i].(error); ok {
			args = append(args, ErrAttr(err))
			continue
		}
		if i+1 < len(fields) {
			if err, ok := fields[i+1].(error); ok && fields[i] == ErrAttrKey {
				args = append(args, ErrAttr(err))
				i++
				continue
			}
		}
		args = append(args, fields[i])
	}
	return args
}
