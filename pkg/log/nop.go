package log

import "context"

// NopLogger discards all log messages.
type NopLogger struct{}

// NewNopLogger creates a new no-op logger.
func NewNopLogger() NopLogger {
	return NopLogger{}
}

func (NopLogger) Debug(string, ...any)                {}
func (NopLogger) Info(string, ...any)                 {}
func (NopLogger) Warn(string, ...any)                 {}
func (NopLogger) Error(string, ...any)                {}
func (n NopLogger) With(...any) Logger                { return n }
func (NopLogger) Enabled(context.Context, Level) bool { return false }
