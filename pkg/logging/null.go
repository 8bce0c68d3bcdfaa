package logging

import "context"

// NullLogger discards every entry. It stands in for a real logger in
// tests and in code paths where no logging destination is wired up,
// so callers never need a nil check.
type NullLogger struct{}

// NewNullLogger returns a logger that drops everything
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Debug(ctx context.Context, msg string, fields Fields) {}

func (l *NullLogger) Info(ctx context.Context, msg string, fields Fields) {}

func (l *NullLogger) Warn(ctx context.Context, msg string, fields Fields) {}

func (l *NullLogger) Error(ctx context.Context, msg string, err error, fields Fields) {}

// WithFields is a no-op; bound fields would never be printed anyway
func (l *NullLogger) WithFields(fields Fields) Logger {
	return l
}

func (l *NullLogger) Close() error {
	return nil
}
