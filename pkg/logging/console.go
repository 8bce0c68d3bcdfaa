package logging

import (
	"context"
	"io"
	"os"
	"sync"
)

// ConsoleLogger writes timestamped, leveled text lines to the console.
// Debug and info go to Out (stdout), warnings and errors to ErrOut
// (stderr).
type ConsoleLogger struct {
	level  Level
	format Format
	out    io.Writer
	errOut io.Writer
	fields Fields
	mu     *sync.Mutex
}

// ConsoleLoggerConfig holds configuration for console logging
type ConsoleLoggerConfig struct {
	// Level is the minimum log level
	Level Level
	// Format is the output format (json or text)
	Format Format
	// Out receives debug and info lines; defaults to os.Stdout
	Out io.Writer
	// ErrOut receives warning and error lines; defaults to os.Stderr
	ErrOut io.Writer
}

// NewConsoleLogger creates a new console logger
func NewConsoleLogger(config ConsoleLoggerConfig) *ConsoleLogger {
	out := config.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := config.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	return &ConsoleLogger{
		level:  config.Level,
		format: config.Format,
		out:    out,
		errOut: errOut,
		mu:     &sync.Mutex{},
	}
}

// Debug logs a debug message
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields Fields) {
	if l.level <= DebugLevel {
		l.write(l.out, DebugLevel, msg, nil, fields)
	}
}

// Info logs an info message
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields Fields) {
	if l.level <= InfoLevel {
		l.write(l.out, InfoLevel, msg, nil, fields)
	}
}

// Warn logs a warning message
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields Fields) {
	if l.level <= WarnLevel {
		l.write(l.errOut, WarnLevel, msg, nil, fields)
	}
}

// Error logs an error message
func (l *ConsoleLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	if l.level <= ErrorLevel {
		l.write(l.errOut, ErrorLevel, msg, err, fields)
	}
}

// WithFields returns a logger with additional fields
func (l *ConsoleLogger) WithFields(fields Fields) Logger {
	return &ConsoleLogger{
		level:  l.level,
		format: l.format,
		out:    l.out,
		errOut: l.errOut,
		fields: mergeFields(l.fields, fields),
		mu:     l.mu,
	}
}

// Close is a no-op for the console logger
func (l *ConsoleLogger) Close() error {
	return nil
}

func (l *ConsoleLogger) write(w io.Writer, level Level, msg string, err error, fields Fields) {
	var line []byte
	if l.format == FormatJSON {
		line = formatJSON(level, msg, err, mergeFields(l.fields, fields))
	} else {
		line = formatText(level, msg, err, mergeFields(l.fields, fields))
	}
	if line == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	w.Write(line)
}
