package docgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with docgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithFilename adds a datafile field to the logger.
func (l *Logger) WithFilename(filename string) *Logger {
	return &Logger{
		Logger: l.Logger.With("datafile", filename),
	}
}

// LogLoad logs a datafile load operation.
func (l *Logger) LogLoad(ctx context.Context, filename string, docs, corrupt int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"datafile", filename,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"datafile", filename,
			"documents", docs,
			"corrupt_lines", corrupt,
		)
	}
}

// LogCompaction logs a compaction operation.
func (l *Logger) LogCompaction(ctx context.Context, filename string, lines int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "compaction failed",
			"datafile", filename,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "compaction completed",
			"datafile", filename,
			"lines", lines,
		)
	}
}

// LogAppend logs an append operation.
func (l *Logger) LogAppend(ctx context.Context, filename string, changes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "append failed",
			"datafile", filename,
			"changes", changes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "append completed",
			"datafile", filename,
			"changes", changes,
		)
	}
}
