package ttgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with ttgo-specific context.
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

// WithTable adds the table geometry fields to the logger.
func (l *Logger) WithTable(capacity, associativity int) *Logger {
	return &Logger{
		Logger: l.Logger.With("capacity", capacity, "associativity", associativity),
	}
}

// LogSnapshotDump logs a snapshot dump operation.
func (l *Logger) LogSnapshotDump(entries int, err error) {
	if err != nil {
		l.Error("snapshot dump failed",
			"entries", entries,
			"error", err,
		)
	} else {
		l.Info("snapshot dumped",
			"entries", entries,
		)
	}
}

// LogSnapshotRestore logs a snapshot restore operation.
func (l *Logger) LogSnapshotRestore(entries int, err error) {
	if err != nil {
		l.Error("snapshot restore failed",
			"error", err,
		)
	} else {
		l.Info("snapshot restored",
			"entries", entries,
		)
	}
}
