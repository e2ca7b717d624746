package piq

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with piq-specific context.
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

// WithPattern adds a pattern field to the logger.
func (l *Logger) WithPattern(pattern string) *Logger {
	return &Logger{
		Logger: l.Logger.With("pattern", pattern),
	}
}

// WithID adds an item identifier field to the logger.
func (l *Logger) WithID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// LogEnumerate logs an enumeration pass.
func (l *Logger) LogEnumerate(ctx context.Context, candidates int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "enumeration failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "enumeration completed",
			"candidates", candidates,
		)
	}
}

// LogResolve logs a per-item facet resolution.
func (l *Logger) LogResolve(ctx context.Context, id, facet string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "resolve failed",
			"id", id,
			"facet", facet,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "resolve completed",
			"id", id,
			"facet", facet,
		)
	}
}

// LogQuery logs a completed query.
func (l *Logger) LogQuery(ctx context.Context, candidates, matched int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"candidates", candidates,
			"matched", matched,
		)
	}
}
