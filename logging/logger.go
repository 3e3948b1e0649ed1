// Package logging wraps log/slog with rowseg field names.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Field keys shared by all rowseg log records.
const (
	KeyLoadID = "load_id"
	KeyTable  = "table"
	KeyMode   = "mode"
	KeyRows   = "rows"
	KeyBytes  = "bytes"
	KeyError  = "error"
)

// Logger wraps slog.Logger with loader-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewText creates a Logger writing human-readable text to w.
func NewText(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSON creates a Logger writing JSON records to w.
func NewJSON(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop creates a Logger that discards everything.
func Noop() *Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

// ParseLevel parses "debug", "info", "warn" or "error" (case-insensitive).
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// WithLoad tags every record with the load ID and table name.
func (l *Logger) WithLoad(loadID, table string) *Logger {
	return &Logger{Logger: l.With(KeyLoadID, loadID, KeyTable, table)}
}

// LogLoad logs the outcome of one table load.
func (l *Logger) LogLoad(ctx context.Context, mode string, rows int, size int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "table load failed",
			KeyMode, mode,
			KeyBytes, size,
			KeyError, err,
		)

		return
	}

	l.DebugContext(ctx, "table loaded",
		KeyMode, mode,
		KeyRows, rows,
		KeyBytes, size,
	)
}

// LogRelease logs a payload release failure. Successful releases are not logged.
func (l *Logger) LogRelease(ctx context.Context, err error) {
	if err == nil {
		return
	}

	l.WarnContext(ctx, "payload release failed", KeyError, err)
}

// LogBatch logs the outcome of a batch load.
func (l *Logger) LogBatch(ctx context.Context, total, loaded int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch load aborted",
			"total", total,
			"loaded", loaded,
			KeyError, err,
		)

		return
	}

	l.InfoContext(ctx, "batch load completed", "total", total)
}
