package apcluster

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with apcluster-specific helpers so runs log with
// consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. If handler is nil, a
// text handler to stderr at Info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})

	return &Logger{Logger: slog.New(handler)}
}

// WithVertexCount adds a vertex count field.
func (l *Logger) WithVertexCount(n int) *Logger {
	return &Logger{Logger: l.Logger.With("vertices", n)}
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, vertices, clusters, iterations int, converged bool, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering run failed",
			"vertices", vertices,
			"error", err,
		)

		return
	}

	l.InfoContext(ctx, "clustering run completed",
		"vertices", vertices,
		"clusters", clusters,
		"iterations", iterations,
		"converged", converged,
		"duration", duration,
	)
}
