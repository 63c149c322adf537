// Package logging configures the process-wide structured logger.
//
// The example corpus has no structured-logging dependency anywhere (the
// teacher module writes to os.Stderr with fmt.Fprintf); slog is the stdlib
// upgrade consistent with that texture rather than a third-party logging
// framework the corpus never reaches for.
package logging

import (
	"context"
	"log/slog"
	"os"
)

// New returns a slog.Logger writing structured JSON to stderr at the given
// level.
func New(level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

type ctxKey struct{}

// WithLogger returns a context carrying logger, retrievable with FromContext.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stashed by WithLogger, or slog.Default() if
// none was set.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
