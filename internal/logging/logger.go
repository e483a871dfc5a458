// Package logging defines the structured-logging contract used across the
// backend. Services receive a Logger at construction; nothing logs through
// package-level state.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs:
//
//	log.Warn(ctx, "nutrition estimate failed", "recipe", name, "error", err)
//
// Degraded-dependency events (failed enrichment, failed notification) log
// at Warn and must not propagate as errors.
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs, e.g. a request id.
	With(args ...any) Logger
}
