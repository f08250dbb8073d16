// Package xlog provides the minimal concurrency-safe [log/slog] wrapper used
// internally by the evaluator (through hcl.Context) to trace its own
// decisions. It is not a public logging product: callers who want
// observability inject a [Logger] built from their own [slog.Handler];
// callers who don't get a Logger whose methods are no-ops.
package xlog

import (
	"context"
	"log/slog"
)

// Level mirrors [slog.Level] with one addition, [LevelTrace], for the very
// chatty per-token/per-node messages emitted while walking the grammar.
type Level slog.Level

const levelTraceOffset = -8

// Supported levels, from least to most severe.
const (
	LevelTrace Level = Level(levelTraceOffset)
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return slog.Level(l).String()
	}
}

// Logger wraps a *slog.Logger. The zero value is a valid, fully no-op
// Logger: every method on it returns immediately without allocating.
type Logger struct {
	inner *slog.Logger
}

// New wraps an existing *slog.Logger. Passing nil yields a no-op Logger.
func New(inner *slog.Logger) Logger {
	return Logger{inner: inner}
}

// IsZero reports whether the Logger discards everything written to it.
func (l Logger) IsZero() bool {
	return l.inner == nil
}

// With returns a Logger that includes the given attributes on every
// subsequent record.
func (l Logger) With(args ...any) Logger {
	if l.inner == nil {
		return l
	}

	return Logger{inner: l.inner.With(args...)}
}

func (l Logger) log(ctx context.Context, level Level, msg string, args ...any) {
	if l.inner == nil {
		return
	}

	if !l.inner.Enabled(ctx, slog.Level(level)) {
		return
	}

	l.inner.Log(ctx, slog.Level(level), msg, args...)
}

// TraceContext logs msg at [LevelTrace].
func (l Logger) TraceContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelTrace, msg, args...)
}

// DebugContext logs msg at [LevelDebug].
func (l Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelDebug, msg, args...)
}

// WarnContext logs msg at [LevelWarn].
func (l Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelWarn, msg, args...)
}
