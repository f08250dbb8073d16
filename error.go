package hcl

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/hcl/diag"
)

// Error is the error type every public entry point in this package returns.
// It pairs a short message with an optional wrapped cause, in the style of
// the Error type HCL's host tooling already uses for its own error
// reporting: Unwrap makes it errors.Is/errors.As-compatible, and LogValue
// lets it be passed directly to a structured logger.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns a new Error carrying msg with no wrapped cause.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError returns err as an *Error: err itself if it already is one, or a
// new causeless-message Error wrapping it otherwise.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	parts := make([]string, 0, 2)

	if e.msg != "" {
		parts = append(parts, e.msg)
	}

	if e.err != nil {
		parts = append(parts, e.err.Error())
	}

	return strings.Join(parts, ": ")
}

// Unwrap exposes the wrapped cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is the same named sentinel as e, so that
// errors.Is(err, hcl.ErrType) still matches after wrapDiagnostics has
// copied the sentinel to attach a cause: copies share msg with the
// sentinel they were built from, which is otherwise unexported.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.msg == t.msg
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	attrs = append(attrs, e.attrs...)

	return slog.GroupValue(attrs...)
}

// Wrap returns a copy of e with cause replacing whatever it previously
// wrapped.
func (e *Error) Wrap(cause error) *Error {
	return &Error{msg: e.msg, err: cause, attrs: e.attrs}
}

// With returns a copy of e carrying additional structured log attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(merged, e.attrs)
	copy(merged[len(e.attrs):], attrs)

	return &Error{msg: e.msg, err: e.err, attrs: merged}
}

// The sentinel errors below correspond one-to-one with diag.Kind, so a
// caller can write errors.Is(err, hcl.ErrType) against anything Parse,
// Evaluate, or Format returns.
var (
	ErrLexical       = NewError("lexical error")
	ErrParse         = NewError("parse error")
	ErrResolution    = NewError("resolution error")
	ErrType          = NewError("type error")
	ErrRange         = NewError("range error")
	ErrSemantic      = NewError("semantic error")
	ErrSerialization = NewError("serialization error")
)

func sentinelForKind(k diag.Kind) *Error {
	switch k {
	case diag.KindLexical:
		return ErrLexical
	case diag.KindParse:
		return ErrParse
	case diag.KindResolution:
		return ErrResolution
	case diag.KindType:
		return ErrType
	case diag.KindRange:
		return ErrRange
	case diag.KindSemantic:
		return ErrSemantic
	case diag.KindSerialization:
		return ErrSerialization
	default:
		return NewError(k.String())
	}
}

// wrapDiagnostics converts diags into the *Error chain Parse/Evaluate/
// Format return: the sentinel matching the first error diagnostic's kind,
// wrapping diags itself so every individual diagnostic is still reachable
// via errors.As(err, &diag.Diagnostics{}).
func wrapDiagnostics(diags diag.Diagnostics) error {
	errs := diags.Errs()
	if len(errs) == 0 {
		return nil
	}

	return sentinelForKind(errs[0].Kind).Wrap(diags)
}
