package hcl

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesBySentinelMessage(t *testing.T) {
	wrapped := ErrType.Wrap(errors.New("underlying cause"))

	require.True(t, errors.Is(wrapped, ErrType))
	require.False(t, errors.Is(wrapped, ErrSemantic))
	require.Contains(t, wrapped.Error(), "underlying cause")
}

func TestWrapErrorReturnsExistingErrorUnchanged(t *testing.T) {
	original := NewError("boom")

	require.Same(t, original, WrapError(original))
}

func TestWrapErrorWrapsPlainError(t *testing.T) {
	plain := errors.New("plain failure")

	wrapped := WrapError(plain)
	require.Equal(t, "plain failure", wrapped.Error())
	require.Equal(t, plain, wrapped.Unwrap())
}

func TestErrorWithAddsAttrsWithoutMutatingOriginal(t *testing.T) {
	original := NewError("base")
	enriched := original.With(slog.String("key", "value"))

	require.NotSame(t, original, enriched)
	require.Empty(t, original.attrs)
	require.Len(t, enriched.attrs, 1)
}
