package prim_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/hcl/prim"
)

func TestIsValidIdentifier(t *testing.T) {
	require.True(t, prim.IsValidIdentifier("foo"))
	require.True(t, prim.IsValidIdentifier("_foo-bar9"))
	require.False(t, prim.IsValidIdentifier(""))
	require.False(t, prim.IsValidIdentifier("9foo"))
	require.False(t, prim.IsValidIdentifier("foo bar"))
}

func TestNewIdentifierRejectsInvalidName(t *testing.T) {
	_, err := prim.NewIdentifier("9foo")
	require.Error(t, err)

	id, err := prim.NewIdentifier("foo")
	require.NoError(t, err)
	require.Equal(t, "foo", id.String())
}

func TestMustNewIdentifierPanicsOnInvalidName(t *testing.T) {
	require.Panics(t, func() { prim.MustNewIdentifier("9foo") })
}

func TestSanitizeIdentifier(t *testing.T) {
	require.Equal(t, "_", prim.SanitizeIdentifier("").String())
	require.Equal(t, "_9abc", prim.SanitizeIdentifier("9abc").String())
	require.Equal(t, "foo_bar", prim.SanitizeIdentifier("foo bar").String())
}

func TestIdentifierEqual(t *testing.T) {
	a := prim.MustNewIdentifier("foo")
	b := prim.MustNewIdentifier("foo")
	c := prim.MustNewIdentifier("bar")

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}
