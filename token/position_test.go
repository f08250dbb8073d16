package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/hcl/token"
)

func TestPosStringAndValidity(t *testing.T) {
	require.False(t, token.Pos{}.IsValid())

	p := token.Pos{Byte: 4, Line: 2, Column: 3}
	require.True(t, p.IsValid())
	require.Equal(t, "2:3", p.String())
}

func TestRangeStringElidesEmptyFilename(t *testing.T) {
	r := token.Range{
		Start: token.Pos{Line: 1, Column: 1},
		End:   token.Pos{Line: 1, Column: 5},
	}
	require.Equal(t, "1:1-1:5", r.String())

	r.Filename = "test.hcl"
	require.Equal(t, "test.hcl:1:1-1:5", r.String())
}

func TestRangeContainsPos(t *testing.T) {
	r := token.Range{Start: token.Pos{Byte: 2}, End: token.Pos{Byte: 5}}

	require.False(t, r.ContainsPos(1))
	require.True(t, r.ContainsPos(2))
	require.True(t, r.ContainsPos(4))
	require.False(t, r.ContainsPos(5))
}

func TestRangeMergeCoversBoth(t *testing.T) {
	a := token.Range{
		Start: token.Pos{Byte: 2, Line: 1, Column: 3},
		End:   token.Pos{Byte: 5, Line: 1, Column: 6},
	}
	b := token.Range{
		Start: token.Pos{Byte: 0, Line: 1, Column: 1},
		End:   token.Pos{Byte: 3, Line: 1, Column: 4},
	}

	merged := a.Merge(b)
	require.Equal(t, 0, merged.Start.Byte)
	require.Equal(t, 5, merged.End.Byte)
}

func TestRangePtrTo(t *testing.T) {
	r := token.Range{Start: token.Pos{Line: 1, Column: 1}}

	p := r.PtrTo()
	require.Equal(t, r, *p)
}
