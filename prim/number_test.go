package prim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/hcl/prim"
)

func TestNumberStringFormsMatchKind(t *testing.T) {
	require.Equal(t, "42", prim.IntNumber(42).String())
	require.Equal(t, "-7", prim.IntNumber(-7).String())

	f, err := prim.FloatNumber(2.5)
	require.NoError(t, err)
	require.Equal(t, "2.5", f.String())
}

func TestFloatNumberRejectsNonFinite(t *testing.T) {
	_, err := prim.FloatNumber(math.Inf(1))
	require.Error(t, err)

	_, err = prim.FloatNumber(math.NaN())
	require.Error(t, err)
}

func TestNumberAddOverflowsToFloat(t *testing.T) {
	n := prim.UintNumber(1<<64 - 1).Add(prim.IntNumber(2))
	require.True(t, n.IsFloat())
}

func TestNumberAddStaysIntegerWhenNoOverflow(t *testing.T) {
	n := prim.IntNumber(2).Add(prim.IntNumber(3))
	require.True(t, n.IsInt())
	require.Equal(t, "5", n.String())
}

func TestNumberDivCollapsesToIntegerWhenWhole(t *testing.T) {
	n := prim.IntNumber(4).Div(prim.IntNumber(2))
	require.True(t, n.IsInt())
	require.Equal(t, "2", n.String())
}

func TestNumberDivStaysFloatWhenFractional(t *testing.T) {
	n := prim.IntNumber(5).Div(prim.IntNumber(2))
	require.True(t, n.IsFloat())
	require.Equal(t, "2.5", n.String())
}

func TestNumberModFollowsDividendSign(t *testing.T) {
	require.Equal(t, "1", prim.IntNumber(7).Mod(prim.IntNumber(3)).String())
	require.Equal(t, "-1", prim.IntNumber(-7).Mod(prim.IntNumber(3)).String())
}

func TestNumberCmpAndEqualIgnoreRepresentation(t *testing.T) {
	intTwo := prim.IntNumber(2)
	floatTwo, err := prim.FloatNumber(2.0)
	require.NoError(t, err)

	require.True(t, intTwo.IsInt())
	require.True(t, floatTwo.IsInt(), "a whole float collapses back to integer representation")
	require.True(t, intTwo.Equal(floatTwo))
	require.Equal(t, 0, intTwo.Cmp(floatTwo))
	require.Equal(t, -1, prim.IntNumber(1).Cmp(prim.IntNumber(2)))
}

func TestNumberNegFlipsSignAcrossRepresentations(t *testing.T) {
	require.Equal(t, "-5", prim.IntNumber(5).Neg().String())
	require.Equal(t, "5", prim.IntNumber(-5).Neg().String())
}

func TestNumberIsZero(t *testing.T) {
	require.True(t, prim.IntNumber(0).IsZero())
	require.False(t, prim.IntNumber(1).IsZero())
}

func TestNumberInt64AndUint64Bounds(t *testing.T) {
	i, ok := prim.IntNumber(-3).Int64()
	require.True(t, ok)
	require.Equal(t, int64(-3), i)

	_, ok = prim.IntNumber(-3).Uint64()
	require.False(t, ok)

	u, ok := prim.UintNumber(3).Uint64()
	require.True(t, ok)
	require.Equal(t, uint64(3), u)
}
