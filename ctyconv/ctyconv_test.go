package ctyconv_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/ardnew/hcl"
	"github.com/ardnew/hcl/ctyconv"
	"github.com/ardnew/hcl/prim"
)

func TestToCtyScalars(t *testing.T) {
	cv, err := ctyconv.ToCty(hcl.NullValue())
	require.NoError(t, err)
	require.True(t, cv.IsNull())

	cv, err = ctyconv.ToCty(hcl.BoolValue(true))
	require.NoError(t, err)
	require.Equal(t, cty.True, cv)

	cv, err = ctyconv.ToCty(hcl.NumberValue(prim.IntNumber(42)))
	require.NoError(t, err)
	require.True(t, cv.RawEquals(cty.NumberIntVal(42)))

	cv, err = ctyconv.ToCty(hcl.StringValue("hi"))
	require.NoError(t, err)
	require.Equal(t, cty.StringVal("hi"), cv)
}

func TestToCtyArrayBecomesTuple(t *testing.T) {
	v := hcl.ArrayValue([]hcl.Value{hcl.NumberValue(prim.IntNumber(1)), hcl.StringValue("a")})

	cv, err := ctyconv.ToCty(v)
	require.NoError(t, err)
	require.True(t, cv.Type().IsTupleType())
	require.Equal(t, 2, cv.LengthInt())
}

func TestToCtyObjectAndFromCtyRoundTripsAttributes(t *testing.T) {
	v := hcl.NewObjectValue([]hcl.ObjectField{
		{Key: "name", Value: hcl.StringValue("demo")},
		{Key: "port", Value: hcl.NumberValue(prim.IntNumber(80))},
	})

	cv, err := ctyconv.ToCty(v)
	require.NoError(t, err)
	require.True(t, cv.Type().IsObjectType())

	back, order, err := ctyconv.FromCty(cv)
	require.NoError(t, err)
	require.Equal(t, []string{"name", "port"}, order)

	name, ok := back.Field("name")
	require.True(t, ok)
	require.Equal(t, hcl.StringValue("demo"), name)

	port, ok := back.Field("port")
	require.True(t, ok)
	require.Equal(t, hcl.NumberValue(prim.IntNumber(80)), port)
}

func TestFromCtyListPreservesOrder(t *testing.T) {
	cv := cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2), cty.NumberIntVal(3)})

	v, _, err := ctyconv.FromCty(cv)
	require.NoError(t, err)

	arr, ok := v.AsArray()
	require.True(t, ok)
	require.Equal(t, []hcl.Value{
		hcl.NumberValue(prim.IntNumber(1)),
		hcl.NumberValue(prim.IntNumber(2)),
		hcl.NumberValue(prim.IntNumber(3)),
	}, arr)
}

func TestFromCtyUnknownValueIsError(t *testing.T) {
	_, _, err := ctyconv.FromCty(cty.UnknownVal(cty.String))
	require.Error(t, err)
}

// TestNestedObjectRoundTripsThroughCty exercises a deeper nested shape than
// the flat cases above. cmp.Diff is used instead of require.Equal here
// because Value defines its own Equal method (order-independent on object
// fields), which cmp picks up automatically and reports a structural diff
// from if the round trip ever drifts.
func TestNestedObjectRoundTripsThroughCty(t *testing.T) {
	v := hcl.NewObjectValue([]hcl.ObjectField{
		{Key: "enabled", Value: hcl.BoolValue(true)},
		{Key: "tags", Value: hcl.ArrayValue([]hcl.Value{hcl.StringValue("a"), hcl.StringValue("b")})},
		{Key: "meta", Value: hcl.NewObjectValue([]hcl.ObjectField{
			{Key: "owner", Value: hcl.StringValue("ops")},
		})},
	})

	cv, err := ctyconv.ToCty(v)
	require.NoError(t, err)

	back, _, err := ctyconv.FromCty(cv)
	require.NoError(t, err)

	if diff := cmp.Diff(v, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
