package hcl_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/hcl"
	"github.com/ardnew/hcl/internal/xlog"
	"github.com/ardnew/hcl/prim"
)

func TestValueToExpressionRoundTrips(t *testing.T) {
	v := hcl.NewObjectValue([]hcl.ObjectField{
		{Key: "name", Value: hcl.StringValue("x")},
		{Key: "tags", Value: hcl.ArrayValue([]hcl.Value{hcl.NumberValue(prim.IntNumber(1)), hcl.BoolValue(true), hcl.NullValue()})},
	})

	expr := hcl.ValueToExpression(v)

	out, err := hcl.ExpressionToValue(expr, hcl.NewContext())
	require.NoError(t, err)
	require.Equal(t, v, out)
}

func TestFormatValueThenParseExpressionRoundTrips(t *testing.T) {
	v := hcl.ArrayValue([]hcl.Value{hcl.StringValue("a"), hcl.NumberValue(prim.IntNumber(2))})

	text, err := hcl.FormatValue(v)
	require.NoError(t, err)

	expr, err := hcl.ParseExpression("test.hcl", []byte(text))
	require.NoError(t, err)

	out, err := hcl.Evaluate(expr, hcl.NewContext())
	require.NoError(t, err)
	require.Equal(t, v, out)
}

func TestToJSONShape(t *testing.T) {
	src := `
name = "demo"

server "web" "prod" {
  port = 80
}

server "web" "stage" {
  port = 81
}
`

	body, err := hcl.Parse("test.hcl", []byte(src))
	require.NoError(t, err)

	out, err := hcl.ToJSON(body, hcl.NewContext())
	require.NoError(t, err)
	require.JSONEq(t, `{
		"name": "demo",
		"server": [
			{"web": {"prod": {"port": 80}}},
			{"web": {"stage": {"port": 81}}}
		]
	}`, string(out))
}

func TestContextBuilderChildScopeShadowsParent(t *testing.T) {
	parent := hcl.NewContextBuilder(nil).DeclareVariable("x", hcl.NumberValue(prim.IntNumber(1))).Build()
	child := hcl.NewContextBuilder(parent).DeclareVariable("x", hcl.NumberValue(prim.IntNumber(2))).Build()

	pv, ok := parent.Variable("x")
	require.True(t, ok)
	require.Equal(t, hcl.NumberValue(prim.IntNumber(1)), pv)

	cv, ok := child.Variable("x")
	require.True(t, ok)
	require.Equal(t, hcl.NumberValue(prim.IntNumber(2)), cv)
}

func TestContextBuilderLoggerIsInheritedByChildContext(t *testing.T) {
	var buf bytes.Buffer

	logger := xlog.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.Level(xlog.LevelTrace)})))

	ctx := hcl.NewContextBuilder(nil).DeclareVariable("name", hcl.StringValue("x")).WithLogger(logger).Build()
	child := hcl.ChildContext(ctx, map[string]hcl.Value{"inner": hcl.NullValue()})

	require.False(t, child.Logger().IsZero())

	expr, err := hcl.ParseExpression("test.hcl", []byte("name"))
	require.NoError(t, err)

	_, err = hcl.Evaluate(expr, ctx)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "resolved variable")
}
