package hcl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/hcl/diag"
	"github.com/ardnew/hcl/prim"
)

func parseExprValue(t *testing.T, src string, ctx *Context) Value {
	t.Helper()

	expr, err := ParseExpression("test.hcl", []byte(src))
	require.NoError(t, err)

	v, err := Evaluate(expr, ctx)
	require.NoError(t, err)

	return v
}

func TestEvaluateLiteralsEvaluateToThemselves(t *testing.T) {
	ctx := NewContext()

	require.Equal(t, NullValue(), parseExprValue(t, "null", ctx))
	require.Equal(t, BoolValue(true), parseExprValue(t, "true", ctx))
	require.Equal(t, NumberValue(prim.IntNumber(42)), parseExprValue(t, "42", ctx))
	require.Equal(t, StringValue("hi"), parseExprValue(t, `"hi"`, ctx))
}

func TestEvaluateVariableLookupAndSuggestion(t *testing.T) {
	ctx := NewContextBuilder(nil).DeclareVariable("name", StringValue("ok")).Build()

	require.Equal(t, StringValue("ok"), parseExprValue(t, "name", ctx))

	expr, err := ParseExpression("test.hcl", []byte("nam"))
	require.NoError(t, err)

	_, err = Evaluate(expr, ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrResolution)
	require.Contains(t, err.Error(), `"name"`)

	var diags diag.Diagnostics
	require.True(t, errors.As(err, &diags))
	require.Len(t, diags.Errs(), 1)
	require.Contains(t, diags.Errs()[0].Detail, `"name"`)
}

func TestEvaluateArrayAndObjectConstruction(t *testing.T) {
	ctx := NewContext()

	v := parseExprValue(t, `[1, 2, 3]`, ctx)
	arr, ok := v.AsArray()
	require.True(t, ok)
	require.Len(t, arr, 3)

	v = parseExprValue(t, `{foo = 1, bar = 2}`, ctx)
	fields, ok := v.AsObject()
	require.True(t, ok)
	require.Len(t, fields, 2)
	require.Equal(t, "foo", fields[0].Key)
	require.Equal(t, "bar", fields[1].Key)
}

func TestEvaluateTraversalAttributeIndexAndSplat(t *testing.T) {
	obj := NewObjectValue([]ObjectField{{Key: "name", Value: StringValue("a")}})
	list := ArrayValue([]Value{obj, NewObjectValue([]ObjectField{{Key: "name", Value: StringValue("b")}})})

	ctx := NewContextBuilder(nil).DeclareVariable("items", list).Build()

	require.Equal(t, StringValue("a"), parseExprValue(t, "items[0].name", ctx))

	v := parseExprValue(t, "items.*.name", ctx)
	arr, ok := v.AsArray()
	require.True(t, ok)
	require.Equal(t, []Value{StringValue("a"), StringValue("b")}, arr)
}

func TestEvaluateTraversalNullShortCircuit(t *testing.T) {
	ctx := NewContextBuilder(nil).DeclareVariable("n", NullValue()).Build()

	v := parseExprValue(t, "n.*.name", ctx)
	arr, ok := v.AsArray()
	require.True(t, ok)
	require.Empty(t, arr)

	expr, err := ParseExpression("test.hcl", []byte("n.name"))
	require.NoError(t, err)

	_, err = Evaluate(expr, ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrType)
}

func TestEvaluateFuncCallArityAndExpandFinal(t *testing.T) {
	sum := &Function{
		Variadic: &Param{Name: "n", Kind: KindNumber},
		Impl: func(args []Value) (Value, error) {
			total := prim.IntNumber(0)

			for _, a := range args {
				n, _ := a.AsNumber()
				total = total.Add(n)
			}

			return NumberValue(total), nil
		},
	}

	ctx := NewContextBuilder(nil).DeclareFunction("sum", sum).Build()

	require.Equal(t, NumberValue(prim.IntNumber(6)), parseExprValue(t, "sum(1, 2, 3)", ctx))
	require.Equal(t, NumberValue(prim.IntNumber(6)), parseExprValue(t, "sum([1, 2, 3]...)", ctx))
}

func TestEvaluateConditionalShortCircuit(t *testing.T) {
	ctx := NewContext()

	require.Equal(t, StringValue("b"), parseExprValue(t, `false ? "a" : "b"`, ctx))
	require.Equal(t, BoolValue(true), parseExprValue(t, "1 == 1 && 2 != 3", ctx))
	require.Equal(t, StringValue("b"), parseExprValue(t, `false ? missing : "b"`, ctx))
	require.Equal(t, BoolValue(false), parseExprValue(t, "false && missing", ctx))
}

func TestEvaluateOperatorPrecedenceAndConditional(t *testing.T) {
	ctx := NewContext()

	require.Equal(t, NumberValue(prim.IntNumber(7)), parseExprValue(t, "true ? 1 + 2 * 3 : 0", ctx))
}

func TestEvaluateDivisionIsAlwaysFloating(t *testing.T) {
	ctx := NewContext()

	four := parseExprValue(t, "4 / 2", ctx)
	n, _ := four.AsNumber()
	require.True(t, n.IsInt())
	require.Equal(t, "2", n.String())

	half := parseExprValue(t, "5 / 2", ctx)
	n, _ = half.AsNumber()
	require.Equal(t, "2.5", n.String())
}

func TestEvaluateDivisionByZeroIsError(t *testing.T) {
	expr, err := ParseExpression("test.hcl", []byte("1 / 0"))
	require.NoError(t, err)

	_, err = Evaluate(expr, NewContext())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSemantic)
}

func TestEvaluateForExprObjectGroupingAndDuplicateRejection(t *testing.T) {
	entry := func(k string, v int64) Value {
		return NewObjectValue([]ObjectField{{Key: "k", Value: StringValue(k)}, {Key: "v", Value: NumberValue(prim.IntNumber(v))}})
	}

	lst := ArrayValue([]Value{entry("a", 1), entry("b", 2), entry("a", 3)})
	ctx := NewContextBuilder(nil).DeclareVariable("lst", lst).Build()

	v := parseExprValue(t, "{for e in lst : e.k => e.v...}", ctx)
	fields, ok := v.AsObject()
	require.True(t, ok)
	require.Len(t, fields, 2)

	aVal, found := v.Field("a")
	require.True(t, found)
	arr, ok := aVal.AsArray()
	require.True(t, ok)
	require.Equal(t, []Value{NumberValue(prim.IntNumber(1)), NumberValue(prim.IntNumber(3))}, arr)

	expr, err := ParseExpression("test.hcl", []byte("{for e in lst : e.k => e.v}"))
	require.NoError(t, err)

	_, err = Evaluate(expr, ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSemantic)
}

func TestEvaluateTemplateInterpolationUnwrapping(t *testing.T) {
	list := ArrayValue([]Value{NumberValue(prim.IntNumber(1)), NumberValue(prim.IntNumber(2)), NumberValue(prim.IntNumber(3))})
	ctx := NewContextBuilder(nil).DeclareVariable("x", list).Build()

	v := parseExprValue(t, `"${x}"`, ctx)
	require.Equal(t, list, v)

	v = parseExprValue(t, `"${(x)}"`, ctx)
	require.Equal(t, StringValue("[1, 2, 3]"), v)

	v = parseExprValue(t, `"a${x}b"`, ctx)
	require.Equal(t, StringValue("a[1, 2, 3]b"), v)
}

func TestEvaluateTemplateMarkerEscaping(t *testing.T) {
	ctx := NewContext()

	require.Equal(t, StringValue("${x}"), parseExprValue(t, `"$${x}"`, ctx))
	require.Equal(t, StringValue("%{x}"), parseExprValue(t, `"%%{x}"`, ctx))
}

func TestEvaluateTemplateWhitespaceStripping(t *testing.T) {
	ctx := NewContextBuilder(nil).DeclareVariable("cond", BoolValue(true)).Build()

	v := parseExprValue(t, "\"a\n%{if cond~}\n  b\n%{~endif}\nc\"", ctx)
	require.Equal(t, StringValue("a\nb\nc"), v)
}

func TestEvaluateHeredocIndentStripping(t *testing.T) {
	src := "x = <<-EOT\n    Foo\n    Bar\n  EOT\n"

	body, err := Parse("test.hcl", []byte(src))
	require.NoError(t, err)

	attr, ok := body.Attribute("x")
	require.True(t, ok)

	v, err := Evaluate(attr.Value, NewContext())
	require.NoError(t, err)
	require.Equal(t, StringValue("  Foo\n  Bar\n"), v)
}
