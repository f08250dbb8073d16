package hcl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/hcl/prim"
)

func TestFunctionCallRejectsArityMismatch(t *testing.T) {
	fn := &Function{
		Params: []Param{{Name: "a", Kind: KindNumber}},
		Impl:   func(args []Value) (Value, error) { return args[0], nil },
	}

	_, err := fn.Call(nil)
	require.Error(t, err)

	_, err = fn.Call([]Value{NumberValue(prim.IntNumber(0)), NumberValue(prim.IntNumber(0))})
	require.Error(t, err)
}

func TestFunctionCallRejectsWrongParamKind(t *testing.T) {
	fn := &Function{
		Params: []Param{{Name: "a", Kind: KindString}},
		Impl:   func(args []Value) (Value, error) { return args[0], nil },
	}

	_, err := fn.Call([]Value{NumberValue(prim.IntNumber(0))})
	require.Error(t, err)
	require.Contains(t, err.Error(), `"a"`)
}

func TestFunctionCallKindAnyAcceptsAnything(t *testing.T) {
	fn := &Function{
		Params: []Param{{Name: "a", Kind: KindAny}},
		Impl:   func(args []Value) (Value, error) { return args[0], nil },
	}

	v, err := fn.Call([]Value{BoolValue(true)})
	require.NoError(t, err)
	require.Equal(t, BoolValue(true), v)
}

func TestFunctionCallVariadicCheckedAndPassedThrough(t *testing.T) {
	fn := &Function{
		Variadic: &Param{Name: "rest", Kind: KindString},
		Impl: func(args []Value) (Value, error) {
			return NumberValue(prim.IntNumber(int64(len(args)))), nil
		},
	}

	v, err := fn.Call([]Value{StringValue("a"), StringValue("b"), StringValue("c")})
	require.NoError(t, err)

	n, ok := v.AsNumber()
	require.True(t, ok)
	require.Equal(t, "3", n.String())

	_, err = fn.Call([]Value{StringValue("a"), NumberValue(prim.IntNumber(0))})
	require.Error(t, err)
}
