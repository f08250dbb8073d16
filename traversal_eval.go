package hcl

import (
	"fmt"

	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/diag"
	"github.com/ardnew/hcl/prim"
	"github.com/ardnew/hcl/token"
)

func evalTraversal(t *ast.Traversal, ctx *Context) (Value, diag.Diagnostics) {
	target, diags := evaluate(t.Target, ctx)
	if diags.HasErrors() {
		return Value{}, diags
	}

	v, d := walkOps(target, t.Operators, ctx)
	diags = append(diags, d...)

	return v, diags
}

// walkOps applies ops in sequence to cur. A splat operator hands the rest
// of the chain off to splatMap instead of continuing the loop, since every
// remaining operator then applies independently to each element.
func walkOps(cur Value, ops []ast.TraversalOperator, ctx *Context) (Value, diag.Diagnostics) {
	var diags diag.Diagnostics

	for i := 0; i < len(ops); i++ {
		switch o := ops[i].(type) {
		case ast.AttrSplatOp:
			return splatMap(cur, ops[i+1:], ctx)
		case ast.FullSplatOp:
			return splatMap(cur, ops[i+1:], ctx)
		case ast.AttrOp:
			if cur.IsNull() {
				return Value{}, diags.Append(diag.New(diag.KindType, o.Rng, "cannot access an attribute of null"))
			}

			if cur.Kind() != KindObject {
				return Value{}, diags.Append(diag.New(diag.KindType, o.Rng,
					fmt.Sprintf("cannot access attribute %q on a %s value", o.Name, cur.Kind())))
			}

			val, found := cur.Field(o.Name)
			if !found {
				return Value{}, diags.Append(diag.New(diag.KindRange, o.Rng,
					fmt.Sprintf("object has no attribute %q", o.Name)))
			}

			cur = val
		case ast.IndexOp:
			if cur.IsNull() {
				return Value{}, diags.Append(diag.New(diag.KindType, o.Rng, "cannot index null"))
			}

			keyVal, d := evaluate(o.Key, ctx)
			diags = append(diags, d...)

			if d.HasErrors() {
				return Value{}, diags
			}

			v, derr := indexInto(cur, keyVal, o.Rng)
			if derr != nil {
				return Value{}, diags.Append(derr)
			}

			cur = v
		case ast.LegacyIndexOp:
			if cur.IsNull() {
				return Value{}, diags.Append(diag.New(diag.KindType, o.Rng, "cannot index null"))
			}

			v, derr := indexInto(cur, NumberValue(prim.IntNumber(o.Index)), o.Rng)
			if derr != nil {
				return Value{}, diags.Append(derr)
			}

			cur = v
		}
	}

	return cur, diags
}

// splatMap applies rest to each element of cur (coercing a non-array,
// non-null cur to a single-element slice first) and collects the results
// into an array. A null cur short-circuits to an empty array without
// evaluating rest at all.
func splatMap(cur Value, rest []ast.TraversalOperator, ctx *Context) (Value, diag.Diagnostics) {
	if cur.IsNull() {
		return ArrayValue(nil), nil
	}

	items, ok := cur.AsArray()
	if !ok {
		items = []Value{cur}
	}

	var diags diag.Diagnostics

	out := make([]Value, 0, len(items))

	for _, item := range items {
		v, d := walkOps(item, rest, ctx)
		diags = append(diags, d...)

		if d.HasErrors() {
			return Value{}, diags
		}

		out = append(out, v)
	}

	return ArrayValue(out), diags
}

func indexInto(cur Value, key Value, rng token.Range) (Value, *diag.Diagnostic) {
	switch cur.Kind() {
	case KindArray:
		n, ok := key.AsNumber()
		if !ok {
			return Value{}, diag.New(diag.KindType, rng, "array index must be a number")
		}

		idx, exact := n.Int64()
		if !exact {
			return Value{}, diag.New(diag.KindType, rng, "array index must be an integer")
		}

		arr, _ := cur.AsArray()

		if idx < 0 || idx >= int64(len(arr)) {
			return Value{}, diag.New(diag.KindRange, rng, "array index out of bounds")
		}

		return arr[idx], nil
	case KindObject:
		keyStr, ok := coerceObjectKey(key)
		if !ok {
			return Value{}, diag.New(diag.KindType, rng, "object index must be a string, number, or bool")
		}

		v, found := cur.Field(keyStr)
		if !found {
			return Value{}, diag.New(diag.KindRange, rng, fmt.Sprintf("object has no key %q", keyStr))
		}

		return v, nil
	default:
		return Value{}, diag.New(diag.KindType, rng, "cannot index a "+cur.Kind().String())
	}
}
