package hcl

import (
	"fmt"

	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/diag"
	"github.com/ardnew/hcl/prim"
)

// forItem is one (key, value) pair a for-expression or for-directive
// iterates: the array form binds key to the numeric index, the object form
// binds key to the string key.
type forItem struct {
	Key   Value
	Value Value
}

// forCollectionItems expands v into the (key, value) pairs a for-expression
// or for-directive iterates, reporting false if v is not an array or
// object.
func forCollectionItems(v Value) ([]forItem, bool) {
	switch v.Kind() {
	case KindArray:
		arr, _ := v.AsArray()
		items := make([]forItem, len(arr))

		for i, e := range arr {
			items[i] = forItem{Key: NumberValue(prim.IntNumber(int64(i))), Value: e}
		}

		return items, true
	case KindObject:
		fields, _ := v.AsObject()
		items := make([]forItem, len(fields))

		for i, f := range fields {
			items[i] = forItem{Key: StringValue(f.Key), Value: f.Value}
		}

		return items, true
	default:
		return nil, false
	}
}

// bindForVars returns a child of parent with valueVar (and keyVar, if
// present) bound to it's Key/Value.
func bindForVars(parent *Context, keyVar *prim.Identifier, valueVar prim.Identifier, it forItem) *Context {
	vars := map[string]Value{valueVar.String(): it.Value}

	if keyVar != nil {
		vars[keyVar.String()] = it.Key
	}

	return ChildContext(parent, vars)
}

func evalForExpr(fe *ast.ForExpr, ctx *Context) (Value, diag.Diagnostics) {
	collVal, diags := evaluate(fe.Collection, ctx)
	if diags.HasErrors() {
		return Value{}, diags
	}

	items, ok := forCollectionItems(collVal)
	if !ok {
		return Value{}, diags.Append(diag.New(diag.KindType, fe.Collection.Range(),
			"for-expression collection must be an array or object"))
	}

	if fe.KeyExpr == nil {
		return evalForTuple(fe, ctx, items, diags)
	}

	return evalForObject(fe, ctx, items, diags)
}

func evalForTuple(fe *ast.ForExpr, ctx *Context, items []forItem, diags diag.Diagnostics) (Value, diag.Diagnostics) {
	var out []Value

	for _, it := range items {
		child := bindForVars(ctx, fe.KeyVar, fe.ValueVar, it)

		keep, d := evalForCond(fe.Cond, child)
		diags = append(diags, d...)

		if d.HasErrors() {
			return Value{}, diags
		}

		if !keep {
			continue
		}

		v, d := evaluate(fe.ValueExpr, child)
		diags = append(diags, d...)

		if d.HasErrors() {
			return Value{}, diags
		}

		out = append(out, v)
	}

	return ArrayValue(out), diags
}

func evalForObject(fe *ast.ForExpr, ctx *Context, items []forItem, diags diag.Diagnostics) (Value, diag.Diagnostics) {
	var order []string

	grouped := map[string][]Value{}

	for _, it := range items {
		child := bindForVars(ctx, fe.KeyVar, fe.ValueVar, it)

		keep, d := evalForCond(fe.Cond, child)
		diags = append(diags, d...)

		if d.HasErrors() {
			return Value{}, diags
		}

		if !keep {
			continue
		}

		keyVal, d := evaluate(fe.KeyExpr, child)
		diags = append(diags, d...)

		if d.HasErrors() {
			return Value{}, diags
		}

		key, ok := coerceObjectKey(keyVal)
		if !ok {
			return Value{}, diags.Append(diag.New(diag.KindType, fe.KeyExpr.Range(),
				"for-expression key must be a string, number, or bool"))
		}

		valVal, d := evaluate(fe.ValueExpr, child)
		diags = append(diags, d...)

		if d.HasErrors() {
			return Value{}, diags
		}

		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		} else if !fe.Grouping {
			return Value{}, diags.Append(diag.New(diag.KindSemantic, fe.KeyExpr.Range(),
				fmt.Sprintf("duplicate key %q in object for-expression; use ... to group", key)))
		}

		grouped[key] = append(grouped[key], valVal)
	}

	fields := make([]ObjectField, 0, len(order))

	for _, k := range order {
		vals := grouped[k]
		if fe.Grouping {
			fields = append(fields, ObjectField{Key: k, Value: ArrayValue(vals)})
		} else {
			fields = append(fields, ObjectField{Key: k, Value: vals[0]})
		}
	}

	return NewObjectValue(fields), diags
}

func evalForCond(cond ast.Expression, ctx *Context) (bool, diag.Diagnostics) {
	if cond == nil {
		return true, nil
	}

	condVal, diags := evaluate(cond, ctx)
	if diags.HasErrors() {
		return false, diags
	}

	b, ok := condVal.AsBool()
	if !ok {
		return false, diags.Append(diag.New(diag.KindType, cond.Range(), "for-expression condition must be a bool"))
	}

	return b, diags
}
