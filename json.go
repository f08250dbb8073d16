package hcl

import (
	"encoding/json"

	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/diag"
)

// MarshalJSON implements json.Marshaler. Null, bool, number, and string
// values map to their obvious JSON counterpart; arrays and objects
// recurse. Object key order is not preserved in the output, since JSON
// objects have no defined order — that guarantee only holds for the
// in-memory Value.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(valueToJSONAny(v))
}

func valueToJSONAny(v Value) any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		b, _ := v.AsBool()

		return b
	case KindNumber:
		n, _ := v.AsNumber()
		if i, ok := n.Int64(); ok {
			return i
		}

		return n.Float64()
	case KindString:
		s, _ := v.AsString()

		return s
	case KindArray:
		arr, _ := v.AsArray()
		out := make([]any, len(arr))

		for i, e := range arr {
			out[i] = valueToJSONAny(e)
		}

		return out
	case KindObject:
		fields, _ := v.AsObject()
		out := make(map[string]any, len(fields))

		for _, f := range fields {
			out[f.Key] = valueToJSONAny(f.Value)
		}

		return out
	default:
		return nil
	}
}

// ToJSON renders body to the JSON compatibility shape: each attribute
// becomes a key evaluated against ctx, each block becomes a nested object
// (or, if a block type appears more than once, an array of them), and each
// block label nests the block's object inside another single-key object
// keyed by the label text, outermost label first.
func ToJSON(body *ast.Body, ctx *Context) ([]byte, error) {
	m, diags := bodyToJSONAny(body, ctx)
	if diags.HasErrors() {
		return nil, wrapDiagnostics(diags)
	}

	return json.Marshal(m)
}

func bodyToJSONAny(body *ast.Body, ctx *Context) (map[string]any, diag.Diagnostics) {
	out := map[string]any{}

	var (
		diags      diag.Diagnostics
		blockOrder []string
	)

	blockGroups := map[string][]any{}

	for _, s := range body.Structures {
		switch v := s.(type) {
		case *ast.Attribute:
			val, d := evaluate(v.Value, ctx)
			diags = append(diags, d...)

			if d.HasErrors() {
				continue
			}

			out[v.Key.String()] = valueToJSONAny(val)
		case *ast.Block:
			nested, d := blockToJSONAny(v, ctx)
			diags = append(diags, d...)

			name := v.Type.String()
			if _, exists := blockGroups[name]; !exists {
				blockOrder = append(blockOrder, name)
			}

			blockGroups[name] = append(blockGroups[name], nested)
		}
	}

	for _, name := range blockOrder {
		group := blockGroups[name]
		if len(group) == 1 {
			out[name] = group[0]
		} else {
			out[name] = group
		}
	}

	return out, diags
}

func blockToJSONAny(blk *ast.Block, ctx *Context) (any, diag.Diagnostics) {
	inner, diags := bodyToJSONAny(blk.Body, ctx)

	var result any = inner

	for i := len(blk.Labels) - 1; i >= 0; i-- {
		result = map[string]any{blk.Labels[i].Text: result}
	}

	return result, diags
}
