// Package ctyconv bridges hcl.Value and github.com/zclconf/go-cty's
// cty.Value, the type system Terraform-style providers actually exchange
// values in. It lives outside the root hcl package (and outside ast and
// printer) so the core grammar stays free of this one binding's
// dependency; callers who need cty interop import ctyconv directly.
package ctyconv

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/ardnew/hcl"
	"github.com/ardnew/hcl/prim"
)

// ToCty converts v into its cty.Value equivalent. Numbers widen through
// float64, so an integer Number outside float64's exact-integer range loses
// precision. Arrays become cty tuples rather than cty lists, since
// HCL arrays may mix element kinds and cty lists require a single,
// uniform element type.
func ToCty(v hcl.Value) (cty.Value, error) {
	switch v.Kind() {
	case hcl.KindNull:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case hcl.KindBool:
		b, _ := v.AsBool()

		return cty.BoolVal(b), nil
	case hcl.KindNumber:
		n, _ := v.AsNumber()

		return cty.NumberFloatVal(n.Float64()), nil
	case hcl.KindString:
		s, _ := v.AsString()

		return cty.StringVal(s), nil
	case hcl.KindArray:
		return arrayToCty(v)
	case hcl.KindObject:
		return objectToCty(v)
	default:
		return cty.NilVal, fmt.Errorf("ctyconv: unsupported value kind %v", v.Kind())
	}
}

func arrayToCty(v hcl.Value) (cty.Value, error) {
	elems, _ := v.AsArray()
	if len(elems) == 0 {
		return cty.EmptyTupleVal, nil
	}

	out := make([]cty.Value, len(elems))

	for i, e := range elems {
		cv, err := ToCty(e)
		if err != nil {
			return cty.NilVal, fmt.Errorf("ctyconv: element %d: %w", i, err)
		}

		out[i] = cv
	}

	return cty.TupleVal(out), nil
}

func objectToCty(v hcl.Value) (cty.Value, error) {
	fields, _ := v.AsObject()
	if len(fields) == 0 {
		return cty.EmptyObjectVal, nil
	}

	out := make(map[string]cty.Value, len(fields))

	for _, f := range fields {
		cv, err := ToCty(f.Value)
		if err != nil {
			return cty.NilVal, fmt.Errorf("ctyconv: attribute %q: %w", f.Key, err)
		}

		out[f.Key] = cv
	}

	return cty.ObjectVal(out), nil
}

// FromCty converts v into its hcl.Value equivalent. Because cty's object
// and map types are unordered, the third return value reports the
// attribute-name order actually used to build any object field lists
// encountered during the conversion (outermost object first, then each
// nested object in the order it was visited) — callers that care about a
// stable attribute order (formatting, diffing) should consult it rather
// than assume the returned Value's field order means anything beyond
// "some order."
func FromCty(v cty.Value) (hcl.Value, []string, error) {
	if v.IsNull() {
		return hcl.NullValue(), nil, nil
	}

	if !v.IsKnown() {
		return hcl.Value{}, nil, fmt.Errorf("ctyconv: cannot convert an unknown cty.Value")
	}

	switch t := v.Type(); {
	case t == cty.Bool:
		return hcl.BoolValue(v.True()), nil, nil
	case t == cty.Number:
		f, _ := v.AsBigFloat().Float64()

		n, err := prim.FloatNumber(f)
		if err != nil {
			return hcl.Value{}, nil, fmt.Errorf("ctyconv: %w", err)
		}

		return hcl.NumberValue(n), nil, nil
	case t == cty.String:
		return hcl.StringValue(v.AsString()), nil, nil
	case t.IsListType(), t.IsSetType(), t.IsTupleType():
		return listLikeFromCty(v)
	case t.IsObjectType(), t.IsMapType():
		return objectLikeFromCty(v)
	default:
		return hcl.Value{}, nil, fmt.Errorf("ctyconv: unsupported cty type %s", t.FriendlyName())
	}
}

func listLikeFromCty(v cty.Value) (hcl.Value, []string, error) {
	var (
		elems []hcl.Value
		order []string
	)

	it := v.ElementIterator()
	for it.Next() {
		_, ev := it.Element()

		hv, sub, err := FromCty(ev)
		if err != nil {
			return hcl.Value{}, nil, err
		}

		elems = append(elems, hv)
		order = append(order, sub...)
	}

	return hcl.ArrayValue(elems), order, nil
}

func objectLikeFromCty(v cty.Value) (hcl.Value, []string, error) {
	attrs := make(map[string]cty.Value, v.LengthInt())

	it := v.ElementIterator()
	for it.Next() {
		k, ev := it.Element()
		attrs[k.AsString()] = ev
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	fields := make([]hcl.ObjectField, 0, len(keys))
	order := append([]string(nil), keys...)

	for _, k := range keys {
		hv, sub, err := FromCty(attrs[k])
		if err != nil {
			return hcl.Value{}, nil, fmt.Errorf("ctyconv: attribute %q: %w", k, err)
		}

		fields = append(fields, hcl.ObjectField{Key: k, Value: hv})
		order = append(order, sub...)
	}

	return hcl.NewObjectValue(fields), order, nil
}
