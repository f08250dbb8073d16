package hcl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/hcl/prim"
)

// ValueKind discriminates the tagged variants of Value. It is the runtime
// counterpart of ast.Expression's static variants: every Expression
// eventually evaluates to exactly one ValueKind.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// ObjectField is one key/value pair of an object Value. Object values keep
// their fields in a plain slice rather than a map so that insertion order
// survives round trips through evaluation and the Value<->ast bridge. JSON
// output does not keep it.
type ObjectField struct {
	Key   string
	Value Value
}

// Value is a dynamically typed HCL runtime value: the result of evaluating
// an Expression against a Context. Its zero value is the Null value.
type Value struct {
	kind ValueKind

	boolVal bool
	numVal  prim.Number
	strVal  string
	arrVal  []Value
	objVal  []ObjectField
}

// NullValue is the null value.
func NullValue() Value { return Value{kind: KindNull} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// NumberValue wraps n.
func NumberValue(n prim.Number) Value { return Value{kind: KindNumber, numVal: n} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: KindString, strVal: s} }

// ArrayValue wraps elems. elems is not copied; callers should not mutate it
// afterward.
func ArrayValue(elems []Value) Value { return Value{kind: KindArray, arrVal: elems} }

// NewObjectValue wraps fields in insertion order. fields is not copied;
// callers should not mutate it afterward. A duplicate key is legal here
// (the caller is responsible for whatever dedup policy it wants) — lookups
// via Field simply return the first match.
func NewObjectValue(fields []ObjectField) Value {
	return Value{kind: KindObject, objVal: fields}
}

// Kind reports v's variant.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns v's bool and true if v is a KindBool value.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}

	return v.boolVal, true
}

// AsNumber returns v's number and true if v is a KindNumber value.
func (v Value) AsNumber() (prim.Number, bool) {
	if v.kind != KindNumber {
		return prim.Number{}, false
	}

	return v.numVal, true
}

// AsString returns v's string and true if v is a KindString value.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}

	return v.strVal, true
}

// AsArray returns v's elements and true if v is a KindArray value.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}

	return v.arrVal, true
}

// AsObject returns v's fields, in insertion order, and true if v is a
// KindObject value.
func (v Value) AsObject() ([]ObjectField, bool) {
	if v.kind != KindObject {
		return nil, false
	}

	return v.objVal, true
}

// Field looks up name in v's object fields, reporting whether it was found.
// Only the first match is returned if the fields contain a duplicate key.
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.objVal {
		if f.Key == name {
			return f.Value, true
		}
	}

	return Value{}, false
}

// Equal reports whether v and other denote the same value. Values of
// different kinds are never equal. Arrays are equal when they have the same
// length and every element is pairwise equal. Objects are equal when they
// have the same set of keys and every value is pairwise equal, regardless
// of field order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindNumber:
		return v.numVal.Equal(other.numVal)
	case KindString:
		return v.strVal == other.strVal
	case KindArray:
		if len(v.arrVal) != len(other.arrVal) {
			return false
		}

		for i := range v.arrVal {
			if !v.arrVal[i].Equal(other.arrVal[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(v.objVal) != len(other.objVal) {
			return false
		}

		for _, f := range v.objVal {
			ov, ok := other.Field(f.Key)
			if !ok || !f.Value.Equal(ov) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// String renders v for debugging and for template interpolation of
// non-string values: numbers and booleans print their literal form,
// strings print quoted, and collections print a JSON-like bracketed list.
func (v Value) String() string {
	return reprValue(v)
}

func reprValue(v Value) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.boolVal {
			return "true"
		}

		return "false"
	case KindNumber:
		return v.numVal.String()
	case KindString:
		return strconv.Quote(v.strVal)
	case KindArray:
		parts := make([]string, len(v.arrVal))
		for i, e := range v.arrVal {
			parts[i] = reprValue(e)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		parts := make([]string, len(v.objVal))
		for i, f := range v.objVal {
			parts[i] = fmt.Sprintf("%s: %s", strconv.Quote(f.Key), reprValue(f.Value))
		}

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid value>"
	}
}

// templateDisplay renders v as it should appear when interpolated into a
// template: strings contribute their raw content (no quotes), null
// contributes nothing, everything else falls back to String's repr.
func templateDisplay(v Value) string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.strVal
	default:
		return reprValue(v)
	}
}

// coerceObjectKey implements the key-coercion rule shared by object literal
// evaluation and object for-expressions: strings pass through, numbers and
// bools stringify, everything else is rejected.
func coerceObjectKey(v Value) (string, bool) {
	switch v.kind {
	case KindString:
		return v.strVal, true
	case KindNumber:
		return v.numVal.String(), true
	case KindBool:
		if v.boolVal {
			return "true", true
		}

		return "false", true
	default:
		return "", false
	}
}
