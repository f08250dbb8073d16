package hcl

import (
	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/token"
)

// ValueToExpression builds an Expression tree that evaluates back to v
// under any Context. The built tree carries no source positions: every
// node's Range is the zero Range.
func ValueToExpression(v Value) ast.Expression {
	switch v.Kind() {
	case KindNull:
		return ast.NewNullLit(token.Range{})
	case KindBool:
		b, _ := v.AsBool()

		return ast.NewBoolLit(token.Range{}, b)
	case KindNumber:
		n, _ := v.AsNumber()

		return ast.NewNumberLit(token.Range{}, n)
	case KindString:
		s, _ := v.AsString()

		return ast.NewStringLit(token.Range{}, s)
	case KindArray:
		arr, _ := v.AsArray()
		elems := make([]ast.Expression, len(arr))

		for i, e := range arr {
			elems[i] = ValueToExpression(e)
		}

		return ast.NewArrayExpr(token.Range{}, elems)
	case KindObject:
		fields, _ := v.AsObject()
		items := make([]ast.ObjectItem, len(fields))

		for i, f := range fields {
			items[i] = ast.ObjectItem{
				Key:   ast.NewStringLit(token.Range{}, f.Key),
				Value: ValueToExpression(f.Value),
			}
		}

		return ast.NewObjectExpr(token.Range{}, items)
	default:
		return ast.NewNullLit(token.Range{})
	}
}

// ExpressionToValue evaluates expr against ctx. It is an alias for
// Evaluate, named to match the Value<->ast bridge's other two functions.
func ExpressionToValue(expr ast.Expression, ctx *Context) (Value, error) {
	return Evaluate(expr, ctx)
}

// ValueFromExpression evaluates expr against an empty Context, for callers
// who only want pure, self-contained data with no variable or function
// references.
func ValueFromExpression(expr ast.Expression) (Value, error) {
	return Evaluate(expr, NewContext())
}
