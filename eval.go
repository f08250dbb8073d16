package hcl

import (
	"context"
	"fmt"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/diag"
	"github.com/ardnew/hcl/prim"
)

// Evaluate reduces expr to a Value against ctx. It is the public,
// error-returning counterpart of the internal evaluate, which threads
// diag.Diagnostics instead. Evaluation stops at the first error.
func Evaluate(expr ast.Expression, ctx *Context) (Value, error) {
	v, diags := evaluate(expr, ctx)
	if diags.HasErrors() {
		return Value{}, wrapDiagnostics(diags)
	}

	return v, nil
}

func evaluate(expr ast.Expression, ctx *Context) (Value, diag.Diagnostics) {
	switch v := expr.(type) {
	case *ast.NullLit:
		return NullValue(), nil
	case *ast.BoolLit:
		return BoolValue(v.Value), nil
	case *ast.NumberLit:
		return NumberValue(v.Value), nil
	case *ast.StringLit:
		return StringValue(v.Value), nil
	case *ast.TemplateExpr:
		return evalTemplateExpr(v, ctx)
	case *ast.Variable:
		return evalVariable(v, ctx)
	case *ast.Traversal:
		return evalTraversal(v, ctx)
	case *ast.FuncCall:
		return evalFuncCall(v, ctx)
	case *ast.Conditional:
		return evalConditional(v, ctx)
	case *ast.UnaryOp:
		return evalUnaryOp(v, ctx)
	case *ast.BinaryOp:
		return evalBinaryOp(v, ctx)
	case *ast.ArrayExpr:
		return evalArrayExpr(v, ctx)
	case *ast.ObjectExpr:
		return evalObjectExpr(v, ctx)
	case *ast.ForExpr:
		return evalForExpr(v, ctx)
	case *ast.Parenthesis:
		return evaluate(v.Inner, ctx)
	default:
		return Value{}, diag.Diagnostics{diag.New(diag.KindSemantic, expr.Range(), "unsupported expression")}
	}
}

func evalVariable(v *ast.Variable, ctx *Context) (Value, diag.Diagnostics) {
	name := v.Name.String()

	if val, ok := ctx.Variable(name); ok {
		ctx.Logger().TraceContext(context.Background(), "resolved variable", "name", name)

		return val, nil
	}

	summary := fmt.Sprintf("unknown variable %q", name)

	var detail string

	if suggestion := suggestName(name, ctx.VariableNames()); suggestion != "" {
		detail = fmt.Sprintf("did you mean %q?", suggestion)
	}

	ctx.Logger().WarnContext(context.Background(), "unresolved variable", "name", name)

	return Value{}, diag.Diagnostics{diag.New(diag.KindResolution, v.Range(), summary, detail)}
}

// suggestName returns the candidate that best fuzzy-matches name, or "" if
// nothing scores well enough to be a plausible typo fix. Matches come back
// sorted best-first, so the top result is the one worth surfacing.
func suggestName(name string, candidates []string) string {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}

	best := matches[0]

	// A single-rune fuzzy match score is too weak a signal on its own; require
	// the match to cover a reasonable fraction of name's length.
	if len(best.MatchedIndexes) >= (len(name)+1)/2 {
		return best.Str
	}

	return ""
}

func evalArrayExpr(v *ast.ArrayExpr, ctx *Context) (Value, diag.Diagnostics) {
	var diags diag.Diagnostics

	out := make([]Value, 0, len(v.Elems))

	for _, e := range v.Elems {
		ev, d := evaluate(e, ctx)
		diags = append(diags, d...)

		if d.HasErrors() {
			return Value{}, diags
		}

		out = append(out, ev)
	}

	return ArrayValue(out), diags
}

func evalObjectExpr(v *ast.ObjectExpr, ctx *Context) (Value, diag.Diagnostics) {
	var diags diag.Diagnostics

	var fields []ObjectField

	index := map[string]int{}

	for _, item := range v.Items {
		keyVal, d := evaluate(item.Key, ctx)
		diags = append(diags, d...)

		if d.HasErrors() {
			return Value{}, diags
		}

		key, ok := coerceObjectKey(keyVal)
		if !ok {
			return Value{}, diags.Append(diag.New(diag.KindType, item.Key.Range(),
				"object key must be a string, number, or bool"))
		}

		valVal, d := evaluate(item.Value, ctx)
		diags = append(diags, d...)

		if d.HasErrors() {
			return Value{}, diags
		}

		if i, exists := index[key]; exists {
			fields[i].Value = valVal

			continue
		}

		index[key] = len(fields)
		fields = append(fields, ObjectField{Key: key, Value: valVal})
	}

	return NewObjectValue(fields), diags
}

func evalConditional(v *ast.Conditional, ctx *Context) (Value, diag.Diagnostics) {
	condVal, diags := evaluate(v.Cond, ctx)
	if diags.HasErrors() {
		return Value{}, diags
	}

	b, ok := condVal.AsBool()
	if !ok {
		return Value{}, diags.Append(diag.New(diag.KindType, v.Cond.Range(),
			"conditional test must be a bool"))
	}

	if b {
		return evaluate(v.True, ctx)
	}

	return evaluate(v.False, ctx)
}

func evalUnaryOp(v *ast.UnaryOp, ctx *Context) (Value, diag.Diagnostics) {
	operand, diags := evaluate(v.Operand, ctx)
	if diags.HasErrors() {
		return Value{}, diags
	}

	switch v.Op {
	case prim.OpNot:
		b, ok := operand.AsBool()
		if !ok {
			return Value{}, diags.Append(diag.New(diag.KindType, v.Range(), "! requires a bool operand"))
		}

		return BoolValue(!b), diags
	case prim.OpNegate:
		n, ok := operand.AsNumber()
		if !ok {
			return Value{}, diags.Append(diag.New(diag.KindType, v.Range(), "- requires a number operand"))
		}

		return NumberValue(n.Neg()), diags
	default:
		return Value{}, diags.Append(diag.New(diag.KindSemantic, v.Range(), "unsupported unary operator"))
	}
}

func evalBinaryOp(v *ast.BinaryOp, ctx *Context) (Value, diag.Diagnostics) {
	if v.Op == prim.OpLogicalOr || v.Op == prim.OpLogicalAnd {
		return evalShortCircuit(v, ctx)
	}

	lhs, diags := evaluate(v.LHS, ctx)
	if diags.HasErrors() {
		return Value{}, diags
	}

	rhs, d := evaluate(v.RHS, ctx)
	diags = append(diags, d...)

	if d.HasErrors() {
		return Value{}, diags
	}

	switch v.Op {
	case prim.OpEqual:
		return BoolValue(lhs.Equal(rhs)), diags
	case prim.OpNotEqual:
		return BoolValue(!lhs.Equal(rhs)), diags
	case prim.OpLessThan, prim.OpLessThanOrEqual, prim.OpGreaterThan, prim.OpGreaterThanOrEqual:
		return evalComparison(v, lhs, rhs, diags)
	case prim.OpAdd, prim.OpSub, prim.OpMul, prim.OpDiv, prim.OpMod:
		return evalArithmetic(v, lhs, rhs, diags)
	default:
		return Value{}, diags.Append(diag.New(diag.KindSemantic, v.Range(), "unsupported binary operator"))
	}
}

func evalShortCircuit(v *ast.BinaryOp, ctx *Context) (Value, diag.Diagnostics) {
	lhs, diags := evaluate(v.LHS, ctx)
	if diags.HasErrors() {
		return Value{}, diags
	}

	lb, ok := lhs.AsBool()
	if !ok {
		return Value{}, diags.Append(diag.New(diag.KindType, v.LHS.Range(), "operand must be a bool"))
	}

	if v.Op == prim.OpLogicalOr && lb {
		return BoolValue(true), diags
	}

	if v.Op == prim.OpLogicalAnd && !lb {
		return BoolValue(false), diags
	}

	rhs, d := evaluate(v.RHS, ctx)
	diags = append(diags, d...)

	if d.HasErrors() {
		return Value{}, diags
	}

	rb, ok := rhs.AsBool()
	if !ok {
		return Value{}, diags.Append(diag.New(diag.KindType, v.RHS.Range(), "operand must be a bool"))
	}

	return BoolValue(rb), diags
}

func evalComparison(v *ast.BinaryOp, lhs, rhs Value, diags diag.Diagnostics) (Value, diag.Diagnostics) {
	ln, ok := lhs.AsNumber()
	if !ok {
		return Value{}, diags.Append(diag.New(diag.KindType, v.LHS.Range(), "comparison requires a number operand"))
	}

	rn, ok := rhs.AsNumber()
	if !ok {
		return Value{}, diags.Append(diag.New(diag.KindType, v.RHS.Range(), "comparison requires a number operand"))
	}

	cmp := ln.Cmp(rn)

	switch v.Op {
	case prim.OpLessThan:
		return BoolValue(cmp < 0), diags
	case prim.OpLessThanOrEqual:
		return BoolValue(cmp <= 0), diags
	case prim.OpGreaterThan:
		return BoolValue(cmp > 0), diags
	default: // prim.OpGreaterThanOrEqual
		return BoolValue(cmp >= 0), diags
	}
}

func evalArithmetic(v *ast.BinaryOp, lhs, rhs Value, diags diag.Diagnostics) (Value, diag.Diagnostics) {
	ln, ok := lhs.AsNumber()
	if !ok {
		return Value{}, diags.Append(diag.New(diag.KindType, v.LHS.Range(), "arithmetic requires a number operand"))
	}

	rn, ok := rhs.AsNumber()
	if !ok {
		return Value{}, diags.Append(diag.New(diag.KindType, v.RHS.Range(), "arithmetic requires a number operand"))
	}

	switch v.Op {
	case prim.OpAdd:
		return NumberValue(ln.Add(rn)), diags
	case prim.OpSub:
		return NumberValue(ln.Sub(rn)), diags
	case prim.OpMul:
		return NumberValue(ln.Mul(rn)), diags
	case prim.OpDiv:
		if rn.IsZero() {
			return Value{}, diags.Append(diag.New(diag.KindSemantic, v.Range(), "division by zero"))
		}

		return NumberValue(ln.Div(rn)), diags
	default: // prim.OpMod
		if rn.IsZero() {
			return Value{}, diags.Append(diag.New(diag.KindSemantic, v.Range(), "division by zero"))
		}

		return NumberValue(ln.Mod(rn)), diags
	}
}

func evalFuncCall(v *ast.FuncCall, ctx *Context) (Value, diag.Diagnostics) {
	var diags diag.Diagnostics

	fn, ok := ctx.Function(v.Name.String())
	if !ok {
		ctx.Logger().WarnContext(context.Background(), "unresolved function", "name", v.Name.String())

		return Value{}, diags.Append(diag.New(diag.KindResolution, v.Range(),
			fmt.Sprintf("unknown function %q", v.Name.String())))
	}

	ctx.Logger().TraceContext(context.Background(), "calling function", "name", v.Name.String(), "argc", len(v.Args))

	args := make([]Value, 0, len(v.Args))

	for _, a := range v.Args {
		av, d := evaluate(a, ctx)
		diags = append(diags, d...)

		if d.HasErrors() {
			return Value{}, diags
		}

		args = append(args, av)
	}

	if v.ExpandFinal {
		if len(args) == 0 {
			return Value{}, diags.Append(diag.New(diag.KindType, v.Range(), "expansion requires at least one argument"))
		}

		last := args[len(args)-1]

		elems, ok := last.AsArray()
		if !ok {
			return Value{}, diags.Append(diag.New(diag.KindType, v.Range(), "expanded final argument must be an array"))
		}

		args = append(args[:len(args)-1], elems...)
	}

	result, err := fn.Call(args)
	if err != nil {
		return Value{}, diags.Append(diag.New(diag.KindType, v.Range(), err.Error()))
	}

	return result, diags
}
