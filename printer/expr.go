package printer

import (
	"strconv"

	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/prim"
)

func (p *Printer) writeExpr(out *pw, expr ast.Expression, depth int) {
	switch v := expr.(type) {
	case *ast.NullLit:
		out.str("null")
	case *ast.BoolLit:
		if v.Value {
			out.str("true")
		} else {
			out.str("false")
		}
	case *ast.NumberLit:
		out.str(v.Value.String())
	case *ast.StringLit:
		out.str(quoteString(v.Value))
	case *ast.TemplateExpr:
		p.writeTemplateExpr(out, v, depth)
	case *ast.Variable:
		out.str(v.Name.String())
	case *ast.Traversal:
		p.writeExpr(out, v.Target, depth)

		for _, op := range v.Operators {
			p.writeTraversalOp(out, op, depth)
		}
	case *ast.FuncCall:
		p.writeFuncCall(out, v, depth)
	case *ast.Conditional:
		p.writeExpr(out, v.Cond, depth)
		out.str(" ? ")
		p.writeExpr(out, v.True, depth)
		out.str(" : ")
		p.writeExpr(out, v.False, depth)
	case *ast.UnaryOp:
		out.str(v.Op.String())
		p.writeExpr(out, v.Operand, depth)
	case *ast.BinaryOp:
		p.writeExpr(out, v.LHS, depth)
		out.str(" " + v.Op.String() + " ")
		p.writeExpr(out, v.RHS, depth)
	case *ast.ArrayExpr:
		p.writeArray(out, v, depth)
	case *ast.ObjectExpr:
		p.writeObject(out, v, depth)
	case *ast.ForExpr:
		p.writeForExpr(out, v, depth)
	case *ast.Parenthesis:
		out.str("(")
		p.writeExpr(out, v.Inner, depth)
		out.str(")")
	default:
		out.str("<invalid expression>")
	}
}

func (p *Printer) writeTraversalOp(out *pw, op ast.TraversalOperator, depth int) {
	switch v := op.(type) {
	case ast.AttrOp:
		out.str(".")
		out.str(v.Name)
	case ast.IndexOp:
		out.str("[")
		p.writeExpr(out, v.Key, depth)
		out.str("]")
	case ast.LegacyIndexOp:
		out.str(".")
		out.str(strconv.FormatInt(v.Index, 10))
	case ast.AttrSplatOp:
		out.str(".*")
	case ast.FullSplatOp:
		out.str("[*]")
	}
}

func (p *Printer) writeFuncCall(out *pw, call *ast.FuncCall, depth int) {
	out.str(call.Name.String())
	out.str("(")

	for i, arg := range call.Args {
		if i > 0 {
			out.str(", ")
		}

		p.writeExpr(out, arg, depth)

		if call.ExpandFinal && i == len(call.Args)-1 {
			out.str("...")
		}
	}

	out.str(")")
}

func (p *Printer) writeArray(out *pw, arr *ast.ArrayExpr, depth int) {
	if len(arr.Elems) == 0 {
		out.str("[]")

		return
	}

	if p.compactArrays {
		out.str("[")

		for i, e := range arr.Elems {
			if i > 0 {
				out.str(", ")
			}

			p.writeExpr(out, e, depth)
		}

		out.str("]")

		return
	}

	out.str("[\n")

	for _, e := range arr.Elems {
		out.indent(depth+1, p.indentWidth)
		p.writeExpr(out, e, depth+1)
		out.str(",\n")
	}

	out.indent(depth, p.indentWidth)
	out.str("]")
}

func (p *Printer) writeObject(out *pw, obj *ast.ObjectExpr, depth int) {
	if len(obj.Items) == 0 {
		out.str("{}")

		return
	}

	if p.compactObjects {
		out.str("{")

		for i, item := range obj.Items {
			if i > 0 {
				out.str(", ")
			}

			p.writeObjectKey(out, item.Key, depth)
			out.str(" = ")
			p.writeExpr(out, item.Value, depth)
		}

		out.str("}")

		return
	}

	out.str("{\n")

	for _, item := range obj.Items {
		out.indent(depth+1, p.indentWidth)
		p.writeObjectKey(out, item.Key, depth+1)
		out.str(" = ")
		p.writeExpr(out, item.Value, depth+1)
		out.str("\n")
	}

	out.indent(depth, p.indentWidth)
	out.str("}")
}

func (p *Printer) writeObjectKey(out *pw, key ast.Expression, depth int) {
	// A StringLit key is either a key written as a bare identifier (see
	// parser.parseObjectKey) or one built by ValueToExpression; print it
	// bare when it is a valid identifier so a round trip through the
	// printer doesn't turn it into a quoted TemplateExpr.
	if lit, ok := key.(*ast.StringLit); ok {
		if prim.IsValidIdentifier(lit.Value) {
			out.str(lit.Value)

			return
		}

		out.str(quoteString(lit.Value))

		return
	}

	// A key written as an ordinary quoted string with no interpolation is a
	// single-literal TemplateExpr. WithPreferIdentKeys opts into collapsing
	// that to a bare identifier when the text happens to qualify.
	if tpl, ok := key.(*ast.TemplateExpr); ok && p.preferIdentKeys {
		if text, ok := soleLiteralText(tpl); ok && prim.IsValidIdentifier(text) {
			out.str(text)

			return
		}
	}

	p.writeExpr(out, key, depth)
}

// soleLiteralText reports the text of tpl when it consists of exactly one
// Literal element and nothing else, i.e. a quoted string with no
// interpolations or directives.
func soleLiteralText(tpl *ast.TemplateExpr) (string, bool) {
	if len(tpl.Elements) != 1 {
		return "", false
	}

	lit, ok := tpl.Elements[0].(*ast.Literal)
	if !ok {
		return "", false
	}

	return lit.Text, true
}

func (p *Printer) writeForExpr(out *pw, fe *ast.ForExpr, depth int) {
	open, closing := "[", "]"
	if fe.KeyExpr != nil {
		open, closing = "{", "}"
	}

	out.str(open + "for ")

	if fe.KeyVar != nil {
		out.str(fe.KeyVar.String())
		out.str(", ")
	}

	out.str(fe.ValueVar.String())
	out.str(" in ")
	p.writeExpr(out, fe.Collection, depth)
	out.str(" : ")

	if fe.KeyExpr != nil {
		p.writeExpr(out, fe.KeyExpr, depth)
		out.str(" => ")
	}

	p.writeExpr(out, fe.ValueExpr, depth)

	if fe.Cond != nil {
		out.str(" if ")
		p.writeExpr(out, fe.Cond, depth)
	}

	if fe.Grouping {
		out.str("...")
	}

	out.str(closing)
}
