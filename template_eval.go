package hcl

import (
	"strings"

	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/diag"
)

// evalTemplateExpr evaluates t. A template consisting of exactly one bare
// `${expr}` interpolation (no surrounding literal text, and expr not
// wrapped in parentheses) unwraps to expr's raw Value instead of being
// stringified — this is what lets `"${var.list}"` yield an array rather
// than its printed form. Everything else renders to a string.
func evalTemplateExpr(t *ast.TemplateExpr, ctx *Context) (Value, diag.Diagnostics) {
	if interp, ok := soleUnwrappableInterpolation(t.Elements); ok {
		return evaluate(interp.Expr, ctx)
	}

	s, diags := renderTemplate(t.Elements, ctx, false, false)

	return StringValue(s), diags
}

func soleUnwrappableInterpolation(elements []ast.Element) (*ast.Interpolation, bool) {
	if len(elements) != 1 {
		return nil, false
	}

	interp, ok := elements[0].(*ast.Interpolation)
	if !ok {
		return nil, false
	}

	if _, paren := interp.Expr.(*ast.Parenthesis); paren {
		return nil, false
	}

	return interp, true
}

// markerLeftStrip reports whether el's own left-hand `~` requests that the
// literal text preceding el, at el's own nesting level, be trimmed.
func markerLeftStrip(el ast.Element) bool {
	switch v := el.(type) {
	case *ast.Interpolation:
		return v.Strip.Left
	case *ast.IfDirective:
		return v.IfStrip.Left
	case *ast.ForDirective:
		return v.ForStrip.Left
	default:
		return false
	}
}

// markerRightStrip reports whether el's own right-hand `~` requests that
// the literal text following el, at el's own nesting level, be trimmed.
func markerRightStrip(el ast.Element) bool {
	switch v := el.(type) {
	case *ast.Interpolation:
		return v.Strip.Right
	case *ast.IfDirective:
		return v.EndIfStrip.Right
	case *ast.ForDirective:
		return v.EndForStrip.Right
	default:
		return false
	}
}

// trimTrailingForStrip removes the trailing whitespace, plus at most one
// trailing newline (and any horizontal whitespace before it), from s.
func trimTrailingForStrip(s string) string {
	i := len(s)

	for i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}

	if i > 0 && s[i-1] == '\n' {
		i--

		if i > 0 && s[i-1] == '\r' {
			i--
		}

		for i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
			i--
		}
	}

	return s[:i]
}

// trimLeadingForStrip removes all leading whitespace from s, including
// newlines.
func trimLeadingForStrip(s string) string {
	i := 0

	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return s[i:]
		}
	}

	return ""
}

// renderTemplate concatenates elements into a string. leadingStrip and
// trailingStrip carry a strip request inherited from the enclosing
// marker (an `if`/`for` directive's opening or closing `~`) that applies to
// the first or last literal in elements, since that boundary lies outside
// elements' own neighbor relationships.
func renderTemplate(elements []ast.Element, ctx *Context, leadingStrip, trailingStrip bool) (string, diag.Diagnostics) {
	var (
		out   strings.Builder
		diags diag.Diagnostics
	)

	last := len(elements) - 1

	for i, el := range elements {
		switch v := el.(type) {
		case *ast.Literal:
			text := v.Text

			stripLeading := (i == 0 && leadingStrip) || (i > 0 && markerRightStrip(elements[i-1]))
			stripTrailing := (i == last && trailingStrip) || (i < last && markerLeftStrip(elements[i+1]))

			if stripLeading {
				text = trimLeadingForStrip(text)
			}

			if stripTrailing {
				text = trimTrailingForStrip(text)
			}

			out.WriteString(text)
		case *ast.Interpolation:
			val, d := evaluate(v.Expr, ctx)
			diags = append(diags, d...)

			if d.HasErrors() {
				return "", diags
			}

			out.WriteString(templateDisplay(val))
		case *ast.IfDirective:
			s, d := renderIfDirective(v, ctx)
			diags = append(diags, d...)

			if d.HasErrors() {
				return "", diags
			}

			out.WriteString(s)
		case *ast.ForDirective:
			s, d := renderForDirective(v, ctx)
			diags = append(diags, d...)

			if d.HasErrors() {
				return "", diags
			}

			out.WriteString(s)
		}
	}

	return out.String(), diags
}

func renderIfDirective(d *ast.IfDirective, ctx *Context) (string, diag.Diagnostics) {
	condVal, diags := evaluate(d.Cond, ctx)
	if diags.HasErrors() {
		return "", diags
	}

	b, ok := condVal.AsBool()
	if !ok {
		return "", diags.Append(diag.New(diag.KindType, d.Cond.Range(), "if condition must be a bool"))
	}

	if b {
		trailing := d.EndIfStrip.Left
		if d.False != nil {
			trailing = d.ElseStrip.Left
		}

		s, more := renderTemplate(d.True.Elements, ctx, d.IfStrip.Right, trailing)
		diags = append(diags, more...)

		return s, diags
	}

	if d.False == nil {
		return "", diags
	}

	s, more := renderTemplate(d.False.Elements, ctx, d.ElseStrip.Right, d.EndIfStrip.Left)
	diags = append(diags, more...)

	return s, diags
}

func renderForDirective(d *ast.ForDirective, ctx *Context) (string, diag.Diagnostics) {
	collVal, diags := evaluate(d.Collection, ctx)
	if diags.HasErrors() {
		return "", diags
	}

	items, ok := forCollectionItems(collVal)
	if !ok {
		return "", diags.Append(diag.New(diag.KindType, d.Collection.Range(),
			"for-directive collection must be an array or object"))
	}

	var out strings.Builder

	for _, it := range items {
		child := bindForVars(ctx, d.KeyVar, d.ValueVar, it)

		s, more := renderTemplate(d.Body.Elements, child, d.ForStrip.Right, d.EndForStrip.Left)
		diags = append(diags, more...)

		if more.HasErrors() {
			return "", diags
		}

		out.WriteString(s)
	}

	return out.String(), diags
}
