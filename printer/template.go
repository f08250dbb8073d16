package printer

import (
	"fmt"
	"strings"

	"github.com/ardnew/hcl/ast"
)

// quoteString renders s as a double-quoted HCL string literal, escaping
// everything that would otherwise be misread by the tokenizer: control
// characters, the quote and backslash themselves, and every `$`/`%` (which
// the tokenizer collapses in pairs when scanning a quoted string, so any
// occurrence has to be doubled to survive a reparse unchanged).
func quoteString(s string) string {
	var b strings.Builder

	b.WriteByte('"')
	b.WriteString(escapeQuotedLiteral(s))
	b.WriteByte('"')

	return b.String()
}

func escapeQuotedLiteral(s string) string {
	var b strings.Builder

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '$':
			b.WriteString("$$")
		case '%':
			b.WriteString("%%")
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}

	return b.String()
}

// escapeHeredocLiteral re-escapes a decoded heredoc literal run. Heredoc
// bodies interpret no backslash escapes at all; the only thing the
// tokenizer resolves is the marker escape `$${`/`%%{`, so that is the only
// thing printing needs to restore.
func escapeHeredocLiteral(s string) string {
	s = strings.ReplaceAll(s, "${", "$${")
	s = strings.ReplaceAll(s, "%{", "%%{")

	return s
}

func stripMarker(b bool) string {
	if b {
		return "~"
	}

	return ""
}

// writeTemplateExpr renders a TemplateExpr as either a quoted string or a
// heredoc, reconstructing its body from Elements rather than from Source —
// Source is a best-effort literal-only capture and is not reliable once any
// interpolation or directive is present.
func (p *Printer) writeTemplateExpr(out *pw, t *ast.TemplateExpr, depth int) {
	if t.Heredoc != nil {
		p.writeHeredoc(out, t, depth)

		return
	}

	out.str(`"`)
	p.writeElements(out, t.Elements, depth, false)
	out.str(`"`)
}

func (p *Printer) writeHeredoc(out *pw, t *ast.TemplateExpr, depth int) {
	marker := "<<"
	if t.Heredoc.Indented {
		marker += "-"
	}

	out.str(marker + t.Heredoc.Tag + "\n")
	p.writeElements(out, t.Elements, depth, true)

	if !strings.HasSuffix(lastLiteralText(t.Elements), "\n") {
		out.str("\n")
	}

	if t.Heredoc.Indented {
		out.indent(depth+1, p.indentWidth)
	}

	out.str(t.Heredoc.Tag)
}

func lastLiteralText(elements []ast.Element) string {
	if len(elements) == 0 {
		return ""
	}

	if lit, ok := elements[len(elements)-1].(*ast.Literal); ok {
		return lit.Text
	}

	return ""
}

// writeElements renders a flat element run: literal text (re-escaped for
// the surrounding form), interpolations, and nested control directives.
func (p *Printer) writeElements(out *pw, elements []ast.Element, depth int, heredoc bool) {
	for _, el := range elements {
		switch v := el.(type) {
		case *ast.Literal:
			if heredoc {
				out.str(escapeHeredocLiteral(v.Text))
			} else {
				out.str(escapeQuotedLiteral(v.Text))
			}
		case *ast.Interpolation:
			out.str("${" + stripMarker(v.Strip.Left))
			p.writeExpr(out, v.Expr, depth)
			out.str(stripMarker(v.Strip.Right) + "}")
		case *ast.IfDirective:
			p.writeIfDirective(out, v, depth, heredoc)
		case *ast.ForDirective:
			p.writeForDirective(out, v, depth, heredoc)
		}
	}
}

func (p *Printer) writeIfDirective(out *pw, d *ast.IfDirective, depth int, heredoc bool) {
	out.str("%{" + stripMarker(d.IfStrip.Left) + "if ")
	p.writeExpr(out, d.Cond, depth)
	out.str(stripMarker(d.IfStrip.Right) + "}")

	if d.True != nil {
		p.writeElements(out, d.True.Elements, depth, heredoc)
	}

	if d.False != nil {
		out.str("%{" + stripMarker(d.ElseStrip.Left) + "else" + stripMarker(d.ElseStrip.Right) + "}")
		p.writeElements(out, d.False.Elements, depth, heredoc)
	}

	out.str("%{" + stripMarker(d.EndIfStrip.Left) + "endif" + stripMarker(d.EndIfStrip.Right) + "}")
}

func (p *Printer) writeForDirective(out *pw, d *ast.ForDirective, depth int, heredoc bool) {
	out.str("%{" + stripMarker(d.ForStrip.Left) + "for ")

	if d.KeyVar != nil {
		out.str(d.KeyVar.String())
		out.str(", ")
	}

	out.str(d.ValueVar.String())
	out.str(" in ")
	p.writeExpr(out, d.Collection, depth)
	out.str(stripMarker(d.ForStrip.Right) + "}")

	if d.Body != nil {
		p.writeElements(out, d.Body.Elements, depth, heredoc)
	}

	out.str("%{" + stripMarker(d.EndForStrip.Left) + "endfor" + stripMarker(d.EndForStrip.Right) + "}")
}
