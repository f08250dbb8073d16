package printer

import (
	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/prim"
)

func (p *Printer) writeBody(out *pw, body *ast.Body, depth int) {
	for _, s := range body.Structures {
		switch v := s.(type) {
		case *ast.Attribute:
			p.writeAttribute(out, v, depth)
		case *ast.Block:
			p.writeBlock(out, v, depth)
		}
	}
}

func (p *Printer) writeAttribute(out *pw, attr *ast.Attribute, depth int) {
	out.indent(depth, p.indentWidth)
	out.str(attr.Key.String())
	out.str(" = ")
	p.writeExpr(out, attr.Value, depth)
	out.str("\n")
}

func (p *Printer) writeBlock(out *pw, blk *ast.Block, depth int) {
	out.indent(depth, p.indentWidth)
	out.str(blk.Type.String())

	for _, l := range blk.Labels {
		out.str(" ")
		p.writeBlockLabel(out, l)
	}

	out.str(" {")

	if blk.Body.Oneline && len(blk.Body.Blocks()) == 0 && len(blk.Body.Structures) <= 1 {
		for _, s := range blk.Body.Structures {
			if a, ok := s.(*ast.Attribute); ok {
				out.str(" ")
				out.str(a.Key.String())
				out.str(" = ")
				p.writeExpr(out, a.Value, depth)
				out.str(" ")
			}
		}

		out.str("}\n")

		return
	}

	out.str("\n")
	p.writeBody(out, blk.Body, depth+1)
	out.indent(depth, p.indentWidth)
	out.str("}\n")
}

func (p *Printer) writeBlockLabel(out *pw, l ast.BlockLabel) {
	switch l.Kind {
	case ast.LabelIdent:
		if prim.IsValidIdentifier(l.Text) {
			out.str(l.Text)

			return
		}

		// Strict mode already rejected this label in Format; reaching here
		// means we're printing a single expression or a non-strict Format
		// call, so fall back to the only representation that still parses.
		out.str(quoteString(l.Text))
	case ast.LabelString:
		out.str(quoteString(l.Text))
	}
}
