package printer

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/prim"
)

// Format renders body to HCL source using a Printer built from opts.
func Format(body *ast.Body, opts ...Option) (string, error) {
	return New(opts...).Format(body)
}

// FormatExpression renders expr to HCL source using a Printer built from
// opts.
func FormatExpression(expr ast.Expression, opts ...Option) (string, error) {
	return New(opts...).FormatExpression(expr)
}

// Format renders body to HCL source text.
//
// In strict mode, Format first walks the tree collecting every block label
// written as a bare identifier that does not actually match the identifier
// grammar (only reachable via a programmatically built AST — the parser
// itself can never produce one) and, if any are found, returns their
// combined *multierror.Error instead of rendering anything.
func (p *Printer) Format(body *ast.Body) (string, error) {
	if p.strictMode {
		var errs *multierror.Error

		checkBodyStrict(body, &errs)

		if err := errs.ErrorOrNil(); err != nil {
			return "", err
		}
	}

	var buf strings.Builder

	out := &pw{w: &buf}
	p.writeBody(out, body, 0)

	if out.err != nil {
		return "", out.err
	}

	return buf.String(), nil
}

// FormatExpression renders expr to HCL source text.
func (p *Printer) FormatExpression(expr ast.Expression) (string, error) {
	var buf strings.Builder

	out := &pw{w: &buf}
	p.writeExpr(out, expr, 0)

	if out.err != nil {
		return "", out.err
	}

	return buf.String(), nil
}

func checkBodyStrict(body *ast.Body, errs **multierror.Error) {
	for _, s := range body.Structures {
		switch v := s.(type) {
		case *ast.Block:
			for _, l := range v.Labels {
				if l.Kind == ast.LabelIdent && !prim.IsValidIdentifier(l.Text) {
					*errs = multierror.Append(*errs,
						fmt.Errorf("block %q: label %q at %s is not a valid bare identifier",
							v.Type.String(), l.Text, l.Range()))
				}
			}

			checkBodyStrict(v.Body, errs)
		}
	}
}
