package hcl

import (
	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/parser"
	"github.com/ardnew/hcl/printer"
)

// Parse parses src (attributed to filename in diagnostics) into a Body.
func Parse(filename string, src []byte) (*ast.Body, error) {
	body, diags := parser.New(filename, src).ParseBody()
	if diags.HasErrors() {
		return nil, wrapDiagnostics(diags)
	}

	return body, nil
}

// ParseExpression parses src (attributed to filename in diagnostics) as a
// single standalone Expression.
func ParseExpression(filename string, src []byte) (ast.Expression, error) {
	expr, diags := parser.New(filename, src).ParseExpression()
	if diags.HasErrors() {
		return nil, wrapDiagnostics(diags)
	}

	return expr, nil
}

// EvaluateSource parses src as a single Expression and evaluates it against
// an empty Context, for callers who just want pure data out of a source
// snippet with no variables or functions to supply.
func EvaluateSource(filename string, src []byte) (Value, error) {
	expr, err := ParseExpression(filename, src)
	if err != nil {
		return Value{}, err
	}

	return ValueFromExpression(expr)
}

// Format renders body to HCL source text using printer.Option opts.
func Format(body *ast.Body, opts ...printer.Option) (string, error) {
	return printer.Format(body, opts...)
}

// FormatValue renders v to HCL source text as a standalone expression,
// via the Value<->ast bridge.
func FormatValue(v Value, opts ...printer.Option) (string, error) {
	return printer.FormatExpression(ValueToExpression(v), opts...)
}
