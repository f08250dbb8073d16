package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/diag"
	"github.com/ardnew/hcl/parser"
)

func parseBody(t *testing.T, src string) (*ast.Body, diag.Diagnostics) {
	t.Helper()

	return parser.New("test.hcl", []byte(src)).ParseBody()
}

func parseExpr(t *testing.T, src string) (ast.Expression, diag.Diagnostics) {
	t.Helper()

	return parser.New("test.hcl", []byte(src)).ParseExpression()
}

func TestParseBodyAttributesAndBlocks(t *testing.T) {
	src := `
name = "demo"

server "web" "prod" {
  port = 80
}
`
	body, diags := parseBody(t, src)
	require.False(t, diags.HasErrors())

	attr, ok := body.Attribute("name")
	require.True(t, ok)
	require.NotNil(t, attr)

	blocks := body.Blocks()
	require.Len(t, blocks, 1)
	require.Equal(t, "server", blocks[0].Type.String())
	require.Equal(t, []string{"web", "prod"}, labelTexts(blocks[0].Labels))
}

func labelTexts(labels []ast.BlockLabel) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.Text
	}

	return out
}

func TestParseBodyRejectsDuplicateAttribute(t *testing.T) {
	src := "a = 1\na = 2\n"

	_, diags := parseBody(t, src)
	require.True(t, diags.HasErrors())
	require.Contains(t, diags.Error(), "duplicate attribute")
}

func TestParseExpressionArrayAndObject(t *testing.T) {
	arr, diags := parseExpr(t, "[1, 2, 3]")
	require.False(t, diags.HasErrors())
	require.IsType(t, &ast.ArrayExpr{}, arr)

	obj, diags := parseExpr(t, `{foo = 1, bar = 2}`)
	require.False(t, diags.HasErrors())
	require.IsType(t, &ast.ObjectExpr{}, obj)
}

func TestParseExpressionConditionalAndOperatorPrecedence(t *testing.T) {
	expr, diags := parseExpr(t, "true ? 1 + 2 * 3 : 0")
	require.False(t, diags.HasErrors())

	cond, ok := expr.(*ast.Conditional)
	require.True(t, ok)

	_, ok = cond.True.(*ast.BinaryOp)
	require.True(t, ok, "1 + 2 * 3 should parse as a single binary tree rooted at +")
}

func TestParseExpressionTraversalAndSplat(t *testing.T) {
	expr, diags := parseExpr(t, "items[0].name")
	require.False(t, diags.HasErrors())
	require.IsType(t, &ast.Traversal{}, expr)

	expr, diags = parseExpr(t, "items.*.name")
	require.False(t, diags.HasErrors())

	trav, ok := expr.(*ast.Traversal)
	require.True(t, ok)
	require.Len(t, trav.Operators, 2)
	require.IsType(t, ast.AttrSplatOp{}, trav.Operators[0])
}

func TestParseExpressionForExprGrouping(t *testing.T) {
	expr, diags := parseExpr(t, "{for e in lst : e.k => e.v...}")
	require.False(t, diags.HasErrors())

	fe, ok := expr.(*ast.ForExpr)
	require.True(t, ok)
	require.True(t, fe.Grouping)
}

func TestParseExpressionFuncCallWithExpansion(t *testing.T) {
	expr, diags := parseExpr(t, "sum([1, 2, 3]...)")
	require.False(t, diags.HasErrors())

	call, ok := expr.(*ast.FuncCall)
	require.True(t, ok)
	require.True(t, call.ExpandFinal)
}

func TestParseExpressionHeredocTemplate(t *testing.T) {
	src := "<<-EOT\n  Foo\nEOT\n"

	expr, diags := parseExpr(t, src)
	require.False(t, diags.HasErrors())

	tmpl, ok := expr.(*ast.TemplateExpr)
	require.True(t, ok)
	require.NotNil(t, tmpl.Heredoc)
}

func TestParseExpressionReportsUnterminatedString(t *testing.T) {
	_, diags := parseExpr(t, `"unterminated`)
	require.True(t, diags.HasErrors())
}
