package printer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/parser"
	"github.com/ardnew/hcl/prim"
	"github.com/ardnew/hcl/printer"
	"github.com/ardnew/hcl/token"
)

func parseBody(t *testing.T, src string) *ast.Body {
	t.Helper()

	p := parser.New("test.hcl", []byte(src))

	body, diags := p.ParseBody()
	require.False(t, diags.HasErrors(), "unexpected parse diagnostics: %v", diags)

	return body
}

func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()

	p := parser.New("test.hcl", []byte(src))

	expr, diags := p.ParseExpression()
	require.False(t, diags.HasErrors(), "unexpected parse diagnostics: %v", diags)

	return expr
}

func TestFormatRoundTripsSimpleBlock(t *testing.T) {
	src := "resource \"t\" \"n\" {\n  x = [1, 2, 3]\n  y = {\n    a = \"b\"\n  }\n}\n"

	body := parseBody(t, src)

	out, err := printer.Format(body)
	require.NoError(t, err)

	reparsed := parseBody(t, out)

	require.Len(t, reparsed.Blocks(), 1)

	blk := body.Blocks()[0]
	reblk := reparsed.Blocks()[0]

	require.Equal(t, blk.Type.String(), reblk.Type.String())
	require.Equal(t, len(blk.Labels), len(reblk.Labels))

	for i, l := range blk.Labels {
		require.Equal(t, l.Text, reblk.Labels[i].Text)
	}
}

func TestFormatCompactArrayAndObject(t *testing.T) {
	src := "a = [1, 2, 3]\nb = { x = 1 }\n"

	body := parseBody(t, src)

	out, err := printer.Format(body, printer.WithCompactArrays(true), printer.WithCompactObjects(true))
	require.NoError(t, err)
	require.Contains(t, out, "[1, 2, 3]")
	require.Contains(t, out, "{x = 1}")
}

func TestFormatMultilineIsDefault(t *testing.T) {
	body := parseBody(t, "a = [1, 2]\n")

	out, err := printer.Format(body)
	require.NoError(t, err)
	require.Contains(t, out, "[\n")
	require.Contains(t, out, "  1,\n")
}

func TestFormatStrictModeRejectsInvalidLabel(t *testing.T) {
	rng := token.Range{Filename: "x"}

	body := &ast.Body{
		Structures: []ast.Structure{
			ast.NewBlock(rng, prim.MustNewIdentifier("resource"), []ast.BlockLabel{
				{Kind: ast.LabelIdent, Text: "not valid!"},
			}, &ast.Body{}),
		},
	}

	_, err := printer.Format(body, printer.WithStrictMode(true))
	require.Error(t, err)

	out, err := printer.Format(body)
	require.NoError(t, err)
	require.Contains(t, out, `"not valid!"`)
}

func TestFormatExpressionEscapesTemplateMarkers(t *testing.T) {
	expr := parseExpr(t, `"$${x} literal"`)

	out, err := printer.FormatExpression(expr)
	require.NoError(t, err)
	require.Equal(t, `"$${x} literal"`, out)
}

func TestFormatForExpressionGrouping(t *testing.T) {
	expr := parseExpr(t, `{for e in lst : e.k => e.v...}`)

	out, err := printer.FormatExpression(expr)
	require.NoError(t, err)
	require.Equal(t, `{for e in lst : e.k => e.v...}`, out)
}

func TestFormatPreferIdentKeysCollapsesQuotedKey(t *testing.T) {
	expr := parseExpr(t, `{"foo" = 1}`)

	out, err := printer.FormatExpression(expr, printer.WithPreferIdentKeys(true))
	require.NoError(t, err)
	require.Contains(t, out, "foo = 1")

	out, err = printer.FormatExpression(expr)
	require.NoError(t, err)
	require.Contains(t, out, `"foo" = 1`)
}

func TestFormatBareIdentKeyStaysBare(t *testing.T) {
	expr := parseExpr(t, `{foo = 1}`)

	out, err := printer.FormatExpression(expr)
	require.NoError(t, err)
	require.Contains(t, out, "foo = 1")
	require.NotContains(t, out, `"foo"`)
}

func TestFormatConditionalAndPrecedence(t *testing.T) {
	expr := parseExpr(t, `true ? 1 + 2 * 3 : 0`)

	out, err := printer.FormatExpression(expr)
	require.NoError(t, err)
	require.Equal(t, "true ? 1 + 2 * 3 : 0", out)
}

func TestFormatParenthesisPreserved(t *testing.T) {
	expr := parseExpr(t, `"${(x)}"`)

	out, err := printer.FormatExpression(expr)
	require.NoError(t, err)
	require.Equal(t, `"${(x)}"`, out)
}
