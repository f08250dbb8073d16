package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/hcl/scanner"
	"github.com/ardnew/hcl/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()

	s := scanner.NewScanner("test.hcl", []byte(src))

	var toks []token.Token

	for {
		tok, diag := s.Next()
		require.Nil(t, diag, "unexpected scan diagnostic: %v", diag)

		toks = append(toks, tok)

		if tok.Type == token.EOF {
			return toks
		}
	}
}

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}

	return out
}

func TestScannerIdentifierAndNumber(t *testing.T) {
	toks := scanAll(t, "foo 1 1.5")

	require.Equal(t, []token.Type{token.Ident, token.Number, token.Number, token.EOF}, typesOf(toks))
	require.Equal(t, "foo", toks[0].Text)
	require.Equal(t, "1.5", toks[2].Text)
}

func TestScannerPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "{ } [ ] ( ) , . : ? = => ... == != <= >= && || !")

	want := []token.Type{
		token.LBrace, token.RBrace, token.LBrack, token.RBrack, token.LParen, token.RParen,
		token.Comma, token.Dot, token.Colon, token.Question, token.Equal, token.FatArrow,
		token.Ellipsis, token.EqualEqual, token.NotEqual, token.LessEqual, token.GreaterEqual,
		token.And, token.Or, token.Bang, token.EOF,
	}

	require.Equal(t, want, typesOf(toks))
}

func TestScannerSkipsLineAndBlockComments(t *testing.T) {
	toks := scanAll(t, "a # line comment\nb // also a comment\nc /* block\ncomment */ d")

	require.Equal(t, []token.Type{
		token.Ident, token.Newline,
		token.Ident, token.Newline,
		token.Ident, token.Ident,
		token.EOF,
	}, typesOf(toks))
}

func TestScannerQuotedStringLiteral(t *testing.T) {
	toks := scanAll(t, `"hello"`)

	require.Equal(t, []token.Type{token.OQuote, token.QuotedLit, token.CQuote, token.EOF}, typesOf(toks))
	require.Equal(t, "hello", toks[1].Text)
}

func TestScannerHeredocOpenerAndClose(t *testing.T) {
	toks := scanAll(t, "<<EOT\nx\nEOT\n")

	require.Equal(t, token.OHeredoc, toks[0].Type)
	require.Contains(t, typesOf(toks), token.CHeredoc)
}

func TestIsKeywordRecognizesReservedWords(t *testing.T) {
	require.True(t, token.IsKeyword("true"))
	require.True(t, token.IsKeyword("endfor"))
	require.False(t, token.IsKeyword("truex"))
}
