// Package scanner tokenizes HCL native syntax source text. It is not a
// single-pass lexer: four lexing modes cooperate through a small mode
// stack, because the grammar switches vocabulary mid-token-stream — a
// quoted string opens a run of literal text that can itself open a
// template interpolation, whose expression can itself open another quoted
// string.
//
// Column positions are counted in grapheme clusters via
// apparentlymart/go-textseg, matching how hashicorp/hcl counts columns so
// that diagnostics line up with what an editor shows, not raw UTF-8 rune
// counts.
package scanner

import "github.com/ardnew/hcl/token"

// Mode identifies which of the four lexing vocabularies is active.
type Mode uint8

const (
	// ModeSource lexes bare HCL syntax: identifiers, numbers, punctuation,
	// operators, and the openers that push the other three modes.
	ModeSource Mode = iota
	// ModeQuoted lexes the interior of a `"..."` quoted string.
	ModeQuoted
	// ModeHeredoc lexes the interior of a `<<TAG ... TAG` heredoc body.
	ModeHeredoc
	// ModeTemplate lexes the expression inside an open `${`/`%{` marker. It
	// behaves like ModeSource but tracks brace nesting so its own closing
	// `}` can be distinguished from a nested object constructor's brace.
	ModeTemplate
)

// frame is one entry in the scanner's mode stack.
type frame struct {
	mode  Mode
	depth int // unmatched '{' count seen since entering, for ModeTemplate

	// heredoc-mode-only fields.
	tag      string
	indented bool
	dedent   int // precomputed minimum common indent width, in runes
}

// Diag is a lexical error discovered while scanning, reported as plain
// data rather than a diag.Diagnostic so that this package does not need to
// depend on package diag; the parser wraps these into diag.Diagnostics.
type Diag struct {
	Summary string
	Detail  string
	Subject token.Range
}

func (d Diag) Error() string {
	if d.Detail == "" {
		return d.Summary
	}

	return d.Summary + ": " + d.Detail
}
