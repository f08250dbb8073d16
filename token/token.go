package token

// Type identifies the lexical class of a Token.
type Type uint8

const (
	Invalid Type = iota
	EOF

	Ident  // identifier or bare keyword (true, false, null, if, for, ...)
	Number // decimal literal, e.g. 1, 1.5, 1e10

	// Quoted-string and heredoc mode tokens.
	OQuote   // opening "
	CQuote   // closing "
	QuotedLit // a run of literal text inside a quoted string or heredoc
	OHeredoc  // <<TAG or <<-TAG
	CHeredoc  // the closing TAG line of a heredoc

	// Template mode tokens (inside ${ ... } or %{ ... }).
	TemplateInterp  // ${
	TemplateInterpS // ${~
	TemplateControl // %{
	TemplateControlS // %{~
	TemplateSeqEnd  // } closing an interpolation/directive, no strip
	TemplateSeqEndS // ~} closing an interpolation/directive, with strip

	// Punctuation and operators, common to all source-mode parsing.
	LBrace // {
	RBrace // }
	LBrack // [
	RBrack // ]
	LParen // (
	RParen // )
	Comma
	Dot
	Colon
	Question
	Equal    // =
	FatArrow // =>
	Ellipsis // ...
	Star     // * (splat marker, distinguished from Mul by parser context)

	Plus
	Minus
	Slash
	Percent
	EqualEqual
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	And
	Or
	Bang

	Newline
	Comment
)

var names = map[Type]string{
	Invalid:           "INVALID",
	EOF:               "EOF",
	Ident:             "IDENT",
	Number:            "NUMBER",
	OQuote:            `"`,
	CQuote:            `"`,
	QuotedLit:         "STRING LITERAL",
	OHeredoc:          "<<",
	CHeredoc:          "HEREDOC END",
	TemplateInterp:    "${",
	TemplateInterpS:   "${~",
	TemplateControl:   "%{",
	TemplateControlS:  "%{~",
	TemplateSeqEnd:    "}",
	TemplateSeqEndS:   "~}",
	LBrace:            "{",
	RBrace:            "}",
	LBrack:            "[",
	RBrack:            "]",
	LParen:            "(",
	RParen:            ")",
	Comma:             ",",
	Dot:               ".",
	Colon:             ":",
	Question:          "?",
	Equal:             "=",
	FatArrow:          "=>",
	Ellipsis:          "...",
	Star:              "*",
	Plus:              "+",
	Minus:             "-",
	Slash:             "/",
	Percent:           "%",
	EqualEqual:        "==",
	NotEqual:          "!=",
	Less:              "<",
	LessEqual:         "<=",
	Greater:           ">",
	GreaterEqual:      ">=",
	And:               "&&",
	Or:                "||",
	Bang:              "!",
	Newline:           "NEWLINE",
	Comment:           "COMMENT",
}

// String returns a human-readable name for t, suitable for diagnostics.
func (t Type) String() string {
	if name, ok := names[t]; ok {
		return name
	}

	return "UNKNOWN"
}

// Token is a single lexical token together with its source text and span.
type Token struct {
	Type  Type
	Text  string
	Range Range
}

// String returns the token's literal text.
func (t Token) String() string {
	return t.Text
}

// keywords lists the reserved words that lex as Ident but carry special
// meaning to the parser: true, false, null, if, for, in, else, endif,
// endfor. They are not a distinct token Type because, outside of the
// specific grammar positions that look for them, they are ordinary
// identifiers; only the parser decides where they are special.
var keywords = map[string]struct{}{
	"true":   {},
	"false":  {},
	"null":   {},
	"if":     {},
	"for":    {},
	"in":     {},
	"else":   {},
	"endif":  {},
	"endfor": {},
}

// IsKeyword reports whether s is one of the reserved words recognized in
// specific grammar positions.
func IsKeyword(s string) bool {
	_, ok := keywords[s]

	return ok
}
