package scanner

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/apparentlymart/go-textseg/v15/textseg"

	"github.com/ardnew/hcl/token"
)

func indexByte(b []byte, c byte) int { return bytes.IndexByte(b, c) }

// Scanner tokenizes HCL source text, switching lexing vocabulary as it
// enters and leaves quoted strings, heredocs, and template markers.
// NewScanner starts in ModeSource for a whole file; NewTemplateScanner
// starts in ModeTemplate.
type Scanner struct {
	filename string
	src      []byte
	off      int
	line     int
	col      int

	stack []frame
}

// NewScanner returns a Scanner positioned at the start of src, ready to
// tokenize a complete HCL body in ModeSource.
func NewScanner(filename string, src []byte) *Scanner {
	return &Scanner{
		filename: filename,
		src:      src,
		line:     1,
		col:      1,
		stack:    []frame{{mode: ModeSource}},
	}
}

// NewTemplateScanner returns a Scanner positioned at start, ready to
// tokenize src as the literal body of a template (the decoded source text
// of a TemplateExpr), rather than as a whole HCL file.
func NewTemplateScanner(filename string, src []byte, start token.Pos) *Scanner {
	pos := start
	if !pos.IsValid() {
		pos = token.Pos{Byte: 0, Line: 1, Column: 1}
	}

	return &Scanner{
		filename: filename,
		src:      src,
		off:      0,
		line:     pos.Line,
		col:      pos.Column,
		stack:    []frame{{mode: ModeTemplate}},
	}
}

func (s *Scanner) top() *frame { return &s.stack[len(s.stack)-1] }

func (s *Scanner) pos() token.Pos {
	return token.Pos{Byte: s.off, Line: s.line, Column: s.col}
}

func (s *Scanner) rangeFrom(start token.Pos) token.Range {
	return token.Range{Filename: s.filename, Start: start, End: s.pos()}
}

func (s *Scanner) atEOF() bool { return s.off >= len(s.src) }

// atLineStart reports whether the cursor sits at column 1, i.e. right
// after a newline (or at the very start of the heredoc body).
func (s *Scanner) atLineStart() bool { return s.col == 1 }

func (s *Scanner) peekByte() byte {
	if s.atEOF() {
		return 0
	}

	return s.src[s.off]
}

func (s *Scanner) peekByteAt(n int) byte {
	if s.off+n >= len(s.src) {
		return 0
	}

	return s.src[s.off+n]
}

// advanceBytes consumes n raw bytes, updating line/column. It assumes the
// consumed bytes are ASCII punctuation or the caller has already accounted
// for grapheme width; use advanceText for anything that might contain
// multi-byte runes.
func (s *Scanner) advanceBytes(n int) {
	for i := 0; i < n; i++ {
		if s.src[s.off] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}

		s.off++
	}
}

// advanceText consumes the given byte slice (which must be a prefix of the
// unread source starting at s.off) counting columns in grapheme clusters
// via go-textseg, so that combining-mark sequences and other multi-rune
// clusters occupy a single column like they would in an editor.
func (s *Scanner) advanceText(b []byte) {
	rest := b

	for len(rest) > 0 {
		if rest[0] == '\n' {
			s.line++
			s.col = 1
			s.off++
			rest = rest[1:]

			continue
		}

		segLen, _, err := textseg.ScanGraphemeClusters(rest, true)
		if err != nil || segLen <= 0 {
			segLen = 1
		}

		s.col++
		s.off += segLen
		rest = rest[segLen:]
	}
}

// Next returns the next token in the stream. A nil Diag with a token of
// Type token.Invalid never happens on success; callers stop on the first
// non-nil Diag, matching the module's first-error-only diagnostic policy.
func (s *Scanner) Next() (token.Token, *Diag) {
	switch s.top().mode {
	case ModeQuoted:
		return s.nextQuoted()
	case ModeHeredoc:
		return s.nextHeredoc()
	default: // ModeSource, ModeTemplate
		return s.nextSourceLike()
	}
}

func (s *Scanner) emit(typ token.Type, start token.Pos, text string) token.Token {
	return token.Token{Type: typ, Text: text, Range: s.rangeFrom(start)}
}

// nextSourceLike lexes the bare-syntax vocabulary shared by ModeSource and
// ModeTemplate: identifiers, numbers, punctuation, operators, comments,
// and the openers that push ModeQuoted/ModeHeredoc. When the active frame
// is ModeTemplate it additionally tracks brace depth so that its own
// closing marker can be recognized rather than treated as an ordinary
// RBrace.
func (s *Scanner) nextSourceLike() (token.Token, *Diag) {
	inTemplate := s.top().mode == ModeTemplate

	for {
		if s.atEOF() {
			return s.emit(token.EOF, s.pos(), ""), nil
		}

		start := s.pos()
		c := s.peekByte()

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			s.advanceBytes(1)

			continue
		case c == '\n':
			s.advanceBytes(1)

			return s.emit(token.Newline, start, "\n"), nil
		case c == '#' || (c == '/' && s.peekByteAt(1) == '/'):
			s.skipLineComment()

			continue
		case c == '/' && s.peekByteAt(1) == '*':
			if d := s.skipBlockComment(start); d != nil {
				return token.Token{}, d
			}

			continue
		}

		if inTemplate && s.top().depth == 0 {
			if c == '~' && s.peekByteAt(1) == '}' {
				s.advanceBytes(2)
				s.stack = s.stack[:len(s.stack)-1]

				return s.emit(token.TemplateSeqEndS, start, "~}"), nil
			}

			if c == '}' {
				s.advanceBytes(1)
				s.stack = s.stack[:len(s.stack)-1]

				return s.emit(token.TemplateSeqEnd, start, "}"), nil
			}
		}

		switch {
		case isDigit(c):
			return s.scanNumber(start)
		case isIdentStartByte(c):
			return s.scanIdentOrKeyword(start)
		case c == '"':
			s.advanceBytes(1)
			s.stack = append(s.stack, frame{mode: ModeQuoted})

			return s.emit(token.OQuote, start, `"`), nil
		case c == '<' && s.peekByteAt(1) == '<':
			return s.scanHeredocOpener(start)
		}

		return s.scanPunct(start, inTemplate)
	}
}

func (s *Scanner) skipLineComment() {
	for !s.atEOF() && s.peekByte() != '\n' {
		s.advanceBytes(1)
	}
}

func (s *Scanner) skipBlockComment(start token.Pos) *Diag {
	s.advanceBytes(2) // "/*"

	for {
		if s.atEOF() {
			return &Diag{Summary: "unterminated block comment", Subject: s.rangeFrom(start)}
		}

		if s.peekByte() == '*' && s.peekByteAt(1) == '/' {
			s.advanceBytes(2)

			return nil
		}

		s.advanceBytes(1)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStartByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPartByte(c byte) bool {
	return isIdentStartByte(c) || c == '-' || isDigit(c)
}

func (s *Scanner) scanIdentOrKeyword(start token.Pos) (token.Token, *Diag) {
	begin := s.off

	for !s.atEOF() && isIdentPartByte(s.peekByte()) {
		s.advanceBytes(1)
	}

	text := string(s.src[begin:s.off])

	return s.emit(token.Ident, start, text), nil
}

func (s *Scanner) scanNumber(start token.Pos) (token.Token, *Diag) {
	begin := s.off

	for !s.atEOF() && isDigit(s.peekByte()) {
		s.advanceBytes(1)
	}

	if s.peekByte() == '.' && isDigit(s.peekByteAt(1)) {
		s.advanceBytes(1)

		for !s.atEOF() && isDigit(s.peekByte()) {
			s.advanceBytes(1)
		}
	}

	if c := s.peekByte(); c == 'e' || c == 'E' {
		save := s.off
		saveLine, saveCol := s.line, s.col

		s.advanceBytes(1)

		if c := s.peekByte(); c == '+' || c == '-' {
			s.advanceBytes(1)
		}

		if isDigit(s.peekByte()) {
			for !s.atEOF() && isDigit(s.peekByte()) {
				s.advanceBytes(1)
			}
		} else {
			s.off, s.line, s.col = save, saveLine, saveCol
		}
	}

	text := string(s.src[begin:s.off])

	return s.emit(token.Number, start, text), nil
}

// scanHeredocOpener consumes `<<TAG` or `<<-TAG` and the rest of its line,
// and pushes a ModeHeredoc frame remembering the tag and indentation flag.
func (s *Scanner) scanHeredocOpener(start token.Pos) (token.Token, *Diag) {
	s.advanceBytes(2) // "<<"

	indented := false
	if s.peekByte() == '-' {
		indented = true
		s.advanceBytes(1)
	}

	begin := s.off

	for !s.atEOF() && isIdentPartByte(s.peekByte()) {
		s.advanceBytes(1)
	}

	if s.off == begin {
		return token.Token{}, &Diag{Summary: "expected heredoc tag after <<", Subject: s.rangeFrom(start)}
	}

	tag := string(s.src[begin:s.off])

	fr := frame{mode: ModeHeredoc, tag: tag, indented: indented}
	if indented && !s.atEOF() {
		bodyStart := s.off
		if s.peekByte() != '\n' {
			// Tolerate trailing content on the opener line; the body
			// proper begins at the next newline.
			if idx := indexByte(s.src[s.off:], '\n'); idx >= 0 {
				bodyStart = s.off + idx + 1
			}
		} else {
			bodyStart = s.off + 1
		}

		if bodyStart <= len(s.src) {
			fr.dedent = computeHeredocDedent(s.src[bodyStart:], tag)
		}
	}

	s.stack = append(s.stack, fr)

	text := string(s.src[start.Byte:s.off])
	tok := s.emit(token.OHeredoc, start, text)

	// The rest of the opener line, including its newline, is not part of
	// the body.
	for !s.atEOF() && s.peekByte() != '\n' {
		s.advanceBytes(1)
	}

	if !s.atEOF() {
		s.advanceText(s.src[s.off : s.off+1])
	}

	return tok, nil
}

//nolint:gocyclo // punctuation dispatch is inherently a flat table.
func (s *Scanner) scanPunct(start token.Pos, inTemplate bool) (token.Token, *Diag) {
	c := s.peekByte()
	two := s.peekByteAt(1)

	emit2 := func(typ token.Type, text string) (token.Token, *Diag) {
		s.advanceBytes(2)

		return s.emit(typ, start, text), nil
	}
	emit1 := func(typ token.Type, text string) (token.Token, *Diag) {
		s.advanceBytes(1)

		return s.emit(typ, start, text), nil
	}

	switch c {
	case '{':
		if inTemplate {
			s.top().depth++
		}

		return emit1(token.LBrace, "{")
	case '}':
		if inTemplate {
			s.top().depth--
		}

		return emit1(token.RBrace, "}")
	case '[':
		if two == '*' && s.peekByteAt(2) == ']' {
			s.advanceBytes(3)

			return s.emit(token.Star, start, "[*]"), nil
		}

		return emit1(token.LBrack, "[")
	case ']':
		return emit1(token.RBrack, "]")
	case '(':
		return emit1(token.LParen, "(")
	case ')':
		return emit1(token.RParen, ")")
	case ',':
		return emit1(token.Comma, ",")
	case ':':
		return emit1(token.Colon, ":")
	case '?':
		return emit1(token.Question, "?")
	case '.':
		if two == '.' && s.peekByteAt(2) == '.' {
			s.advanceBytes(3)

			return s.emit(token.Ellipsis, start, "..."), nil
		}

		if two == '*' {
			return emit2(token.Star, ".*")
		}

		return emit1(token.Dot, ".")
	case '=':
		if two == '=' {
			return emit2(token.EqualEqual, "==")
		}

		if two == '>' {
			return emit2(token.FatArrow, "=>")
		}

		return emit1(token.Equal, "=")
	case '!':
		if two == '=' {
			return emit2(token.NotEqual, "!=")
		}

		return emit1(token.Bang, "!")
	case '<':
		if two == '=' {
			return emit2(token.LessEqual, "<=")
		}

		return emit1(token.Less, "<")
	case '>':
		if two == '=' {
			return emit2(token.GreaterEqual, ">=")
		}

		return emit1(token.Greater, ">")
	case '&':
		if two == '&' {
			return emit2(token.And, "&&")
		}
	case '|':
		if two == '|' {
			return emit2(token.Or, "||")
		}
	case '+':
		return emit1(token.Plus, "+")
	case '-':
		return emit1(token.Minus, "-")
	case '*':
		return emit1(token.Star, "*")
	case '/':
		return emit1(token.Slash, "/")
	case '%':
		if two == '{' {
			return s.scanTemplateOpener(start, token.TemplateControl, token.TemplateControlS, "%{")
		}

		return emit1(token.Percent, "%")
	}

	s.advanceBytes(1)

	return token.Token{}, &Diag{Summary: "unrecognized character", Detail: string(c), Subject: s.rangeFrom(start)}
}

// scanTemplateOpener consumes `${`/`${~` or `%{`/`%{~`, pushing a new
// ModeTemplate frame.
func (s *Scanner) scanTemplateOpener(start token.Pos, plain, stripped token.Type, lit string) (token.Token, *Diag) {
	s.advanceBytes(2)
	s.stack = append(s.stack, frame{mode: ModeTemplate})

	if s.peekByte() == '~' {
		s.advanceBytes(1)

		return s.emit(stripped, start, lit+"~"), nil
	}

	return s.emit(plain, start, lit), nil
}

// nextQuoted lexes the interior of a `"..."` quoted string: a run of
// literal text (with escapes decoded) terminated by the closing quote or
// a template marker.
func (s *Scanner) nextQuoted() (token.Token, *Diag) {
	start := s.pos()

	if s.atEOF() {
		return token.Token{}, &Diag{Summary: "unterminated quoted string", Subject: s.rangeFrom(start)}
	}

	if s.peekByte() == '"' {
		s.advanceBytes(1)
		s.stack = s.stack[:len(s.stack)-1]

		return s.emit(token.CQuote, start, `"`), nil
	}

	if tok, opened, diag := s.tryTemplateMarker(start); opened {
		return tok, diag
	}

	var b strings.Builder

	for {
		if s.atEOF() {
			return token.Token{}, &Diag{Summary: "unterminated quoted string", Subject: s.rangeFrom(start)}
		}

		c := s.peekByte()

		if c == '"' {
			break
		}

		if c == '$' && (s.peekByteAt(1) == '{') {
			break
		}

		if c == '%' && (s.peekByteAt(1) == '{') {
			break
		}

		if c == '$' && s.peekByteAt(1) == '$' {
			s.advanceBytes(2)
			b.WriteByte('$')

			continue
		}

		if c == '%' && s.peekByteAt(1) == '%' {
			s.advanceBytes(2)
			b.WriteByte('%')

			continue
		}

		if c == '\\' {
			decoded, d := s.decodeEscape(start)
			if d != nil {
				return token.Token{}, d
			}

			b.WriteString(decoded)

			continue
		}

		r, size := utf8.DecodeRune(s.src[s.off:])
		s.advanceText(s.src[s.off : s.off+size])
		b.WriteRune(r)
	}

	return s.emit(token.QuotedLit, start, b.String()), nil
}

// tryTemplateMarker consumes a `${`/`${~`/`%{`/`%{~` marker if the cursor
// is positioned at one, returning opened=false otherwise.
func (s *Scanner) tryTemplateMarker(start token.Pos) (token.Token, bool, *Diag) {
	c := s.peekByte()

	if c == '$' && s.peekByteAt(1) == '{' {
		tok, d := s.scanTemplateOpener(start, token.TemplateInterp, token.TemplateInterpS, "${")

		return tok, true, d
	}

	if c == '%' && s.peekByteAt(1) == '{' {
		tok, d := s.scanTemplateOpener(start, token.TemplateControl, token.TemplateControlS, "%{")

		return tok, true, d
	}

	return token.Token{}, false, nil
}

// decodeEscape decodes a backslash escape sequence at the cursor,
// returning its expansion.
func (s *Scanner) decodeEscape(tokenStart token.Pos) (string, *Diag) {
	escStart := s.pos()
	s.advanceBytes(1) // backslash

	if s.atEOF() {
		return "", &Diag{Summary: "unterminated escape sequence", Subject: s.rangeFrom(escStart)}
	}

	c := s.peekByte()

	switch c {
	case 'n':
		s.advanceBytes(1)

		return "\n", nil
	case 'r':
		s.advanceBytes(1)

		return "\r", nil
	case 't':
		s.advanceBytes(1)

		return "\t", nil
	case '"':
		s.advanceBytes(1)

		return `"`, nil
	case '\\':
		s.advanceBytes(1)

		return `\`, nil
	case 'u':
		s.advanceBytes(1)

		return s.decodeUnicodeEscape(escStart, false)
	case 'U':
		s.advanceBytes(1)

		return s.decodeUnicodeEscape(escStart, true)
	default:
		return "", &Diag{Summary: "invalid escape sequence", Detail: `\` + string(c), Subject: s.rangeFrom(tokenStart)}
	}
}

// decodeUnicodeEscape decodes `\uXXXX`, `\UXXXXXXXX`, or the braced form
// `\u{X...}` (1-6 hex digits).
func (s *Scanner) decodeUnicodeEscape(start token.Pos, long bool) (string, *Diag) {
	if s.peekByte() == '{' {
		s.advanceBytes(1)

		begin := s.off
		for !s.atEOF() && s.peekByte() != '}' {
			s.advanceBytes(1)
		}

		if s.atEOF() {
			return "", &Diag{Summary: "unterminated unicode escape", Subject: s.rangeFrom(start)}
		}

		hex := string(s.src[begin:s.off])
		s.advanceBytes(1) // '}'

		return decodeHexRune(hex, start)
	}

	width := 4
	if long {
		width = 8
	}

	if s.off+width > len(s.src) {
		return "", &Diag{Summary: "unterminated unicode escape", Subject: s.rangeFrom(start)}
	}

	hex := string(s.src[s.off : s.off+width])
	s.advanceBytes(width)

	return decodeHexRune(hex, start)
}

func decodeHexRune(hex string, start token.Pos) (string, *Diag) {
	var v rune

	for _, c := range hex {
		v <<= 4

		switch {
		case c >= '0' && c <= '9':
			v |= c - '0'
		case c >= 'a' && c <= 'f':
			v |= c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v |= c - 'A' + 10
		default:
			return "", &Diag{Summary: "invalid unicode escape digit", Detail: hex}
		}
	}

	if !utf8.ValidRune(v) {
		return "", &Diag{Summary: "invalid unicode escape value", Detail: hex}
	}

	return string(v), nil
}

// nextHeredoc lexes the interior of a heredoc: literal text terminated by
// the closing tag line, a template marker, or the `$${`/`%%{` marker
// escapes (the only escapes recognized inside a heredoc body). When the
// heredoc was opened with `<<-TAG`, the minimum common indent — precomputed
// once in scanHeredocOpener over the whole body including the closer line —
// is stripped from the start of every line as it is scanned, so that
// interpolations see already-dedented content.
func (s *Scanner) nextHeredoc() (token.Token, *Diag) {
	fr := s.top()
	start := s.pos()

	if s.atLineStart() {
		s.stripLineIndent(fr)

		if closed, tok, _ := s.tryHeredocClose(fr, s.pos()); closed {
			return tok, nil
		}

		start = s.pos()
	}

	if tok, opened, diag := s.tryTemplateMarker(start); opened {
		return tok, diag
	}

	var b strings.Builder

	for {
		if s.atEOF() {
			return token.Token{}, &Diag{Summary: "unterminated heredoc", Detail: fr.tag, Subject: s.rangeFrom(start)}
		}

		if s.atLineStart() {
			// Check for the closer before stripping, so the next call still
			// starts at the beginning of the closer line and emits it.
			if closed, _ := s.tryHeredocCloseWidth(fr); closed {
				break
			}

			s.stripLineIndent(fr)
		}

		c := s.peekByte()

		if (c == '$' || c == '%') && s.peekByteAt(1) == '{' {
			break
		}

		if c == '$' && s.peekByteAt(1) == '$' && s.peekByteAt(2) == '{' {
			s.advanceBytes(2)
			b.WriteByte('$')

			continue
		}

		if c == '%' && s.peekByteAt(1) == '%' && s.peekByteAt(2) == '{' {
			s.advanceBytes(2)
			b.WriteByte('%')

			continue
		}

		r, size := utf8.DecodeRune(s.src[s.off:])
		s.advanceText(s.src[s.off : s.off+size])
		b.WriteRune(r)
	}

	return s.emit(token.QuotedLit, start, b.String()), nil
}

// stripLineIndent consumes up to fr.dedent runes of leading whitespace at
// the cursor, which must be at column 1. It is a no-op unless fr.indented.
func (s *Scanner) stripLineIndent(fr *frame) {
	if !fr.indented || fr.dedent <= 0 {
		return
	}

	stripped := 0

	for stripped < fr.dedent && !s.atEOF() {
		c := s.peekByte()
		if c == '\n' || !isUnicodeSpaceByte(s, c) {
			break
		}

		_, size := utf8.DecodeRune(s.src[s.off:])
		s.advanceText(s.src[s.off : s.off+size])
		stripped++
	}
}

// isUnicodeSpaceByte reports whether the rune starting at the scanner's
// current offset is Unicode whitespace. c is the already-peeked first byte,
// passed in to avoid a redundant peek in the common ASCII case.
func isUnicodeSpaceByte(s *Scanner, c byte) bool {
	if c < utf8.RuneSelf {
		return c == ' ' || c == '\t' || c == '\r'
	}

	r, _ := utf8.DecodeRune(s.src[s.off:])

	return unicode.IsSpace(r)
}

// tryHeredocClose checks whether the current line (from the cursor,
// assumed to be at column 1, already past any stripped indent) is exactly
// the heredoc's closing tag, optionally preceded by further whitespace. If
// so it consumes the tag text and pops the ModeHeredoc frame.
func (s *Scanner) tryHeredocClose(fr *frame, start token.Pos) (bool, token.Token, int) {
	closed, width := s.tryHeredocCloseWidth(fr)
	if !closed {
		return false, token.Token{}, 0
	}

	tagEnd := s.off + width + len(fr.tag)
	s.advanceText(s.src[s.off:tagEnd])
	s.stack = s.stack[:len(s.stack)-1]

	return true, s.emit(token.CHeredoc, start, fr.tag), 0
}

// tryHeredocCloseWidth reports whether the line at the cursor (column 1) is
// the heredoc's closing tag line, without consuming anything.
func (s *Scanner) tryHeredocCloseWidth(fr *frame) (bool, int) {
	i := s.off

	for i < len(s.src) && isHSpace(s.src[i]) {
		i++
	}

	indentWidth := i - s.off
	tagEnd := i + len(fr.tag)

	if tagEnd > len(s.src) || string(s.src[i:tagEnd]) != fr.tag {
		return false, 0
	}

	after := byte(0)
	if tagEnd < len(s.src) {
		after = s.src[tagEnd]
	}

	if after != 0 && after != '\n' && after != '\r' {
		return false, 0
	}

	return true, indentWidth
}

func isHSpace(c byte) bool { return c == ' ' || c == '\t' }

// computeHeredocDedent precomputes the minimum common leading-whitespace
// width, in runes, across every non-blank line of an indented heredoc's
// body, including the closing tag line, matching the `<<-TAG` rule. rest is
// the unread source starting right after the opener's newline.
func computeHeredocDedent(rest []byte, tag string) int {
	lines := strings.Split(string(rest), "\n")

	minIndent := -1

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		indent := utf8.RuneCountInString(line) - utf8.RuneCountInString(trimmed)
		isCloser := trimmed == tag

		if trimmed == "" && !isCloser {
			continue
		}

		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}

		if isCloser {
			break
		}
	}

	if minIndent < 0 {
		return 0
	}

	return minIndent
}

