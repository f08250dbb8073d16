// Package parser turns a token stream from package scanner into an
// ast.Body or ast.Expression. Parsing is recursive-descent for bodies,
// blocks, and attributes, and Pratt (precedence-climbing) for expressions.
// There is no error recovery: the first diagnostic encountered aborts the
// parse and is returned as the sole result rather than attempting partial
// ASTs.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/diag"
	"github.com/ardnew/hcl/prim"
	"github.com/ardnew/hcl/scanner"
	"github.com/ardnew/hcl/token"
)

// Parser consumes a token stream and builds an ast.Body or
// ast.Expression. The zero value is not usable; construct one with New.
type Parser struct {
	sc       *scanner.Scanner
	filename string

	cur        token.Token
	parenDepth int

	started bool
}

// New returns a Parser over src, identified as filename in diagnostics.
func New(filename string, src []byte) *Parser {
	return &Parser{sc: scanner.NewScanner(filename, src), filename: filename}
}

// ParseBody parses src as a complete HCL body (the contents of a whole
// file).
func (p *Parser) ParseBody() (*ast.Body, diag.Diagnostics) {
	if err := p.ensureStarted(); err != nil {
		return nil, diag.Diagnostics{err}
	}

	body, err := p.parseBody(token.EOF)
	if err != nil {
		return nil, diag.Diagnostics{err}
	}

	return body, nil
}

// ParseExpression parses src as a single standalone expression, consuming
// the entire input.
func (p *Parser) ParseExpression() (ast.Expression, diag.Diagnostics) {
	if err := p.ensureStarted(); err != nil {
		return nil, diag.Diagnostics{err}
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, diag.Diagnostics{err}
	}

	for p.cur.Type == token.Newline {
		if err := p.consume(); err != nil {
			return nil, diag.Diagnostics{err}
		}
	}

	if p.cur.Type != token.EOF {
		return nil, diag.Diagnostics{p.errorf("unexpected trailing input after expression")}
	}

	return expr, nil
}

func (p *Parser) ensureStarted() *diag.Diagnostic {
	if p.started {
		return nil
	}

	p.started = true

	return p.advance()
}

// --- token stream plumbing -------------------------------------------------

func (p *Parser) rawNext() (token.Token, *diag.Diagnostic) {
	for {
		tok, d := p.sc.Next()
		if d != nil {
			return token.Token{}, diag.New(diag.KindLexical, d.Subject, d.Summary, d.Detail)
		}

		if tok.Type == token.Comment {
			continue
		}

		if tok.Type == token.Newline && p.parenDepth > 0 {
			continue
		}

		return tok, nil
	}
}

func (p *Parser) advance() *diag.Diagnostic {
	tok, err := p.rawNext()
	if err != nil {
		return err
	}

	p.cur = tok

	return nil
}

// consume advances past p.cur, tracking parenthesis/bracket depth so the
// token stream suppresses Newline tokens inside `(...)` and `[...]` (but
// not inside `{...}`, where newlines separate object items and attributes).
func (p *Parser) consume() *diag.Diagnostic {
	switch p.cur.Type {
	case token.LParen, token.LBrack:
		p.parenDepth++
	case token.RParen, token.RBrack:
		if p.parenDepth > 0 {
			p.parenDepth--
		}
	}

	return p.advance()
}

func (p *Parser) expect(t token.Type) (token.Token, *diag.Diagnostic) {
	if p.cur.Type != t {
		return token.Token{}, p.errorf("expected %s, found %s", t, p.cur.Type)
	}

	tok := p.cur

	return tok, p.consume()
}

func (p *Parser) errorf(format string, args ...any) *diag.Diagnostic {
	return diag.New(diag.KindParse, p.cur.Range, fmt.Sprintf(format, args...))
}

// --- body / block / attribute grammar --------------------------------------

func (p *Parser) parseBody(closing token.Type) (*ast.Body, *diag.Diagnostic) {
	body := &ast.Body{}
	seen := map[string]token.Range{}

	for {
		for p.cur.Type == token.Newline {
			if err := p.consume(); err != nil {
				return nil, err
			}
		}

		if p.cur.Type == closing || p.cur.Type == token.EOF {
			break
		}

		if p.cur.Type != token.Ident {
			return nil, p.errorf("expected attribute or block definition, found %s", p.cur.Type)
		}

		keyText := p.cur.Text
		keyRange := p.cur.Range

		if err := p.consume(); err != nil {
			return nil, err
		}

		if p.cur.Type == token.Equal {
			attr, err := p.finishAttribute(keyText, keyRange, seen)
			if err != nil {
				return nil, err
			}

			body.Structures = append(body.Structures, attr)

			continue
		}

		blk, err := p.finishBlock(keyText, keyRange)
		if err != nil {
			return nil, err
		}

		body.Structures = append(body.Structures, blk)
	}

	return body, nil
}

func (p *Parser) finishAttribute(keyText string, keyRange token.Range, seen map[string]token.Range) (*ast.Attribute, *diag.Diagnostic) {
	if err := p.consume(); err != nil { // '='
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if prev, dup := seen[keyText]; dup {
		return nil, diag.New(diag.KindParse, keyRange,
			fmt.Sprintf("duplicate attribute %q", keyText),
			fmt.Sprintf("already defined at %s", prev))
	}

	seen[keyText] = keyRange

	if p.cur.Type != token.Newline && p.cur.Type != token.EOF && p.cur.Type != token.RBrace {
		return nil, p.errorf("expected newline after attribute, found %s", p.cur.Type)
	}

	id, idErr := prim.NewIdentifier(keyText)
	if idErr != nil {
		return nil, diag.New(diag.KindParse, keyRange, idErr.Error())
	}

	return ast.NewAttribute(keyRange.Merge(value.Range()), id, value), nil
}

func (p *Parser) finishBlock(keyText string, keyRange token.Range) (*ast.Block, *diag.Diagnostic) {
	labels, err := p.parseBlockLabels()
	if err != nil {
		return nil, err
	}

	if p.cur.Type != token.LBrace {
		return nil, p.errorf("expected block body '{', found %s", p.cur.Type)
	}

	if err := p.consume(); err != nil {
		return nil, err
	}

	nested, err := p.parseBody(token.RBrace)
	if err != nil {
		return nil, err
	}

	closeTok, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}

	id, idErr := prim.NewIdentifier(keyText)
	if idErr != nil {
		return nil, diag.New(diag.KindParse, keyRange, idErr.Error())
	}

	return ast.NewBlock(keyRange.Merge(closeTok.Range), id, labels, nested), nil
}

func (p *Parser) parseBlockLabels() ([]ast.BlockLabel, *diag.Diagnostic) {
	var labels []ast.BlockLabel

	for {
		switch p.cur.Type {
		case token.Ident:
			lbl := ast.BlockLabel{Rng: p.cur.Range, Kind: ast.LabelIdent, Text: p.cur.Text}
			if err := p.consume(); err != nil {
				return nil, err
			}

			labels = append(labels, lbl)
		case token.OQuote:
			text, rng, err := p.parseLabelString()
			if err != nil {
				return nil, err
			}

			labels = append(labels, ast.BlockLabel{Rng: rng, Kind: ast.LabelString, Text: text})
		default:
			return labels, nil
		}
	}
}

func (p *Parser) parseLabelString() (string, token.Range, *diag.Diagnostic) {
	openRng := p.cur.Range

	if err := p.consume(); err != nil {
		return "", token.Range{}, err
	}

	text := ""

	if p.cur.Type == token.QuotedLit {
		text = p.cur.Text

		if err := p.consume(); err != nil {
			return "", token.Range{}, err
		}
	}

	if p.cur.Type != token.CQuote {
		return "", token.Range{}, p.errorf("block labels must be simple strings without interpolation")
	}

	closeTok := p.cur

	if err := p.consume(); err != nil {
		return "", token.Range{}, err
	}

	return text, openRng.Merge(closeTok.Range), nil
}

// --- expression grammar (Pratt parsing) ------------------------------------

func (p *Parser) parseExpr() (ast.Expression, *diag.Diagnostic) {
	return p.parseConditional()
}

func (p *Parser) parseConditional() (ast.Expression, *diag.Diagnostic) {
	cond, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}

	if p.cur.Type != token.Question {
		return cond, nil
	}

	if err := p.consume(); err != nil {
		return nil, err
	}

	trueExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}

	falseExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return ast.NewConditional(cond.Range().Merge(falseExpr.Range()), cond, trueExpr, falseExpr), nil
}

func binaryOpFromToken(t token.Token) (prim.BinaryOperator, bool) {
	switch t.Type {
	case token.Or:
		return prim.OpLogicalOr, true
	case token.And:
		return prim.OpLogicalAnd, true
	case token.EqualEqual:
		return prim.OpEqual, true
	case token.NotEqual:
		return prim.OpNotEqual, true
	case token.Less:
		return prim.OpLessThan, true
	case token.LessEqual:
		return prim.OpLessThanOrEqual, true
	case token.Greater:
		return prim.OpGreaterThan, true
	case token.GreaterEqual:
		return prim.OpGreaterThanOrEqual, true
	case token.Plus:
		return prim.OpAdd, true
	case token.Minus:
		return prim.OpSub, true
	case token.Star:
		if t.Text == "*" {
			return prim.OpMul, true
		}

		return 0, false
	case token.Slash:
		return prim.OpDiv, true
	case token.Percent:
		return prim.OpMod, true
	default:
		return 0, false
	}
}

func (p *Parser) parseBinary(minPrec int) (ast.Expression, *diag.Diagnostic) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := binaryOpFromToken(p.cur)
		if !ok || op.Precedence() < minPrec {
			return lhs, nil
		}

		if err := p.consume(); err != nil {
			return nil, err
		}

		rhs, err := p.parseBinary(op.Precedence() + 1)
		if err != nil {
			return nil, err
		}

		lhs = ast.NewBinaryOp(lhs.Range().Merge(rhs.Range()), lhs, op, rhs)
	}
}

func (p *Parser) parseUnary() (ast.Expression, *diag.Diagnostic) {
	switch p.cur.Type {
	case token.Bang:
		start := p.cur.Range

		if err := p.consume(); err != nil {
			return nil, err
		}

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return ast.NewUnaryOp(start.Merge(operand.Range()), prim.OpNot, operand), nil
	case token.Minus:
		start := p.cur.Range

		if err := p.consume(); err != nil {
			return nil, err
		}

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		rng := start.Merge(operand.Range())

		if num, ok := operand.(*ast.NumberLit); ok {
			return ast.NewNumberLit(rng, num.Value.Neg()), nil
		}

		return ast.NewUnaryOp(rng, prim.OpNegate, operand), nil
	default:
		return p.parseTraversalExpr()
	}
}

func (p *Parser) parseTraversalExpr() (ast.Expression, *diag.Diagnostic) {
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	return p.parseTraversalSuffix(primary)
}

func (p *Parser) parseTraversalSuffix(primary ast.Expression) (ast.Expression, *diag.Diagnostic) {
	var ops []ast.TraversalOperator

	for {
		switch p.cur.Type {
		case token.Star:
			switch p.cur.Text {
			case ".*":
				ops = append(ops, ast.AttrSplatOp{Rng: p.cur.Range})

				if err := p.consume(); err != nil {
					return nil, err
				}
			case "[*]":
				ops = append(ops, ast.FullSplatOp{Rng: p.cur.Range})

				if err := p.consume(); err != nil {
					return nil, err
				}
			default:
				goto done
			}
		case token.Dot:
			if err := p.consume(); err != nil {
				return nil, err
			}

			switch p.cur.Type {
			case token.Ident:
				op := ast.AttrOp{Rng: p.cur.Range, Name: p.cur.Text}

				if err := p.consume(); err != nil {
					return nil, err
				}

				ops = append(ops, op)
			case token.Number:
				idx, convErr := strconv.ParseInt(p.cur.Text, 10, 64)
				if convErr != nil {
					return nil, p.errorf("invalid legacy index %q", p.cur.Text)
				}

				op := ast.LegacyIndexOp{Rng: p.cur.Range, Index: idx}

				if err := p.consume(); err != nil {
					return nil, err
				}

				ops = append(ops, op)
			default:
				return nil, p.errorf("expected attribute name or index after '.', found %s", p.cur.Type)
			}
		case token.LBrack:
			openRng := p.cur.Range

			if err := p.consume(); err != nil {
				return nil, err
			}

			key, kerr := p.parseExpr()
			if kerr != nil {
				return nil, kerr
			}

			closeTok, cerr := p.expect(token.RBrack)
			if cerr != nil {
				return nil, cerr
			}

			ops = append(ops, ast.IndexOp{Rng: openRng.Merge(closeTok.Range), Key: key})
		default:
			goto done
		}
	}

done:
	if len(ops) == 0 {
		return primary, nil
	}

	last := ops[len(ops)-1].Range()

	return ast.NewTraversal(primary.Range().Merge(last), primary, ops), nil
}

func (p *Parser) parsePrimary() (ast.Expression, *diag.Diagnostic) {
	switch p.cur.Type {
	case token.Ident:
		return p.parseIdentOrCall()
	case token.Number:
		return p.parseNumberLit()
	case token.OQuote:
		return p.parseQuotedTemplate()
	case token.OHeredoc:
		return p.parseHeredocTemplate()
	case token.LBrack:
		return p.parseArrayOrForExpr()
	case token.LBrace:
		return p.parseObjectOrForExpr()
	case token.LParen:
		return p.parseParenExpr()
	default:
		return nil, p.errorf("unexpected token %s in expression", p.cur.Type)
	}
}

func (p *Parser) parseIdentOrCall() (ast.Expression, *diag.Diagnostic) {
	rng := p.cur.Range
	text := p.cur.Text

	switch text {
	case "true", "false":
		if err := p.consume(); err != nil {
			return nil, err
		}

		return ast.NewBoolLit(rng, text == "true"), nil
	case "null":
		if err := p.consume(); err != nil {
			return nil, err
		}

		return ast.NewNullLit(rng), nil
	}

	if err := p.consume(); err != nil {
		return nil, err
	}

	if p.cur.Type == token.LParen {
		return p.parseFuncCall(text, rng)
	}

	id, idErr := prim.NewIdentifier(text)
	if idErr != nil {
		return nil, diag.New(diag.KindParse, rng, idErr.Error())
	}

	return ast.NewVariable(rng, id), nil
}

func (p *Parser) parseFuncCall(name string, nameRange token.Range) (ast.Expression, *diag.Diagnostic) {
	if err := p.consume(); err != nil { // '('
		return nil, err
	}

	var args []ast.Expression

	expandFinal := false

	for p.cur.Type != token.RParen {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if p.cur.Type == token.Ellipsis {
			expandFinal = true

			if err := p.consume(); err != nil {
				return nil, err
			}

			break
		}

		if p.cur.Type == token.Comma {
			if err := p.consume(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	closeTok, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}

	id, idErr := prim.NewIdentifier(name)
	if idErr != nil {
		return nil, diag.New(diag.KindParse, nameRange, idErr.Error())
	}

	return ast.NewFuncCall(nameRange.Merge(closeTok.Range), id, args, expandFinal), nil
}

func (p *Parser) parseNumberLit() (ast.Expression, *diag.Diagnostic) {
	rng := p.cur.Range
	text := p.cur.Text

	num, numErr := parseNumberText(text)
	if numErr != nil {
		return nil, diag.New(diag.KindLexical, rng, "invalid number literal", numErr.Error())
	}

	if err := p.consume(); err != nil {
		return nil, err
	}

	return ast.NewNumberLit(rng, num), nil
}

func parseNumberText(text string) (prim.Number, error) {
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return prim.Number{}, err
		}

		return prim.FloatNumber(f)
	}

	u, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return prim.Number{}, err
		}

		return prim.FloatNumber(f)
	}

	return prim.UintNumber(u), nil
}

func (p *Parser) parseParenExpr() (ast.Expression, *diag.Diagnostic) {
	openRng := p.cur.Range

	if err := p.consume(); err != nil {
		return nil, err
	}

	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	closeTok, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}

	return ast.NewParenthesis(openRng.Merge(closeTok.Range), inner), nil
}

func (p *Parser) parseArrayOrForExpr() (ast.Expression, *diag.Diagnostic) {
	openRng := p.cur.Range

	if err := p.consume(); err != nil {
		return nil, err
	}

	if p.cur.Type == token.Ident && p.cur.Text == "for" {
		forExpr, err := p.parseForExpr(false)
		if err != nil {
			return nil, err
		}

		closeTok, err := p.expect(token.RBrack)
		if err != nil {
			return nil, err
		}

		forExpr.Rng = openRng.Merge(closeTok.Range)

		return forExpr, nil
	}

	var elems []ast.Expression

	for p.cur.Type != token.RBrack {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)

		if p.cur.Type == token.Comma {
			if err := p.consume(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	closeTok, err := p.expect(token.RBrack)
	if err != nil {
		return nil, err
	}

	return ast.NewArrayExpr(openRng.Merge(closeTok.Range), elems), nil
}

func (p *Parser) parseObjectOrForExpr() (ast.Expression, *diag.Diagnostic) {
	openRng := p.cur.Range

	if err := p.consume(); err != nil {
		return nil, err
	}

	for p.cur.Type == token.Newline {
		if err := p.consume(); err != nil {
			return nil, err
		}
	}

	if p.cur.Type == token.Ident && p.cur.Text == "for" {
		forExpr, err := p.parseForExpr(true)
		if err != nil {
			return nil, err
		}

		for p.cur.Type == token.Newline {
			if err := p.consume(); err != nil {
				return nil, err
			}
		}

		closeTok, err := p.expect(token.RBrace)
		if err != nil {
			return nil, err
		}

		forExpr.Rng = openRng.Merge(closeTok.Range)

		return forExpr, nil
	}

	var items []ast.ObjectItem

	for {
		for p.cur.Type == token.Newline {
			if err := p.consume(); err != nil {
				return nil, err
			}
		}

		if p.cur.Type == token.RBrace {
			break
		}

		key, err := p.parseObjectKey()
		if err != nil {
			return nil, err
		}

		if p.cur.Type != token.Equal && p.cur.Type != token.Colon {
			return nil, p.errorf("expected '=' or ':' after object key, found %s", p.cur.Type)
		}

		if err := p.consume(); err != nil {
			return nil, err
		}

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		items = append(items, ast.ObjectItem{Key: key, Value: value})

		if p.cur.Type == token.Comma {
			if err := p.consume(); err != nil {
				return nil, err
			}

			continue
		}

		if p.cur.Type != token.Newline && p.cur.Type != token.RBrace {
			return nil, p.errorf("expected newline, ',', or '}' after object item, found %s", p.cur.Type)
		}
	}

	closeTok, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}

	return ast.NewObjectExpr(openRng.Merge(closeTok.Range), items), nil
}

func (p *Parser) parseObjectKey() (ast.Expression, *diag.Diagnostic) {
	if p.cur.Type == token.Ident {
		rng := p.cur.Range
		text := p.cur.Text

		if err := p.consume(); err != nil {
			return nil, err
		}

		return ast.NewStringLit(rng, text), nil
	}

	return p.parseExpr()
}

func (p *Parser) parseForExpr(isObject bool) (*ast.ForExpr, *diag.Diagnostic) {
	start := p.cur.Range

	if err := p.consume(); err != nil { // 'for'
		return nil, err
	}

	firstName, err := p.expectIdentText()
	if err != nil {
		return nil, err
	}

	var keyVar *prim.Identifier

	var valueVar prim.Identifier

	if p.cur.Type == token.Comma {
		if err := p.consume(); err != nil {
			return nil, err
		}

		secondName, err := p.expectIdentText()
		if err != nil {
			return nil, err
		}

		kv, kvErr := prim.NewIdentifier(firstName)
		if kvErr != nil {
			return nil, diag.New(diag.KindParse, start, kvErr.Error())
		}

		keyVar = &kv

		vv, vvErr := prim.NewIdentifier(secondName)
		if vvErr != nil {
			return nil, diag.New(diag.KindParse, start, vvErr.Error())
		}

		valueVar = vv
	} else {
		vv, vvErr := prim.NewIdentifier(firstName)
		if vvErr != nil {
			return nil, diag.New(diag.KindParse, start, vvErr.Error())
		}

		valueVar = vv
	}

	if p.cur.Type != token.Ident || p.cur.Text != "in" {
		return nil, p.errorf("expected 'in' in for-expression, found %s", p.cur.Type)
	}

	if err := p.consume(); err != nil {
		return nil, err
	}

	collection, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}

	var keyExpr, valueExpr ast.Expression

	if isObject {
		keyExpr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.FatArrow); err != nil {
			return nil, err
		}

		valueExpr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	} else {
		valueExpr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	var cond ast.Expression

	if p.cur.Type == token.Ident && p.cur.Text == "if" {
		if err := p.consume(); err != nil {
			return nil, err
		}

		cond, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	grouping := false

	if isObject && p.cur.Type == token.Ellipsis {
		grouping = true

		if err := p.consume(); err != nil {
			return nil, err
		}
	}

	return ast.NewForExpr(start, keyVar, valueVar, collection, keyExpr, valueExpr, cond, grouping), nil
}

func (p *Parser) expectIdentText() (string, *diag.Diagnostic) {
	if p.cur.Type != token.Ident {
		return "", p.errorf("expected identifier, found %s", p.cur.Type)
	}

	text := p.cur.Text

	return text, p.consume()
}

// --- templates --------------------------------------------------------------

// markerStrip records the left/right strip flags of a single template
// marker, e.g. the `~` on either side of a `%{ endif }` closer.
type markerStrip struct {
	Left, Right bool
}

func (p *Parser) parseQuotedTemplate() (*ast.TemplateExpr, *diag.Diagnostic) {
	openRng := p.cur.Range

	if err := p.consume(); err != nil {
		return nil, err
	}

	elements, _, _, err := p.parseTemplateElements(nil)
	if err != nil {
		return nil, err
	}

	if p.cur.Type != token.CQuote {
		return nil, p.errorf("expected closing quote, found %s", p.cur.Type)
	}

	closeRng := p.cur.Range

	if err := p.consume(); err != nil {
		return nil, err
	}

	return ast.NewTemplateExpr(openRng.Merge(closeRng), literalSource(elements), elements), nil
}

func (p *Parser) parseHeredocTemplate() (*ast.TemplateExpr, *diag.Diagnostic) {
	openRng := p.cur.Range
	openText := p.cur.Text

	indented := strings.HasPrefix(openText, "<<-")
	tag := strings.TrimPrefix(strings.TrimPrefix(openText, "<<-"), "<<")

	if err := p.consume(); err != nil {
		return nil, err
	}

	elements, _, _, err := p.parseTemplateElements(nil)
	if err != nil {
		return nil, err
	}

	if p.cur.Type != token.CHeredoc {
		return nil, p.errorf("expected heredoc closing tag %q, found %s", tag, p.cur.Type)
	}

	closeRng := p.cur.Range

	if err := p.consume(); err != nil {
		return nil, err
	}

	return ast.NewHeredocExpr(openRng.Merge(closeRng), literalSource(elements), elements, tag, indented), nil
}

func literalSource(elements []ast.Element) string {
	var b strings.Builder

	for _, e := range elements {
		if lit, ok := e.(*ast.Literal); ok {
			b.WriteString(lit.Text)
		}
	}

	return b.String()
}

// parseTemplateElements scans a flat run of Literal/Interpolation/Directive
// elements until it sees a CQuote, CHeredoc, or EOF (when stop is nil or
// empty — the top-level call for a whole template), or a control marker
// whose keyword is in stop (a nested call parsing one branch of an
// if/for directive). It fully consumes the stop marker before returning,
// so the caller never sees the keyword token itself.
func (p *Parser) parseTemplateElements(stop map[string]bool) ([]ast.Element, string, markerStrip, *diag.Diagnostic) {
	var elements []ast.Element

	for {
		switch p.cur.Type {
		case token.CQuote, token.CHeredoc, token.EOF:
			if len(stop) > 0 {
				return nil, "", markerStrip{}, p.errorf("unterminated template directive")
			}

			return elements, "", markerStrip{}, nil

		case token.QuotedLit:
			elements = append(elements, ast.NewLiteral(p.cur.Range, p.cur.Text))

			if err := p.consume(); err != nil {
				return nil, "", markerStrip{}, err
			}

		case token.TemplateInterp, token.TemplateInterpS:
			leftStrip := p.cur.Type == token.TemplateInterpS
			openRng := p.cur.Range

			if err := p.consume(); err != nil {
				return nil, "", markerStrip{}, err
			}

			expr, err := p.parseExpr()
			if err != nil {
				return nil, "", markerStrip{}, err
			}

			if p.cur.Type != token.TemplateSeqEnd && p.cur.Type != token.TemplateSeqEndS {
				return nil, "", markerStrip{}, p.errorf("expected '}' to close interpolation, found %s", p.cur.Type)
			}

			rightStrip := p.cur.Type == token.TemplateSeqEndS
			closeRng := p.cur.Range

			if err := p.consume(); err != nil {
				return nil, "", markerStrip{}, err
			}

			elements = append(elements, ast.NewInterpolation(
				openRng.Merge(closeRng), expr, ast.StripMode{Left: leftStrip, Right: rightStrip}))

		case token.TemplateControl, token.TemplateControlS:
			leftStrip := p.cur.Type == token.TemplateControlS
			markRng := p.cur.Range

			if err := p.consume(); err != nil {
				return nil, "", markerStrip{}, err
			}

			if p.cur.Type != token.Ident {
				return nil, "", markerStrip{}, p.errorf("expected directive keyword after '%%{', found %s", p.cur.Type)
			}

			word := p.cur.Text

			if stop[word] {
				if err := p.consume(); err != nil {
					return nil, "", markerStrip{}, err
				}

				if p.cur.Type != token.TemplateSeqEnd && p.cur.Type != token.TemplateSeqEndS {
					return nil, "", markerStrip{}, p.errorf("expected '}' to close %q, found %s", word, p.cur.Type)
				}

				rightStrip := p.cur.Type == token.TemplateSeqEndS

				if err := p.consume(); err != nil {
					return nil, "", markerStrip{}, err
				}

				return elements, word, markerStrip{Left: leftStrip, Right: rightStrip}, nil
			}

			switch word {
			case "if":
				dir, err := p.parseIfDirective(markRng, leftStrip)
				if err != nil {
					return nil, "", markerStrip{}, err
				}

				elements = append(elements, dir)
			case "for":
				dir, err := p.parseForDirective(markRng, leftStrip)
				if err != nil {
					return nil, "", markerStrip{}, err
				}

				elements = append(elements, dir)
			default:
				return nil, "", markerStrip{}, p.errorf("unexpected directive keyword %q", word)
			}

		default:
			return nil, "", markerStrip{}, p.errorf("unexpected token %s inside template", p.cur.Type)
		}
	}
}

func (p *Parser) parseIfDirective(markRng token.Range, leftStrip bool) (*ast.IfDirective, *diag.Diagnostic) {
	if err := p.consume(); err != nil { // 'if'
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.cur.Type != token.TemplateSeqEnd && p.cur.Type != token.TemplateSeqEndS {
		return nil, p.errorf("expected '}' to close if directive, found %s", p.cur.Type)
	}

	ifRightStrip := p.cur.Type == token.TemplateSeqEndS
	closeRng := p.cur.Range

	if err := p.consume(); err != nil {
		return nil, err
	}

	ifStrip := ast.StripMode{Left: leftStrip, Right: ifRightStrip}

	trueElems, stopWord, stop1, err := p.parseTemplateElements(map[string]bool{"else": true, "endif": true})
	if err != nil {
		return nil, err
	}

	trueTpl := &ast.Template{Elements: trueElems}

	var (
		falseTpl   *ast.Template
		elseStrip  ast.StripMode
		endifStrip ast.StripMode
	)

	if stopWord == "else" {
		elseStrip = ast.StripMode{Left: stop1.Left, Right: stop1.Right}

		falseElems, _, stop2, err := p.parseTemplateElements(map[string]bool{"endif": true})
		if err != nil {
			return nil, err
		}

		falseTpl = &ast.Template{Elements: falseElems}
		endifStrip = ast.StripMode{Left: stop2.Left, Right: stop2.Right}
	} else {
		endifStrip = ast.StripMode{Left: stop1.Left, Right: stop1.Right}
	}

	return ast.NewIfDirective(markRng.Merge(closeRng), cond, trueTpl, falseTpl, ifStrip, elseStrip, endifStrip), nil
}

func (p *Parser) parseForDirective(markRng token.Range, leftStrip bool) (*ast.ForDirective, *diag.Diagnostic) {
	if err := p.consume(); err != nil { // 'for'
		return nil, err
	}

	firstName, err := p.expectIdentText()
	if err != nil {
		return nil, err
	}

	var keyVar *prim.Identifier

	var valueVar prim.Identifier

	if p.cur.Type == token.Comma {
		if err := p.consume(); err != nil {
			return nil, err
		}

		secondName, err := p.expectIdentText()
		if err != nil {
			return nil, err
		}

		kv, kvErr := prim.NewIdentifier(firstName)
		if kvErr != nil {
			return nil, diag.New(diag.KindParse, markRng, kvErr.Error())
		}

		keyVar = &kv

		vv, vvErr := prim.NewIdentifier(secondName)
		if vvErr != nil {
			return nil, diag.New(diag.KindParse, markRng, vvErr.Error())
		}

		valueVar = vv
	} else {
		vv, vvErr := prim.NewIdentifier(firstName)
		if vvErr != nil {
			return nil, diag.New(diag.KindParse, markRng, vvErr.Error())
		}

		valueVar = vv
	}

	if p.cur.Type != token.Ident || p.cur.Text != "in" {
		return nil, p.errorf("expected 'in' in for directive, found %s", p.cur.Type)
	}

	if err := p.consume(); err != nil {
		return nil, err
	}

	collection, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.cur.Type != token.TemplateSeqEnd && p.cur.Type != token.TemplateSeqEndS {
		return nil, p.errorf("expected '}' to close for directive, found %s", p.cur.Type)
	}

	forRightStrip := p.cur.Type == token.TemplateSeqEndS
	closeRng := p.cur.Range

	if err := p.consume(); err != nil {
		return nil, err
	}

	forStrip := ast.StripMode{Left: leftStrip, Right: forRightStrip}

	bodyElems, _, stop1, err := p.parseTemplateElements(map[string]bool{"endfor": true})
	if err != nil {
		return nil, err
	}

	endforStrip := ast.StripMode{Left: stop1.Left, Right: stop1.Right}

	return ast.NewForDirective(markRng.Merge(closeRng), keyVar, valueVar, collection, &ast.Template{Elements: bodyElems}, forStrip, endforStrip), nil
}
