package ast

import (
	"github.com/ardnew/hcl/prim"
	"github.com/ardnew/hcl/token"
)

// StripMode records which side of a template marker requested whitespace
// stripping via the `~` modifier, e.g. `${~ ... }` strips to the left and
// `${ ... ~}` strips to the right.
type StripMode struct {
	Left  bool
	Right bool
}

// Template is the parsed form of a TemplateExpr's source text: a flat
// sequence of Elements produced by the template parser. Directive elements
// nest their own Templates for the branches/body they control.
type Template struct {
	Elements []Element
}

// Element is one piece of a Template: a run of literal text, an
// interpolation, or a control directive.
type Element interface {
	Range() token.Range
	elemNode()
}

var (
	_ Element = (*Literal)(nil)
	_ Element = (*Interpolation)(nil)
	_ Element = (*IfDirective)(nil)
	_ Element = (*ForDirective)(nil)
)

// Literal is a run of plain text between markers, exactly as decoded by the
// tokenizer (escape sequences resolved, marker escapes resolved). Whitespace
// implied by an adjacent element's StripMode has not been removed; Literal
// carries the raw text and the stripping is applied at evaluation time.
type Literal struct {
	node
	Text string
}

func (*Literal) elemNode() {}

// NewLiteral constructs a Literal spanning rng.
func NewLiteral(rng token.Range, text string) *Literal {
	return &Literal{node: node{Rng: rng}, Text: text}
}

// Interpolation is a `${ expr }` element.
type Interpolation struct {
	node

	Expr  Expression
	Strip StripMode
}

func (*Interpolation) elemNode() {}

// NewInterpolation constructs an Interpolation spanning rng.
func NewInterpolation(rng token.Range, expr Expression, strip StripMode) *Interpolation {
	return &Interpolation{node: node{Rng: rng}, Expr: expr, Strip: strip}
}

// IfDirective is a `%{ if cond }...%{ else }...%{ endif }` control
// directive. False is nil when there was no `else` branch.
type IfDirective struct {
	node

	Cond  Expression
	True  *Template
	False *Template

	IfStrip    StripMode
	ElseStrip  StripMode
	EndIfStrip StripMode
}

func (*IfDirective) elemNode() {}

// NewIfDirective constructs an IfDirective spanning rng.
func NewIfDirective(rng token.Range, cond Expression, trueTpl, falseTpl *Template, ifStrip, elseStrip, endifStrip StripMode) *IfDirective {
	return &IfDirective{
		node:       node{Rng: rng},
		Cond:       cond,
		True:       trueTpl,
		False:      falseTpl,
		IfStrip:    ifStrip,
		ElseStrip:  elseStrip,
		EndIfStrip: endifStrip,
	}
}

// ForDirective is a `%{ for v in coll }...%{ endfor }` control directive.
// KeyVar is nil for the single-variable `for v in` form.
type ForDirective struct {
	node

	KeyVar     *prim.Identifier
	ValueVar   prim.Identifier
	Collection Expression
	Body       *Template

	ForStrip    StripMode
	EndForStrip StripMode
}

func (*ForDirective) elemNode() {}

// NewForDirective constructs a ForDirective spanning rng.
func NewForDirective(rng token.Range, keyVar *prim.Identifier, valueVar prim.Identifier, collection Expression, body *Template, forStrip, endforStrip StripMode) *ForDirective {
	return &ForDirective{
		node:        node{Rng: rng},
		KeyVar:      keyVar,
		ValueVar:    valueVar,
		Collection:  collection,
		Body:        body,
		ForStrip:    forStrip,
		EndForStrip: endforStrip,
	}
}
