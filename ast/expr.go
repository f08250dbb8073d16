package ast

import (
	"github.com/ardnew/hcl/prim"
	"github.com/ardnew/hcl/token"
)

// Expression is any node that can appear where a value is expected:
// literals, collection constructors, variable references, traversals,
// function calls, operators, conditionals, for-expressions, templates, and
// parenthesized sub-expressions.
type Expression interface {
	Range() token.Range
	exprNode()
}

var (
	_ Expression = (*NullLit)(nil)
	_ Expression = (*BoolLit)(nil)
	_ Expression = (*NumberLit)(nil)
	_ Expression = (*StringLit)(nil)
	_ Expression = (*ArrayExpr)(nil)
	_ Expression = (*ObjectExpr)(nil)
	_ Expression = (*TemplateExpr)(nil)
	_ Expression = (*Variable)(nil)
	_ Expression = (*Traversal)(nil)
	_ Expression = (*FuncCall)(nil)
	_ Expression = (*Conditional)(nil)
	_ Expression = (*UnaryOp)(nil)
	_ Expression = (*BinaryOp)(nil)
	_ Expression = (*ForExpr)(nil)
	_ Expression = (*Parenthesis)(nil)
)

// NullLit is the `null` literal.
type NullLit struct{ node }

func (*NullLit) exprNode() {}

// NewNullLit constructs a NullLit spanning rng.
func NewNullLit(rng token.Range) *NullLit { return &NullLit{node: node{Rng: rng}} }

// BoolLit is the `true` or `false` literal.
type BoolLit struct {
	node
	Value bool
}

func (*BoolLit) exprNode() {}

// NewBoolLit constructs a BoolLit spanning rng.
func NewBoolLit(rng token.Range, value bool) *BoolLit {
	return &BoolLit{node: node{Rng: rng}, Value: value}
}

// NumberLit is a numeric literal.
type NumberLit struct {
	node
	Value prim.Number
}

func (*NumberLit) exprNode() {}

// NewNumberLit constructs a NumberLit spanning rng.
func NewNumberLit(rng token.Range, value prim.Number) *NumberLit {
	return &NumberLit{node: node{Rng: rng}, Value: value}
}

// StringLit is a plain string value with no template structure. The parser
// produces one only for an object key written as a bare identifier; quoted
// strings always parse to a TemplateExpr. ValueToExpression also builds
// StringLit nodes for string values and object keys.
type StringLit struct {
	node
	Value string
}

func (*StringLit) exprNode() {}

// NewStringLit constructs a StringLit spanning rng.
func NewStringLit(rng token.Range, value string) *StringLit {
	return &StringLit{node: node{Rng: rng}, Value: value}
}

// ArrayExpr is a `[ ... ]` tuple constructor.
type ArrayExpr struct {
	node
	Elems []Expression
}

func (*ArrayExpr) exprNode() {}

// NewArrayExpr constructs an ArrayExpr spanning rng.
func NewArrayExpr(rng token.Range, elems []Expression) *ArrayExpr {
	return &ArrayExpr{node: node{Rng: rng}, Elems: elems}
}

// ObjectItem is one `key = value` or `key: value` entry inside an
// ObjectExpr. Key is itself an Expression because object construction
// allows either a bare identifier (treated as a literal string key) or an
// arbitrary expression.
type ObjectItem struct {
	Key   Expression
	Value Expression
}

// ObjectExpr is a `{ ... }` object constructor.
type ObjectExpr struct {
	node
	Items []ObjectItem
}

func (*ObjectExpr) exprNode() {}

// NewObjectExpr constructs an ObjectExpr spanning rng.
func NewObjectExpr(rng token.Range, items []ObjectItem) *ObjectExpr {
	return &ObjectExpr{node: node{Rng: rng}, Items: items}
}

// TemplateExpr is a quoted string or heredoc that may contain
// interpolations or control directives. The parser builds its Elements
// eagerly, in the same pass as everything else, because the scanner
// already switches lexing mode mid-stream to tokenize interpolated
// expressions. The printer renders a TemplateExpr from Elements; it does
// not read Source.
type TemplateExpr struct {
	node

	Elements []Element

	// Source is the concatenated text of the template's Literal elements,
	// with escapes already decoded and heredoc indentation already
	// stripped. It does not contain the text of interpolations or
	// directives, so it is not the raw source text of the template.
	Source string

	// Heredoc is non-nil when this TemplateExpr was written as a heredoc,
	// and carries the information the printer needs to reproduce the same
	// form rather than collapsing it to a quoted string.
	Heredoc *HeredocInfo
}

func (*TemplateExpr) exprNode() {}

// HeredocInfo records the heredoc-specific syntax of a TemplateExpr: its
// closing tag and whether it used the `<<-TAG` indented form.
type HeredocInfo struct {
	Tag      string
	Indented bool
}

// NewTemplateExpr constructs a quoted-string TemplateExpr spanning rng.
func NewTemplateExpr(rng token.Range, source string, elements []Element) *TemplateExpr {
	return &TemplateExpr{node: node{Rng: rng}, Source: source, Elements: elements}
}

// NewHeredocExpr constructs a heredoc TemplateExpr spanning rng.
func NewHeredocExpr(rng token.Range, source string, elements []Element, tag string, indented bool) *TemplateExpr {
	return &TemplateExpr{
		node:     node{Rng: rng},
		Source:   source,
		Elements: elements,
		Heredoc:  &HeredocInfo{Tag: tag, Indented: indented},
	}
}

// Variable is a bare identifier reference, e.g. `foo` or `var`.
type Variable struct {
	node
	Name prim.Identifier
}

func (*Variable) exprNode() {}

// NewVariable constructs a Variable spanning rng.
func NewVariable(rng token.Range, name prim.Identifier) *Variable {
	return &Variable{node: node{Rng: rng}, Name: name}
}

// Traversal is a chain of one or more TraversalOperators applied to a
// target expression, e.g. `var.foo[0].bar` or `list.*.name`.
type Traversal struct {
	node

	Target    Expression
	Operators []TraversalOperator
}

func (*Traversal) exprNode() {}

// NewTraversal constructs a Traversal spanning rng.
func NewTraversal(rng token.Range, target Expression, ops []TraversalOperator) *Traversal {
	return &Traversal{node: node{Rng: rng}, Target: target, Operators: ops}
}

// FuncCall is a `name(arg, arg, ...)` function call. ExpandFinal records
// whether the final argument was written with the `...` expansion marker.
type FuncCall struct {
	node

	Name        prim.Identifier
	Args        []Expression
	ExpandFinal bool
}

func (*FuncCall) exprNode() {}

// NewFuncCall constructs a FuncCall spanning rng.
func NewFuncCall(rng token.Range, name prim.Identifier, args []Expression, expandFinal bool) *FuncCall {
	return &FuncCall{node: node{Rng: rng}, Name: name, Args: args, ExpandFinal: expandFinal}
}

// Conditional is a `cond ? trueExpr : falseExpr` expression.
type Conditional struct {
	node

	Cond  Expression
	True  Expression
	False Expression
}

func (*Conditional) exprNode() {}

// NewConditional constructs a Conditional spanning rng.
func NewConditional(rng token.Range, cond, trueExpr, falseExpr Expression) *Conditional {
	return &Conditional{node: node{Rng: rng}, Cond: cond, True: trueExpr, False: falseExpr}
}

// UnaryOp is a prefix unary operator application, e.g. `-x` or `!x`.
type UnaryOp struct {
	node

	Op      prim.UnaryOperator
	Operand Expression
}

func (*UnaryOp) exprNode() {}

// NewUnaryOp constructs a UnaryOp spanning rng.
func NewUnaryOp(rng token.Range, op prim.UnaryOperator, operand Expression) *UnaryOp {
	return &UnaryOp{node: node{Rng: rng}, Op: op, Operand: operand}
}

// BinaryOp is an infix binary operator application.
type BinaryOp struct {
	node

	LHS Expression
	Op  prim.BinaryOperator
	RHS Expression
}

func (*BinaryOp) exprNode() {}

// NewBinaryOp constructs a BinaryOp spanning rng.
func NewBinaryOp(rng token.Range, lhs Expression, op prim.BinaryOperator, rhs Expression) *BinaryOp {
	return &BinaryOp{node: node{Rng: rng}, LHS: lhs, Op: op, RHS: rhs}
}

// ForExpr is a `[for ... in ...]` or `{for ... in ...}` comprehension.
// KeyVar is nil for the single-variable `for v in` form. KeyExpr is nil for
// the tuple-producing form (brackets); when non-nil the for-expression
// produces an object (braces) and ValueExpr is the object's value
// expression for each iteration. Grouping records whether the object form
// used the `...` grouping marker to collect colliding keys into arrays.
type ForExpr struct {
	node

	KeyVar     *prim.Identifier
	ValueVar   prim.Identifier
	Collection Expression

	KeyExpr   Expression
	ValueExpr Expression

	Cond     Expression
	Grouping bool
}

func (*ForExpr) exprNode() {}

// NewForExpr constructs a ForExpr spanning rng.
func NewForExpr(rng token.Range, keyVar *prim.Identifier, valueVar prim.Identifier, collection Expression, keyExpr, valueExpr, cond Expression, grouping bool) *ForExpr {
	return &ForExpr{
		node:       node{Rng: rng},
		KeyVar:     keyVar,
		ValueVar:   valueVar,
		Collection: collection,
		KeyExpr:    keyExpr,
		ValueExpr:  valueExpr,
		Cond:       cond,
		Grouping:   grouping,
	}
}

// Parenthesis wraps an expression written with explicit parentheses. It
// exists purely to disambiguate template interpolation unwrapping: a
// template consisting of a single bare `${expr}` interpolation evaluates to
// expr's raw value, but `${(expr)}` always evaluates to its stringified
// form. Evaluation otherwise passes straight through to Inner.
type Parenthesis struct {
	node
	Inner Expression
}

func (*Parenthesis) exprNode() {}

// NewParenthesis constructs a Parenthesis spanning rng.
func NewParenthesis(rng token.Range, inner Expression) *Parenthesis {
	return &Parenthesis{node: node{Rng: rng}, Inner: inner}
}
