// Package ast defines the syntax tree produced by package parser: Body and
// its Structures (Attribute, Block), the Expression variants, and the
// Template/Element tree nested inside a TemplateExpr. Every node carries
// its own token.Range so diagnostics never need to re-walk the tree to
// report a location.
//
// ast is deliberately inert: it holds structure, not behavior. Evaluation
// lives in the root package; rendering lives in package printer. Nodes are
// built directly as struct literals or through the New* constructors below;
// there is no builder DSL.
package ast

import "github.com/ardnew/hcl/token"

// node is embedded by every concrete Structure and Expression to supply
// Range without repeating the same method on every type.
type node struct {
	Rng token.Range
}

// Range returns the source span the node was parsed from.
func (n node) Range() token.Range {
	return n.Rng
}
