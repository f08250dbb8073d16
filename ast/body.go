package ast

import (
	"github.com/ardnew/hcl/prim"
	"github.com/ardnew/hcl/token"
)

// Body is an ordered sequence of Structures: a top-level configuration file
// body, or the body nested inside a Block.
type Body struct {
	Structures []Structure

	// Oneline is a formatter hint: when true and the body contains no
	// nested blocks and at most one attribute, the printer renders the
	// enclosing block on a single line (`ident { k = v }`) instead of one
	// structure per line.
	// Parsed bodies never set this; it exists for programmatic builders.
	Oneline bool
}

// Attributes returns the Attribute structures in b, in source order.
func (b *Body) Attributes() []*Attribute {
	var out []*Attribute

	for _, s := range b.Structures {
		if a, ok := s.(*Attribute); ok {
			out = append(out, a)
		}
	}

	return out
}

// Blocks returns the Block structures in b, in source order.
func (b *Body) Blocks() []*Block {
	var out []*Block

	for _, s := range b.Structures {
		if blk, ok := s.(*Block); ok {
			out = append(out, blk)
		}
	}

	return out
}

// Attribute looks up the first top-level attribute named name, reporting
// whether it was found.
func (b *Body) Attribute(name string) (*Attribute, bool) {
	for _, a := range b.Attributes() {
		if a.Key.String() == name {
			return a, true
		}
	}

	return nil, false
}

// Structure is anything that can appear directly inside a Body: an
// Attribute or a Block.
type Structure interface {
	Range() token.Range
	structNode()
}

var (
	_ Structure = (*Attribute)(nil)
	_ Structure = (*Block)(nil)
)

// Attribute is a single `key = expr` assignment.
type Attribute struct {
	node

	Key   prim.Identifier
	Value Expression
}

func (*Attribute) structNode() {}

// NewAttribute constructs an Attribute spanning rng.
func NewAttribute(rng token.Range, key prim.Identifier, value Expression) *Attribute {
	return &Attribute{node: node{Rng: rng}, Key: key, Value: value}
}

// BlockLabelKind distinguishes the two lexical forms a block label can take.
type BlockLabelKind uint8

const (
	// LabelIdent is a bare identifier label, e.g. the `web` in `resource web {}`.
	LabelIdent BlockLabelKind = iota
	// LabelString is a quoted string label, e.g. the `"web"` in `resource "web" {}`.
	LabelString
)

// BlockLabel is one label in a Block's header. Blocks may mix identifier and
// string labels freely; Text always returns the label's value regardless of
// which form it was written in.
type BlockLabel struct {
	Rng  token.Range
	Kind BlockLabelKind
	Text string
}

// Range returns the label's source span.
func (l BlockLabel) Range() token.Range {
	return l.Rng
}

// Block is a `type "label" { ... }` structure: a type name, zero or more
// labels, and a nested Body.
type Block struct {
	node

	Type   prim.Identifier
	Labels []BlockLabel
	Body   *Body
}

func (*Block) structNode() {}

// NewBlock constructs a Block spanning rng.
func NewBlock(rng token.Range, typ prim.Identifier, labels []BlockLabel, body *Body) *Block {
	return &Block{node: node{Rng: rng}, Type: typ, Labels: labels, Body: body}
}
