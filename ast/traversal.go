package ast

import "github.com/ardnew/hcl/token"

// TraversalOperator is one step in a Traversal chain: an attribute access,
// an index, or a splat.
type TraversalOperator interface {
	Range() token.Range
	traversalOp()
}

var (
	_ TraversalOperator = AttrOp{}
	_ TraversalOperator = IndexOp{}
	_ TraversalOperator = LegacyIndexOp{}
	_ TraversalOperator = AttrSplatOp{}
	_ TraversalOperator = FullSplatOp{}
)

// AttrOp is the `.name` step.
type AttrOp struct {
	Rng  token.Range
	Name string
}

func (o AttrOp) Range() token.Range { return o.Rng }
func (AttrOp) traversalOp()         {}

// IndexOp is the `[expr]` step, with expr an arbitrary expression
// evaluating to either a number (array index) or a string (object key).
type IndexOp struct {
	Rng token.Range
	Key Expression
}

func (o IndexOp) Range() token.Range { return o.Rng }
func (IndexOp) traversalOp()         {}

// LegacyIndexOp is the `.0` step: a bare integer written after a dot rather
// than in brackets, kept distinct from AttrOp because it indexes rather
// than names.
type LegacyIndexOp struct {
	Rng   token.Range
	Index int64
}

func (o LegacyIndexOp) Range() token.Range { return o.Rng }
func (LegacyIndexOp) traversalOp()         {}

// AttrSplatOp is the `.*` step: apply every remaining operator in the chain
// to each element of the target, which is first coerced to a single-element
// array if it is not already an array, short-circuiting to an empty
// array if the target is null.
type AttrSplatOp struct {
	Rng token.Range
}

func (o AttrSplatOp) Range() token.Range { return o.Rng }
func (AttrSplatOp) traversalOp()         {}

// FullSplatOp is the `[*]` step, semantically identical to AttrSplatOp but
// written in bracket form.
type FullSplatOp struct {
	Rng token.Range
}

func (o FullSplatOp) Range() token.Range { return o.Rng }
func (FullSplatOp) traversalOp()         {}
