package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/hcl/ast"
	"github.com/ardnew/hcl/prim"
	"github.com/ardnew/hcl/token"
)

func TestBodyAttributesAndBlocksPreserveSourceOrder(t *testing.T) {
	attrA := ast.NewAttribute(token.Range{}, prim.MustNewIdentifier("a"), ast.NewNullLit(token.Range{}))
	blk := ast.NewBlock(token.Range{}, prim.MustNewIdentifier("b"), nil, &ast.Body{})
	attrC := ast.NewAttribute(token.Range{}, prim.MustNewIdentifier("c"), ast.NewNullLit(token.Range{}))

	body := &ast.Body{Structures: []ast.Structure{attrA, blk, attrC}}

	attrs := body.Attributes()
	require.Len(t, attrs, 2)
	require.Equal(t, "a", attrs[0].Key.String())
	require.Equal(t, "c", attrs[1].Key.String())

	blocks := body.Blocks()
	require.Len(t, blocks, 1)
	require.Equal(t, "b", blocks[0].Type.String())
}

func TestBodyAttributeLooksUpByName(t *testing.T) {
	attr := ast.NewAttribute(token.Range{}, prim.MustNewIdentifier("name"), ast.NewStringLit(token.Range{}, "x"))
	body := &ast.Body{Structures: []ast.Structure{attr}}

	found, ok := body.Attribute("name")
	require.True(t, ok)
	require.Same(t, attr, found)

	_, ok = body.Attribute("missing")
	require.False(t, ok)
}

func TestBlockLabelRange(t *testing.T) {
	rng := token.Range{Start: token.Pos{Line: 1, Column: 1}, End: token.Pos{Line: 1, Column: 4}}
	label := ast.BlockLabel{Rng: rng, Kind: ast.LabelString, Text: "web"}

	require.Equal(t, rng, label.Range())
}
