// Package printer renders an ast.Body or ast.Expression back to HCL source
// text. It is the mirror image of package parser: where parser turns bytes
// into a tree, printer turns a tree back into bytes, and does so
// idempotently — printing a tree the parser produced and reparsing the
// result yields a structurally identical tree.
//
// Rendering is configured through functional options (WithIndentWidth and
// friends) rather than exported struct fields, so a zero-value Printer is
// never handed to a caller directly; construct one with New.
package printer
