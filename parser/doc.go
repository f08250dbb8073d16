// Package parser builds an ast.Body or ast.Expression from the token
// stream produced by package scanner. Bodies and blocks are parsed by
// straightforward recursive descent; expressions use precedence climbing
// over the binary operator table in prim.BinaryOperator.
//
// There is no error recovery. The scanner's mode stack already does the
// work of switching vocabulary between bare syntax, quoted strings,
// heredocs, and template markers, so the parser never manages lexer modes
// itself — it only reacts to the token types that mode switch produces.
package parser
