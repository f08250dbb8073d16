// Package hcl ties together the tokenizer, parser, evaluator, and printer
// into a single public surface: Parse and ParseExpression turn source bytes
// into an AST, Evaluate reduces an Expression to a Value against a Context,
// and Format/FormatValue render back to HCL source text. ToJSON bridges a
// parsed Body to the JSON compatibility shape external tooling expects.
package hcl
