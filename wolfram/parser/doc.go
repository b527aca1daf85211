// Package parser provides lexing and parsing for Wolfram Language
// (Mathematica-style) source text.
//
// # Overview
//
// The package has four layers, each usable on its own:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Lexer     │────▶│   Scanner   │────▶│   Parser    │
//	│ (classify)  │     │ (navigate)  │     │   (AST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                              │
//	                                        ┌─────────────┐
//	                                        │  Registry   │
//	                                        │ (operators) │
//	                                        └─────────────┘
//
// The Lexer classifies one token at a time from a byte offset. The
// Scanner wraps it with whitespace/comment skipping and works in both
// directions, which editor tooling needs for navigation and indentation.
// The Parser is a table-driven Pratt parser: the Registry maps each
// operator spelling to a binding power and a fixity, and the parser
// dispatches on the fixity tag.
//
// # Tokens
//
// Tokens carry a coarse kind (Literal, Name, Operator, ...) and a
// refining subkind (Number, String, User, System, Group, Symbol, Base)
// plus the half-open source span they cover. The numeric grammar covers
// base-prefixed digits (16^^FF), *^ exponents (2.5*^10) and backtick
// precision marks (1.23`5) as single tokens.
//
// # Grammar disciplines
//
// The registry distinguishes four infix disciplines. Left- and
// right-associative operators produce nested BinaryOp nodes. Flat
// operators collapse same-spelling runs into one NAryOp: a+b+c+d is a
// single Plus with four operands, while crossing to another spelling at
// the same power (a+b-c) wraps the run so far as the left operand of a
// fresh node. Postfix operators (a=., x..) wrap their left operand
// without recursing. The call bracket is a Led entry at power 745,
// above all arithmetic, so f[x]+1 parses as (f[x])+1; the assignment
// family sits at 40, below everything, so a=b+c parses as a=(b+c).
//
// # Errors
//
// Parse errors are terminal for the call and carry the offending
// token's source position: *SyntaxError where a Nud or Led entry is
// missing, *UnterminatedGroupError when input ends inside an open
// bracket. Context classification (ContextAt) never errors: an
// unterminated string or comment reports "still inside", since editor
// tooling has to tolerate in-progress edits.
//
// # Thread safety
//
// The default registry is built once and never mutated; any number of
// parses may run concurrently against it. A Parser or Scanner instance
// serves one caller at a time.
package parser
