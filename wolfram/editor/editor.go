// Package editor packages the parsing core for editor tooling: context
// classification at a position, token navigation in either direction,
// and an LSP server publishing syntax diagnostics.
package editor

import (
	"github.com/dhamidi/wlx/wolfram/parser"
)

// Document is an in-memory text buffer as provided by an editor. The
// buffer is treated as immutable; edits replace the Document.
type Document struct {
	File string
	Text []byte
}

func NewDocument(text []byte, file string) *Document {
	return &Document{File: file, Text: text}
}

// ContextAt reports the lexical state at a byte offset.
func (d *Document) ContextAt(offset int) parser.Context {
	return parser.ContextAt(d.Text, offset)
}

// NextToken returns the first token at or after offset and the offset
// just past it. At the end of the buffer the token is the EndOfInput
// sentinel.
func (d *Document) NextToken(offset int) (parser.Token, int) {
	scanner := parser.NewScanner(d.Text, d.File)
	scanner.SetPos(offset)
	tok := scanner.Next(parser.Forward)
	return tok, scanner.Pos()
}

// PrevToken returns the last token ending at or before offset and the
// offset of its start. At the beginning of the buffer the token is the
// EndOfInput sentinel.
func (d *Document) PrevToken(offset int) (parser.Token, int) {
	scanner := parser.NewScanner(d.Text, d.File)
	scanner.SetPos(offset)
	tok := scanner.Next(parser.Backward)
	return tok, scanner.Pos()
}

// TokensInRange collects the tokens between two byte offsets, including
// the EndOfLine sentinels, for debug dumps.
func (d *Document) TokensInRange(start, end int) []parser.Token {
	if end > len(d.Text) {
		end = len(d.Text)
	}
	scanner := parser.NewScanner(d.Text, d.File)
	scanner.SetPos(start)
	var tokens []parser.Token
	for scanner.Pos() < end {
		tok := scanner.Next(parser.Forward)
		if tok.Kind == parser.TokenEOF {
			break
		}
		if tok.Span.Start.Offset >= end {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Parse parses the whole buffer as a sequence of expressions.
func (d *Document) Parse() (*parser.Node, error) {
	return parser.Parse(d.Text, d.File)
}

// UnknownTokens returns a lex error for every character the classifier
// could not match, in buffer order.
func (d *Document) UnknownTokens() []*parser.UnknownTokenError {
	var errs []*parser.UnknownTokenError
	for _, tok := range parser.Tokenize(d.Text, d.File) {
		if tok.Kind == parser.TokenUnknown {
			errs = append(errs, &parser.UnknownTokenError{Pos: tok.Span.Start, Text: tok.Text})
		}
	}
	return errs
}
