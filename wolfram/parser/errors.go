package parser

import "fmt"

// UnknownTokenError reports a character the classifier matched with no
// grammar. Callers may recover by skipping one character.
type UnknownTokenError struct {
	Pos  Position
	Text string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("%s: unknown token %q", e.Pos, e.Text)
}

// SyntaxError reports a token where the grammar required a different
// construct. Terminal for the current parse; the position is the
// offending token's source position.
type SyntaxError struct {
	Pos      Position
	Found    Token
	Expected string
}

func (e *SyntaxError) Error() string {
	found := e.Found.Text
	if found == "" {
		found = e.Found.Kind.String()
	}
	return fmt.Sprintf("%s: unexpected %q, expected %s", e.Pos, found, e.Expected)
}

// UnterminatedGroupError reports reaching the end of input inside an
// open (, { or [ construct.
type UnterminatedGroupError struct {
	Open     Position
	Expected string
}

func (e *UnterminatedGroupError) Error() string {
	return fmt.Sprintf("%s: unterminated group, expected %q", e.Open, e.Expected)
}
