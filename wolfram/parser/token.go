package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// TokenKind is the coarse classification of a token.
type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenLiteral
	TokenName
	TokenOperator
	TokenCommentStart
	TokenCommentEnd
	TokenWhitespace
	TokenEOL
	TokenEOF
)

var tokenKindNames = map[TokenKind]string{
	TokenUnknown:      "Unknown",
	TokenLiteral:      "Literal",
	TokenName:         "Name",
	TokenOperator:     "Operator",
	TokenCommentStart: "CommentStart",
	TokenCommentEnd:   "CommentEnd",
	TokenWhitespace:   "Whitespace",
	TokenEOL:          "EndOfLine",
	TokenEOF:          "EndOfInput",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// TokenSubkind refines TokenKind: Literal into Number/String, Name into
// User/System, Operator into Group (brackets), Symbol (named escapes like
// \[Infinity]) and Base (plain operator spellings).
type TokenSubkind int

const (
	SubNone TokenSubkind = iota
	SubNumber
	SubString
	SubUserName
	SubSystemName
	SubGroup
	SubSymbol
	SubBase
)

var tokenSubkindNames = map[TokenSubkind]string{
	SubNone:       "None",
	SubNumber:     "Number",
	SubString:     "String",
	SubUserName:   "User",
	SubSystemName: "System",
	SubGroup:      "Group",
	SubSymbol:     "Symbol",
	SubBase:       "Base",
}

func (k TokenSubkind) String() string {
	if name, ok := tokenSubkindNames[k]; ok {
		return name
	}
	return "None"
}

type Token struct {
	Kind    TokenKind
	Subkind TokenSubkind
	Span    Span
	Text    string
}
