package parser

// Lexer classifies Wolfram Language source text into tokens, one call per
// token, scanning forward. Disambiguation follows a fixed grammar order
// rather than priority-by-length because the classes overlap: named
// escapes before strings, strings before numbers, numbers before names,
// comment delimiters before brackets, brackets before plain operators.
//
// Classification is always case-sensitive.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// SetOffset moves the lexer to an absolute byte offset, recomputing the
// line/column bookkeeping from the start of the input.
func (l *Lexer) SetOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.input) {
		offset = len(l.input)
	}
	l.pos = 0
	l.line = 1
	l.column = 1
	for l.pos < offset {
		l.advance()
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// NextToken classifies one token at the current position. Whitespace and
// newlines are returned as tokens; callers that do not care filter them
// out. At end of input it returns the EndOfInput sentinel, never an error.
func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '\n' {
		l.advance()
		return l.token(TokenEOL, SubNone, startPos)
	}
	if ch == ' ' || ch == '\t' || ch == '\r' {
		return l.scanWhitespace(startPos)
	}

	if ch == '(' && l.peekN(1) == '*' {
		l.advanceN(2)
		return l.token(TokenCommentStart, SubNone, startPos)
	}
	if ch == '*' && l.peekN(1) == ')' {
		l.advanceN(2)
		return l.token(TokenCommentEnd, SubNone, startPos)
	}

	if ch == '\\' && l.peekN(1) == '[' && isUpper(l.peekN(2)) {
		return l.scanNamedEscape(startPos)
	}

	if ch == '"' {
		return l.scanString(startPos)
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(startPos)
	}

	if isNameChar(ch) {
		return l.scanName(startPos)
	}

	switch ch {
	case '[', ']', '(', ')', '{', '}':
		l.advance()
		return l.token(TokenOperator, SubGroup, startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
		} else {
			break
		}
	}
	return l.token(TokenWhitespace, SubNone, start)
}

// scanNamedEscape scans \[Name] where Name starts with an uppercase letter
// followed by letters and digits.
func (l *Lexer) scanNamedEscape(start Position) Token {
	l.advanceN(3) // backslash, bracket, first letter
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() != ']' {
		// Not a well-formed escape after all: the recovery unit is the
		// lone backslash.
		l.SetOffset(start.Offset)
		l.advance()
		return l.token(TokenUnknown, SubNone, start)
	}
	l.advance()
	return l.token(TokenOperator, SubSymbol, start)
}

// scanString scans a double-quoted string. Backslash escapes a pair, so an
// escaped quote does not close the string. An unterminated string runs to
// the end of input.
func (l *Lexer) scanString(start Position) Token {
	l.advance()
	for l.pos < len(l.input) && l.peek() != '"' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '"' {
		l.advance()
	}
	return l.token(TokenLiteral, SubString, start)
}

// scanNumber scans the full numeric grammar: digits, base-prefixed digits
// (16^^FF), an optional fraction, an optional precision mark (1.23`5,
// accuracy with a doubled backtick) and an optional *^ exponent. No
// leading sign: unary +/- are grammar entries in the parser.
func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '^' && l.peekN(1) == '^' && isBaseDigit(l.peekN(2)) {
		l.advanceN(2)
		for isBaseDigit(l.peek()) {
			l.advance()
		}
		if l.peek() == '.' && isBaseDigit(l.peekN(1)) {
			l.advance()
			for isBaseDigit(l.peek()) {
				l.advance()
			}
		}
	} else if l.peek() == '.' && l.peekN(1) != '.' {
		// "1." is a valid real; "1.." is 1 followed by Repeated.
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.peek() == '`' {
		l.advance()
		if l.peek() == '`' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
		if l.peek() == '.' && isDigit(l.peekN(1)) {
			l.advance()
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	if l.peek() == '*' && l.peekN(1) == '^' {
		exp := 2
		if l.peekN(2) == '+' || l.peekN(2) == '-' {
			exp = 3
		}
		if isDigit(l.peekN(exp)) {
			l.advanceN(exp)
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	return l.token(TokenLiteral, SubNumber, start)
}

// scanName scans the maximal run of name characters, then classifies the
// whole run: an uppercase letter followed by letters only is a System
// name, anything else is a User name. Classifying the full run keeps
// "Foo123" a single User name instead of splitting it after "Foo".
func (l *Lexer) scanName(start Position) Token {
	for isNameChar(l.peek()) {
		l.advance()
	}
	text := l.input[start.Offset:l.pos]
	sub := SubUserName
	if isSystemName(text) {
		sub = SubSystemName
	}
	return l.token(TokenName, sub, start)
}

func isSystemName(text []byte) bool {
	if len(text) == 0 || !isUpper(text[0]) {
		return false
	}
	for _, ch := range text[1:] {
		if !isLetter(ch) {
			return false
		}
	}
	return true
}

// scanOperator matches the longest spelling from the closed operator set,
// so multi-character spellings win over their single-character prefixes
// (":=" never tokenizes as ":" then "="). A character outside every
// grammar becomes a one-character Unknown token, the recovery unit.
func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case ':':
		switch l.peekN(1) {
		case '=', '>', ':':
			l.advanceN(2)
		default:
			l.advance()
		}
		return l.token(TokenOperator, SubBase, start)

	case '=':
		if l.peekN(1) == '.' {
			l.advanceN(2)
		} else {
			l.advance()
		}
		return l.token(TokenOperator, SubBase, start)

	case '^':
		if l.peekN(1) == '=' {
			l.advanceN(2)
		} else {
			l.advance()
		}
		return l.token(TokenOperator, SubBase, start)

	case '-':
		if l.peekN(1) == '>' {
			l.advanceN(2)
		} else {
			l.advance()
		}
		return l.token(TokenOperator, SubBase, start)

	case '/':
		if l.peekN(1) == '/' && l.peekN(2) == '@' {
			l.advanceN(3)
		} else if l.peekN(1) == '@' || l.peekN(1) == ':' {
			l.advanceN(2)
		} else {
			l.advance()
		}
		return l.token(TokenOperator, SubBase, start)

	case '@':
		if l.peekN(1) == '@' {
			if l.peekN(2) == '@' {
				l.advanceN(3)
			} else {
				l.advanceN(2)
			}
			return l.token(TokenOperator, SubBase, start)
		}

	case '|':
		if l.peekN(1) == '-' && l.peekN(2) == '>' {
			l.advanceN(3)
		} else {
			l.advance()
		}
		return l.token(TokenOperator, SubBase, start)

	case '>':
		if l.peekN(1) == '>' {
			if l.peekN(2) == '>' {
				l.advanceN(3)
			} else {
				l.advanceN(2)
			}
			return l.token(TokenOperator, SubBase, start)
		}

	case '.':
		if l.peekN(1) == '.' {
			if l.peekN(2) == '.' {
				l.advanceN(3)
			} else {
				l.advanceN(2)
			}
			return l.token(TokenOperator, SubBase, start)
		}

	case '+', '*', ',', ';':
		l.advance()
		return l.token(TokenOperator, SubBase, start)
	}

	l.advance()
	return l.token(TokenUnknown, SubNone, start)
}

func (l *Lexer) token(kind TokenKind, sub TokenSubkind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Subkind: sub,
		Span:    Span{Start: start, End: end},
		Text:    string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isBaseDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isUpper(ch byte) bool {
	return ch >= 'A' && ch <= 'Z'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isNameChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
