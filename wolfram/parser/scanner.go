package parser

// Direction selects which way the Scanner moves through the input.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "Backward"
	}
	return "Forward"
}

// Context is the lexical state at a text position.
type Context int

const (
	InCode Context = iota
	InsideString
	InsideComment
)

var contextNames = map[Context]string{
	InCode:        "InCode",
	InsideString:  "InsideString",
	InsideComment: "InsideComment",
}

func (c Context) String() string {
	if name, ok := contextNames[c]; ok {
		return name
	}
	return "InCode"
}

// lookbackWindow bounds the backward search for token starts. Strings and
// named escapes are matched by their own left scans; names and numbers
// extend the window to the start of their constituent run, so only
// operator spellings have to fit inside it.
const lookbackWindow = 64

// Scanner produces tokens from a text buffer in either direction. It
// skips whitespace and comments (nestable (* ... *) pairs, with depth
// tracking) before classifying a token. Reaching the end of the buffer
// yields the EndOfInput sentinel; a newline yields the EndOfLine
// sentinel. Neither is an error.
type Scanner struct {
	input []byte
	file  string
	pos   int
	lex   *Lexer
}

func NewScanner(input []byte, file string) *Scanner {
	return &Scanner{input: input, file: file}
}

func (s *Scanner) Pos() int {
	return s.pos
}

func (s *Scanner) SetPos(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.input) {
		offset = len(s.input)
	}
	s.pos = offset
}

// Next returns the next token in the given direction and moves the
// scanner past it (before it, when scanning backward).
func (s *Scanner) Next(dir Direction) Token {
	if dir == Backward {
		return s.prevToken()
	}
	return s.nextToken()
}

func (s *Scanner) nextToken() Token {
	for {
		s.skipSpaceForward()
		if s.pos >= len(s.input) {
			return s.sentinel(TokenEOF)
		}
		if s.input[s.pos] == '\n' {
			tok := s.sentinel(TokenEOL)
			s.pos++
			return tok
		}
		if s.pos+1 < len(s.input) && s.input[s.pos] == '(' && s.input[s.pos+1] == '*' {
			s.skipCommentForward()
			continue
		}
		break
	}

	tok := s.forwardLexer().NextToken()
	s.pos = tok.Span.End.Offset
	return tok
}

// forwardLexer returns the scanner's lexer cursor advanced to the
// current position. Moving forward reuses the cursor, so a forward scan
// over the whole input stays linear; moving the scanner backward resets
// it and replays.
func (s *Scanner) forwardLexer() *Lexer {
	if s.lex == nil || s.lex.pos > s.pos {
		s.lex = NewLexer(s.input, s.file)
	}
	for s.lex.pos < s.pos {
		s.lex.advance()
	}
	return s.lex
}

func (s *Scanner) skipSpaceForward() {
	for s.pos < len(s.input) {
		switch s.input[s.pos] {
		case ' ', '\t', '\r':
			s.pos++
		default:
			return
		}
	}
}

// skipCommentForward moves past a whole (* ... *) comment, counting
// nesting depth. An unterminated comment degrades to skipping the rest
// of the input.
func (s *Scanner) skipCommentForward() {
	depth := 0
	for s.pos < len(s.input) {
		if s.pos+1 < len(s.input) && s.input[s.pos] == '(' && s.input[s.pos+1] == '*' {
			depth++
			s.pos += 2
			continue
		}
		if s.pos+1 < len(s.input) && s.input[s.pos] == '*' && s.input[s.pos+1] == ')' {
			depth--
			s.pos += 2
			if depth == 0 {
				return
			}
			continue
		}
		s.pos++
	}
}

func (s *Scanner) prevToken() Token {
	for {
		s.skipSpaceBackward()
		if s.pos == 0 {
			return s.sentinel(TokenEOF)
		}
		if s.input[s.pos-1] == '\n' {
			s.pos--
			return s.sentinel(TokenEOL)
		}
		if s.pos >= 2 && s.input[s.pos-2] == '*' && s.input[s.pos-1] == ')' {
			s.skipCommentBackward()
			continue
		}
		break
	}

	start := s.tokenStartBefore(s.pos)
	lexer := NewLexer(s.input, s.file)
	lexer.SetOffset(start)
	tok := lexer.NextToken()
	s.pos = start
	return tok
}

func (s *Scanner) skipSpaceBackward() {
	for s.pos > 0 {
		switch s.input[s.pos-1] {
		case ' ', '\t', '\r':
			s.pos--
		default:
			return
		}
	}
}

func (s *Scanner) skipCommentBackward() {
	depth := 0
	for s.pos > 0 {
		if s.pos >= 2 && s.input[s.pos-2] == '*' && s.input[s.pos-1] == ')' {
			depth++
			s.pos -= 2
			continue
		}
		if s.pos >= 2 && s.input[s.pos-2] == '(' && s.input[s.pos-1] == '*' {
			depth--
			s.pos -= 2
			if depth == 0 {
				return
			}
			continue
		}
		s.pos--
	}
}

// tokenStartBefore finds the start of the token whose text ends exactly
// at end. The match is trailing-anchored: candidate starts inside a
// look-back window are re-lexed forward and a candidate counts only when
// its token ends exactly at end; the longest such match wins. Strings
// and named escapes have unbounded left scans of their own, and a name
// or number constituent run widens the window to its own start, since
// both can outgrow any fixed bound.
func (s *Scanner) tokenStartBefore(end int) int {
	last := s.input[end-1]

	if last == '"' && !escapedAt(s.input, end-1) {
		if start, ok := s.stringStartBefore(end); ok {
			return start
		}
	}
	if last == ']' {
		if start, ok := s.escapeStartBefore(end); ok {
			return start
		}
	}

	low := end - lookbackWindow
	if isNameChar(last) {
		// The run start is the last known boundary; the window behind
		// it covers any operator prefix of a number (16^^, *^).
		i := end - 1
		for i > 0 && isTokenConstituent(s.input[i-1]) {
			i--
		}
		if i-lookbackWindow < low {
			low = i - lookbackWindow
		}
	}
	if low < 0 {
		low = 0
	}
	for start := low; start < end; start++ {
		lexer := NewLexer(s.input, s.file)
		lexer.SetOffset(start)
		tok := lexer.NextToken()
		if tok.Span.End.Offset != end || tok.Kind == TokenWhitespace {
			continue
		}
		// A string candidate must close at the anchor. A quote earlier
		// in the window would otherwise lex as an unterminated string
		// running to the end of input and falsely match there.
		if tok.Subkind == SubString && (last != '"' || escapedAt(s.input, end-1)) {
			continue
		}
		return start
	}
	return end - 1
}

// stringStartBefore searches left for the unescaped quote opening the
// string that closes at end.
func (s *Scanner) stringStartBefore(end int) (int, bool) {
	for i := end - 2; i >= 0; i-- {
		if s.input[i] == '"' && !escapedAt(s.input, i) {
			return i, true
		}
	}
	return 0, false
}

// escapeStartBefore searches left for the \[ opening a named escape that
// closes at end.
func (s *Scanner) escapeStartBefore(end int) (int, bool) {
	i := end - 2
	for i >= 0 && (isLetter(s.input[i]) || isDigit(s.input[i])) {
		i--
	}
	if i >= 1 && s.input[i] == '[' && s.input[i-1] == '\\' && isUpper(s.input[i+1]) {
		return i - 1, true
	}
	return 0, false
}

// isTokenConstituent reports whether a byte can appear inside a name or
// number token body.
func isTokenConstituent(ch byte) bool {
	return isNameChar(ch) || ch == '.' || ch == '`'
}

// escapedAt reports whether the byte at offset is preceded by an odd
// number of backslashes.
func escapedAt(input []byte, offset int) bool {
	count := 0
	for i := offset - 1; i >= 0 && input[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}

func (s *Scanner) sentinel(kind TokenKind) Token {
	pos := s.forwardLexer().Position()
	return Token{Kind: kind, Span: Span{Start: pos, End: pos}}
}

// ContextAt classifies the lexical state at a byte offset by scanning
// the enclosing structure from the start of the input. Unterminated
// strings and comments degrade to "still inside", never an error, so
// the classification stays usable during in-progress edits.
func ContextAt(input []byte, offset int) Context {
	if offset > len(input) {
		offset = len(input)
	}
	state := InCode
	depth := 0
	for i := 0; i < offset; {
		switch state {
		case InCode:
			if input[i] == '"' {
				state = InsideString
				i++
				continue
			}
			if i+1 < len(input) && input[i] == '(' && input[i+1] == '*' {
				state = InsideComment
				depth = 1
				i += 2
				continue
			}
			i++
		case InsideString:
			if input[i] == '\\' {
				i += 2
				continue
			}
			if input[i] == '"' {
				state = InCode
			}
			i++
		case InsideComment:
			if i+1 < len(input) && input[i] == '(' && input[i+1] == '*' {
				depth++
				i += 2
				continue
			}
			if i+1 < len(input) && input[i] == '*' && input[i+1] == ')' {
				depth--
				i += 2
				if depth == 0 {
					state = InCode
				}
				continue
			}
			i++
		}
	}
	return state
}
