package parser

import "errors"

// Parser folds a token stream into a syntax tree using the operator
// registry: each token's Nud or Led entry decides how it joins the tree,
// and binding powers decide how far each operator reaches.
//
// One Parser serves one parse call. The registry it reads is immutable,
// so any number of parses may run concurrently against it.
type Parser struct {
	reg    *Registry
	tokens []Token
	pos    int
	depth  int
}

type Option func(*Parser)

func WithRegistry(reg *Registry) Option {
	return func(p *Parser) {
		p.reg = reg
	}
}

// Tokenize produces the significant token stream for input: whitespace
// and comments are skipped, newlines appear as EndOfLine tokens, and the
// stream always ends with the EndOfInput sentinel.
func Tokenize(input []byte, file string) []Token {
	scanner := NewScanner(input, file)
	var tokens []Token
	for {
		tok := scanner.Next(Forward)
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

// Parse parses input as a sequence of expressions separated by ";" or
// newlines. A single expression is returned bare; two or more are
// wrapped in a Sequence node.
func Parse(input []byte, file string, opts ...Option) (*Node, error) {
	p := newParser(input, file, opts...)
	return p.parseSequence()
}

// ParseExpression parses input as exactly one expression; trailing
// tokens other than the end sentinels are an error.
func ParseExpression(input []byte, file string, opts ...Option) (*Node, error) {
	p := newParser(input, file, opts...)
	node, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokenEOF && tok.Kind != TokenEOL {
		return nil, &SyntaxError{Pos: tok.Span.Start, Found: tok, Expected: "end of expression"}
	}
	return node, nil
}

func newParser(input []byte, file string, opts ...Option) *Parser {
	p := &Parser{
		reg:    DefaultRegistry,
		tokens: Tokenize(input, file),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// peek returns the current token. Inside brackets, newlines are not
// terminators: bracketed expressions span lines, so EndOfLine tokens are
// skipped while the bracket depth is positive.
func (p *Parser) peek() Token {
	for p.depth > 0 && p.pos < len(p.tokens) && p.tokens[p.pos].Kind == TokenEOL {
		p.pos++
	}
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// parseSequence parses expressions separated by ";" or newlines until
// the end of input. Empty segments (blank lines, trailing ";") are
// skipped.
func (p *Parser) parseSequence() (*Node, error) {
	var exprs []*Node
	for {
		for p.isSeparator(p.peek()) {
			p.advance()
		}
		if p.peek().Kind == TokenEOF {
			break
		}
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)

		tok := p.peek()
		if tok.Kind == TokenEOF {
			break
		}
		if !p.isSeparator(tok) {
			return nil, &SyntaxError{Pos: tok.Span.Start, Found: tok, Expected: "expression separator"}
		}
	}

	switch len(exprs) {
	case 0:
		return nil, &SyntaxError{Pos: p.peek().Span.Start, Found: p.peek(), Expected: "expression"}
	case 1:
		return exprs[0], nil
	}
	node := newOpNode(KindSequence, "Sequence", exprs[0].Span.Start, exprs...)
	return node, nil
}

func (p *Parser) isSeparator(tok Token) bool {
	if tok.Kind == TokenEOL {
		return true
	}
	return tok.Kind == TokenOperator && tok.Text == ";"
}

// parseExpr is the binding-power recursion. It consumes one token as the
// expression head (Nud), then folds in continuation operators (Led)
// whose power is strictly above minBP. Terminators carry power 0 and
// never pass the test; the enclosing construct consumes them.
func (p *Parser) parseExpr(minBP int) (*Node, error) {
	left, err := p.parseNud(p.advance())
	if err != nil {
		return nil, err
	}

	for {
		next := p.peek()
		if next.Kind != TokenOperator {
			break
		}
		entry, ok := p.reg.Lookup(next.Text, Led)
		if !ok {
			break
		}
		if entry.Power <= minBP {
			break
		}

		left, err = p.parseLed(entry, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parseNud builds the expression head for a token with no left operand.
func (p *Parser) parseNud(tok Token) (*Node, error) {
	switch tok.Kind {
	case TokenLiteral:
		return newLeaf(KindLiteral, tok), nil
	case TokenName:
		return newLeaf(KindSymbol, tok), nil
	case TokenOperator:
		switch tok.Subkind {
		case SubSymbol:
			return newLeaf(KindSymbol, tok), nil
		case SubGroup:
			if entry, ok := p.reg.Lookup(tok.Text, Nud); ok {
				switch entry.Fixity {
				case GroupOpen:
					return p.parseGroup(tok)
				case ListOpen:
					return p.parseList(tok)
				}
			}
		}
		if entry, ok := p.reg.Lookup(tok.Text, Nud); ok && entry.Fixity == PrefixPlain {
			operand, err := p.parseExpr(entry.Power)
			if err != nil {
				return nil, err
			}
			node := newOpNode(KindUnaryOp, entry.Name, tok.Span.Start, operand)
			return node, nil
		}
	}
	return nil, &SyntaxError{Pos: tok.Span.Start, Found: tok, Expected: "expression"}
}

// parseLed folds one continuation operator into the accumulated left
// expression, dispatching exhaustively on its fixity.
func (p *Parser) parseLed(entry Entry, left *Node) (*Node, error) {
	tok := p.advance()

	switch entry.Fixity {
	case InfixLeft:
		// Recursing at the operator's own power makes equal-power
		// continuations stop, grouping to the left.
		right, err := p.parseExpr(entry.Power)
		if err != nil {
			return nil, err
		}
		return newOpNode(KindBinaryOp, entry.Name, left.Span.Start, left, right), nil

	case InfixRight:
		// Power-1 lets equal-power continuations chain to the right.
		right, err := p.parseExpr(entry.Power - 1)
		if err != nil {
			return nil, err
		}
		return newOpNode(KindBinaryOp, entry.Name, left.Span.Start, left, right), nil

	case InfixFlat:
		return p.parseFlat(entry, tok, left)

	case Postfix:
		node := newOpNode(KindUnaryOp, entry.Name, left.Span.Start, left)
		node.Span.End = tok.Span.End
		return node, nil

	case CallBracket:
		return p.parseCall(tok, left)
	}

	return nil, &SyntaxError{Pos: tok.Span.Start, Found: tok, Expected: "operator"}
}

// parseFlat collects a run of the same spelling into one n-ary node:
// a+b+c+d is a single (Plus a b c d). A different flat spelling at the
// same power starts a fresh node wrapping the run so far as its left
// operand: a+b-c is (Minus (Plus a b) c).
func (p *Parser) parseFlat(entry Entry, tok Token, left *Node) (*Node, error) {
	operand, err := p.parseExpr(entry.Power)
	if err != nil {
		return nil, err
	}
	node := newOpNode(KindNAryOp, entry.Name, left.Span.Start, left, operand)

	for {
		next := p.peek()
		if next.Kind != TokenOperator || next.Text != tok.Text {
			break
		}
		p.advance()
		operand, err := p.parseExpr(entry.Power)
		if err != nil {
			return nil, err
		}
		node.AddChild(operand)
	}
	return node, nil
}

// parseCall parses the [arg, ...] continuation: a possibly-empty,
// comma-separated argument list closed by "]". The accumulated left
// expression becomes the call head.
func (p *Parser) parseCall(open Token, head *Node) (*Node, error) {
	p.depth++
	defer func() { p.depth-- }()

	node := newOpNode(KindCall, "Call", head.Span.Start, head)

	if p.isGroupClose("]") {
		node.Span.End = p.advance().Span.End
		return node, nil
	}

	for {
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, p.unterminatedAtEOF(err, open, "]")
		}
		node.AddChild(arg)

		tok := p.peek()
		if tok.Kind == TokenEOF || tok.Kind == TokenEOL {
			return nil, &UnterminatedGroupError{Open: open.Span.Start, Expected: "]"}
		}
		if p.isGroupClose("]") {
			node.Span.End = p.advance().Span.End
			return node, nil
		}
		if tok.Kind == TokenOperator && tok.Text == "," {
			p.advance()
			continue
		}
		return nil, &SyntaxError{Pos: tok.Span.Start, Found: tok, Expected: `"," or "]"`}
	}
}

// parseGroup parses ( expr ), requiring the matching close.
func (p *Parser) parseGroup(open Token) (*Node, error) {
	p.depth++
	defer func() { p.depth-- }()

	inner, err := p.parseExpr(0)
	if err != nil {
		return nil, p.unterminatedAtEOF(err, open, ")")
	}

	tok := p.peek()
	if tok.Kind == TokenEOF || tok.Kind == TokenEOL {
		return nil, &UnterminatedGroupError{Open: open.Span.Start, Expected: ")"}
	}
	if !p.isGroupClose(")") {
		return nil, &SyntaxError{Pos: tok.Span.Start, Found: tok, Expected: `")"`}
	}
	close := p.advance()

	node := newOpNode(KindGroup, "Group", open.Span.Start, inner)
	node.Span.End = close.Span.End
	return node, nil
}

// parseList parses { e, e, ... }, a possibly-empty comma-separated list
// closed by "}".
func (p *Parser) parseList(open Token) (*Node, error) {
	p.depth++
	defer func() { p.depth-- }()

	node := newOpNode(KindList, "List", open.Span.Start)

	if p.isGroupClose("}") {
		node.Span.End = p.advance().Span.End
		return node, nil
	}

	for {
		element, err := p.parseExpr(0)
		if err != nil {
			return nil, p.unterminatedAtEOF(err, open, "}")
		}
		node.AddChild(element)

		tok := p.peek()
		if tok.Kind == TokenEOF || tok.Kind == TokenEOL {
			return nil, &UnterminatedGroupError{Open: open.Span.Start, Expected: "}"}
		}
		if p.isGroupClose("}") {
			node.Span.End = p.advance().Span.End
			return node, nil
		}
		if tok.Kind == TokenOperator && tok.Text == "," {
			p.advance()
			continue
		}
		return nil, &SyntaxError{Pos: tok.Span.Start, Found: tok, Expected: `"," or "}"`}
	}
}

// unterminatedAtEOF reclassifies an end-of-input syntax error raised
// inside a bracketed construct: running out of input there means the
// bracket is unterminated, not that an expression is missing.
func (p *Parser) unterminatedAtEOF(err error, open Token, expected string) error {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) && syntaxErr.Found.Kind == TokenEOF {
		return &UnterminatedGroupError{Open: open.Span.Start, Expected: expected}
	}
	return err
}

func (p *Parser) isGroupClose(close string) bool {
	tok := p.peek()
	return tok.Kind == TokenOperator && tok.Subkind == SubGroup && tok.Text == close
}
