package parser

import (
	"strings"
	"testing"
)

func collectForward(input string) []Token {
	scanner := NewScanner([]byte(input), "test.wl")
	var tokens []Token
	for {
		tok := scanner.Next(Forward)
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func TestScannerForwardSkipsWhitespaceAndComments(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"  a  +  b ", []string{"a", "+", "b", ""}},
		{"(* note *) x", []string{"x", ""}},
		{"a (* mid *) b", []string{"a", "b", ""}},
		{"(* outer (* inner *) still outer *) y", []string{"y", ""}},
		{"(* unterminated", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := collectForward(tt.input)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d", len(tokens), len(tt.expected))
			}
			for i, want := range tt.expected {
				if tokens[i].Text != want {
					t.Errorf("token %d: got %q, want %q", i, tokens[i].Text, want)
				}
			}
		})
	}
}

func TestScannerNewlineSentinel(t *testing.T) {
	tokens := collectForward("a\nb")
	kinds := []TokenKind{TokenName, TokenEOL, TokenName, TokenEOF}
	if len(tokens) != len(kinds) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(kinds))
	}
	for i, want := range kinds {
		if tokens[i].Kind != want {
			t.Errorf("token %d: got %v, want %v", i, tokens[i].Kind, want)
		}
	}
}

func TestScannerBackward(t *testing.T) {
	input := "f[x] + 1"
	scanner := NewScanner([]byte(input), "test.wl")
	scanner.SetPos(len(input))

	expected := []string{"1", "+", "]", "x", "[", "f"}
	for i, want := range expected {
		tok := scanner.Next(Backward)
		if tok.Text != want {
			t.Errorf("backward token %d: got %q, want %q", i, tok.Text, want)
		}
	}

	tok := scanner.Next(Backward)
	if tok.Kind != TokenEOF {
		t.Errorf("at buffer start: got %v, want EndOfInput sentinel", tok.Kind)
	}
}

// Backward matches are trailing-anchored: the token is the one whose
// text ends exactly at the scan position, even when internal markers
// would also match shorter grammars.
func TestScannerBackwardTrailingAnchored(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"16^^FF", "16^^FF"},
		{"2.5*^10", "2.5*^10"},
		{"1.23`5", "1.23`5"},
		{`"ab\"cd"`, `"ab\"cd"`},
		{`\[Infinity]`, `\[Infinity]`},
		{"a :=", ":="},
		{"a ::", "::"},
		{"x ...", "..."},
		{"foo_123", "foo_123"},
		{`"s" x`, "x"},
		{`f["s"]`, "]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			scanner := NewScanner([]byte(tt.input), "test.wl")
			scanner.SetPos(len(tt.input))
			tok := scanner.Next(Backward)
			if tok.Text != tt.want {
				t.Errorf("got %q, want %q", tok.Text, tt.want)
			}
			if scanner.Pos() != len(tt.input)-len(tt.want) {
				t.Errorf("scanner at %d, want %d", scanner.Pos(), len(tt.input)-len(tt.want))
			}
		})
	}
}

// Names and numbers can outgrow the look-back window; the backward scan
// must still anchor at the true token start.
func TestScannerBackwardLongTokens(t *testing.T) {
	longName := strings.Repeat("a", 80)
	longNumber := "16^^" + strings.Repeat("F", 80)

	tests := []struct {
		input string
		want  string
	}{
		{longName, longName},
		{"x + " + longName, longName},
		{longNumber, longNumber},
		{"y = " + longNumber, longNumber},
	}

	for _, tt := range tests {
		t.Run(tt.want[:8], func(t *testing.T) {
			scanner := NewScanner([]byte(tt.input), "test.wl")
			scanner.SetPos(len(tt.input))
			tok := scanner.Next(Backward)
			if tok.Text != tt.want {
				t.Errorf("got %d-char token %q..., want %d chars", len(tok.Text), tok.Text[:8], len(tt.want))
			}
			if want := len(tt.input) - len(tt.want); scanner.Pos() != want {
				t.Errorf("scanner at %d, want %d", scanner.Pos(), want)
			}
		})
	}
}

func TestScannerBackwardSkipsComments(t *testing.T) {
	input := "x (* note (* nested *) *)"
	scanner := NewScanner([]byte(input), "test.wl")
	scanner.SetPos(len(input))
	tok := scanner.Next(Backward)
	if tok.Text != "x" {
		t.Errorf("got %q, want %q", tok.Text, "x")
	}
}

func TestScannerBackwardNewline(t *testing.T) {
	input := "a\nb"
	scanner := NewScanner([]byte(input), "test.wl")
	scanner.SetPos(len(input))

	if tok := scanner.Next(Backward); tok.Text != "b" {
		t.Fatalf("got %q, want b", tok.Text)
	}
	if tok := scanner.Next(Backward); tok.Kind != TokenEOL {
		t.Fatalf("got %v, want EndOfLine sentinel", tok.Kind)
	}
	if tok := scanner.Next(Backward); tok.Text != "a" {
		t.Fatalf("got %q, want a", tok.Text)
	}
}

// Rewinding the scanner must not leave stale cursor state behind:
// positions after a SetPos back to earlier input stay correct.
func TestScannerForwardRewind(t *testing.T) {
	input := "a\nfoo + bar"
	scanner := NewScanner([]byte(input), "test.wl")
	for scanner.Next(Forward).Kind != TokenEOF {
	}

	scanner.SetPos(0)
	tok := scanner.Next(Forward)
	if tok.Text != "a" || tok.Span.Start.Line != 1 || tok.Span.Start.Column != 1 {
		t.Errorf("after rewind: %q at (%d, %d), want a at (1, 1)", tok.Text, tok.Span.Start.Line, tok.Span.Start.Column)
	}

	scanner.SetPos(2)
	tok = scanner.Next(Forward)
	if tok.Text != "foo" || tok.Span.Start.Line != 2 || tok.Span.Start.Column != 1 {
		t.Errorf("after SetPos(2): %q at (%d, %d), want foo at (2, 1)", tok.Text, tok.Span.Start.Line, tok.Span.Start.Column)
	}
}

func TestScannerRoundTrip(t *testing.T) {
	input := `f[x_] := x^2 + g["s", \[Pi]]`
	forward := collectForward(input)

	scanner := NewScanner([]byte(input), "test.wl")
	scanner.SetPos(len(input))
	var backward []Token
	for {
		tok := scanner.Next(Backward)
		if tok.Kind == TokenEOF {
			break
		}
		backward = append(backward, tok)
	}

	// Forward stream minus the EOF sentinel, reversed, must equal the
	// backward stream.
	significant := forward[:len(forward)-1]
	if len(backward) != len(significant) {
		t.Fatalf("backward yielded %d tokens, forward %d", len(backward), len(significant))
	}
	for i := range significant {
		fwd := significant[i]
		bwd := backward[len(backward)-1-i]
		if fwd.Text != bwd.Text || fwd.Kind != bwd.Kind {
			t.Errorf("token %d: forward %v %q, backward %v %q", i, fwd.Kind, fwd.Text, bwd.Kind, bwd.Text)
		}
	}
}

func TestContextAt(t *testing.T) {
	// "ab\"cd" with the escaped quote inside; offsets refer to bytes of
	// the raw input.
	str := `"ab\"cd"`
	comment := `(* a (* b *) c *) x`

	tests := []struct {
		name   string
		input  string
		offset int
		want   Context
	}{
		{"start of input", str, 0, InCode},
		{"inside string", str, 2, InsideString},
		{"after escaped quote", str, 5, InsideString},
		{"before closing quote", str, 7, InsideString},
		{"after closing quote", str, 8, InCode},
		{"inside comment", comment, 3, InsideComment},
		{"inside nested comment", comment, 8, InsideComment},
		{"after inner close, still outer", comment, 13, InsideComment},
		{"after outer close", comment, 17, InCode},
		{"unterminated string", `"abc`, 4, InsideString},
		{"unterminated comment", `(* abc`, 6, InsideComment},
		{"plain code", `a + b`, 3, InCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContextAt([]byte(tt.input), tt.offset)
			if got != tt.want {
				t.Errorf("ContextAt(%q, %d) = %v, want %v", tt.input, tt.offset, got, tt.want)
			}
		})
	}
}
