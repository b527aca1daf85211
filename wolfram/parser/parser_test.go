package parser

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, input string) *Node {
	t.Helper()
	node, err := Parse([]byte(input), "test.wl")
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return node
}

func TestParseSexpr(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Leaves.
		{"42", "42"},
		{"3.14", "3.14"},
		{`"hi"`, `"hi"`},
		{"x", "x"},
		{"Sin", "Sin"},
		{`\[Infinity]`, `\[Infinity]`},

		// Flat operators collapse same-spelling runs into one node.
		{"a+b", "(Plus a b)"},
		{"a+b+c+d", "(Plus a b c d)"},
		{"a*b*c", "(Times a b c)"},
		{"a|b|c", "(Alternatives a b c)"},

		// Crossing to another flat spelling at the same power starts a
		// new node wrapping the run so far.
		{"a+b-c", "(Minus (Plus a b) c)"},
		{"a-b+c-d", "(Minus (Plus (Minus a b) c) d)"},
		{"a-b-c", "(Minus a b c)"},

		// Associativity disciplines.
		{"a^b^c", "(Power a (Power b c))"},
		{"a/b/c", "(Divide (Divide a b) c)"},
		{"a=b=c", "(Set a (Set b c))"},
		{"x->y->z", "(Rule x (Rule y z))"},

		// Precedence.
		{"a=b+c", "(Set a (Plus b c))"},
		{"a+b*c", "(Plus a (Times b c))"},
		{"a*b+c", "(Plus (Times a b) c)"},
		{"a+b^c", "(Plus a (Power b c))"},
		{"f::usage=x", "(Set (MessageName f usage) x)"},

		// Unary prefix.
		{"-a", "(Minus a)"},
		{"+a", "(Plus a)"},
		{"-a+b", "(Plus (Minus a) b)"},
		{"-a^b", "(Minus (Power a b))"},
		{"a--b", "(Minus a (Minus b))"},

		// Calls bind tighter than arithmetic.
		{"f[x]", "(Call f x)"},
		{"f[]", "(Call f)"},
		{"f[x]+1", "(Plus (Call f x) 1)"},
		{"f[x+1]", "(Call f (Plus x 1))"},
		{"f[x, y, z]", "(Call f x y z)"},
		{"f[x][y]", "(Call (Call f x) y)"},
		{"f[g[x]]", "(Call f (Call g x))"},

		// Grouping and lists.
		{"(a)", "(Group a)"},
		{"(a+b)*c", "(Times (Group (Plus a b)) c)"},
		{"{}", "(List)"},
		{"{1, 2, 3}", "(List 1 2 3)"},
		{"{a+b, {c}}", "(List (Plus a b) (List c))"},

		// Postfix.
		{"a=.", "(Unset a)"},
		{"x..", "(Repeated x)"},
		{"x...", "(RepeatedNull x)"},
		{"x..+y", "(Plus (Repeated x) y)"},

		// Rules, patterns, mapping.
		{"f:=g", "(SetDelayed f g)"},
		{"x:>y", "(RuleDelayed x y)"},
		{"x:p", "(Pattern x p)"},
		{"x:a|b", "(Pattern x (Alternatives a b))"},
		{"f/@list", "(Map f list)"},
		{"f//@list", "(MapAll f list)"},
		{"f@@args", "(Apply f args)"},
		{"f@@@args", "(MapApply f args)"},
		{"x|->x+1", "(Function x (Plus x 1))"},
		{"expr>>file", "(Put expr file)"},

		// Sequences split on ";" and newlines at the top level.
		{"a=1; b=2", "(Sequence (Set a 1) (Set b 2))"},
		{"a\nb", "(Sequence a b)"},
		{"a=1;\nb=2;\n", "(Sequence (Set a 1) (Set b 2))"},

		// Brackets span newlines.
		{"f[\n1,\n2\n]", "(Call f 1 2)"},
		{"{1,\n2}", "(List 1 2)"},
		{"(a+\nb)", "(Group (Plus a b))"},

		// Named escapes are operands.
		{`\[Pi]+1`, `(Plus \[Pi] 1)`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := mustParse(t, tt.input)
			if got := node.String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseFlatOperandCount(t *testing.T) {
	node := mustParse(t, "a+b+c+d")
	if node.Kind != KindNAryOp || node.Op != "Plus" {
		t.Fatalf("got %v %q, want NAryOp Plus", node.Kind, node.Op)
	}
	if len(node.Children) != 4 {
		t.Fatalf("got %d operands, want 4", len(node.Children))
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		if node.Children[i].TokenText() != want {
			t.Errorf("operand %d = %q, want %q", i, node.Children[i].TokenText(), want)
		}
	}
}

// Wrapping any well-formed expression in parentheses must produce the
// same tree, wrapped in a single Group node.
func TestParseGroupRoundTrip(t *testing.T) {
	exprs := []string{
		"a",
		"a+b*c",
		"f[x]+1",
		"{1, 2}",
		"a^b^c",
		"x->y",
	}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			plain := mustParse(t, expr)
			grouped := mustParse(t, "("+expr+")")
			if grouped.Kind != KindGroup {
				t.Fatalf("got %v, want Group", grouped.Kind)
			}
			if got, want := grouped.Inner().String(), plain.String(); got != want {
				t.Errorf("inner = %s, want %s", got, want)
			}
		})
	}
}

func TestParseCallAccessors(t *testing.T) {
	node := mustParse(t, "f[x, y]")
	if node.Head().TokenText() != "f" {
		t.Errorf("head = %q, want f", node.Head().TokenText())
	}
	args := node.Args()
	if len(args) != 2 || args[0].TokenText() != "x" || args[1].TokenText() != "y" {
		t.Errorf("args = %v, want [x y]", args)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		check func(error) bool
	}{
		{"f[x", func(err error) bool {
			var e *UnterminatedGroupError
			return errors.As(err, &e) && e.Expected == "]"
		}},
		{"(a+b", func(err error) bool {
			var e *UnterminatedGroupError
			return errors.As(err, &e) && e.Expected == ")"
		}},
		{"{1, 2", func(err error) bool {
			var e *UnterminatedGroupError
			return errors.As(err, &e) && e.Expected == "}"
		}},
		// End of input directly inside an opener is an unterminated
		// group, not a missing expression.
		{"f[", func(err error) bool {
			var e *UnterminatedGroupError
			return errors.As(err, &e) && e.Expected == "]"
		}},
		{"(a+", func(err error) bool {
			var e *UnterminatedGroupError
			return errors.As(err, &e) && e.Expected == ")"
		}},
		{"{", func(err error) bool {
			var e *UnterminatedGroupError
			return errors.As(err, &e) && e.Expected == "}"
		}},
		{"a+", func(err error) bool {
			var e *SyntaxError
			return errors.As(err, &e) && e.Expected == "expression"
		}},
		{")", func(err error) bool {
			var e *SyntaxError
			return errors.As(err, &e)
		}},
		{"#", func(err error) bool {
			var e *SyntaxError
			return errors.As(err, &e) && e.Found.Kind == TokenUnknown
		}},
		{"a b", func(err error) bool {
			var e *SyntaxError
			return errors.As(err, &e) && e.Expected == "expression separator"
		}},
		{"f[x y]", func(err error) bool {
			var e *SyntaxError
			return errors.As(err, &e)
		}},
		{"", func(err error) bool {
			var e *SyntaxError
			return errors.As(err, &e) && e.Expected == "expression"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), "test.wl")
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("wrong error: %v", err)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse([]byte("a+b+ +"), "test.wl")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("got %v, want SyntaxError", err)
	}
	// Prefix plus consumes the last "+", so the offending token is the
	// end sentinel; its position is the end of the line.
	if syntaxErr.Pos.Offset != 6 {
		t.Errorf("error at offset %d, want 6", syntaxErr.Pos.Offset)
	}
}

func TestParseExpressionRejectsTrailing(t *testing.T) {
	if _, err := ParseExpression([]byte("a+b c"), "test.wl"); err == nil {
		t.Error("expected error for trailing tokens")
	}
	if _, err := ParseExpression([]byte("a+b"), "test.wl"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseUnterminatedAtNewline(t *testing.T) {
	// A top-level newline terminates the expression, so the operand of
	// "+" is missing.
	_, err := Parse([]byte("a +\nb"), "test.wl")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("got %v, want SyntaxError", err)
	}
}

func TestParseSpans(t *testing.T) {
	node := mustParse(t, "f[x]+1")
	if node.Span.Start.Offset != 0 {
		t.Errorf("start offset = %d, want 0", node.Span.Start.Offset)
	}
	if node.Span.End.Offset != 6 {
		t.Errorf("end offset = %d, want 6", node.Span.End.Offset)
	}
	call := node.Children[0]
	if call.Span.Start.Offset != 0 || call.Span.End.Offset != 4 {
		t.Errorf("call span = [%d,%d), want [0,4)", call.Span.Start.Offset, call.Span.End.Offset)
	}
}

// A postfix node covers its operator text, not just the operand.
func TestParsePostfixSpan(t *testing.T) {
	tests := []struct {
		input string
		end   int
	}{
		{"x..", 3},
		{"x...", 4},
		{"a=.", 3},
	}
	for _, tt := range tests {
		node := mustParse(t, tt.input)
		if node.Span.End.Offset != tt.end {
			t.Errorf("%q: span end = %d, want %d", tt.input, node.Span.End.Offset, tt.end)
		}
	}
}

// Grouping goes through the registry like every other Nud: a registry
// without the bracket entries cannot parse them.
func TestParseGroupingFromRegistry(t *testing.T) {
	bare := NewRegistry()
	if _, err := Parse([]byte("(a)"), "test.wl", WithRegistry(bare)); err == nil {
		t.Error("expected error without a \"(\" entry")
	}
	if _, err := Parse([]byte("{a}"), "test.wl", WithRegistry(bare)); err == nil {
		t.Error("expected error without a \"{\" entry")
	}
	if _, err := Parse([]byte("({a})"), "test.wl"); err != nil {
		t.Errorf("default registry: %v", err)
	}
}

func TestParseConcurrentRegistryUse(t *testing.T) {
	inputs := []string{"a+b+c", "f[x]^2", "{1, 2, 3}", "x->y"}
	done := make(chan bool)
	for _, input := range inputs {
		go func(input string) {
			defer func() { done <- true }()
			for i := 0; i < 100; i++ {
				if _, err := Parse([]byte(input), "test.wl"); err != nil {
					t.Errorf("Parse(%q): %v", input, err)
					return
				}
			}
		}(input)
	}
	for range inputs {
		<-done
	}
}
