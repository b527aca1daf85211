package format

import (
	"io"

	"github.com/dhamidi/wlx/wolfram/parser"
)

// SExprEncoder writes the syntax tree as a nested s-expression, the
// golden format used by tests: leaves print their source text, operator
// nodes print (Name operand...).
type SExprEncoder struct {
	w io.Writer
}

func NewSExprEncoder(w io.Writer) *SExprEncoder {
	return &SExprEncoder{w: w}
}

func (e *SExprEncoder) Encode(node *parser.Node) error {
	_, err := io.WriteString(e.w, node.String()+"\n")
	return err
}
