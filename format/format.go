package format

import "github.com/dhamidi/wlx/wolfram/parser"

// Encoder renders a syntax tree to some output format.
type Encoder interface {
	Encode(node *parser.Node) error
}
