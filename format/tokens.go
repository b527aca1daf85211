package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/wlx/wolfram/parser"
)

// TokenEncoder writes a token stream as one (kind subkind "text") triple
// per line, the debug format for inspecting what the classifier saw in a
// text range.
type TokenEncoder struct {
	w io.Writer
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(tokens []parser.Token) error {
	for _, tok := range tokens {
		var err error
		if tok.Subkind == parser.SubNone {
			_, err = fmt.Fprintf(e.w, "(%s %q)\n", tok.Kind, tok.Text)
		} else {
			_, err = fmt.Fprintf(e.w, "(%s %s %q)\n", tok.Kind, tok.Subkind, tok.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
