// Package format renders Quench syntax trees for people and tools.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/quench-lang/quench/parser"
)

// Encoder writes a syntax tree in one output format.
type Encoder interface {
	encoding.TextMarshaler
	Encode(root *parser.Node) error
}

// NewEncoder returns the encoder for name ("text" or "json"). Colour only
// applies to the text format.
func NewEncoder(name string, w io.Writer, color bool) (Encoder, error) {
	switch name {
	case "", "text":
		return NewTreeEncoder(w, NewStyles(color)), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (want text or json)", name)
}
