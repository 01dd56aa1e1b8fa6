package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/quench-lang/quench/parser"
)

// TreeEncoder writes the indented tree dump, one node per line, in the
// same layout as parser.Node.String with optional colour.
type TreeEncoder struct {
	w      io.Writer
	styles *Styles
	root   *parser.Node
}

func NewTreeEncoder(w io.Writer, styles *Styles) *TreeEncoder {
	if styles == nil {
		styles = NewStyles(false)
	}
	return &TreeEncoder{w: w, styles: styles}
}

func (e *TreeEncoder) Encode(root *parser.Node) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.root != nil {
		e.writeNode(&sb, e.root, 0)
	}
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) writeNode(sb *strings.Builder, n *parser.Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	kind := e.styles.Kind
	if n.IsError() {
		kind = e.styles.Error
	}
	sb.WriteString(kind.Render(n.Kind.String()))
	sb.WriteString(" ")
	sb.WriteString(e.styles.Range.Render(n.Range.String() + " " +
		strconv.Itoa(n.Range.StartByte) + ".." + strconv.Itoa(n.Range.EndByte)))
	if n.Text != "" {
		sb.WriteString(" ")
		sb.WriteString(e.styles.Text.Render(strconv.Quote(n.Text)))
	}
	if n.Error != nil {
		sb.WriteString(" ")
		sb.WriteString(e.styles.Message.Render("ERROR: " + n.Error.Message))
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		e.writeNode(sb, child, depth+1)
	}
}
