package format

import (
	"encoding/json"
	"io"

	"github.com/quench-lang/quench/parser"
)

type ASTJSONEncoder struct {
	w    io.Writer
	root *parser.Node
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(root *parser.Node) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(e.root), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Range    astJSONRange   `json:"range"`
	Text     string         `json:"text,omitempty"`
	Error    *astJSONError  `json:"error,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONRange struct {
	StartByte int             `json:"startByte"`
	EndByte   int             `json:"endByte"`
	Start     astJSONPosition `json:"start"`
	End       astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

type astJSONError struct {
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

func nodeToJSON(n *parser.Node) *astJSONNode {
	if n == nil {
		return nil
	}
	jn := &astJSONNode{
		Kind: n.Kind.String(),
		Range: astJSONRange{
			StartByte: n.Range.StartByte,
			EndByte:   n.Range.EndByte,
			Start:     astJSONPosition{Row: n.Range.StartPoint.Row, Column: n.Range.StartPoint.Column},
			End:       astJSONPosition{Row: n.Range.EndPoint.Row, Column: n.Range.EndPoint.Column},
		},
		Text: n.Text,
	}

	if n.Error != nil {
		jn.Error = &astJSONError{
			Message: n.Error.Message,
			Got:     n.Error.Got,
		}
		for _, exp := range n.Error.Expected {
			jn.Error.Expected = append(jn.Error.Expected, exp.String())
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}
