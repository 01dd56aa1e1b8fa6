package compiler

import (
	"fmt"

	"github.com/quench-lang/quench/parser"
)

// MalformedTreeError reports a tree the compiler cannot translate, either
// because it contains parse errors or because a node has an unexpected
// shape. No output is produced when it is returned.
type MalformedTreeError struct {
	Kind    parser.NodeKind
	Range   parser.Range
	Message string
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("malformed tree: %d:%d: %s: %s",
		e.Range.StartPoint.Row+1, e.Range.StartPoint.Column+1, e.Kind, e.Message)
}

func malformed(n *parser.Node, format string, args ...any) error {
	return &MalformedTreeError{
		Kind:    n.Kind,
		Range:   n.Range,
		Message: fmt.Sprintf(format, args...),
	}
}
