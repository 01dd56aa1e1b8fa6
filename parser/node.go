package parser

import (
	"strconv"
	"strings"
)

type NodeKind int

const (
	KindError NodeKind = iota

	KindSourceFile

	// Statements
	KindDeclaration
	KindExpressionStatement

	// Expressions
	KindIdentifier
	KindBlock
	KindCall
	KindFunction
	KindIndex
	KindField

	// Literals
	KindNull
	KindBoolean
	KindInteger
	KindString
	KindSymbol
	KindList
	KindMap
	KindPair
)

var nodeKindNames = map[NodeKind]string{
	KindError:               "ERROR",
	KindSourceFile:          "source_file",
	KindDeclaration:         "declaration",
	KindExpressionStatement: "expression_statement",
	KindIdentifier:          "identifier",
	KindBlock:               "block",
	KindCall:                "call",
	KindFunction:            "function",
	KindIndex:               "index",
	KindField:               "field",
	KindNull:                "null",
	KindBoolean:             "boolean",
	KindInteger:             "integer",
	KindString:              "string",
	KindSymbol:              "symbol",
	KindList:                "list",
	KindMap:                 "map",
	KindPair:                "pair",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsStatement reports whether k may only appear in statement position.
func (k NodeKind) IsStatement() bool {
	return k == KindDeclaration || k == KindExpressionStatement
}

type Error struct {
	Message  string
	Expected []TokenKind
	Got      string
}

// Node is a syntax tree node. Trees are never mutated after the parser
// returns them; Edit produces a shifted copy instead.
type Node struct {
	Kind     NodeKind
	Range    Range
	Children []*Node
	Text     string
	Error    *Error

	changed bool
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

// HasError reports whether n or any of its descendants is an error node.
func (n *Node) HasError() bool {
	if n.IsError() {
		return true
	}
	for _, child := range n.Children {
		if child.HasError() {
			return true
		}
	}
	return false
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Walk calls fn for n and its descendants in source order, skipping the
// children of any node for which fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// String renders the tree as an indented dump of kinds, ranges and leaf
// text. The output is deterministic and is what editors display.
func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
	sb.WriteString(n.Kind.String())
	sb.WriteString(" ")
	sb.WriteString(n.Range.String())
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(n.Range.StartByte))
	sb.WriteString("..")
	sb.WriteString(strconv.Itoa(n.Range.EndByte))
	if n.Text != "" {
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(n.Text))
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: ")
		sb.WriteString(n.Error.Message)
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(sb, indent+1)
	}
}
