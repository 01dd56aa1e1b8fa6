// Package compiler translates Quench syntax trees into JavaScript modules.
//
// Every user identifier is prefixed so it cannot clash with JavaScript
// reserved words or globals. Collections compile to Immutable.js persistent
// lists and maps, symbols to entries of the global symbol registry, and
// blocks to immediately invoked arrow functions so they can be used
// wherever an expression is allowed.
package compiler

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/quench-lang/quench/estree"
	"github.com/quench-lang/quench/parser"
)

const (
	DefaultPrefix  = "$"
	DefaultRuntime = "immutable"
	DefaultEntry   = "main"

	runtimeNamespace = "Immutable"
)

// specialForms are identifiers that resolve to fixed runtime bindings
// instead of being mangled.
var specialForms = map[string]func() estree.Expression{
	"print": func() estree.Expression {
		return estree.Member(estree.Ident("console"), "log")
	},
	"args": func() estree.Expression {
		argv := estree.Member(estree.Ident("process"), "argv")
		return estree.Call(estree.Member(argv, "slice"), &estree.Literal{Value: int64(2)})
	},
}

type Option func(*Compiler)

// WithPrefix sets the prefix added to user identifiers. Empty prefixes are
// ignored.
func WithPrefix(prefix string) Option {
	return func(c *Compiler) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithRuntime sets the module specifier the persistent collections are
// imported from.
func WithRuntime(specifier string) Option {
	return func(c *Compiler) {
		if specifier != "" {
			c.runtime = specifier
		}
	}
}

// WithEntry sets the name of the declaration invoked when the module loads.
func WithEntry(name string) Option {
	return func(c *Compiler) {
		if name != "" {
			c.entry = name
		}
	}
}

// Compiler holds only fixed settings; it is safe for concurrent use.
type Compiler struct {
	prefix  string
	runtime string
	entry   string
}

func New(opts ...Option) *Compiler {
	c := &Compiler{
		prefix:  DefaultPrefix,
		runtime: DefaultRuntime,
		entry:   DefaultEntry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile translates root into JavaScript source.
func (c *Compiler) Compile(root *parser.Node) (string, error) {
	prog, err := c.Program(root)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := estree.Print(&buf, prog); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Program translates root into a JavaScript module AST.
func (c *Compiler) Program(root *parser.Node) (*estree.Program, error) {
	if root == nil {
		return nil, &MalformedTreeError{Message: "no tree"}
	}
	if root.Kind != parser.KindSourceFile {
		return nil, malformed(root, "expected %s", parser.KindSourceFile)
	}
	if bad := firstError(root); bad != nil {
		msg := "syntax error"
		if bad.Error != nil {
			msg = bad.Error.Message
		}
		return nil, malformed(bad, "%s", msg)
	}

	prog := &estree.Program{
		Body: []estree.Statement{
			&estree.ImportDeclaration{Local: estree.Ident(runtimeNamespace), Source: c.runtime},
		},
	}
	hasEntry := false
	for _, child := range root.Children {
		stmt, err := c.statement(child)
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
		if child.Kind == parser.KindDeclaration && child.Children[0].Text == c.entry {
			hasEntry = true
		}
	}
	if hasEntry {
		prog.Body = append(prog.Body, &estree.ExpressionStatement{
			Expression: estree.Call(c.mangle(c.entry)),
		})
	}
	return prog, nil
}

func firstError(root *parser.Node) *parser.Node {
	var bad *parser.Node
	root.Walk(func(n *parser.Node) bool {
		if bad != nil {
			return false
		}
		if n.IsError() {
			bad = n
			return false
		}
		return true
	})
	return bad
}

func (c *Compiler) mangle(name string) *estree.Identifier {
	return estree.Ident(c.prefix + name)
}

// Mangle returns the JavaScript name of a user identifier.
func (c *Compiler) Mangle(name string) string {
	return c.prefix + name
}

func children(n *parser.Node, want int) ([]*parser.Node, error) {
	if len(n.Children) != want {
		return nil, malformed(n, "expected %d children, got %d", want, len(n.Children))
	}
	return n.Children, nil
}

func (c *Compiler) statement(n *parser.Node) (estree.Statement, error) {
	switch n.Kind {
	case parser.KindDeclaration:
		kids, err := children(n, 2)
		if err != nil {
			return nil, err
		}
		if kids[0].Kind != parser.KindIdentifier {
			return nil, malformed(kids[0], "declaration name must be an identifier")
		}
		value, err := c.expression(kids[1])
		if err != nil {
			return nil, err
		}
		return estree.Const(c.mangle(kids[0].Text), value), nil
	case parser.KindExpressionStatement:
		kids, err := children(n, 1)
		if err != nil {
			return nil, err
		}
		expr, err := c.expression(kids[0])
		if err != nil {
			return nil, err
		}
		return &estree.ExpressionStatement{Expression: expr}, nil
	}
	return nil, malformed(n, "expected a statement")
}

func (c *Compiler) expression(n *parser.Node) (estree.Expression, error) {
	switch n.Kind {
	case parser.KindIdentifier:
		if form, ok := specialForms[n.Text]; ok {
			return form(), nil
		}
		return c.mangle(n.Text), nil
	case parser.KindNull:
		return &estree.Literal{Value: nil}, nil
	case parser.KindBoolean:
		value, err := strconv.ParseBool(n.Text)
		if err != nil {
			return nil, malformed(n, "invalid boolean %q", n.Text)
		}
		return &estree.Literal{Value: value}, nil
	case parser.KindInteger:
		return integerLiteral(n)
	case parser.KindString:
		return stringLiteral(n)
	case parser.KindSymbol:
		return symbolFor(strings.TrimPrefix(n.Text, "#")), nil
	case parser.KindList:
		elems, err := c.expressions(n.Children)
		if err != nil {
			return nil, err
		}
		return c.runtimeCall("List", &estree.ArrayExpression{Elements: elems}), nil
	case parser.KindMap:
		return c.mapLiteral(n)
	case parser.KindBlock:
		return c.block(n)
	case parser.KindFunction:
		kids, err := children(n, 2)
		if err != nil {
			return nil, err
		}
		if kids[0].Kind != parser.KindIdentifier {
			return nil, malformed(kids[0], "parameter must be an identifier")
		}
		body, err := c.expression(kids[1])
		if err != nil {
			return nil, err
		}
		return &estree.ArrowFunctionExpression{
			Params: []*estree.Identifier{c.mangle(kids[0].Text)},
			Body:   body,
		}, nil
	case parser.KindCall:
		kids, err := children(n, 2)
		if err != nil {
			return nil, err
		}
		exprs, err := c.expressions(kids)
		if err != nil {
			return nil, err
		}
		return estree.Call(exprs[0], exprs[1]), nil
	case parser.KindIndex:
		kids, err := children(n, 2)
		if err != nil {
			return nil, err
		}
		exprs, err := c.expressions(kids)
		if err != nil {
			return nil, err
		}
		return estree.Call(estree.Member(exprs[0], "get"), exprs[1]), nil
	case parser.KindField:
		kids, err := children(n, 2)
		if err != nil {
			return nil, err
		}
		if kids[1].Kind != parser.KindIdentifier {
			return nil, malformed(kids[1], "field name must be an identifier")
		}
		value, err := c.expression(kids[0])
		if err != nil {
			return nil, err
		}
		return estree.Call(estree.Member(value, "get"), symbolFor(kids[1].Text)), nil
	case parser.KindError:
		return nil, malformed(n, "syntax error")
	}
	return nil, malformed(n, "unexpected node in expression position")
}

func (c *Compiler) expressions(nodes []*parser.Node) ([]estree.Expression, error) {
	exprs := make([]estree.Expression, 0, len(nodes))
	for _, n := range nodes {
		expr, err := c.expression(n)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// integerLiteral emits the digits as written. Integers outside int64 keep
// their digits but carry a float64 value, which is the number JavaScript
// reads them as; past 2^53 that value is rounded.
func integerLiteral(n *parser.Node) (estree.Expression, error) {
	value, err := strconv.ParseInt(n.Text, 10, 64)
	if err == nil {
		return &estree.Literal{Value: value}, nil
	}
	if !errors.Is(err, strconv.ErrRange) {
		return nil, malformed(n, "invalid integer %q", n.Text)
	}
	f, err := strconv.ParseFloat(n.Text, 64)
	if err != nil {
		return nil, malformed(n, "integer %s is out of range for a JavaScript number", n.Text)
	}
	return &estree.Literal{Value: f, Raw: n.Text}, nil
}

// stringLiteral strips the delimiters and keeps escape sequences exactly as
// written; only bare line terminators are escaped. Value is the string
// JavaScript reads from Raw.
func stringLiteral(n *parser.Node) (estree.Expression, error) {
	text := n.Text
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return nil, malformed(n, "unterminated string")
	}
	body := jsStringBody(text[1 : len(text)-1])
	value, err := cookString(body)
	if err != nil {
		return nil, malformed(n, "%s", err.Error())
	}
	return &estree.Literal{Value: value, Raw: `"` + body + `"`}, nil
}

func symbolFor(name string) estree.Expression {
	return estree.Call(estree.Member(estree.Ident("Symbol"), "for"), &estree.Literal{Value: name})
}

func (c *Compiler) runtimeCall(constructor string, arg estree.Expression) estree.Expression {
	return estree.Call(estree.Member(estree.Ident(runtimeNamespace), constructor), arg)
}

// mapLiteral keeps pairs in source order; duplicate keys are left to the
// runtime constructor, where the last one wins.
func (c *Compiler) mapLiteral(n *parser.Node) (estree.Expression, error) {
	entries := make([]estree.Expression, 0, len(n.Children))
	for _, pair := range n.Children {
		if pair.Kind != parser.KindPair {
			return nil, malformed(pair, "expected %s", parser.KindPair)
		}
		kids, err := children(pair, 2)
		if err != nil {
			return nil, err
		}
		kv, err := c.expressions(kids)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &estree.ArrayExpression{Elements: kv})
	}
	return c.runtimeCall("Map", &estree.ArrayExpression{Elements: entries}), nil
}

// block compiles to (() => { ...; return trailing; })().
func (c *Compiler) block(n *parser.Node) (estree.Expression, error) {
	body := &estree.BlockStatement{}
	for i, child := range n.Children {
		if !child.Kind.IsStatement() {
			if i != len(n.Children)-1 {
				return nil, malformed(child, "only the last element of a block may be an expression")
			}
			value, err := c.expression(child)
			if err != nil {
				return nil, err
			}
			body.Body = append(body.Body, &estree.ReturnStatement{Argument: value})
			break
		}
		stmt, err := c.statement(child)
		if err != nil {
			return nil, err
		}
		body.Body = append(body.Body, stmt)
	}
	return estree.Call(&estree.ArrowFunctionExpression{Block: body}), nil
}
