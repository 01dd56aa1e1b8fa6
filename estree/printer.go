package estree

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Printer renders a Program as JavaScript module source.
type Printer struct {
	buf         bytes.Buffer
	indent      int
	indentStr   string
	atLineStart bool
}

func NewPrinter() *Printer {
	return &Printer{
		indentStr:   "  ",
		atLineStart: true,
	}
}

// Print writes prog to w. Nothing is written if rendering fails.
func Print(w io.Writer, prog *Program) error {
	text, err := NewPrinter().MarshalText(prog)
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}

func (p *Printer) MarshalText(prog *Program) ([]byte, error) {
	p.buf.Reset()
	p.indent = 0
	p.atLineStart = true
	for _, stmt := range prog.Body {
		if err := p.printStatement(stmt); err != nil {
			return nil, err
		}
	}
	return bytes.Clone(p.buf.Bytes()), nil
}

func (p *Program) String() string {
	text, err := NewPrinter().MarshalText(p)
	if err != nil {
		return "/* " + err.Error() + " */"
	}
	return string(text)
}

func (p *Printer) write(s string) {
	if p.atLineStart {
		for i := 0; i < p.indent; i++ {
			p.buf.WriteString(p.indentStr)
		}
		p.atLineStart = false
	}
	p.buf.WriteString(s)
}

func (p *Printer) newline() {
	p.buf.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) printStatement(stmt Statement) error {
	switch s := stmt.(type) {
	case *ImportDeclaration:
		p.write("import * as ")
		p.write(s.Local.Name)
		p.write(" from ")
		p.write(strconv.Quote(s.Source))
		p.write(";")
	case *VariableDeclaration:
		p.write(s.Kind)
		p.write(" ")
		for i, d := range s.Declarations {
			if i > 0 {
				p.write(", ")
			}
			p.write(d.ID.Name)
			if d.Init != nil {
				p.write(" = ")
				if err := p.printExpression(d.Init); err != nil {
					return err
				}
			}
		}
		p.write(";")
	case *ExpressionStatement:
		if err := p.printExpression(s.Expression); err != nil {
			return err
		}
		p.write(";")
	case *ReturnStatement:
		p.write("return")
		if s.Argument != nil {
			p.write(" ")
			if err := p.printExpression(s.Argument); err != nil {
				return err
			}
		}
		p.write(";")
	case *BlockStatement:
		if err := p.printBlock(s); err != nil {
			return err
		}
	default:
		return fmt.Errorf("estree: cannot print statement %T", stmt)
	}
	p.newline()
	return nil
}

func (p *Printer) printBlock(b *BlockStatement) error {
	p.write("{")
	p.newline()
	p.indent++
	for _, stmt := range b.Body {
		if err := p.printStatement(stmt); err != nil {
			return err
		}
	}
	p.indent--
	p.write("}")
	return nil
}

func (p *Printer) printExpression(expr Expression) error {
	switch e := expr.(type) {
	case *Identifier:
		p.write(e.Name)
	case *Literal:
		text, err := literalText(e)
		if err != nil {
			return err
		}
		p.write(text)
	case *ArrayExpression:
		p.write("[")
		if err := p.printList(e.Elements); err != nil {
			return err
		}
		p.write("]")
	case *CallExpression:
		if err := p.printOperand(e.Callee); err != nil {
			return err
		}
		p.write("(")
		if err := p.printList(e.Arguments); err != nil {
			return err
		}
		p.write(")")
	case *MemberExpression:
		if err := p.printOperand(e.Object); err != nil {
			return err
		}
		if e.Computed {
			p.write("[")
			if err := p.printExpression(e.Property); err != nil {
				return err
			}
			p.write("]")
		} else {
			p.write(".")
			if err := p.printExpression(e.Property); err != nil {
				return err
			}
		}
	case *ArrowFunctionExpression:
		p.write("(")
		for i, param := range e.Params {
			if i > 0 {
				p.write(", ")
			}
			p.write(param.Name)
		}
		p.write(") => ")
		if e.Block != nil {
			return p.printBlock(e.Block)
		}
		return p.printExpression(e.Body)
	default:
		return fmt.Errorf("estree: cannot print expression %T", expr)
	}
	return nil
}

// printOperand prints the callee of a call or the object of a member
// access, parenthesising forms that would otherwise bind differently.
func (p *Printer) printOperand(expr Expression) error {
	needsParens := false
	switch e := expr.(type) {
	case *ArrowFunctionExpression:
		needsParens = true
	case *Literal:
		switch e.Value.(type) {
		case int64, int, float64:
			needsParens = true
		}
	}
	if !needsParens {
		return p.printExpression(expr)
	}
	p.write("(")
	if err := p.printExpression(expr); err != nil {
		return err
	}
	p.write(")")
	return nil
}

func (p *Printer) printList(exprs []Expression) error {
	for i, expr := range exprs {
		if i > 0 {
			p.write(", ")
		}
		if err := p.printExpression(expr); err != nil {
			return err
		}
	}
	return nil
}

func literalText(l *Literal) (string, error) {
	if l.Raw != "" {
		return l.Raw, nil
	}
	switch v := l.Value.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return strconv.Quote(v), nil
	}
	return "", fmt.Errorf("estree: unsupported literal value %T", l.Value)
}
