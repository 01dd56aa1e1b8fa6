// Package estree models the subset of the ESTree JavaScript AST that the
// compiler emits, and serialises it either as JavaScript source or as
// ESTree JSON.
//
// Node shapes follow https://github.com/estree/estree (es5, es2015 modules
// and arrow functions).
package estree

type Node interface {
	estreeNode()
}

// Statement is a statement or module declaration.
type Statement interface {
	Node
	statement()
}

type Expression interface {
	Node
	expression()
}

type Program struct {
	Body []Statement
}

// ImportDeclaration is a namespace import: import * as Local from "Source".
type ImportDeclaration struct {
	Local  *Identifier
	Source string
}

type VariableDeclaration struct {
	Kind         string
	Declarations []*VariableDeclarator
}

type VariableDeclarator struct {
	ID   *Identifier
	Init Expression
}

type ExpressionStatement struct {
	Expression Expression
}

type ReturnStatement struct {
	Argument Expression
}

type BlockStatement struct {
	Body []Statement
}

type Identifier struct {
	Name string
}

// Literal is null, a boolean, a number or a string. Value is what the
// literal evaluates to. Raw, when set, is its source text and is emitted
// verbatim instead of a rendering of Value; the two must agree.
type Literal struct {
	Value any
	Raw   string
}

type CallExpression struct {
	Callee    Expression
	Arguments []Expression
}

type MemberExpression struct {
	Object   Expression
	Property Expression
	Computed bool
}

// ArrowFunctionExpression has either an expression Body or a Block body.
type ArrowFunctionExpression struct {
	Params []*Identifier
	Body   Expression
	Block  *BlockStatement
}

type ArrayExpression struct {
	Elements []Expression
}

func (*Program) estreeNode()                 {}
func (*ImportDeclaration) estreeNode()       {}
func (*VariableDeclaration) estreeNode()     {}
func (*VariableDeclarator) estreeNode()      {}
func (*ExpressionStatement) estreeNode()     {}
func (*ReturnStatement) estreeNode()         {}
func (*BlockStatement) estreeNode()          {}
func (*Identifier) estreeNode()              {}
func (*Literal) estreeNode()                 {}
func (*CallExpression) estreeNode()          {}
func (*MemberExpression) estreeNode()        {}
func (*ArrowFunctionExpression) estreeNode() {}
func (*ArrayExpression) estreeNode()         {}

func (*ImportDeclaration) statement()   {}
func (*VariableDeclaration) statement() {}
func (*ExpressionStatement) statement() {}
func (*ReturnStatement) statement()     {}
func (*BlockStatement) statement()      {}

func (*Identifier) expression()              {}
func (*Literal) expression()                 {}
func (*CallExpression) expression()          {}
func (*MemberExpression) expression()        {}
func (*ArrowFunctionExpression) expression() {}
func (*ArrayExpression) expression()         {}

// Ident is shorthand for &Identifier{Name: name}.
func Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

// Member builds the non-computed member access object.property.
func Member(object Expression, property string) *MemberExpression {
	return &MemberExpression{Object: object, Property: Ident(property)}
}

// Call builds callee(args...).
func Call(callee Expression, args ...Expression) *CallExpression {
	return &CallExpression{Callee: callee, Arguments: args}
}

// Const builds const id = init.
func Const(id *Identifier, init Expression) *VariableDeclaration {
	return &VariableDeclaration{
		Kind:         "const",
		Declarations: []*VariableDeclarator{{ID: id, Init: init}},
	}
}
