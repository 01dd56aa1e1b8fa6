package estree

import (
	"encoding/json"
	"io"
)

// JSONEncoder writes programs as ESTree JSON.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(prog *Program) error {
	text, err := e.MarshalText(prog)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText(prog *Program) ([]byte, error) {
	return json.MarshalIndent(prog, "", "  ")
}

func (n *Program) MarshalJSON() ([]byte, error) {
	body := n.Body
	if body == nil {
		body = []Statement{}
	}
	return json.Marshal(struct {
		Type       string      `json:"type"`
		SourceType string      `json:"sourceType"`
		Body       []Statement `json:"body"`
	}{"Program", "module", body})
}

func (n *ImportDeclaration) MarshalJSON() ([]byte, error) {
	type specifier struct {
		Type  string      `json:"type"`
		Local *Identifier `json:"local"`
	}
	return json.Marshal(struct {
		Type       string      `json:"type"`
		Specifiers []specifier `json:"specifiers"`
		Source     *Literal    `json:"source"`
	}{
		"ImportDeclaration",
		[]specifier{{"ImportNamespaceSpecifier", n.Local}},
		&Literal{Value: n.Source},
	})
}

func (n *VariableDeclaration) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type         string                `json:"type"`
		Kind         string                `json:"kind"`
		Declarations []*VariableDeclarator `json:"declarations"`
	}{"VariableDeclaration", n.Kind, n.Declarations})
}

func (n *VariableDeclarator) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string      `json:"type"`
		ID   *Identifier `json:"id"`
		Init Expression  `json:"init"`
	}{"VariableDeclarator", n.ID, n.Init})
}

func (n *ExpressionStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string     `json:"type"`
		Expression Expression `json:"expression"`
	}{"ExpressionStatement", n.Expression})
}

func (n *ReturnStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string     `json:"type"`
		Argument Expression `json:"argument"`
	}{"ReturnStatement", n.Argument})
}

func (n *BlockStatement) MarshalJSON() ([]byte, error) {
	body := n.Body
	if body == nil {
		body = []Statement{}
	}
	return json.Marshal(struct {
		Type string      `json:"type"`
		Body []Statement `json:"body"`
	}{"BlockStatement", body})
}

func (n *Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}{"Identifier", n.Name})
}

func (n *Literal) MarshalJSON() ([]byte, error) {
	raw, err := literalText(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
		Raw   string `json:"raw"`
	}{"Literal", n.Value, raw})
}

func (n *CallExpression) MarshalJSON() ([]byte, error) {
	args := n.Arguments
	if args == nil {
		args = []Expression{}
	}
	return json.Marshal(struct {
		Type      string       `json:"type"`
		Callee    Expression   `json:"callee"`
		Arguments []Expression `json:"arguments"`
	}{"CallExpression", n.Callee, args})
}

func (n *MemberExpression) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string     `json:"type"`
		Object   Expression `json:"object"`
		Property Expression `json:"property"`
		Computed bool       `json:"computed"`
	}{"MemberExpression", n.Object, n.Property, n.Computed})
}

func (n *ArrowFunctionExpression) MarshalJSON() ([]byte, error) {
	var body Node = n.Body
	if n.Block != nil {
		body = n.Block
	}
	params := n.Params
	if params == nil {
		params = []*Identifier{}
	}
	return json.Marshal(struct {
		Type       string        `json:"type"`
		Params     []*Identifier `json:"params"`
		Body       Node          `json:"body"`
		Expression bool          `json:"expression"`
	}{"ArrowFunctionExpression", params, body, n.Block == nil})
}

func (n *ArrayExpression) MarshalJSON() ([]byte, error) {
	elems := n.Elements
	if elems == nil {
		elems = []Expression{}
	}
	return json.Marshal(struct {
		Type     string       `json:"type"`
		Elements []Expression `json:"elements"`
	}{"ArrayExpression", elems})
}
