package parser

import (
	_ "embed"
	"strings"

	"golang.org/x/exp/ebnf"
)

// GrammarStart is the start production of the grammar.
const GrammarStart = "SourceFile"

// The grammar leaves out whitespace and // comments, which may appear
// between any two tokens. Strings may also hold any non-ASCII character.
//
//go:embed grammar.ebnf
var grammarSource string

// GrammarSource returns the grammar the parser implements, in EBNF.
func GrammarSource() string {
	return grammarSource
}

// Grammar parses and verifies the grammar.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("grammar.ebnf", strings.NewReader(grammarSource))
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(g, GrammarStart); err != nil {
		return nil, err
	}
	return g, nil
}
