package parser

import "fmt"

// Point is a 0-based row and byte column.
type Point struct {
	Row    int
	Column int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// Less reports whether p comes before q.
func (p Point) Less(q Point) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Column < q.Column
}

type Range struct {
	StartByte  int
	EndByte    int
	StartPoint Point
	EndPoint   Point
}

func (r Range) String() string {
	return fmt.Sprintf("[%s - %s]", r.StartPoint, r.EndPoint)
}

// Contains reports whether o lies entirely within r.
func (r Range) Contains(o Range) bool {
	return r.StartByte <= o.StartByte && o.EndByte <= r.EndByte
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenLineComment

	// Literals
	TokenIdent
	TokenInteger
	TokenString
	TokenSymbol
	TokenNull
	TokenTrue
	TokenFalse

	// Punctuation
	TokenDeclare
	TokenArrow
	TokenSemicolon
	TokenComma
	TokenColon
	TokenDot
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:         "EOF",
	TokenError:       "Error",
	TokenWhitespace:  "Whitespace",
	TokenLineComment: "LineComment",
	TokenIdent:       "Identifier",
	TokenInteger:     "Integer",
	TokenString:      "String",
	TokenSymbol:      "Symbol",
	TokenNull:        "null",
	TokenTrue:        "true",
	TokenFalse:       "false",
	TokenDeclare:     ":=",
	TokenArrow:       "=>",
	TokenSemicolon:   ";",
	TokenComma:       ",",
	TokenColon:       ":",
	TokenDot:         ".",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
	TokenLBracket:    "[",
	TokenRBracket:    "]",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Range   Range
	Literal string
}

var keywords = map[string]TokenKind{
	"null":  TokenNull,
	"true":  TokenTrue,
	"false": TokenFalse,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
