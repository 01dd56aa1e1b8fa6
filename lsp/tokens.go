package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/quench-lang/quench/parser"
)

// tokenTypes is the semantic token legend; indexes into it are sent to the
// client.
var tokenTypes = []string{
	"comment",
	"string",
	"variable",
	"number",
	"keyword",
	"enumMember",
}

const (
	tokenComment protocol.UInteger = iota
	tokenString
	tokenVariable
	tokenNumber
	tokenKeyword
	tokenSymbol
)

func tokenTypeOf(kind parser.TokenKind) (protocol.UInteger, bool) {
	switch kind {
	case parser.TokenLineComment:
		return tokenComment, true
	case parser.TokenString:
		return tokenString, true
	case parser.TokenIdent:
		return tokenVariable, true
	case parser.TokenInteger:
		return tokenNumber, true
	case parser.TokenNull, parser.TokenTrue, parser.TokenFalse:
		return tokenKeyword, true
	case parser.TokenSymbol:
		return tokenSymbol, true
	}
	return 0, false
}

// semanticTokens encodes the highlighted tokens of text in the relative
// five-integer form. Tokens spanning several lines are split per line.
func semanticTokens(text string) []protocol.UInteger {
	data := []protocol.UInteger{}
	lexer := parser.NewLexer([]byte(text))
	prevLine, prevChar := 0, 0

	emit := func(line, char, length int, typ protocol.UInteger) {
		if length == 0 {
			return
		}
		deltaChar := char
		if line == prevLine {
			deltaChar = char - prevChar
		}
		data = append(data,
			protocol.UInteger(line-prevLine),
			protocol.UInteger(deltaChar),
			protocol.UInteger(length),
			typ,
			0)
		prevLine, prevChar = line, char
	}

	for {
		tok := lexer.NextToken()
		if tok.Kind == parser.TokenEOF {
			break
		}
		typ, ok := tokenTypeOf(tok.Kind)
		if !ok {
			continue
		}

		start := positionAt(text, tok.Range.StartByte, tok.Range.StartPoint)
		line, char := int(start.Line), int(start.Character)
		for i, part := range strings.Split(tok.Literal, "\n") {
			if i > 0 {
				line++
				char = 0
			}
			emit(line, char, utf16Len(strings.TrimSuffix(part, "\r")), typ)
		}
	}
	return data
}
