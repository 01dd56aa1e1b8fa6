package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestSemanticTokens(t *testing.T) {
	text := "// hi\nx := \"s\";\nf #k null 12;"

	want := []protocol.UInteger{
		0, 0, 5, tokenComment, 0,
		1, 0, 1, tokenVariable, 0,
		0, 5, 3, tokenString, 0,
		1, 0, 1, tokenVariable, 0,
		0, 2, 2, tokenSymbol, 0,
		0, 3, 4, tokenKeyword, 0,
		0, 5, 2, tokenNumber, 0,
	}
	assert.Equal(t, want, semanticTokens(text))
}

func TestSemanticTokensMultilineString(t *testing.T) {
	text := "s := \"a\nbc\";"

	want := []protocol.UInteger{
		0, 0, 1, tokenVariable, 0,
		0, 5, 2, tokenString, 0,
		1, 0, 3, tokenString, 0,
	}
	assert.Equal(t, want, semanticTokens(text))
}

func TestSemanticTokensEmpty(t *testing.T) {
	assert.Empty(t, semanticTokens(""))
	assert.Empty(t, semanticTokens("  ;  "))
}

func TestTokenLegendMatchesIndexes(t *testing.T) {
	assert.Equal(t, "comment", tokenTypes[tokenComment])
	assert.Equal(t, "string", tokenTypes[tokenString])
	assert.Equal(t, "variable", tokenTypes[tokenVariable])
	assert.Equal(t, "number", tokenTypes[tokenNumber])
	assert.Equal(t, "keyword", tokenTypes[tokenKeyword])
	assert.Equal(t, "enumMember", tokenTypes[tokenSymbol])
}
