package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/quench-lang/quench/parser"
)

func TestOffsetAt(t *testing.T) {
	text := "ab\nxé𝄞y\n"
	tests := []struct {
		line, char int
		want       int
	}{
		{0, 0, 0},
		{0, 2, 2},
		{0, 10, 2},
		{1, 0, 3},
		{1, 1, 4},
		{1, 2, 6},
		{1, 4, 10},
		{1, 5, 11},
		{2, 0, 12},
		{7, 0, 12},
	}
	for _, tt := range tests {
		got := offsetAt(text, protocol.Position{Line: protocol.UInteger(tt.line), Character: protocol.UInteger(tt.char)})
		assert.Equal(t, tt.want, got, "%d:%d", tt.line, tt.char)
	}
}

func TestPositionAt(t *testing.T) {
	text := "ab\nxé𝄞y\n"
	raw := []byte(text)
	for _, offset := range []int{0, 2, 3, 4, 6, 10, 11, 12} {
		pos := positionAt(text, offset, parser.PointAt(raw, offset))
		assert.Equal(t, offset, offsetAt(text, pos), "offset %d -> %v", offset, pos)
	}
	assert.Equal(t, protocol.Position{Line: 1, Character: 4},
		positionAt(text, 10, parser.PointAt(raw, 10)))
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 0, utf16Len(""))
	assert.Equal(t, 3, utf16Len("abc"))
	assert.Equal(t, 1, utf16Len("é"))
	assert.Equal(t, 2, utf16Len("𝄞"))
}
