package lsp

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/quench-lang/quench/parser"
)

// utf16Len counts the UTF-16 code units needed for s.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// offsetAt converts an editor position to a byte offset in text. Positions
// past the end of a line clamp to the line end.
func offsetAt(text string, pos protocol.Position) int {
	i := 0
	for line := 0; line < int(pos.Line); line++ {
		nl := strings.IndexByte(text[i:], '\n')
		if nl < 0 {
			return len(text)
		}
		i += nl + 1
	}
	units := 0
	for j, r := range text[i:] {
		if r == '\n' || units >= int(pos.Character) {
			return i + j
		}
		if l := utf16.RuneLen(r); l > 0 {
			units += l
		} else {
			units++
		}
	}
	return len(text)
}

// positionAt converts a byte offset whose row and byte column are p into an
// editor position.
func positionAt(text string, offset int, p parser.Point) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	lineStart := offset - p.Column
	if lineStart < 0 {
		lineStart = 0
	}
	return protocol.Position{
		Line:      protocol.UInteger(p.Row),
		Character: protocol.UInteger(utf16Len(text[lineStart:offset])),
	}
}

func rangeOf(text string, r parser.Range) protocol.Range {
	return protocol.Range{
		Start: positionAt(text, r.StartByte, r.StartPoint),
		End:   positionAt(text, r.EndByte, r.EndPoint),
	}
}
