package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quench-lang/quench/parser"
)

func TestComputeEdit(t *testing.T) {
	tests := []struct {
		old, next string
		want      parser.Edit
	}{
		{
			"abc", "abc",
			parser.Edit{StartByte: 3, OldEndByte: 3, NewEndByte: 3,
				StartPoint: parser.Point{Column: 3}, OldEndPoint: parser.Point{Column: 3}, NewEndPoint: parser.Point{Column: 3}},
		},
		{
			"abc", "abXc",
			parser.Edit{StartByte: 2, OldEndByte: 2, NewEndByte: 3,
				StartPoint: parser.Point{Column: 2}, OldEndPoint: parser.Point{Column: 2}, NewEndPoint: parser.Point{Column: 3}},
		},
		{
			"a\nbc", "a\nc",
			parser.Edit{StartByte: 2, OldEndByte: 3, NewEndByte: 2,
				StartPoint: parser.Point{Row: 1}, OldEndPoint: parser.Point{Row: 1, Column: 1}, NewEndPoint: parser.Point{Row: 1}},
		},
		{
			"aaa", "aa",
			parser.Edit{StartByte: 2, OldEndByte: 3, NewEndByte: 2,
				StartPoint: parser.Point{Column: 2}, OldEndPoint: parser.Point{Column: 3}, NewEndPoint: parser.Point{Column: 2}},
		},
		{
			"", "x\ny",
			parser.Edit{StartByte: 0, OldEndByte: 0, NewEndByte: 3,
				NewEndPoint: parser.Point{Row: 1, Column: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.old+"->"+tt.next, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeEdit(tt.old, tt.next))
		})
	}
}

func TestApplyEditText(t *testing.T) {
	text := "x := 1;\ny := 2;"
	edit := parser.Edit{
		StartByte:   13,
		OldEndByte:  14,
		StartPoint:  parser.Point{Row: 1, Column: 5},
		OldEndPoint: parser.Point{Row: 1, Column: 6},
	}

	next, completed := ApplyEdit(text, edit, "[\n1]")
	assert.Equal(t, "x := 1;\ny := [\n1];", next)
	assert.Equal(t, 17, completed.NewEndByte)
	assert.Equal(t, parser.Point{Row: 2, Column: 2}, completed.NewEndPoint)
}
