package document

import "github.com/quench-lang/quench/parser"

// ComputeEdit describes the change from old to next as a single edit
// covering everything between their common prefix and common suffix.
func ComputeEdit(old, next string) parser.Edit {
	prefix := 0
	for prefix < len(old) && prefix < len(next) && old[prefix] == next[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(next)-prefix &&
		old[len(old)-1-suffix] == next[len(next)-1-suffix] {
		suffix++
	}

	oldText, nextText := []byte(old), []byte(next)
	return parser.Edit{
		StartByte:   prefix,
		OldEndByte:  len(old) - suffix,
		NewEndByte:  len(next) - suffix,
		StartPoint:  parser.PointAt(oldText, prefix),
		OldEndPoint: parser.PointAt(oldText, len(old)-suffix),
		NewEndPoint: parser.PointAt(nextText, len(next)-suffix),
	}
}

// ApplyEdit returns text with the bytes between edit.StartByte and
// edit.OldEndByte replaced by replacement, together with edit completed
// with its new end.
func ApplyEdit(text string, edit parser.Edit, replacement string) (string, parser.Edit) {
	next := text[:edit.StartByte] + replacement + text[edit.OldEndByte:]
	edit.NewEndByte = edit.StartByte + len(replacement)
	edit.NewEndPoint = parser.PointAt([]byte(next), edit.NewEndByte)
	return next, edit
}
