// Package document keeps syntax trees in step with the text of open
// documents.
//
// A State owns the text and tree of one document and updates both on every
// edit, reusing unaffected parts of the previous tree. A Store maps
// document identifiers to States and manages their open/update/close
// lifecycle.
package document

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/quench-lang/quench/parser"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("quench.document")

// State is the parse state of a single document. Its methods serialise
// access, but callers are still expected to deliver edits in order.
type State struct {
	mu     sync.Mutex
	text   []byte
	tree   *parser.Node
	reused int
}

// Create parses text from scratch.
func Create(text string) *State {
	s := &State{}
	s.ReparseFull(text)
	return s
}

// ApplyEdit updates the document to newText, which must be the current
// text with exactly edit applied. The previous tree is shifted in a scratch
// copy and used as a reuse hint; only the finished tree is published.
func (s *State) ApplyEdit(edit parser.Edit, newText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := []byte(newText)
	if err := checkEdit(s.text, next, edit); err != nil {
		return err
	}

	edited := s.tree.Edit(edit)
	p := parser.ParseSourceFile(bytes.NewReader(next), parser.WithPrevious(edited))
	tree := p.Finish()
	if tree == nil {
		return fmt.Errorf("reparse after %s: read failed", edit)
	}

	log.Debugf("%s: reused %d of %d top-level statements", edit, p.Reused(), len(tree.Children))
	s.text = next
	s.tree = tree
	s.reused = p.Reused()
	return nil
}

// ReparseFull replaces the document text and parses it without hints.
func (s *State) ReparseFull(newText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = []byte(newText)
	s.tree = parser.Parse(s.text)
	s.reused = 0
}

// DebugString renders the current tree as a deterministic indented dump.
func (s *State) DebugString() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.String()
}

// Root returns the current tree. The tree itself is never mutated, but it
// stops describing the document after the next edit.
func (s *State) Root() *parser.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

func (s *State) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.text)
}

// Reused reports how many top-level statements the last reparse carried
// over from the previous tree.
func (s *State) Reused() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reused
}

func checkEdit(old, next []byte, e parser.Edit) error {
	switch {
	case e.StartByte < 0 || e.StartByte > e.OldEndByte || e.StartByte > e.NewEndByte:
		return fmt.Errorf("%w: %s: start after end", ErrInvalidEdit, e)
	case e.OldEndByte > len(old):
		return fmt.Errorf("%w: %s: old end past %d bytes", ErrInvalidEdit, e, len(old))
	case e.NewEndByte > len(next):
		return fmt.Errorf("%w: %s: new end past %d bytes", ErrInvalidEdit, e, len(next))
	case len(old)-e.OldEndByte != len(next)-e.NewEndByte:
		return fmt.Errorf("%w: %s: text after the edit changed length", ErrInvalidEdit, e)
	case !bytes.Equal(old[:e.StartByte], next[:e.StartByte]):
		return fmt.Errorf("%w: %s: text before the edit changed", ErrInvalidEdit, e)
	case !bytes.Equal(old[e.OldEndByte:], next[e.NewEndByte:]):
		return fmt.Errorf("%w: %s: text after the edit changed", ErrInvalidEdit, e)
	}

	if got := parser.PointAt(old, e.StartByte); got != e.StartPoint {
		return fmt.Errorf("%w: %s: start is at %s", ErrInvalidEdit, e, got)
	}
	if got := parser.PointAt(old, e.OldEndByte); got != e.OldEndPoint {
		return fmt.Errorf("%w: %s: old end is at %s", ErrInvalidEdit, e, got)
	}
	if got := parser.PointAt(next, e.NewEndByte); got != e.NewEndPoint {
		return fmt.Errorf("%w: %s: new end is at %s", ErrInvalidEdit, e, got)
	}
	return nil
}
