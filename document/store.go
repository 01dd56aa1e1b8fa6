package document

import (
	"fmt"
	"sort"
	"sync"

	"github.com/quench-lang/quench/parser"
)

// Store tracks the parse state of every open document. Distinct documents
// may be updated concurrently.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*State
}

func NewStore() *Store {
	return &Store{docs: make(map[string]*State)}
}

// Open starts tracking id with the given text.
func (s *Store) Open(id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; ok {
		return fmt.Errorf("open %s: %w", id, ErrAlreadyOpen)
	}
	s.docs[id] = Create(text)
	log.Infof("opened %s", id)
	return nil
}

// Update replaces the text of id and reparses it from scratch.
func (s *Store) Update(id, text string) error {
	state, err := s.get("update", id)
	if err != nil {
		return err
	}
	state.ReparseFull(text)
	return nil
}

// Edit applies a single described edit to id and reparses incrementally.
func (s *Store) Edit(id string, edit parser.Edit, text string) error {
	state, err := s.get("edit", id)
	if err != nil {
		return err
	}
	if err := state.ApplyEdit(edit, text); err != nil {
		return fmt.Errorf("edit %s: %w", id, err)
	}
	return nil
}

// Close stops tracking id. Closing twice is an error.
func (s *Store) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("close %s: %w", id, ErrNotOpen)
	}
	delete(s.docs, id)
	log.Infof("closed %s", id)
	return nil
}

// Root borrows the current tree of id. Do not hold on to it across an
// Update, Edit or Close of the same document.
func (s *Store) Root(id string) (*parser.Node, error) {
	state, err := s.get("root", id)
	if err != nil {
		return nil, err
	}
	return state.Root(), nil
}

func (s *Store) DebugString(id string) (string, error) {
	state, err := s.get("dump", id)
	if err != nil {
		return "", err
	}
	return state.DebugString(), nil
}

func (s *Store) Text(id string) (string, error) {
	state, err := s.get("text", id)
	if err != nil {
		return "", err
	}
	return state.Text(), nil
}

// State returns the parse state of id.
func (s *Store) State(id string) (*State, error) {
	return s.get("state", id)
}

// IDs lists the open documents in sorted order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) get(op, id string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", op, id, ErrNotOpen)
	}
	return state, nil
}
