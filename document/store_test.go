package document

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Open("a.qn", "x := 1;"))
	err := s.Open("a.qn", "x := 2;")
	assert.True(t, errors.Is(err, ErrAlreadyOpen), "got %v", err)

	text, err := s.Text("a.qn")
	require.NoError(t, err)
	assert.Equal(t, "x := 1;", text)

	require.NoError(t, s.Update("a.qn", "y := 2;"))
	dump, err := s.DebugString("a.qn")
	require.NoError(t, err)
	assert.Contains(t, dump, `"y"`)

	old, _ := s.Text("a.qn")
	next := "y := 3;"
	require.NoError(t, s.Edit("a.qn", ComputeEdit(old, next), next))
	root, err := s.Root("a.qn")
	require.NoError(t, err)
	assert.Equal(t, "3", root.Children[0].Children[1].Text)

	require.NoError(t, s.Close("a.qn"))
	err = s.Close("a.qn")
	assert.True(t, errors.Is(err, ErrNotOpen), "got %v", err)
}

func TestStoreNotOpen(t *testing.T) {
	s := NewStore()

	ops := map[string]func() error{
		"update": func() error { return s.Update("missing", "") },
		"edit":   func() error { return s.Edit("missing", ComputeEdit("", "x"), "x") },
		"close":  func() error { return s.Close("missing") },
		"root":   func() error { _, err := s.Root("missing"); return err },
		"dump":   func() error { _, err := s.DebugString("missing"); return err },
		"text":   func() error { _, err := s.Text("missing"); return err },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.True(t, errors.Is(op(), ErrNotOpen))
		})
	}
}

func TestStoreEditInvalid(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Open("a", "x := 1;"))

	err := s.Edit("a", ComputeEdit("x := 1;", "x := 12;"), "x := 13;")
	assert.True(t, errors.Is(err, ErrInvalidEdit), "got %v", err)

	text, _ := s.Text("a")
	assert.Equal(t, "x := 1;", text)
}

func TestStoreReopenAfterClose(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Open("a", "x := 1;"))
	require.NoError(t, s.Close("a"))
	require.NoError(t, s.Open("a", "y := 2;"))

	text, err := s.Text("a")
	require.NoError(t, err)
	assert.Equal(t, "y := 2;", text)
}

func TestStoreIDs(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Open("b", ""))
	require.NoError(t, s.Open("a", ""))
	assert.Equal(t, []string{"a", "b"}, s.IDs())
}

func TestStoreConcurrentDocuments(t *testing.T) {
	s := NewStore()
	const docs = 8

	var wg sync.WaitGroup
	for i := 0; i < docs; i++ {
		id := fmt.Sprintf("doc%d", i)
		require.NoError(t, s.Open(id, ""))
		wg.Add(1)
		go func() {
			defer wg.Done()
			text := ""
			for j := 0; j < 20; j++ {
				next := text + fmt.Sprintf("v%d := %d;\n", j, j)
				if err := s.Edit(id, ComputeEdit(text, next), next); err != nil {
					t.Error(err)
					return
				}
				text = next
			}
		}()
	}
	wg.Wait()

	for _, id := range s.IDs() {
		root, err := s.Root(id)
		require.NoError(t, err)
		assert.Len(t, root.Children, 20)
		assert.False(t, root.HasError())
	}
}
