package document

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.qn")
	require.NoError(t, os.WriteFile(path, []byte("x := 1;\n"), 0o644))

	store := NewStore()
	changed := make(chan error, 16)
	w, err := NewWatcher(store, func(_ string, err error) { changed <- err })
	require.NoError(t, err)
	require.NoError(t, w.Add(path))
	w.Start()
	defer w.Stop()

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	text, err := store.Text(abs)
	require.NoError(t, err)
	assert.Equal(t, "x := 1;\n", text)

	require.NoError(t, os.WriteFile(path, []byte("x := 1;\ny := 2;\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-changed:
			require.NoError(t, err)
			if text, _ := store.Text(abs); text == "x := 1;\ny := 2;\n" {
				root, err := store.Root(abs)
				require.NoError(t, err)
				assert.Len(t, root.Children, 2)
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatcherAddMissingFile(t *testing.T) {
	w, err := NewWatcher(NewStore(), nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "missing.qn")))
}

func TestWatcherReloadIgnoresUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.qn")
	require.NoError(t, os.WriteFile(path, []byte("x := 1;"), 0o644))

	store := NewStore()
	w, err := NewWatcher(store, nil)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Add(path))

	abs, _ := filepath.Abs(path)
	require.NoError(t, w.reload(abs))
	state, err := store.State(abs)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Reused())
}
