package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps documents in a Store in sync with files on disk. Every
// change is turned into a single edit and reparsed incrementally.
type Watcher struct {
	store    *Store
	fs       *fsnotify.Watcher
	stopCh   chan struct{}
	done     sync.WaitGroup
	onChange func(path string, err error)

	mu    sync.Mutex
	files map[string]bool
}

// NewWatcher creates a watcher feeding store. onChange is called after every
// reload with the document path and the reload error, if any.
func NewWatcher(store *Store, onChange func(path string, err error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		store:    store,
		fs:       fw,
		stopCh:   make(chan struct{}),
		onChange: onChange,
		files:    make(map[string]bool),
	}, nil
}

// Add opens path in the store and watches it. The containing directory is
// watched so that editors which save by renaming are still noticed.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("read %s: %w", abs, err)
	}
	if err := w.store.Open(abs, string(content)); err != nil {
		return err
	}
	if err := w.fs.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", abs, err)
	}

	w.mu.Lock()
	w.files[abs] = true
	w.mu.Unlock()
	return nil
}

func (w *Watcher) Start() {
	w.done.Add(1)
	go w.run()
}

// Stop ends watching and waits for the event loop to exit.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.fs.Close()
	w.done.Wait()
}

func (w *Watcher) run() {
	defer w.done.Done()

	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !w.tracked(event.Name) {
				continue
			}
			err := w.reload(event.Name)
			if w.onChange != nil {
				w.onChange(event.Name, err)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Errorf("watch: %s", err.Error())
		}
	}
}

func (w *Watcher) tracked(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(path)]
}

func (w *Watcher) reload(path string) error {
	path = filepath.Clean(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	old, err := w.store.Text(path)
	if err != nil {
		return err
	}
	next := string(content)
	if old == next {
		return nil
	}
	return w.store.Edit(path, ComputeEdit(old, next), next)
}
