package workspace

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oasnav/oasnav/document"
)

// DefaultDebounce is how long a watched file must stay quiet before reload.
const DefaultDebounce = 100 * time.Millisecond

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the per-file reload delay
// Default: DefaultDebounce
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithParseOptions sets extra options used for every reload.
func WithParseOptions(opts ...document.Option) WatcherOption {
	return func(w *Watcher) {
		w.parseOpts = opts
	}
}

// Watcher reloads store documents when their files change on disk.
//
// It watches parent directories rather than the files themselves so that
// editors that save by renaming a temp file over the original keep working.
// A failed reload leaves the previous document in place.
type Watcher struct {
	store     *Store
	fs        *fsnotify.Watcher
	debounce  time.Duration
	parseOpts []document.Option
	logger    document.Logger

	mu     sync.Mutex
	files  map[string]string // absolute path -> document name
	dirs   map[string]bool
	timers map[string]*time.Timer
	closed bool
}

// NewWatcher creates a watcher that reloads documents into store.
func NewWatcher(store *Store, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("workspace: creating watcher: %w", err)
	}
	w := &Watcher{
		store:    store,
		fs:       fsw,
		debounce: DefaultDebounce,
		logger:   store.logger,
		files:    make(map[string]string),
		dirs:     make(map[string]bool),
		timers:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch loads path into the store under name and starts watching it.
func (w *Watcher) Watch(name, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("workspace: resolving %s: %w", path, err)
	}
	if err := w.store.Load(name, abs, w.parseOpts...); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[abs] = name
	dir := filepath.Dir(abs)
	if w.dirs[dir] {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("workspace: watching %s: %w", dir, err)
	}
	w.dirs[dir] = true
	return nil
}

// Run processes file events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return w.Close()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("workspace: watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	path := filepath.Clean(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	name, ok := w.files[path]
	if !ok || w.closed {
		return
	}
	if t, pending := w.timers[path]; pending {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		closed := w.closed
		w.mu.Unlock()
		if !closed {
			w.reload(name, path)
		}
	})
}

func (w *Watcher) reload(name, path string) {
	if err := w.store.Load(name, path, w.parseOpts...); err != nil {
		w.logger.Warn("workspace: reload failed, keeping previous document", "name", name, "path", path, "error", err)
		return
	}
	w.logger.Info("workspace: reloaded", "name", name, "path", path)
}

// Close stops the watcher and cancels pending reloads.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()
	return w.fs.Close()
}
