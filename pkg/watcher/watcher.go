package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls OnChange (debounced) whenever a single file is written,
// created or replaced. The parent directory is watched so editors that
// save through rename are still seen.
type Watcher struct {
	path      string
	debouncer *Debouncer
	onChange  func()
	fsw       *fsnotify.Watcher

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

// New creates a watcher for path. delay is the debounce window.
func New(path string, delay time.Duration, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:      abs,
		debouncer: NewDebouncer(delay),
		onChange:  onChange,
		fsw:       fsw,
		done:      make(chan struct{}),
	}, nil
}

// Start runs the event loop until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()

	go w.loop(ctx)
}

// Close stops watching and drops any pending notification
func (w *Watcher) Close() error {
	w.debouncer.Cancel()
	err := w.fsw.Close()
	<-w.waitChan()
	return err
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) waitChan() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return w.done
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.debouncer.Cancel()
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.debouncer.Trigger(w.onChange)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: config watcher error: %v", err)
		}
	}
}
