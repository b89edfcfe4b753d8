// Package watch delivers debounced change notifications for a single file.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the write bursts editors produce when saving
// (write temp file, rename over, chmod).
const DefaultDebounce = 200 * time.Millisecond

// Watcher subscribes to change notifications for one file and forwards them
// debounced: each raw event replaces the previously scheduled delivery, so at
// most one notification fires per burst regardless of burst size.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	events   chan struct{}
	done     chan struct{}

	mu    sync.Mutex
	timer *time.Timer

	closeOnce sync.Once
}

// New starts watching path. The watch is registered on the containing
// directory: editors that save by rename would otherwise silently detach a
// watch registered on the file itself.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: debounce,
		events:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers one value per debounce window in which the file changed.
// The channel is never closed; consumers must also select on Done.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Done is closed when the watcher shuts down.
func (w *Watcher) Done() <-chan struct{} { return w.done }

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !sameFile(ev.Name, w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.schedule()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are not surfaced: the previous render stays up
			// and the next successful event resumes the cycle.
		case <-w.done:
			return
		}
	}
}

// schedule replaces any pending delivery with a fresh one. The timer is a
// single slot: only the most recently scheduled delivery can fire.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.events <- struct{}{}:
		case <-w.done:
		}
	})
}

// Close cancels any pending delivery and releases the underlying descriptor.
// Safe to call more than once; every exit path must go through here.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.fsw.Close()
	})
	return err
}

func sameFile(a, b string) bool {
	aa, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	return aa == b
}
