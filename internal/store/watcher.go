package store

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the store when the data file is edited on disk (the file
// is plain JSON and meant to be hand-editable). Events caused by our own
// persists reload too; re-reading what we just wrote is a cheap no-op, and
// reloading unconditionally can never miss an external edit.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	log     *slog.Logger
	done    chan struct{}
}

// NewWatcher creates a watcher for the store's data file. The containing
// directory is watched so recreate-and-rename editors are caught too.
func NewWatcher(store *Store, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(store.DataFile())
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		store:   store,
		watcher: fsw,
		log:     log,
		done:    make(chan struct{}),
	}, nil
}

// Start runs the watch loop in a background goroutine until Close.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	target := filepath.Clean(w.store.DataFile())

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if err := w.store.Reload(); err != nil {
				w.log.Warn("failed to reload data file after change", "err", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", "err", err)
		}
	}
}

// Close stops the watch loop.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
