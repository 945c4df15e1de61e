package watcher

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/phuslu/log"
)

// Event represents a change to the watched file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher monitors a single log file using OS-level notifications. When the
// file is removed or renamed (log rotation) the watcher polls for it to
// reappear and resumes, announcing the new file with a synthetic Create.
type Watcher struct {
	fsw    *fsnotify.Watcher
	Events chan Event
	path   string
	logger *log.Logger
}

// New creates a Watcher for the given file path.
func New(path string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = &log.DefaultLogger
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(abs); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		fsw:    fsw,
		Events: make(chan Event, 256),
		path:   abs,
		logger: logger,
	}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins listening for file events. It blocks until the context is
// cancelled or the watched file disappears for good.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.Events)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			switch {
			case ev.Op&fsnotify.Write != 0, ev.Op&fsnotify.Create != 0:
				w.Events <- Event{Path: ev.Name, Op: ev.Op}

			case ev.Op&fsnotify.Remove != 0, ev.Op&fsnotify.Rename != 0:
				w.Events <- Event{Path: ev.Name, Op: ev.Op}
				if !w.reconnect(ctx) {
					return
				}
				w.Events <- Event{Path: w.path, Op: fsnotify.Create}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

// reconnect polls for the file to reappear after rotation (up to 5 retries).
func (w *Watcher) reconnect(ctx context.Context) bool {
	for i := 0; i < 5; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(1 * time.Second):
		}
		if _, err := os.Stat(w.path); err != nil {
			continue
		}
		if err := w.fsw.Add(w.path); err != nil {
			w.logger.Warn().Str("path", w.path).Err(err).Msg("cannot rewatch file")
			return false
		}
		w.logger.Info().Str("path", w.path).Msg("reconnected to rotated file")
		return true
	}
	w.logger.Warn().Str("path", w.path).Msg("gave up reconnecting after 5 retries")
	return false
}
