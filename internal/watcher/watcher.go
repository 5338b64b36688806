// Package watcher reruns a callback when an input file changes.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 150 * time.Millisecond

// Event describes the change that triggered a callback.
type Event struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Options controls watcher behavior.
type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher watches a single file. The parent directory is watched so editors
// that save by renaming a temporary file are still seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
}

// New starts watching path. Events are delivered once Run is called.
func New(path string, options Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	debounce := options.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		path:     abs,
		watcher:  fsw,
		debounce: debounce,
		logger:   logger.With("component", "watcher", "path", abs),
	}, nil
}

// Run delivers debounced change events to onChange until ctx is cancelled.
// onChange runs on the calling goroutine, one event at a time.
func (w *Watcher) Run(ctx context.Context, onChange func(Event)) error {
	defer func() { _ = w.watcher.Close() }()

	fire := make(chan Event, 1)
	debouncer := newDebouncer(w.debounce)
	defer debouncer.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file changed", "op", event.Op.String())
			debouncer.schedule(Event{Path: w.path, Op: event.Op, Timestamp: time.Now().UTC()}, fire)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case event := <-fire:
			onChange(event)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
