// Package watcher watches directory trees for template changes, coalescing
// rapid filesystem events into debounced batches.
package watcher

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler receives one debounced batch of changed template paths.
type Handler func(paths []string)

// Watcher watches directory trees recursively for .weft file changes.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	exclude  []string
	log      *slog.Logger
}

// New creates a watcher. A nil logger discards log output.
func New(debounce time.Duration, exclude []string, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %w", err)
	}
	return &Watcher{fs: fsw, debounce: debounce, exclude: exclude, log: log}, nil
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// AddRecursive watches root and every directory below it, skipping
// excluded directory names.
func (w *Watcher) AddRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.excluded(d.Name()) && path != root {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.log.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) excluded(name string) bool {
	for _, e := range w.exclude {
		if name == e {
			return true
		}
	}
	return false
}

// Run delivers debounced batches of changed .weft paths to handler until
// the context is done. Directories created while running join the watch
// set.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	var (
		pending = make(map[string]struct{})
		timer   *time.Timer
		fire    <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				// A new directory needs its own watch; AddRecursive also
				// picks up anything created inside it before the watch
				// was in place.
				if !w.excluded(filepath.Base(ev.Name)) && isDir(ev.Name) {
					if err := w.AddRecursive(ev.Name); err != nil {
						w.log.Warn("watching new directory", "path", ev.Name, "error", err)
					}
					continue
				}
			}
			if !isTemplate(ev.Name) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) ||
				ev.Op.Has(fsnotify.Rename) || ev.Op.Has(fsnotify.Remove) {
				pending[ev.Name] = struct{}{}
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		case <-fire:
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			clear(pending)
			fire = nil
			w.log.Debug("templates changed", "count", len(batch))
			handler(batch)
		}
	}
}

func isTemplate(path string) bool {
	return strings.HasSuffix(path, ".weft")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
