// Package watch observes a directory for newly arriving mzTab-M files
// and emits their paths once writes settle, so each file can be
// converted as an independent run.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const eventChannelBuffer = 100

// DefaultDebounce is how long a file must stay quiet before it is
// emitted; converters often see several write events per file.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches one directory for mzTab-M inputs.
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]*time.Timer

	events chan string
}

// New creates a watcher for dir. A non-positive debounce falls back to
// DefaultDebounce.
func New(dir string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]*time.Timer),
		events:   make(chan string, eventChannelBuffer),
	}, nil
}

// Events returns the channel of settled input file paths.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Start begins watching. The events channel is closed when ctx is
// cancelled or the underlying watcher closes.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	go w.run(ctx)
	w.logger.Info("watching for mzTab-M files",
		slog.String("dir", w.dir),
		slog.Duration("debounce", w.debounce))
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.events)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !IsInput(event.Name) {
				continue
			}
			w.schedule(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

// schedule (re)arms the debounce timer for a path; the path is emitted
// once no further events arrive within the debounce window.
func (w *Watcher) schedule(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.pendingMu.Lock()
		delete(w.pending, path)
		w.pendingMu.Unlock()

		select {
		case w.events <- path:
		default:
			w.logger.Warn("event channel full, dropping file", slog.String("path", path))
		}
	})
}

// IsInput reports whether a path looks like a convertible mzTab-M
// input. JSON siblings produced by the pre-conversion step and the
// tool's validation reports are not inputs.
func IsInput(path string) bool {
	name := filepath.Base(path)
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".mztab.json") || strings.HasSuffix(lower, ".txt.json") {
		return false
	}
	if strings.HasSuffix(lower, "_validation.txt") {
		return false
	}
	switch filepath.Ext(lower) {
	case ".mztab", ".txt", ".json":
		return true
	default:
		return false
	}
}
