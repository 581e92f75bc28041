package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/memo/pkg/core"
)

// settleDelay groups the burst of events an editor produces for one save.
const settleDelay = 50 * time.Millisecond

// watchWorker turns external edits of the data file into reloads.
type watchWorker struct {
	storage  *Storage
	onChange func([]core.Note)
	watcher  *fsnotify.Watcher
	target   string

	mu    sync.Mutex
	timer *time.Timer
}

func newWatchWorker(s *Storage, onChange func([]core.Note)) *watchWorker {
	return &watchWorker{
		storage:  s,
		onChange: onChange,
		target:   filepath.Clean(s.Path),
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: atomic saves replace the file, which drops a
	// watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(w.target)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.target), err)
	}

	w.watcher = watcher
	w.storage.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.reportError(fmt.Errorf("watcher panic: %w", err))
	}))
	return nil
}

func (w *watchWorker) run(ctx context.Context) error {
	defer func() {
		if recovered := recover(); recovered != nil {
			logger := w.storage.config.Logger
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", recovered, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", recovered)
			}
		}
	}()
	defer w.storage.setWatcherActive(false)
	defer w.watcher.Close()
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if w.relevant(event) {
				w.schedule(ctx)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.reportError(err)
		}
	}
}

func (w *watchWorker) relevant(event fsnotify.Event) bool {
	if isTempFile(event.Name) || filepath.Clean(event.Name) != w.target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// schedule (re)arms the settle timer.
func (w *watchWorker) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(settleDelay, func() {
		if ctx.Err() == nil {
			w.check()
		}
	})
}

func (w *watchWorker) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// check reads the file and reports it unless it is our own write.
func (w *watchWorker) check() {
	logger := w.storage.config.Logger

	data, err := os.ReadFile(w.target)
	if err != nil {
		if !os.IsNotExist(err) {
			w.reportError(err)
		}
		return
	}

	if w.storage.isOwnContent(data) {
		logger.Debug("ignoring own write", "path", w.target)
		return
	}

	notes, err := w.storage.decode(data)
	if err != nil {
		// Editors may leave the file half written; the next event retries.
		logger.Warn("external edit could not be decoded", "path", w.target, "error", err)
		return
	}

	w.storage.rememberContent(data)
	logger.Info("data file changed externally, reloading", "path", w.target, "memos", len(notes))
	w.onChange(notes)
}

func (w *watchWorker) reportError(err error) {
	w.storage.config.Logger.Error("fsnotify error", "error", err)
	if w.storage.config.ErrorHandler != nil {
		w.storage.config.ErrorHandler(err)
	}
}
