package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/lifecycle"
)

// DefaultDebounce is the quiescence window of deferred flushes.
const DefaultDebounce = 500 * time.Millisecond

// FlushStats counts flusher activity since creation.
type FlushStats struct {
	Scheduled int64 `json:"scheduled"` // deferred flushes armed
	Coalesced int64 `json:"coalesced"` // Schedule calls absorbed by an armed flush
	Writes    int64 `json:"writes"`
	Failures  int64 `json:"failures"`
}

// Flusher coalesces bursts of mutations into one write per debounce window.
//
// A single pending flag admits at most one sleeping deferred flush. The
// deferred flush reads the store when it fires, not when it is armed, so the
// write always carries the latest state. All writes, deferred or immediate,
// are serialized by writeMu and take their snapshot while holding it: the
// last write to land is therefore the newest snapshot.
type Flusher struct {
	store    *Store
	writer   Writer
	debounce time.Duration
	logger   *slog.Logger

	pending atomic.Bool
	writeMu sync.Mutex
	wg      sync.WaitGroup

	scheduled atomic.Int64
	coalesced atomic.Int64
	writes    atomic.Int64
	failures  atomic.Int64
}

// NewFlusher creates a flusher persisting store through w.
// A non-positive debounce falls back to DefaultDebounce.
func NewFlusher(store *Store, w Writer, debounce time.Duration, logger *slog.Logger) *Flusher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Flusher{
		store:    store,
		writer:   w,
		debounce: debounce,
		logger:   logger,
	}
}

// Schedule arms a deferred flush unless one is already pending.
// It reports whether a new flush was armed. It never blocks.
func (f *Flusher) Schedule() bool {
	if !f.pending.CompareAndSwap(false, true) {
		f.coalesced.Add(1)
		return false
	}

	f.scheduled.Add(1)
	f.wg.Add(1)

	// The deferred flush is detached from the caller and cannot be
	// cancelled: it always sleeps the full window, then writes.
	lifecycle.Go(context.Background(), func(ctx context.Context) error {
		defer f.wg.Done()

		time.Sleep(f.debounce)

		// Reopen the gate before the snapshot: a mutation committed after
		// this point arms a new flush instead of being absorbed by one
		// whose snapshot is already taken.
		if err := f.flush(func() { f.pending.Store(false) }); err != nil {
			f.logger.Error("deferred flush failed", "error", err)
		} else {
			f.logger.Debug("deferred flush written")
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		f.logger.Error("deferred flush panic", "error", err)
	}))

	return true
}

// FlushNow writes the current snapshot synchronously and clears the
// pending flag.
func (f *Flusher) FlushNow() error {
	err := f.flush(nil)
	f.pending.Store(false)
	return err
}

// Pending reports whether a deferred flush is armed.
func (f *Flusher) Pending() bool {
	return f.pending.Load()
}

// Wait blocks until every armed deferred flush has finished or ctx is done.
func (f *Flusher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Debounce returns the configured window.
func (f *Flusher) Debounce() time.Duration {
	return f.debounce
}

// Stats returns a snapshot of the counters.
func (f *Flusher) Stats() FlushStats {
	return FlushStats{
		Scheduled: f.scheduled.Load(),
		Coalesced: f.coalesced.Load(),
		Writes:    f.writes.Load(),
		Failures:  f.failures.Load(),
	}
}

func (f *Flusher) flush(beforeSnapshot func()) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	if beforeSnapshot != nil {
		beforeSnapshot()
	}
	snapshot := f.store.All()
	if err := f.writer.Write(snapshot); err != nil {
		f.failures.Add(1)
		return fmt.Errorf("flush %d memos: %w", len(snapshot), err)
	}
	f.writes.Add(1)
	return nil
}
