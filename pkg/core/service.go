package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// TrayNoteTitle is the title given to notes created from the tray menu.
const TrayNoteTitle = "New memo"

// Config wires a Service to its collaborators.
type Config struct {
	Storage     Storage
	Windows     WindowManager // optional
	Logger      *slog.Logger  // optional
	Debounce    time.Duration // zero means DefaultDebounce
	EventBuffer int           // zero means DefaultEventBuffer
	Clock       func() time.Time
}

// Service handles the note operations exposed to the UI layer.
//
// Mutations take the store lock only for the in-memory change, then ask the
// flusher to persist and publish an event. Create and Update are persisted
// within one debounce window; Delete, NewFromTray and Quit write before
// returning.
type Service struct {
	store   *Store
	flusher *Flusher
	broker  *Broker
	storage Storage
	windows WindowManager
	logger  *slog.Logger
	now     func() time.Time

	eventBufferSize int
	lastStamp       atomic.Uint64

	// lifeMu is read-held by every mutation from its closed check until its
	// flush is armed or written; Quit takes it exclusively to close.
	lifeMu sync.RWMutex
	closed atomic.Bool
}

// NewService loads the persisted notes and returns a ready Service.
// A missing or undecodable file starts an empty store.
func NewService(cfg Config) (*Service, error) {
	if cfg.Storage == nil {
		return nil, errors.New("service requires a storage")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger()
	}
	windows := cfg.Windows
	if windows == nil {
		windows = noopWindows{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	buffer := cfg.EventBuffer
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}

	notes, err := cfg.Storage.Load()
	if err != nil {
		logger.Warn("could not load memos, starting empty", "error", err)
		notes = nil
	}

	store := NewStore(notes)
	s := &Service{
		store:           store,
		flusher:         NewFlusher(store, cfg.Storage, cfg.Debounce, logger),
		broker:          NewBroker(buffer, logger),
		storage:         cfg.Storage,
		windows:         windows,
		logger:          logger,
		now:             clock,
		eventBufferSize: buffer,
	}
	s.advanceStamp(notes)

	logger.Debug("memo service ready", "memos", len(notes))
	return s, nil
}

// List returns every note, newest-created first.
func (s *Service) List(ctx context.Context) []Note {
	return s.store.All()
}

// Get returns the note with the given id.
func (s *Service) Get(ctx context.Context, id string) (Note, bool) {
	return s.store.Find(id)
}

// Create stores n at the front of the list and schedules a deferred flush.
// The timestamp supplied by the caller is ignored.
func (s *Service) Create(ctx context.Context, n Note) (Note, error) {
	return s.create(n, false)
}

// Update applies the supplied fields of upd to the note and schedules a
// deferred flush.
func (s *Service) Update(ctx context.Context, id string, upd NoteUpdate) (Note, error) {
	s.lifeMu.RLock()
	defer s.lifeMu.RUnlock()
	if s.closed.Load() {
		return Note{}, ErrClosed
	}

	updated, err := s.store.Update(id, upd, s.stamp)
	if err != nil {
		return Note{}, err
	}

	s.flusher.Schedule()
	s.broker.Publish(Event{Type: EventUpdated, Memo: updated.Clone()})
	return updated, nil
}

// Delete removes the note and writes the file before returning.
// A write failure is logged; the deletion itself still succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.lifeMu.RLock()
	defer s.lifeMu.RUnlock()
	if s.closed.Load() {
		return ErrClosed
	}

	if err := s.store.Remove(id); err != nil {
		return err
	}

	if err := s.flusher.FlushNow(); err != nil {
		s.logger.Error("flush after delete failed", "id", id, "error", err)
	}

	s.broker.Publish(Event{Type: EventDeleted, ID: id})
	return nil
}

// NewFromTray creates a blank note, writes it immediately and opens its
// window.
func (s *Service) NewFromTray(ctx context.Context) (Note, error) {
	n, err := s.create(Note{
		ID:    uuid.NewString(),
		Title: TrayNoteTitle,
		Color: DefaultColor,
	}, true)
	if err != nil {
		return Note{}, err
	}

	if err := s.windows.OpenNote(n.ID); err != nil {
		s.logger.Error("failed to open memo window", "id", n.ID, "error", err)
	}
	return n, nil
}

// Reload replaces the whole store, typically after the file was edited by
// another program, and publishes a Reloaded event. Nothing is written.
func (s *Service) Reload(ctx context.Context, notes []Note) error {
	s.lifeMu.RLock()
	defer s.lifeMu.RUnlock()
	if s.closed.Load() {
		return ErrClosed
	}

	s.store.Replace(notes)
	s.advanceStamp(notes)
	s.broker.Publish(Event{Type: EventReloaded, Memos: CloneNotes(notes)})
	return nil
}

// Quit writes the current state, waits for armed deferred flushes and
// closes every subscription. Mutations already in progress complete first
// and are part of the final write; later ones fail with ErrClosed.
func (s *Service) Quit(ctx context.Context) error {
	s.lifeMu.Lock()
	if s.closed.Load() {
		s.lifeMu.Unlock()
		return nil
	}
	s.closed.Store(true)
	s.lifeMu.Unlock()

	err := s.flusher.FlushNow()
	if err != nil {
		s.logger.Error("final flush failed", "error", err)
	}
	if werr := s.flusher.Wait(ctx); werr != nil {
		s.logger.Warn("pending flushes still running at quit", "error", werr)
	}
	s.broker.Close()
	return err
}

// Subscribe streams change events for notes whose ID matches pattern.
func (s *Service) Subscribe(ctx context.Context, pattern string) (<-chan Event, error) {
	return s.broker.Subscribe(ctx, pattern)
}

// OpenWindow opens (or refocuses) the window of a note.
func (s *Service) OpenWindow(ctx context.Context, id string) error {
	return s.windows.OpenNote(id)
}

// CloseWindow closes the window of a note if it exists.
func (s *Service) CloseWindow(ctx context.Context, id string) error {
	return s.windows.CloseNote(id)
}

// ShowMain shows the main window.
func (s *Service) ShowMain(ctx context.Context) error {
	return s.windows.ShowMain()
}

// Flusher exposes the flush scheduler, mainly for shutdown and tests.
func (s *Service) Flusher() *Flusher {
	return s.flusher
}

func (s *Service) create(n Note, immediate bool) (Note, error) {
	s.lifeMu.RLock()
	defer s.lifeMu.RUnlock()
	if s.closed.Load() {
		return Note{}, ErrClosed
	}
	if n.ID == "" {
		return Note{}, ErrInvalidNote
	}

	n = n.Clone()
	n.UpdatedAt = s.stamp()
	if err := s.store.InsertFront(n); err != nil {
		return Note{}, err
	}

	if immediate {
		if err := s.flusher.FlushNow(); err != nil {
			s.logger.Error("flush after create failed", "id", n.ID, "error", err)
		}
	} else {
		s.flusher.Schedule()
	}

	s.broker.Publish(Event{Type: EventCreated, Memo: n.Clone()})
	return n, nil
}

// stamp returns the current time in ms, strictly greater than any stamp
// issued before.
func (s *Service) stamp() uint64 {
	now := uint64(s.now().UnixMilli())
	for {
		last := s.lastStamp.Load()
		next := now
		if next <= last {
			next = last + 1
		}
		if s.lastStamp.CompareAndSwap(last, next) {
			return next
		}
	}
}

func (s *Service) advanceStamp(notes []Note) {
	for _, n := range notes {
		for {
			last := s.lastStamp.Load()
			if n.UpdatedAt <= last || s.lastStamp.CompareAndSwap(last, n.UpdatedAt) {
				break
			}
		}
	}
}

func (s *Service) String() string {
	return fmt.Sprintf("memo.Service(%d memos)", s.store.Len())
}

type noopWindows struct{}

func (noopWindows) OpenNote(string) error  { return nil }
func (noopWindows) CloseNote(string) error { return nil }
func (noopWindows) ShowMain() error        { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
