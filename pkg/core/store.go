package core

import (
	"fmt"
	"sync"
)

// Store is the in-memory record store and the single source of truth.
// Notes are kept newest-created-first. Every method holds the lock only for
// in-memory work; callers must never perform I/O while holding it.
type Store struct {
	mu    sync.RWMutex
	notes []Note
}

// NewStore creates a store seeded with notes (copied).
func NewStore(notes []Note) *Store {
	return &Store{notes: CloneNotes(notes)}
}

// All returns a deep copy of the current sequence.
func (s *Store) All() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneNotes(s.notes)
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Find returns the note with the given id.
func (s *Store) Find(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.notes[i].Clone(), true
	}
	return Note{}, false
}

// InsertFront prepends n. It fails if the identity is already present.
func (s *Store) InsertFront(n Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(n.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicate, n.ID)
	}

	s.notes = append(s.notes, Note{})
	copy(s.notes[1:], s.notes)
	s.notes[0] = n.Clone()
	return nil
}

// Update applies upd to the note with the given id and stamps it with the
// value returned by stamp. stamp runs under the lock so timestamps follow
// commit order.
func (s *Store) Update(id string, upd NoteUpdate, stamp func() uint64) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	upd.apply(&s.notes[i])
	s.notes[i].UpdatedAt = stamp()
	return s.notes[i].Clone(), nil
}

// Remove deletes the note with the given id.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	return nil
}

// Replace swaps the whole sequence, e.g. after an external edit.
func (s *Store) Replace(notes []Note) {
	fresh := CloneNotes(notes)

	s.mu.Lock()
	s.notes = fresh
	s.mu.Unlock()
}

func (s *Store) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}
