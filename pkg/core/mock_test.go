package core_test

import (
	"errors"
	"sync"

	"github.com/aretw0/memo/pkg/core"
)

// MockStorage implements core.Storage in memory.
// It records every snapshot it is asked to write.
type MockStorage struct {
	mu        sync.Mutex
	initial   []core.Note
	loadErr   error
	writeErr  error
	snapshots [][]core.Note
}

func NewMockStorage(initial ...core.Note) *MockStorage {
	return &MockStorage{initial: initial}
}

func (m *MockStorage) Load() ([]core.Note, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return core.CloneNotes(m.initial), nil
}

func (m *MockStorage) Write(snapshot []core.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}
	m.snapshots = append(m.snapshots, core.CloneNotes(snapshot))
	return nil
}

func (m *MockStorage) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

func (m *MockStorage) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}

// Last returns the most recent snapshot written.
func (m *MockStorage) Last() ([]core.Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.snapshots) == 0 {
		return nil, false
	}
	return m.snapshots[len(m.snapshots)-1], true
}

var errDiskFull = errors.New("disk full")

// MockWindows records window requests.
type MockWindows struct {
	mu     sync.Mutex
	opened []string
	closed []string
	main   int
}

func (w *MockWindows) OpenNote(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opened = append(w.opened, id)
	return nil
}

func (w *MockWindows) CloseNote(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = append(w.closed, id)
	return nil
}

func (w *MockWindows) ShowMain() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.main++
	return nil
}

func ptr[T any](v T) *T { return &v }
