package fs

import (
	"sort"
	"time"

	"github.com/aretw0/introspection"
)

// StorageState exposes internal state for observability.
type StorageState struct {
	Path          string     `json:"path"`
	Format        string     `json:"format"`
	Serializers   []string   `json:"serializers"`
	Writes        int64      `json:"writes"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
	WatcherActive bool       `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	format := s.format()

	s.mu.Lock()
	defer s.mu.Unlock()

	serializers := make([]string, 0, len(s.serializers))
	for ext := range s.serializers {
		serializers = append(serializers, ext)
	}
	sort.Strings(serializers)

	return StorageState{
		Path:          s.Path,
		Format:        format,
		Serializers:   serializers,
		Writes:        s.writes,
		LastWrite:     s.lastWrite,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "file-storage"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)

func (s *Storage) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
