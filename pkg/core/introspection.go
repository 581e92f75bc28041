package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Memos           int        `json:"memos"`
	Subscribers     int        `json:"subscribers"`
	EventBufferSize int        `json:"event_buffer_size"`
	StorageType     string     `json:"storage_type"`
	Closed          bool       `json:"closed"`
	Flush           FlushState `json:"flush"`
}

// FlushState exposes the flusher state.
type FlushState struct {
	DebounceMillis int64 `json:"debounce_ms"`
	Pending        bool  `json:"pending"`
	FlushStats
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	storageType := "storage"
	if comp, ok := s.storage.(introspection.Component); ok {
		storageType = comp.ComponentType()
	}

	return ServiceState{
		Memos:           s.store.Len(),
		Subscribers:     s.broker.Subscribers(),
		EventBufferSize: s.eventBufferSize,
		StorageType:     storageType,
		Closed:          s.closed.Load(),
		Flush:           s.flusher.State().(FlushState),
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

// State implements introspection.Introspectable.
func (f *Flusher) State() any {
	return FlushState{
		DebounceMillis: f.debounce.Milliseconds(),
		Pending:        f.Pending(),
		FlushStats:     f.Stats(),
	}
}

// ComponentType implements introspection.Component.
func (f *Flusher) ComponentType() string {
	return "flusher"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
var _ introspection.Introspectable = (*Flusher)(nil)
var _ introspection.Component = (*Flusher)(nil)
