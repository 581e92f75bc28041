package core

import (
	"encoding/json"
	"fmt"
)

// EventType represents the kind of change published to UI surfaces.
type EventType string

const (
	EventCreated  EventType = "created"
	EventUpdated  EventType = "updated"
	EventDeleted  EventType = "deleted"
	EventReloaded EventType = "reloaded"
)

// Event is a tagged union: Memo is set for Created/Updated, ID for Deleted
// and Memos for Reloaded.
type Event struct {
	Type  EventType
	Memo  Note
	ID    string
	Memos []Note
}

// NoteID returns the identity the event refers to, or "" for Reloaded.
func (e Event) NoteID() string {
	switch e.Type {
	case EventCreated, EventUpdated:
		return e.Memo.ID
	case EventDeleted:
		return e.ID
	}
	return ""
}

// String implements lifecycle.Event.
func (e Event) String() string {
	if e.Type == EventReloaded {
		return fmt.Sprintf("%s(%d)", e.Type, len(e.Memos))
	}
	return fmt.Sprintf("%s(%s)", e.Type, e.NoteID())
}

type createdPayload struct {
	Type EventType `json:"type"`
	Memo Note      `json:"memo"`
}

type deletedPayload struct {
	Type EventType `json:"type"`
	ID   string    `json:"id"`
}

type reloadedPayload struct {
	Type  EventType `json:"type"`
	Memos []Note    `json:"memos"`
}

// MarshalJSON encodes the event with an internal "type" tag.
func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EventCreated, EventUpdated:
		return json.Marshal(createdPayload{Type: e.Type, Memo: e.Memo})
	case EventDeleted:
		return json.Marshal(deletedPayload{Type: e.Type, ID: e.ID})
	case EventReloaded:
		memos := e.Memos
		if memos == nil {
			memos = []Note{}
		}
		return json.Marshal(reloadedPayload{Type: e.Type, Memos: memos})
	}
	return nil, fmt.Errorf("unknown event type %q", e.Type)
}

// UnmarshalJSON decodes the tagged form produced by MarshalJSON.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  EventType `json:"type"`
		Memo  *Note     `json:"memo"`
		ID    string    `json:"id"`
		Memos []Note    `json:"memos"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Event{Type: raw.Type}
	switch raw.Type {
	case EventCreated, EventUpdated:
		if raw.Memo == nil {
			return fmt.Errorf("%s event without memo", raw.Type)
		}
		e.Memo = *raw.Memo
	case EventDeleted:
		e.ID = raw.ID
	case EventReloaded:
		e.Memos = raw.Memos
	default:
		return fmt.Errorf("unknown event type %q", raw.Type)
	}
	return nil
}
