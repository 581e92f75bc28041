package core

// WindowState is the last known placement of a note's window.
type WindowState struct {
	IsOpen      bool    `json:"isOpen" yaml:"isOpen"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	Width       float64 `json:"width" yaml:"width"`
	Height      float64 `json:"height" yaml:"height"`
	AlwaysOnTop bool    `json:"alwaysOnTop" yaml:"alwaysOnTop"`
}

// Note is the central entity of the domain.
// It is agnostic to storage format; the tags mirror the on-disk record.
type Note struct {
	ID        string       `json:"id" yaml:"id"`
	Title     string       `json:"title" yaml:"title"`
	Content   string       `json:"content" yaml:"content"`
	Color     string       `json:"color" yaml:"color"`
	UpdatedAt uint64       `json:"updatedAt" yaml:"updatedAt"` // ms since epoch
	Window    *WindowState `json:"window,omitempty" yaml:"window,omitempty"`
}

// DefaultColor is used for notes created without an explicit color.
const DefaultColor = "yellow"

// Clone returns a copy that shares no memory with n.
func (n Note) Clone() Note {
	if n.Window != nil {
		w := *n.Window
		n.Window = &w
	}
	return n
}

// NoteUpdate carries the fields of a partial update.
// A nil field means "leave unchanged".
type NoteUpdate struct {
	Title   *string      `json:"title,omitempty"`
	Content *string      `json:"content,omitempty"`
	Color   *string      `json:"color,omitempty"`
	Window  *WindowState `json:"window,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Color == nil && u.Window == nil
}

// apply copies the supplied fields onto n.
func (u NoteUpdate) apply(n *Note) {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Color != nil {
		n.Color = *u.Color
	}
	if u.Window != nil {
		w := *u.Window
		n.Window = &w
	}
}

// CloneNotes deep-copies a note sequence.
func CloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
