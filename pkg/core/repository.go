package core

// Loader reads the persisted note sequence at startup.
type Loader interface {
	// Load returns the stored notes. A missing file yields an empty
	// sequence and no error; undecodable content yields an error wrapping
	// ErrDecode.
	Load() ([]Note, error)
}

// Writer persists a full snapshot of the note sequence.
// Adhering to this interface keeps the core independent of the on-disk
// format and location.
type Writer interface {
	// Write replaces the durable copy with snapshot. The slice is owned by
	// the callee for the duration of the call and must not be retained.
	Write(snapshot []Note) error
}

// Storage is the full persistence port used by the factory.
type Storage interface {
	Loader
	Writer
}

// WindowManager is the contract of the windowing layer.
// Implementations live outside the core (GUI shell, headless registry).
type WindowManager interface {
	// OpenNote shows the window for id, refocusing it if already open.
	OpenNote(id string) error

	// CloseNote closes the window for id. Unknown ids are a no-op.
	CloseNote(id string) error

	// ShowMain shows and focuses the main list window.
	ShowMain() error
}
