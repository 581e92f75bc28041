// Package window provides a headless core.WindowManager.
//
// It tracks which note windows are open and whether the main window is
// visible, following the contract the GUI shell must honour: opening is
// idempotent, closing an unknown window is a no-op and the main window is
// hidden rather than destroyed. A GUI shell wraps or replaces it.
package window

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/memo/pkg/core"
)

// MainLabel is the label of the main list window.
const MainLabel = "main"

// Label returns the window label used for a note.
func Label(id string) string {
	return "memo-" + id
}

// State describes one tracked window.
type State struct {
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
	Focused bool   `json:"focused"`
	Opened  int    `json:"opened"` // number of open requests received
}

// Registry implements core.WindowManager without a display.
type Registry struct {
	mu      sync.Mutex
	windows map[string]*State
	focused string
	logger  *slog.Logger
}

// NewRegistry creates a registry with a hidden main window.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		windows: map[string]*State{
			MainLabel: {Label: MainLabel},
		},
		logger: logger,
	}
}

// OpenNote creates the note window or refocuses the existing one.
func (r *Registry) OpenNote(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	label := Label(id)
	w, ok := r.windows[label]
	if !ok {
		w = &State{Label: label}
		r.windows[label] = w
		r.logger.Debug("window created", "label", label)
	} else {
		r.logger.Debug("window refocused", "label", label)
	}
	w.Visible = true
	w.Opened++
	r.focus(label)
	return nil
}

// CloseNote destroys the note window if it exists.
func (r *Registry) CloseNote(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	label := Label(id)
	if _, ok := r.windows[label]; !ok {
		return nil
	}
	delete(r.windows, label)
	if r.focused == label {
		r.focused = ""
	}
	r.logger.Debug("window closed", "label", label)
	return nil
}

// ShowMain shows and focuses the main window.
func (r *Registry) ShowMain() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.windows[MainLabel].Visible = true
	r.focus(MainLabel)
	return nil
}

// RequestCloseMain handles a close request on the main window: the window is
// hidden and the process keeps running until an explicit quit.
// It reports whether the close was intercepted.
func (r *Registry) RequestCloseMain() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.windows[MainLabel].Visible = false
	if r.focused == MainLabel {
		r.focused = ""
	}
	return true
}

// Lookup returns the state of a window by label.
func (r *Registry) Lookup(label string) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[label]
	if !ok {
		return State{}, false
	}
	s := *w
	s.Focused = r.focused == label
	return s, true
}

// Open returns the labels of visible windows, sorted.
func (r *Registry) Open() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var labels []string
	for label, w := range r.windows {
		if w.Visible {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

func (r *Registry) focus(label string) {
	r.focused = label
}

var _ core.WindowManager = (*Registry)(nil)
