package memo

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/memo/internal/platform"
	"github.com/aretw0/memo/pkg/core"
)

// --- Types ---

// Note is a public alias for a sticky note.
type Note = core.Note

// NoteUpdate is a public alias for a partial note update.
type NoteUpdate = core.NoteUpdate

// WindowState is a public alias for a note window geometry.
type WindowState = core.WindowState

// Event is a public alias for a change notification.
type Event = core.Event

// Service is a public alias for the note service.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring the service.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage.
func WithStorage(storage core.Storage) Option {
	return platform.WithStorage(storage)
}

// WithWindows sets the window manager.
func WithWindows(windows core.WindowManager) Option {
	return platform.WithWindows(windows)
}

// WithDebounce sets the coalescing window of deferred flushes.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithPretty indents the JSON data file.
func WithPretty(pretty bool) Option {
	return platform.WithPretty(pretty)
}

// WithWatch reloads the store on external edits of the data file.
func WithWatch(watch bool) Option {
	return platform.WithWatch(watch)
}

// WithEventBuffer sets the per-subscriber event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithConfigFile reads defaults from a YAML config file.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// WithForceTemp forces the data file into a temporary directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the `go run` sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New creates a memo service backed by the data file at path.
// An empty path uses the per-user default.
func New(ctx context.Context, path string, opts ...Option) (*core.Service, error) {
	return platform.New(ctx, path, opts...)
}

// --- Paths ---

// ResolveDataPath returns the data file to use for an optional explicit path.
func ResolveDataPath(explicit string) string {
	return platform.ResolveDataPath(explicit)
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return platform.DefaultConfigPath()
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
