package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/memo/pkg/core"
)

// options holds the internal configuration for the memo service.
type options struct {
	storage      core.Storage
	windows      core.WindowManager
	logger       *slog.Logger
	debounce     time.Duration
	pretty       bool
	watch        bool
	eventBuffer  int
	errorHandler func(error)
	configFile   string
	forceTemp    bool
	devSafety    bool
}

// Option defines a functional option for configuring the service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		debounce:  core.DefaultDebounce,
		devSafety: true,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage allows injecting a custom storage (e.g. mock).
// If provided, the file storage is skipped and the URI is ignored.
func WithStorage(storage core.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithWindows sets the window manager notified by tray and window actions.
func WithWindows(windows core.WindowManager) Option {
	return func(o *options) {
		o.windows = windows
	}
}

// WithDebounce sets the coalescing window of deferred flushes.
// Zero means the default (500ms).
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithPretty indents the JSON data file.
func WithPretty(pretty bool) Option {
	return func(o *options) {
		o.pretty = pretty
	}
}

// WithWatch reloads the store when the data file is edited by another process.
// The watcher lives as long as the context passed to New.
func WithWatch(watch bool) Option {
	return func(o *options) {
		o.watch = watch
	}
}

// WithEventBuffer sets the per-subscriber event buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithWatcherErrorHandler registers a callback for errors raised by the
// file watcher, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithConfigFile reads defaults from a YAML config file.
// Options passed to New take precedence over the file.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithForceTemp forces the data file into a temporary directory.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox applied when running via `go run` or
// `go test`. By default (true) the data file is redirected to a temporary
// directory so development runs never touch the real notes.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}
