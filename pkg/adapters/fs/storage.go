package fs

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/memo/pkg/core"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755

	// recentContents bounds how many own writes the watcher can recognise
	// while their events are still in flight.
	recentContents = 8
)

// Storage implements core.Storage with a single file holding every note.
type Storage struct {
	Path        string
	config      Config
	serializers map[string]Serializer

	mu            sync.Mutex
	recent        [][sha256.Size]byte // digests of content this process read or wrote
	lastWrite     *time.Time
	writes        int64
	watcherActive bool
}

// Config holds the configuration for the file storage.
type Config struct {
	Path         string // full path of the data file, e.g. ~/.local/share/mymemo/memos.json
	Pretty       bool   // indent JSON output
	Logger       *slog.Logger
	ErrorHandler func(error) // optional, receives watcher errors
}

// NewStorage creates a file storage. It performs no I/O.
func NewStorage(config Config) *Storage {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Storage{
		Path:        config.Path,
		config:      config,
		serializers: DefaultSerializers(config.Pretty),
	}
}

// RegisterSerializer registers or overrides the serializer for an extension.
func (s *Storage) RegisterSerializer(ext string, serializer Serializer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serializers[normalizeExt(ext)] = serializer
}

// Initialize ensures the parent directory of the data file exists.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.Path == "" {
		return errors.New("storage path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), dirPerm); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// Load reads and decodes the data file.
// A missing file is an empty sequence. Unreadable or undecodable content
// returns an error wrapping core.ErrStorage or core.ErrDecode.
func (s *Storage) Load() ([]core.Note, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", core.ErrStorage, s.Path, err)
	}

	notes, err := s.decode(data)
	if err != nil {
		return nil, err
	}

	s.rememberContent(data)

	s.config.Logger.Debug("memos loaded", "path", s.Path, "count", len(notes))
	return notes, nil
}

// Write encodes snapshot and atomically replaces the data file.
func (s *Storage) Write(snapshot []core.Note) error {
	data, err := s.serializer().Encode(snapshot)
	if err != nil {
		return fmt.Errorf("%w: encode memos: %w", core.ErrStorage, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), dirPerm); err != nil {
		return fmt.Errorf("%w: create data directory: %w", core.ErrStorage, err)
	}

	// Record the content before it hits the disk so the watcher can tell
	// this write apart from an external edit.
	s.rememberContent(data)

	if err := writeFileAtomic(s.Path, data, filePerm); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStorage, err)
	}

	now := time.Now()
	s.mu.Lock()
	s.lastWrite = &now
	s.writes++
	s.mu.Unlock()

	s.config.Logger.Debug("memos written", "path", s.Path, "count", len(snapshot), "bytes", len(data))
	return nil
}

// Watch reports external edits of the data file to onChange until ctx is
// done. Writes made through this Storage are not reported.
func (s *Storage) Watch(ctx context.Context, onChange func([]core.Note)) error {
	w := newWatchWorker(s, onChange)
	return w.Start(ctx)
}

func (s *Storage) decode(data []byte) ([]core.Note, error) {
	notes, err := s.serializer().Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrDecode, s.Path, err)
	}
	return notes, nil
}

// isOwnContent reports whether data matches content this process recently
// read or wrote.
func (s *Storage) isOwnContent(data []byte) bool {
	sum := sha256.Sum256(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.recent {
		if d == sum {
			return true
		}
	}
	return false
}

func (s *Storage) rememberContent(data []byte) {
	sum := sha256.Sum256(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = append(s.recent, sum)
	if len(s.recent) > recentContents {
		s.recent = s.recent[len(s.recent)-recentContents:]
	}
}

func (s *Storage) serializer() Serializer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ser, ok := s.serializers[normalizeExt(filepath.Ext(s.Path))]; ok {
		return ser
	}
	return s.serializers[".json"]
}

func (s *Storage) format() string {
	ext := normalizeExt(filepath.Ext(s.Path))
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.serializers[ext]; ok {
		return strings.TrimPrefix(ext, ".")
	}
	return "json"
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

var _ core.Storage = (*Storage)(nil)
