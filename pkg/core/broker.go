package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultEventBuffer is the per-subscriber channel capacity.
const DefaultEventBuffer = 100

type subscription struct {
	pattern string
	ch      chan Event
	stop    func() bool
}

// Broker fans events out to subscribers.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]*subscription
	nextID int
	buffer int
	closed bool
	logger *slog.Logger
}

// NewBroker creates a broker with the given per-subscriber buffer.
func NewBroker(buffer int, logger *slog.Logger) *Broker {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Broker{
		subs:   make(map[int]*subscription),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe registers a subscriber for events whose note ID matches the
// glob pattern ("" matches everything; Reloaded is always delivered).
// The channel is closed when ctx is done or the broker is closed.
func (b *Broker) Subscribe(ctx context.Context, pattern string) (<-chan Event, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	id := b.nextID
	b.nextID++

	sub := &subscription{
		pattern: pattern,
		ch:      make(chan Event, b.buffer),
	}
	sub.stop = context.AfterFunc(ctx, func() { b.unsubscribe(id) })
	b.subs[id] = sub

	return sub.ch, nil
}

// Publish delivers e to every matching subscriber.
func (b *Broker) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	id := e.NoteID()
	for _, sub := range b.subs {
		if !sub.matches(id) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			b.logger.Warn("subscriber buffer full, dropping event", "event", e.String())
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Later publishes are dropped.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		sub.stop()
		close(sub.ch)
		delete(b.subs, id)
	}
}

func (b *Broker) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		close(sub.ch)
		delete(b.subs, id)
	}
}

func (s *subscription) matches(id string) bool {
	if s.pattern == "" || id == "" {
		return true
	}
	ok, err := doublestar.Match(s.pattern, id)
	return err == nil && ok
}
