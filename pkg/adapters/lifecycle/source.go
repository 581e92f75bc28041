// Package lifecycle exposes memo change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/memo/pkg/core"
)

// memoSource forwards the events of one service subscription.
type memoSource struct {
	events <-chan core.Event
	types  map[core.EventType]bool // nil forwards every type
	out    chan lifecycle.Event
}

// NewSource wraps a channel returned by core.Service.Subscribe.
//
// When types is non-empty only events of those types are forwarded; a
// Reloaded event should usually be kept, since it replaces every memo at
// once. The source ends, closing Events(), when the subscription channel
// closes (Service.Quit or the subscription context is done) or when the
// context given to Start is done.
func NewSource(events <-chan core.Event, types ...core.EventType) lifecycle.Source {
	s := &memoSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	if len(types) > 0 {
		s.types = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
	return s
}

func (s *memoSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *memoSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.forward)
	return nil
}

func (s *memoSource) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		var e core.Event
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.events:
			if !ok {
				return nil
			}
			e = ev
		}

		if s.types != nil && !s.types[e.Type] {
			continue
		}

		// core.Event satisfies lifecycle.Event through String().
		select {
		case s.out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}
