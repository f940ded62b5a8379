// Package eventbus fans tab lifecycle events out to UI and automation
// subscribers.
package eventbus

import (
	"context"
	"fmt"
	"sync"

	"github.com/egdesk/taehwa/internal/domain/event"
	"github.com/egdesk/taehwa/internal/logging"
)

// Handler receives one event. Handlers run synchronously on the emitting
// goroutine, in subscription order.
type Handler func(ctx context.Context, ev event.Event)

// Subscription identifies a registered handler for Off.
type Subscription struct {
	kind event.Kind
	id   uint64
}

// Kind returns the kind the subscription listens to. Empty means all kinds.
func (s Subscription) Kind() event.Kind { return s.kind }

type entry struct {
	id      uint64
	handler Handler
}

// Bridge is a typed publish/subscribe registry.
// A panicking handler is logged and skipped; the remaining handlers still run.
type Bridge struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[event.Kind][]entry
	streams  map[*stream]struct{}
}

// New constructs an empty Bridge.
func New() *Bridge {
	return &Bridge{
		handlers: make(map[event.Kind][]entry),
		streams:  make(map[*stream]struct{}),
	}
}

// On registers handler for kind.
func (b *Bridge) On(kind event.Kind, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[kind] = append(b.handlers[kind], entry{id: b.nextID, handler: handler})
	return Subscription{kind: kind, id: b.nextID}
}

// OnAll registers handler for every kind.
func (b *Bridge) OnAll(handler Handler) Subscription {
	return b.On("", handler)
}

// Off removes a handler. Returns false if it was not registered.
func (b *Bridge) Off(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.handlers[sub.kind]
	for i, e := range list {
		if e.id != sub.id {
			continue
		}
		next := make([]entry, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, sub.kind)
		} else {
			b.handlers[sub.kind] = next
		}
		return true
	}
	return false
}

// Emit delivers ev to handlers of its kind, then to OnAll handlers, then to
// matching streams. The registry lock is not held while handlers run, so
// handlers may subscribe, unsubscribe or emit.
func (b *Bridge) Emit(ctx context.Context, ev event.Event) {
	if ev == nil {
		return
	}
	kind := ev.Kind()

	b.mu.Lock()
	targets := make([]entry, 0, len(b.handlers[kind])+len(b.handlers[""]))
	targets = append(targets, b.handlers[kind]...)
	targets = append(targets, b.handlers[""]...)
	streams := make([]*stream, 0, len(b.streams))
	for s := range b.streams {
		if s.wants(kind) {
			streams = append(streams, s)
		}
	}
	b.mu.Unlock()

	for _, e := range targets {
		b.dispatch(ctx, e, ev)
	}

	dropped := 0
	for _, s := range streams {
		if !s.send(ev) {
			dropped++
		}
	}
	if dropped > 0 {
		logging.FromContext(ctx).Debug().
			Str("kind", string(kind)).
			Int("count", dropped).
			Msg("eventbus: stream full, event dropped")
	}
}

func (b *Bridge) dispatch(ctx context.Context, e entry, ev event.Event) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error().
				Str("kind", string(ev.Kind())).
				Uint64("handler", e.id).
				Str("panic", fmt.Sprint(r)).
				Msg("eventbus: handler panicked")
		}
	}()
	e.handler(ctx, ev)
}

// Stream returns a buffered channel receiving events of the given kinds (all
// kinds when none are given) and a cancel func that closes it. Events are
// dropped instead of blocking Emit when the buffer is full.
func (b *Bridge) Stream(depth int, kinds ...event.Kind) (<-chan event.Event, func()) {
	if depth <= 0 {
		depth = 64
	}
	s := &stream{ch: make(chan event.Event, depth)}
	if len(kinds) > 0 {
		s.kinds = make(map[event.Kind]struct{}, len(kinds))
		for _, k := range kinds {
			s.kinds[k] = struct{}{}
		}
	}

	b.mu.Lock()
	b.streams[s] = struct{}{}
	b.mu.Unlock()

	return s.ch, func() {
		b.mu.Lock()
		delete(b.streams, s)
		b.mu.Unlock()
		s.close()
	}
}

// Clear removes every handler and closes every stream.
func (b *Bridge) Clear() {
	b.mu.Lock()
	b.handlers = make(map[event.Kind][]entry)
	streams := b.streams
	b.streams = make(map[*stream]struct{})
	b.mu.Unlock()

	for s := range streams {
		s.close()
	}
}

// HandlerCount returns the number of handlers registered for kind.
func (b *Bridge) HandlerCount(kind event.Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[kind])
}

// Subscribe registers a handler typed on the payload struct.
//
//	eventbus.Subscribe(bus, func(ctx context.Context, ev event.TabClosed) { ... })
func Subscribe[T event.Event](b *Bridge, fn func(ctx context.Context, ev T)) Subscription {
	var zero T
	return b.On(zero.Kind(), func(ctx context.Context, ev event.Event) {
		if typed, ok := ev.(T); ok {
			fn(ctx, typed)
		}
	})
}

type stream struct {
	mu     sync.Mutex
	ch     chan event.Event
	kinds  map[event.Kind]struct{}
	closed bool
}

func (s *stream) wants(kind event.Kind) bool {
	if s.kinds == nil {
		return true
	}
	_, ok := s.kinds[kind]
	return ok
}

func (s *stream) send(ev event.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

func (s *stream) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
