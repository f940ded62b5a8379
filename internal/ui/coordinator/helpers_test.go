package coordinator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/egdesk/taehwa/internal/application/eventbus"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/event"
	"github.com/egdesk/taehwa/internal/testutil/fakeclock"
	"github.com/egdesk/taehwa/internal/testutil/fakehost"
)

var testLayout = entity.LayoutMetrics{
	HeaderHeight:     40,
	ControlBarHeight: 50,
	Padding:          10,
	ConsoleRatio:     0.25,
}

const testDebounce = 16 * time.Millisecond

type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) handle(_ context.Context, ev event.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) kinds() []event.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Kind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind())
	}
	return out
}

func (r *recorder) last(kind event.Kind) (event.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind() == kind {
			return r.events[i], true
		}
	}
	return nil, false
}

func (r *recorder) count(kind event.Kind) int {
	n := 0
	for _, k := range r.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

type harness struct {
	ctx     context.Context
	manager *TabManager
	host    *fakehost.Host
	clock   *fakeclock.Clock
	events  *recorder
	// queued holds initial loads when the harness runs them manually.
	queued []func()
}

type harnessOption func(*harness, *TabManagerConfig)

// withQueuedLoads defers initial page loads until runQueued is called.
func withQueuedLoads() harnessOption {
	return func(h *harness, cfg *TabManagerConfig) {
		cfg.Async = func(fn func()) { h.queued = append(h.queued, fn) }
	}
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	h := &harness{
		ctx:    testContext(),
		host:   fakehost.New(1200, 800),
		clock:  fakeclock.New(),
		events: &recorder{},
	}
	bus := eventbus.New()
	cfg := TabManagerConfig{
		Factory:                   h.host,
		Bus:                       bus,
		Layout:                    testLayout,
		BoundsDebounce:            testDebounce,
		AcceptInvalidCertificates: true,
		Async:                     func(fn func()) { fn() },
		AfterFunc:                 h.clock.AfterFunc,
	}
	for _, opt := range opts {
		opt(h, &cfg)
	}

	h.manager = NewTabManager(h.ctx, cfg)
	bus.OnAll(h.events.handle)
	require.NoError(t, h.manager.Initialize(h.ctx, h.host))
	return h
}

func (h *harness) runQueued() {
	queued := h.queued
	h.queued = nil
	for _, fn := range queued {
		fn()
	}
}

// settle lets the bounds debounce window elapse.
func (h *harness) settle() {
	h.clock.Advance(testDebounce)
}

func (h *harness) surface(t *testing.T, index int) *fakehost.Surface {
	t.Helper()
	surfaces := h.host.Surfaces()
	require.Greater(t, len(surfaces), index)
	return surfaces[index]
}

func (h *harness) create(t *testing.T, url string) entity.TabID {
	t.Helper()
	id, err := h.manager.CreateTab(h.ctx, url)
	require.NoError(t, err)
	return id
}

func testContext() context.Context {
	return context.Background()
}
