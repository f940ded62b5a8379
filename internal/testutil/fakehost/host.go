// Package fakehost is an in-memory port.Host for tests. Surfaces never fire
// callbacks on their own; tests drive them with the Fire* helpers.
package fakehost

import (
	"context"
	"fmt"
	"sync"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
)

// BoundsCall records one SetBounds.
type BoundsCall struct {
	Surface string
	Bounds  entity.Bounds
}

// Host implements port.Host.
type Host struct {
	mu       sync.Mutex
	width    int
	height   int
	attached *Surface
	visible  map[*Surface]bool
	surfaces []*Surface
	calls    []string
	bounds   []BoundsCall

	nextHook uint64
	onResize map[uint64]func(int, int)
	onClosed map[uint64]func()

	// CreateErr fails the next CreateSurface calls.
	CreateErr error
	// AttachErr fails Attach.
	AttachErr error
	// SetBoundsErr fails SetBounds.
	SetBoundsErr error
	// LastOptions holds the options of the latest CreateSurface.
	LastOptions port.SurfaceOptions
	shutdown    bool
}

var _ port.Host = (*Host)(nil)

// New creates a host window of the given content size.
func New(width, height int) *Host {
	return &Host{
		width:    width,
		height:   height,
		visible:  make(map[*Surface]bool),
		onResize: make(map[uint64]func(int, int)),
		onClosed: make(map[uint64]func()),
	}
}

func (h *Host) record(format string, args ...any) {
	h.calls = append(h.calls, fmt.Sprintf(format, args...))
}

// CreateSurface implements port.SurfaceFactory.
func (h *Host) CreateSurface(_ context.Context, opts port.SurfaceOptions) (port.Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.CreateErr != nil {
		return nil, h.CreateErr
	}
	h.LastOptions = opts
	s := &Surface{
		host:    h,
		name:    fmt.Sprintf("surface-%d", len(h.surfaces)+1),
		url:     entity.BlankURL,
		history: []string{entity.BlankURL},
	}
	h.surfaces = append(h.surfaces, s)
	h.record("create %s", s.name)
	return s, nil
}

func asSurface(s port.Surface) (*Surface, error) {
	fs, ok := s.(*Surface)
	if !ok || fs == nil {
		return nil, fmt.Errorf("fakehost: foreign surface %T", s)
	}
	return fs, nil
}

// Attach implements port.HostWindow. Attaching while another surface is
// attached is reported as an error so tests catch a missing Detach.
func (h *Host) Attach(_ context.Context, s port.Surface) error {
	fs, err := asSurface(s)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.AttachErr != nil {
		return h.AttachErr
	}
	if h.attached != nil && h.attached != fs {
		return fmt.Errorf("fakehost: %s still attached", h.attached.name)
	}
	h.attached = fs
	h.record("attach %s", fs.name)
	return nil
}

// Detach implements port.HostWindow.
func (h *Host) Detach(_ context.Context, s port.Surface) error {
	fs, err := asSurface(s)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.attached == fs {
		h.attached = nil
	}
	h.record("detach %s", fs.name)
	return nil
}

// SetBounds implements port.HostWindow.
func (h *Host) SetBounds(_ context.Context, s port.Surface, b entity.Bounds) error {
	fs, err := asSurface(s)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.SetBoundsErr != nil {
		return h.SetBoundsErr
	}
	h.bounds = append(h.bounds, BoundsCall{Surface: fs.name, Bounds: b})
	h.record("bounds %s", fs.name)
	return nil
}

// SetVisible implements port.HostWindow.
func (h *Host) SetVisible(_ context.Context, s port.Surface, visible bool) error {
	fs, err := asSurface(s)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.visible[fs] = visible
	h.record("visible %s %t", fs.name, visible)
	return nil
}

// Size implements port.HostWindow.
func (h *Host) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// OnResize implements port.HostWindow.
func (h *Host) OnResize(fn func(width, height int)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextHook++
	id := h.nextHook
	h.onResize[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.onResize, id)
		h.mu.Unlock()
	}
}

// OnClosed implements port.HostWindow.
func (h *Host) OnClosed(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextHook++
	id := h.nextHook
	h.onClosed[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.onClosed, id)
		h.mu.Unlock()
	}
}

// Shutdown implements port.Host.
func (h *Host) Shutdown(context.Context) error {
	h.mu.Lock()
	h.shutdown = true
	h.mu.Unlock()
	return nil
}

// Resize changes the window size and notifies subscribers.
func (h *Host) Resize(width, height int) {
	h.mu.Lock()
	h.width, h.height = width, height
	handlers := make([]func(int, int), 0, len(h.onResize))
	for _, fn := range h.onResize {
		handlers = append(handlers, fn)
	}
	h.mu.Unlock()
	for _, fn := range handlers {
		fn(width, height)
	}
}

// CloseWindow simulates the user closing the host window.
func (h *Host) CloseWindow() {
	h.mu.Lock()
	handlers := make([]func(), 0, len(h.onClosed))
	for _, fn := range h.onClosed {
		handlers = append(handlers, fn)
	}
	h.mu.Unlock()
	for _, fn := range handlers {
		fn()
	}
}

// Attached returns the attached surface, or nil.
func (h *Host) Attached() *Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.attached
}

// Visible reports the last SetVisible value for s.
func (h *Host) Visible(s *Surface) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible[s]
}

// Surfaces returns every surface created so far.
func (h *Host) Surfaces() []*Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Surface, len(h.surfaces))
	copy(out, h.surfaces)
	return out
}

// Calls returns the ordered log of host and surface calls.
func (h *Host) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.calls))
	copy(out, h.calls)
	return out
}

// ResetCalls clears the call log.
func (h *Host) ResetCalls() {
	h.mu.Lock()
	h.calls = nil
	h.bounds = nil
	h.mu.Unlock()
}

// BoundsCalls returns every SetBounds call.
func (h *Host) BoundsCalls() []BoundsCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]BoundsCall, len(h.bounds))
	copy(out, h.bounds)
	return out
}

// HookCount returns the number of live resize and close subscriptions.
func (h *Host) HookCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.onResize) + len(h.onClosed)
}

// IsShutdown reports whether Shutdown ran.
func (h *Host) IsShutdown() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shutdown
}
