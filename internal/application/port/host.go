package port

import (
	"context"

	"github.com/egdesk/taehwa/internal/domain/entity"
)

// HostWindow is the native window that hosts zero or one attached surface.
//
// Only the tab manager attaches and detaches surfaces; other components go
// through it.
type HostWindow interface {
	// Attach makes s the surface shown in the window.
	Attach(ctx context.Context, s Surface) error
	// Detach removes s from the window. Detaching a surface that is not
	// attached is a no-op.
	Detach(ctx context.Context, s Surface) error
	// SetBounds positions s inside the window content area.
	SetBounds(ctx context.Context, s Surface, bounds entity.Bounds) error
	// SetVisible shows or hides s without detaching it.
	SetVisible(ctx context.Context, s Surface, visible bool) error

	// Size returns the current content area size in pixels.
	Size() (width, height int)

	// OnResize registers fn for window resizes. The returned func unregisters it.
	OnResize(fn func(width, height int)) (unsubscribe func())
	// OnClosed registers fn for window teardown. The returned func unregisters it.
	OnClosed(fn func()) (unsubscribe func())
}

// Host bundles a window with the factory that creates surfaces for it.
// Engine adapters implement both on the same browser connection.
type Host interface {
	HostWindow
	SurfaceFactory
	// Shutdown terminates the engine. Called after the tab manager is destroyed.
	Shutdown(ctx context.Context) error
}
