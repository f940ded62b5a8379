// Package port defines application-layer interfaces for external capabilities.
// Ports abstract infrastructure concerns, allowing the application layer to
// remain independent of specific browser engines (Chromium over CDP, Playwright).
package port

import (
	"context"
	"encoding/json"

	"github.com/egdesk/taehwa/internal/domain/entity"
)

// SurfaceCallbacks defines callback handlers for surface events.
// Adapters invoke these in the order the engine raises them, one at a time,
// and never from inside a Surface or HostWindow method call.
type SurfaceCallbacks struct {
	// OnLoadStarted is called when a navigation begins.
	OnLoadStarted func()
	// OnLoadFinished is called when the main frame finished loading.
	OnLoadFinished func(url string)
	// OnLoadFailed is called when the main frame failed to load.
	OnLoadFailed func(url string, err error)
	// OnLoadStopped is called when loading was stopped before completion.
	OnLoadStopped func()
	// OnNavigated is called when the committed URL changes.
	// inPage is true for fragment and history API navigations.
	OnNavigated func(url string, inPage bool)
	// OnTitleChanged is called when the document title changes.
	OnTitleChanged func(title string)
	// OnCrashed is called when the content process backing the surface died.
	OnCrashed func(reason string)
	// OnCertificateError is called when a TLS certificate failed validation.
	OnCertificateError func(certErr CertificateError)
}

// SurfaceOptions configures a new surface.
type SurfaceOptions struct {
	// AcceptInvalidCertificates makes the surface proceed past TLS errors.
	AcceptInvalidCertificates bool
}

// Surface is one isolated, independently navigable web-content region.
//
// Navigation methods return once the engine accepted the request; load
// progress is reported through SurfaceCallbacks.
type Surface interface {
	// --- Navigation ---

	// LoadURL navigates to url and waits for the navigation to commit.
	LoadURL(ctx context.Context, url string) error
	// Reload reloads the current page.
	Reload(ctx context.Context) error
	// Stop stops the current page load.
	Stop(ctx context.Context) error
	// GoBack navigates back in history.
	GoBack(ctx context.Context) error
	// GoForward navigates forward in history.
	GoForward(ctx context.Context) error
	// History reports the live back/forward capability.
	History(ctx context.Context) (entity.HistoryState, error)

	// --- Scripting ---

	// ExecuteScript evaluates code in the page context and returns the
	// JSON encoding of its result.
	ExecuteScript(ctx context.Context, code string) (json.RawMessage, error)

	// --- State ---

	// URL returns the last committed URL.
	URL() string
	// Title returns the document title.
	Title() string

	// SetCallbacks replaces the event handlers. Passing nil removes them.
	SetCallbacks(callbacks *SurfaceCallbacks)

	// --- Lifecycle ---

	// Close stops activity and releases page resources. Safe to call once.
	Close(ctx context.Context) error
	// Destroy releases the native handle. Safe to call multiple times.
	Destroy()
	// IsDestroyed returns true once Destroy ran.
	IsDestroyed() bool
}

// SurfaceFactory creates surfaces.
type SurfaceFactory interface {
	// CreateSurface allocates a new blank surface.
	CreateSurface(ctx context.Context, opts SurfaceOptions) (Surface, error)
}
