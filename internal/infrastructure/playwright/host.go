// Package playwright hosts surfaces as Playwright pages. It is the
// alternative to the cdp backend for machines where Playwright manages the
// browser install.
package playwright

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/logging"
	"github.com/egdesk/taehwa/internal/ui/mainloop"
)

const (
	defaultWidth      = 1400
	defaultHeight     = 900
	defaultResizePoll = 500 * time.Millisecond
)

// ErrClosed is returned once the browser is gone.
var ErrClosed = errors.New("playwright: browser closed")

// Options configures the Playwright driver and browser.
type Options struct {
	ExecPath     string
	Headless     bool
	WindowWidth  int
	WindowHeight int
	// Install downloads the driver and Chromium when missing.
	Install    bool
	ResizePoll time.Duration
	// Post delivers callbacks in order. Defaults to an internal loop.
	Post func(func()) bool
}

// Host runs one Chromium instance. Surfaces sharing a certificate policy
// share a browser context, so cookies survive tab switches.
type Host struct {
	opts Options
	pw   *playwright.Playwright
	br   playwright.Browser

	post      func(func()) bool
	ownedLoop *mainloop.Loop

	mu       sync.Mutex
	contexts map[bool]playwright.BrowserContext
	attached *Surface
	width    int
	height   int
	nextHook uint64
	onResize map[uint64]func(int, int)
	// resizes collapses a burst of size changes into one callback round.
	resizes *mainloop.Coalescer
	onClosed map[uint64]func()
	closed   bool

	stopPoll     chan struct{}
	pollDone     chan struct{}
	shutdownOnce sync.Once
	shutdownErr  error
}

var _ port.Host = (*Host)(nil)

// NewHost starts the Playwright driver and launches Chromium.
func NewHost(ctx context.Context, opts Options) (*Host, error) {
	log := logging.FromContext(ctx)
	if opts.WindowWidth <= 0 {
		opts.WindowWidth = defaultWidth
	}
	if opts.WindowHeight <= 0 {
		opts.WindowHeight = defaultHeight
	}
	if opts.ResizePoll <= 0 {
		opts.ResizePoll = defaultResizePoll
	}

	// The driver must stay quiet so it does not interfere with the console.
	runOpts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}
	if opts.Install {
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     []string{fmt.Sprintf("--window-size=%d,%d", opts.WindowWidth, opts.WindowHeight)},
	}
	if opts.ExecPath != "" {
		launch.ExecutablePath = playwright.String(opts.ExecPath)
	}
	br, err := pw.Chromium.Launch(launch)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	h := &Host{
		opts:     opts,
		pw:       pw,
		br:       br,
		contexts: make(map[bool]playwright.BrowserContext),
		width:    opts.WindowWidth,
		height:   opts.WindowHeight,
		onResize: make(map[uint64]func(int, int)),
		onClosed: make(map[uint64]func()),
		stopPoll: make(chan struct{}),
		pollDone: make(chan struct{}),
	}
	h.post = opts.Post
	if h.post == nil {
		h.ownedLoop = mainloop.NewLoop()
		h.post = h.ownedLoop.Post
		go func() { _ = h.ownedLoop.Run(context.WithoutCancel(ctx)) }()
	}
	h.resizes = mainloop.NewCoalescer(func(fn func()) { h.post(fn) })
	br.OnDisconnected(func(playwright.Browser) { h.fireClosed() })

	log.Info().
		Str("version", br.Version()).
		Bool("headless", opts.Headless).
		Msg("playwright browser launched")

	go h.poll(context.WithoutCancel(ctx))
	return h, nil
}

func (h *Host) browserContext(acceptInvalidCerts bool) (playwright.BrowserContext, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	if bc, ok := h.contexts[acceptInvalidCerts]; ok {
		return bc, nil
	}
	bc, err := h.br.NewContext(playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(acceptInvalidCerts),
		Viewport: &playwright.Size{
			Width:  h.opts.WindowWidth,
			Height: h.opts.WindowHeight,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	h.contexts[acceptInvalidCerts] = bc
	return bc, nil
}

// CreateSurface implements port.SurfaceFactory.
func (h *Host) CreateSurface(ctx context.Context, opts port.SurfaceOptions) (port.Surface, error) {
	bc, err := h.browserContext(opts.AcceptInvalidCertificates)
	if err != nil {
		return nil, err
	}
	pg, err := bc.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	s := newSurface(h, opts.AcceptInvalidCertificates)
	s.bind(bc, pg)
	logging.FromContext(ctx).Debug().Bool("accept_invalid_certs", opts.AcceptInvalidCertificates).Msg("page opened")
	return s, nil
}

func asSurface(s port.Surface) (*Surface, error) {
	ps, ok := s.(*Surface)
	if !ok || ps == nil {
		return nil, fmt.Errorf("playwright: foreign surface %T", s)
	}
	if ps.IsDestroyed() {
		return nil, ErrSurfaceDestroyed
	}
	return ps, nil
}

// Attach implements port.HostWindow by bringing the page to the front.
func (h *Host) Attach(_ context.Context, s port.Surface) error {
	ps, err := asSurface(s)
	if err != nil {
		return err
	}
	if err := ps.page.BringToFront(); err != nil {
		return fmt.Errorf("bring page to front: %w", err)
	}
	h.mu.Lock()
	h.attached = ps
	h.mu.Unlock()
	return nil
}

// Detach implements port.HostWindow.
func (h *Host) Detach(_ context.Context, s port.Surface) error {
	ps, ok := s.(*Surface)
	if !ok {
		return fmt.Errorf("playwright: foreign surface %T", s)
	}
	h.mu.Lock()
	if h.attached == ps {
		h.attached = nil
	}
	h.mu.Unlock()
	return nil
}

// SetBounds implements port.HostWindow by resizing the page viewport.
func (h *Host) SetBounds(_ context.Context, s port.Surface, bounds entity.Bounds) error {
	ps, err := asSurface(s)
	if err != nil {
		return err
	}
	return ps.page.SetViewportSize(bounds.Width, bounds.Height)
}

// SetVisible implements port.HostWindow. Hidden pages are frozen over CDP.
func (h *Host) SetVisible(_ context.Context, s port.Surface, visible bool) error {
	ps, err := asSurface(s)
	if err != nil {
		return err
	}
	state := "frozen"
	if visible {
		state = "active"
	}
	_, err = ps.cdpSend("Page.setWebLifecycleState", map[string]any{"state": state})
	return err
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

// poll follows the outer window size of the attached page. Headless windows
// never change size.
func (h *Host) poll(ctx context.Context) {
	defer close(h.pollDone)
	if h.opts.Headless {
		<-h.stopPoll
		return
	}
	ticker := time.NewTicker(h.opts.ResizePoll)
	defer ticker.Stop()
	for {
		select {
		case <-h.stopPoll:
			return
		case <-ticker.C:
			h.mu.Lock()
			attached := h.attached
			h.mu.Unlock()
			if attached == nil {
				continue
			}
			size, err := attached.page.Evaluate("[window.outerWidth, window.outerHeight]")
			if err != nil {
				logging.FromContext(ctx).Trace().Err(err).Msg("window size query failed")
				continue
			}
			if w, hgt, ok := pair(size); ok {
				h.resized(w, hgt)
			}
		}
	}
}

func (h *Host) resized(width, height int) {
	h.mu.Lock()
	if width == h.width && height == h.height {
		h.mu.Unlock()
		return
	}
	h.width, h.height = width, height
	hooks := make([]func(int, int), 0, len(h.onResize))
	for _, fn := range h.onResize {
		hooks = append(hooks, fn)
	}
	h.mu.Unlock()

	h.resizes.Post("resize", func() {
		for _, fn := range hooks {
			fn(width, height)
		}
	})
}

func (h *Host) fireClosed() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	hooks := make([]func(), 0, len(h.onClosed))
	for _, fn := range h.onClosed {
		hooks = append(hooks, fn)
	}
	h.mu.Unlock()

	h.post(func() {
		for _, fn := range hooks {
			fn()
		}
	})
}

func (h *Host) forget(s *Surface) {
	h.mu.Lock()
	if h.attached == s {
		h.attached = nil
	}
	h.mu.Unlock()
}

// Shutdown implements port.Host.
func (h *Host) Shutdown(ctx context.Context) error {
	h.shutdownOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		contexts := make([]playwright.BrowserContext, 0, len(h.contexts))
		for _, bc := range h.contexts {
			contexts = append(contexts, bc)
		}
		h.mu.Unlock()

		close(h.stopPoll)
		<-h.pollDone

		var errs []error
		for _, bc := range contexts {
			if err := bc.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if err := h.br.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := h.pw.Stop(); err != nil {
			errs = append(errs, err)
		}
		h.resizes.Destroy()
		if h.ownedLoop != nil {
			h.ownedLoop.Close()
		}
		h.shutdownErr = errors.Join(errs...)
		logging.FromContext(ctx).Debug().Err(h.shutdownErr).Msg("playwright stopped")
	})
	return h.shutdownErr
}
