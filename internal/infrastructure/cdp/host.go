package cdp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/security"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/logging"
	"github.com/egdesk/taehwa/internal/ui/mainloop"
)

// Host is a Chromium browser acting as the host window.
type Host struct {
	opts Options

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	anchor        target.ID

	post      func(func()) bool
	ownedLoop *mainloop.Loop

	mu       sync.Mutex
	width    int
	height   int
	attached *Surface
	surfaces map[target.ID]*Surface
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

// NewHost launches Chromium and returns once the first tab is ready.
func NewHost(ctx context.Context, opts Options) (*Host, error) {
	log := logging.FromContext(ctx)
	opts = opts.withDefaults()

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocatorOptions(opts)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) { log.Debug().Msgf("chromedp: "+format, args...) }),
		chromedp.WithErrorf(func(format string, args ...any) { log.Warn().Msgf("chromedp: "+format, args...) }),
	)

	h := &Host{
		opts:          opts,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		width:         opts.WindowWidth,
		height:        opts.WindowHeight,
		surfaces:      make(map[target.ID]*Surface),
		onResize:      make(map[uint64]func(int, int)),
		onClosed:      make(map[uint64]func()),
		stopPoll:      make(chan struct{}),
		pollDone:      make(chan struct{}),
	}
	h.post = opts.Post
	if h.post == nil {
		h.ownedLoop = mainloop.NewLoop()
		h.post = h.ownedLoop.Post
		go func() { _ = h.ownedLoop.Run(context.WithoutCancel(ctx)) }()
	}
	h.resizes = mainloop.NewCoalescer(func(fn func()) { h.post(fn) })

	// The first Run starts the browser with its initial tab, which stays as
	// the window anchor.
	if err := chromedp.Run(browserCtx); err != nil {
		h.release()
		return nil, fmt.Errorf("start chromium: %w", err)
	}
	h.anchor = chromedp.FromContext(browserCtx).Target.TargetID
	chromedp.ListenBrowser(browserCtx, h.handleBrowserEvent)

	if w, hgt, err := h.windowSize(ctx); err == nil {
		h.width, h.height = w, hgt
	}

	log.Info().
		Bool("headless", opts.Headless).
		Int("width", h.width).
		Int("height", h.height).
		Msg("chromium started")

	go h.poll(context.WithoutCancel(ctx))
	return h, nil
}

func (h *Host) release() {
	h.resizes.Destroy()
	h.browserCancel()
	h.allocCancel()
	if h.ownedLoop != nil {
		h.ownedLoop.Close()
	}
}

func (h *Host) browserExec(ctx context.Context) context.Context {
	return cdp.WithExecutor(ctx, chromedp.FromContext(h.browserCtx).Browser)
}

// CreateSurface implements port.SurfaceFactory by opening a new tab.
func (h *Host) CreateSurface(ctx context.Context, opts port.SurfaceOptions) (port.Surface, error) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return nil, errors.New("cdp: browser closed")
	}

	s := newSurface(h, opts.AcceptInvalidCertificates)
	tabCtx, cancel := chromedp.NewContext(h.browserCtx)
	chromedp.ListenTarget(tabCtx, s.handleTargetEvent)

	if err := chromedp.Run(tabCtx,
		security.Enable(),
		security.SetIgnoreCertificateErrors(opts.AcceptInvalidCertificates),
	); err != nil {
		cancel()
		return nil, fmt.Errorf("open tab: %w", err)
	}

	c := chromedp.FromContext(tabCtx)
	s.tabCtx = tabCtx
	s.cancel = cancel
	s.targetID = c.Target.TargetID
	s.exec = c.Target

	h.mu.Lock()
	h.surfaces[s.targetID] = s
	h.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("target", string(s.targetID)).Msg("tab opened")
	return s, nil
}

func (h *Host) surface(id target.ID) *Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surfaces[id]
}

func (h *Host) forget(s *Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.surfaces, s.targetID)
	if h.attached == s {
		h.attached = nil
	}
}

func asSurface(s port.Surface) (*Surface, error) {
	cs, ok := s.(*Surface)
	if !ok || cs == nil {
		return nil, fmt.Errorf("cdp: foreign surface %T", s)
	}
	if cs.IsDestroyed() {
		return nil, ErrSurfaceDestroyed
	}
	return cs, nil
}

// Attach implements port.HostWindow by activating the tab.
func (h *Host) Attach(ctx context.Context, s port.Surface) error {
	cs, err := asSurface(s)
	if err != nil {
		return err
	}
	if err := target.ActivateTarget(cs.targetID).Do(h.browserExec(ctx)); err != nil {
		return fmt.Errorf("activate tab: %w", err)
	}
	h.mu.Lock()
	h.attached = cs
	h.mu.Unlock()
	return nil
}

// Detach implements port.HostWindow. Chromium keeps the tab in its strip;
// the surface only stops being the attached one.
func (h *Host) Detach(_ context.Context, s port.Surface) error {
	cs, ok := s.(*Surface)
	if !ok {
		return fmt.Errorf("cdp: foreign surface %T", s)
	}
	h.mu.Lock()
	if h.attached == cs {
		h.attached = nil
	}
	h.mu.Unlock()
	return nil
}

// SetBounds implements port.HostWindow. Chromium lays the page out in the
// whole tab, so only the size is applied.
func (h *Host) SetBounds(ctx context.Context, s port.Surface, bounds entity.Bounds) error {
	cs, err := asSurface(s)
	if err != nil {
		return err
	}
	c, err := cs.ctx(ctx)
	if err != nil {
		return err
	}
	return emulation.SetDeviceMetricsOverride(int64(bounds.Width), int64(bounds.Height), 0, false).Do(c)
}

// SetVisible implements port.HostWindow through the page lifecycle state.
func (h *Host) SetVisible(ctx context.Context, s port.Surface, visible bool) error {
	cs, err := asSurface(s)
	if err != nil {
		return err
	}
	c, err := cs.ctx(ctx)
	if err != nil {
		return err
	}
	state := page.SetWebLifecycleStateStateFrozen
	if visible {
		state = page.SetWebLifecycleStateStateActive
	}
	return page.SetWebLifecycleState(state).Do(c)
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

func (h *Host) windowSize(ctx context.Context) (int, int, error) {
	h.mu.Lock()
	id := h.anchor
	if h.attached != nil {
		id = h.attached.targetID
	}
	h.mu.Unlock()

	_, bounds, err := browser.GetWindowForTarget().WithTargetID(id).Do(h.browserExec(ctx))
	if err != nil {
		return 0, 0, err
	}
	if bounds == nil || bounds.Width == 0 || bounds.Height == 0 {
		return 0, 0, errors.New("cdp: window bounds unavailable")
	}
	return int(bounds.Width), int(bounds.Height), nil
}

// poll watches the window size and the browser connection.
func (h *Host) poll(ctx context.Context) {
	defer close(h.pollDone)
	log := logging.FromContext(ctx)
	ticker := time.NewTicker(h.opts.ResizePoll)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopPoll:
			return
		case <-h.browserCtx.Done():
			log.Info().Msg("chromium connection closed")
			h.fireClosed()
			return
		case <-ticker.C:
			width, height, err := h.windowSize(ctx)
			if err != nil {
				continue
			}
			h.resized(width, height)
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

// Shutdown implements port.Host. It closes the browser gracefully and waits
// up to a few seconds for the process to exit.
func (h *Host) Shutdown(ctx context.Context) error {
	h.shutdownOnce.Do(func() {
		h.mu.Lock()
		alreadyClosed := h.closed
		h.closed = true
		h.mu.Unlock()

		close(h.stopPoll)
		<-h.pollDone

		if !alreadyClosed {
			c, cancel := context.WithTimeout(h.browserCtx, shutdownTimeout)
			err := chromedp.Cancel(c)
			cancel()
			if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				h.shutdownErr = fmt.Errorf("close chromium: %w", err)
			}
		}
		h.release()
		logging.FromContext(ctx).Debug().Msg("chromium stopped")
	})
	return h.shutdownErr
}
