package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/event"
	"github.com/egdesk/taehwa/internal/logging"
	"github.com/egdesk/taehwa/internal/ui/mainloop"
)

// DefaultBoundsDebounce is one display refresh at 60Hz.
const DefaultBoundsDebounce = 16 * time.Millisecond

// boundsTarget is the active surface at apply time.
type boundsTarget struct {
	tabID   entity.TabID
	surface port.Surface
	host    port.HostWindow
}

type boundsRequest struct {
	source entity.BoundsSource
	// bounds is nil for estimates; they are computed from the window size
	// when applied.
	bounds *entity.Bounds
}

// BoundsCoordinator positions the active surface. Requests are debounced:
// a burst applies once, with the most recent request, except that a pending
// precise request is never replaced by an estimate.
type BoundsCoordinator struct {
	mu          sync.Mutex
	metrics     entity.LayoutMetrics
	debouncer   *mainloop.Debouncer
	pending     *boundsRequest
	lastPrecise *entity.Bounds
	resolve     func() (boundsTarget, bool)
	onApplied   func(ctx context.Context, ev event.BoundsApplied)
}

func newBoundsCoordinator(
	metrics entity.LayoutMetrics,
	debounce time.Duration,
	afterFunc mainloop.AfterFunc,
	resolve func() (boundsTarget, bool),
	onApplied func(ctx context.Context, ev event.BoundsApplied),
) *BoundsCoordinator {
	if debounce <= 0 {
		debounce = DefaultBoundsDebounce
	}
	return &BoundsCoordinator{
		metrics:   metrics,
		debouncer: mainloop.NewDebouncer(debounce, afterFunc),
		resolve:   resolve,
		onApplied: onApplied,
	}
}

// Estimate returns the formula rectangle for a window of the given size.
func (c *BoundsCoordinator) Estimate(width, height int) entity.Bounds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metrics.EstimateBounds(width, height)
}

// Request queues bounds for the active surface. nil asks for an estimate.
func (c *BoundsCoordinator) Request(ctx context.Context, bounds *entity.Bounds) {
	c.mu.Lock()
	if bounds != nil {
		b := *bounds
		c.lastPrecise = &b
		c.pending = &boundsRequest{source: entity.BoundsPrecise, bounds: &b}
	} else if c.pending == nil || c.pending.source != entity.BoundsPrecise {
		c.pending = &boundsRequest{source: entity.BoundsEstimated}
	}
	c.mu.Unlock()

	applyCtx := context.WithoutCancel(ctx)
	c.debouncer.Trigger(func() { c.apply(applyCtx) })
}

// requestForSwitch reuses the last measured bounds, if still valid.
func (c *BoundsCoordinator) requestForSwitch(ctx context.Context) {
	c.mu.Lock()
	var last *entity.Bounds
	if c.lastPrecise != nil {
		b := *c.lastPrecise
		last = &b
	}
	c.mu.Unlock()
	c.Request(ctx, last)
}

// hostResized forgets the measured bounds so later switches estimate until
// the UI measures again. A precise request already pending still wins over
// the estimate queued here.
func (c *BoundsCoordinator) hostResized(ctx context.Context) {
	c.mu.Lock()
	c.lastPrecise = nil
	c.mu.Unlock()
	c.Request(ctx, nil)
}

// SetMetrics replaces the layout constants used by later estimates.
func (c *BoundsCoordinator) SetMetrics(metrics entity.LayoutMetrics) {
	c.mu.Lock()
	c.metrics = metrics
	c.mu.Unlock()
}

// SetDebounce changes the debounce window for later requests.
func (c *BoundsCoordinator) SetDebounce(d time.Duration) {
	if d <= 0 {
		d = DefaultBoundsDebounce
	}
	c.debouncer.SetDelay(d)
}

// Flush applies a pending request immediately.
func (c *BoundsCoordinator) Flush() bool {
	return c.debouncer.Flush()
}

// stop drops pending work for good.
func (c *BoundsCoordinator) stop() {
	c.debouncer.Stop()
	c.mu.Lock()
	c.pending = nil
	c.lastPrecise = nil
	c.mu.Unlock()
}

func (c *BoundsCoordinator) apply(ctx context.Context) {
	log := logging.FromContext(ctx)

	c.mu.Lock()
	req := c.pending
	c.pending = nil
	metrics := c.metrics
	c.mu.Unlock()
	if req == nil {
		return
	}

	target, ok := c.resolve()
	if !ok || target.surface == nil || target.host == nil {
		log.Debug().Msg("bounds: no active surface, request dropped")
		return
	}

	var rect entity.Bounds
	if req.bounds != nil {
		rect = *req.bounds
	} else {
		rect = metrics.EstimateBounds(target.host.Size())
	}

	if err := target.host.SetBounds(ctx, target.surface, rect); err != nil {
		log.Warn().Err(err).
			Str("tab_id", string(target.tabID)).
			Str("source", req.source.String()).
			Msg("bounds: failed to set surface bounds")
	}
	if err := target.host.SetVisible(ctx, target.surface, true); err != nil {
		log.Warn().Err(err).
			Str("tab_id", string(target.tabID)).
			Msg("bounds: failed to show surface")
		return
	}

	log.Trace().
		Str("tab_id", string(target.tabID)).
		Str("source", req.source.String()).
		Int("x", rect.X).Int("y", rect.Y).
		Int("w", rect.Width).Int("h", rect.Height).
		Msg("bounds applied")

	if c.onApplied != nil {
		c.onApplied(ctx, event.BoundsApplied{
			TabID:  target.tabID,
			Bounds: rect,
			Source: req.source,
		})
	}
}
