package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/egdesk/taehwa/internal/application/eventbus"
	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/event"
	urlutil "github.com/egdesk/taehwa/internal/domain/url"
	"github.com/egdesk/taehwa/internal/logging"
	"github.com/egdesk/taehwa/internal/ui/mainloop"
)

// TabManagerConfig holds the collaborators and tunables of a TabManager.
type TabManagerConfig struct {
	Factory port.SurfaceFactory
	Bus     *eventbus.Bridge

	Layout         entity.LayoutMetrics
	BoundsDebounce time.Duration

	AcceptInvalidCertificates bool

	// Async runs initial page loads. Defaults to starting a goroutine.
	Async func(func())
	// AfterFunc drives the bounds debouncer. Defaults to time.AfterFunc.
	AfterFunc mainloop.AfterFunc
	Now       func() time.Time
	NewID     func(time.Time) entity.TabID
}

// TabManager owns every surface and the single host window attachment.
//
// State is guarded by one mutex that is released around engine calls that
// may take a while (page loads, scripts, history), so commands interleave.
// Events are always emitted without the lock held.
type TabManager struct {
	mu sync.Mutex

	factory  port.SurfaceFactory
	bus      *eventbus.Bridge
	bounds   *BoundsCoordinator
	registry *Registry

	host      port.HostWindow
	currentID entity.TabID
	hostHooks []func()

	initialized bool
	destroyed   bool
	baseCtx     context.Context

	acceptInvalidCerts bool
	async              func(func())
	now                func() time.Time
	newID              func(time.Time) entity.TabID
}

var _ port.TabController = (*TabManager)(nil)

// NewTabManager creates a TabManager. Initialize must be called before use.
func NewTabManager(ctx context.Context, cfg TabManagerConfig) *TabManager {
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating tab manager")

	m := &TabManager{
		factory:            cfg.Factory,
		bus:                cfg.Bus,
		registry:           NewRegistry(),
		acceptInvalidCerts: cfg.AcceptInvalidCertificates,
		async:              cfg.Async,
		now:                cfg.Now,
		newID:              cfg.NewID,
		baseCtx:            context.WithoutCancel(ctx),
	}
	if m.bus == nil {
		m.bus = eventbus.New()
	}
	if m.async == nil {
		m.async = func(fn func()) { go fn() }
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newID == nil {
		m.newID = NewTabID
	}
	m.bounds = newBoundsCoordinator(cfg.Layout, cfg.BoundsDebounce, cfg.AfterFunc, m.boundsTarget, m.emitBoundsApplied)
	return m
}

// Bus returns the bridge events are published on.
func (m *TabManager) Bus() *eventbus.Bridge { return m.bus }

// Bounds returns the bounds coordinator.
func (m *TabManager) Bounds() *BoundsCoordinator { return m.bounds }

// Initialize binds the manager to host. It subscribes to resize and close
// notifications; a closed host destroys the manager.
func (m *TabManager) Initialize(ctx context.Context, host port.HostWindow) error {
	if host == nil {
		return fmt.Errorf("initialize: host window is nil")
	}

	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return ErrDestroyed
	}
	if m.initialized {
		m.mu.Unlock()
		return ErrAlreadyInitialized
	}
	m.host = host
	m.initialized = true
	m.baseCtx = context.WithoutCancel(ctx)
	m.mu.Unlock()

	unsubResize := host.OnResize(func(width, height int) {
		logging.FromContext(m.baseCtx).Trace().Int("w", width).Int("h", height).Msg("host resized")
		m.bounds.hostResized(m.baseCtx)
	})
	unsubClosed := host.OnClosed(func() {
		logging.FromContext(m.baseCtx).Info().Msg("host window closed, destroying tabs")
		if err := m.Destroy(m.baseCtx); err != nil {
			logging.FromContext(m.baseCtx).Warn().Err(err).Msg("destroy after host close failed")
		}
	})

	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		unsubResize()
		unsubClosed()
		return ErrDestroyed
	}
	m.hostHooks = append(m.hostHooks, unsubResize, unsubClosed)
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().Msg("tab manager initialized")
	return nil
}

// ready must be called with m.mu held.
func (m *TabManager) ready() error {
	switch {
	case m.destroyed:
		return ErrDestroyed
	case !m.initialized:
		return ErrUninitialized
	default:
		return nil
	}
}

// CreateTab allocates a surface, registers it and returns its id without
// waiting for rawURL to load. Load failures leave the tab in the failed state.
func (m *TabManager) CreateTab(ctx context.Context, rawURL string) (entity.TabID, error) {
	log := logging.FromContext(ctx)

	m.mu.Lock()
	if err := m.ready(); err != nil {
		m.mu.Unlock()
		return "", err
	}
	factory := m.factory
	opts := port.SurfaceOptions{AcceptInvalidCertificates: m.acceptInvalidCerts}
	m.mu.Unlock()

	if factory == nil {
		return "", &SurfaceCreationError{Err: fmt.Errorf("no surface factory configured")}
	}
	surface, err := factory.CreateSurface(ctx, opts)
	if err != nil {
		log.Error().Err(err).Msg("failed to create surface")
		return "", &SurfaceCreationError{Err: err}
	}
	if surface == nil {
		return "", &SurfaceCreationError{Err: fmt.Errorf("factory returned nil surface")}
	}

	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		m.releaseSurface(ctx, "", surface)
		return "", ErrDestroyed
	}
	id := m.allocateIDLocked()
	tab := entity.NewTab(id, m.now())
	if err := m.registry.Insert(tab, surface); err != nil {
		m.mu.Unlock()
		m.releaseSurface(ctx, id, surface)
		return "", &SurfaceCreationError{Err: err}
	}
	surface.SetCallbacks(m.callbacksFor(id, surface))
	m.mu.Unlock()

	target := urlutil.Normalize(rawURL)
	log.Debug().Str("tab_id", string(id)).Str("url", logging.TruncateURL(target, 120)).Msg("tab created")
	m.bus.Emit(ctx, event.TabCreated{TabID: id, URL: target})

	if target != "" && target != entity.BlankURL {
		loadCtx := logging.WithTabID(context.WithoutCancel(ctx), string(id))
		m.async(func() {
			if err := m.navigate(loadCtx, id, surface, target); err != nil {
				logging.FromContext(loadCtx).Warn().Err(err).Msg("initial load failed")
			}
		})
	}

	return id, nil
}

func (m *TabManager) allocateIDLocked() entity.TabID {
	for {
		id := m.newID(m.now())
		if !m.registry.Contains(id) {
			return id
		}
	}
}

// SwitchTab attaches id to the host window, hidden until its bounds are
// applied. Switching to the active tab re-emits tab-switched only.
func (m *TabManager) SwitchTab(ctx context.Context, id entity.TabID) (entity.TabSnapshot, error) {
	log := logging.FromContext(ctx)

	m.mu.Lock()
	if err := m.ready(); err != nil {
		m.mu.Unlock()
		return entity.TabSnapshot{}, err
	}
	target, ok := m.registry.Lookup(id)
	if !ok {
		m.mu.Unlock()
		return entity.TabSnapshot{}, &TabNotFoundError{Op: "switch tab", TabID: id}
	}

	previous := m.currentID
	if previous == id {
		snap := target.Tab.Snapshot(true)
		m.mu.Unlock()
		m.bus.Emit(ctx, event.TabSwitched{TabID: id, Previous: previous, Tab: snap})
		return snap, nil
	}

	if prev, ok := m.registry.Lookup(previous); ok {
		if err := m.host.Detach(ctx, prev.Surface); err != nil {
			log.Warn().Err(err).Str("tab_id", string(previous)).Msg("failed to detach previous surface")
		}
	}
	m.currentID = ""

	if err := m.host.Attach(ctx, target.Surface); err != nil {
		m.mu.Unlock()
		log.Error().Err(err).Str("tab_id", string(id)).Msg("failed to attach surface")
		return entity.TabSnapshot{}, fmt.Errorf("switch tab %s: attach: %w", id, err)
	}
	if err := m.host.SetVisible(ctx, target.Surface, false); err != nil {
		log.Warn().Err(err).Str("tab_id", string(id)).Msg("failed to hide surface before bounds")
	}
	m.currentID = id
	snap := target.Tab.Snapshot(true)
	m.mu.Unlock()

	m.bounds.requestForSwitch(ctx)
	log.Debug().Str("tab_id", string(id)).Str("previous", string(previous)).Msg("tab switched")
	m.bus.Emit(ctx, event.TabSwitched{TabID: id, Previous: previous, Tab: snap})
	return snap, nil
}

// CloseTab detaches id if active, then closes, destroys and unregisters its
// surface, in that order.
func (m *TabManager) CloseTab(ctx context.Context, id entity.TabID) error {
	log := logging.FromContext(ctx)

	m.mu.Lock()
	if err := m.ready(); err != nil {
		m.mu.Unlock()
		return err
	}
	view, ok := m.registry.Lookup(id)
	if !ok {
		m.mu.Unlock()
		return &TabNotFoundError{Op: "close tab", TabID: id}
	}

	wasActive := m.currentID == id
	if wasActive {
		if err := m.host.Detach(ctx, view.Surface); err != nil {
			log.Warn().Err(err).Str("tab_id", string(id)).Msg("failed to detach closing surface")
		}
		m.currentID = ""
	}
	view.Surface.SetCallbacks(nil)
	m.releaseSurface(ctx, id, view.Surface)
	m.registry.Remove(id)
	m.mu.Unlock()

	log.Debug().Str("tab_id", string(id)).Bool("was_active", wasActive).Msg("tab closed")
	m.bus.Emit(ctx, event.TabClosed{TabID: id, WasActive: wasActive})
	return nil
}

// releaseSurface runs Close then Destroy. Close failures are logged only.
func (m *TabManager) releaseSurface(ctx context.Context, id entity.TabID, surface port.Surface) {
	if err := surface.Close(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("tab_id", string(id)).Msg("surface close failed")
	}
	surface.Destroy()
}

// LoadURL navigates id, or the active tab when id is empty. With no id and
// no active tab a new tab is created and attached first: navigation always
// has a destination. The returned id is the tab that navigated.
func (m *TabManager) LoadURL(ctx context.Context, rawURL string, id entity.TabID) (entity.TabID, error) {
	target := urlutil.Normalize(rawURL)

	m.mu.Lock()
	if err := m.ready(); err != nil {
		m.mu.Unlock()
		return "", err
	}
	if target == "" {
		m.mu.Unlock()
		return "", &NavigationError{TabID: id, URL: rawURL, Err: ErrEmptyURL}
	}

	if id != "" {
		if !m.registry.Contains(id) {
			m.mu.Unlock()
			return "", &TabNotFoundError{Op: "load url", TabID: id, Target: true}
		}
	} else {
		id = m.currentID
	}
	m.mu.Unlock()

	if id == "" {
		created, err := m.CreateTab(ctx, "")
		if err != nil {
			return "", err
		}
		if _, err := m.SwitchTab(ctx, created); err != nil {
			return created, err
		}
		id = created
		logging.FromContext(ctx).Debug().Str("tab_id", string(id)).Msg("no active tab, created one for navigation")
	}

	m.mu.Lock()
	view, ok := m.registry.Lookup(id)
	m.mu.Unlock()
	if !ok {
		return "", &TabNotFoundError{Op: "load url", TabID: id, Target: true}
	}

	return id, m.navigate(logging.WithTabID(ctx, string(id)), id, view.Surface, target)
}

// navigate drives one LoadURL call. A tab closed (or re-created with another
// surface) while the load was in flight is left alone.
func (m *TabManager) navigate(ctx context.Context, id entity.TabID, surface port.Surface, target string) error {
	ctx = logging.WithURL(ctx, target)
	log := logging.FromContext(ctx)

	m.mu.Lock()
	view, ok := m.registry.Lookup(id)
	if !ok || view.Surface != surface {
		m.mu.Unlock()
		log.Debug().Msg("tab closed before navigation started")
		return nil
	}
	view.Tab.BeginLoading()
	m.mu.Unlock()

	loadErr := surface.LoadURL(ctx, target)

	m.mu.Lock()
	view, ok = m.registry.Lookup(id)
	if !ok || view.Surface != surface {
		m.mu.Unlock()
		log.Debug().Err(loadErr).Msg("navigation finished after tab closed, ignored")
		return nil
	}
	if loadErr != nil {
		view.Tab.FailLoading(loadErr)
		m.mu.Unlock()

		navErr := &NavigationError{TabID: id, URL: target, Err: loadErr}
		m.bus.Emit(ctx, event.LoadingFailed{TabID: id, URL: target, Err: navErr})
		return navErr
	}
	if committed := surface.URL(); committed != "" {
		view.Tab.URL = committed
	} else {
		view.Tab.URL = target
	}
	m.mu.Unlock()
	return nil
}

// resolveLocked finds the surface for id, or the active one for "". It
// returns a nil surface when nothing is active. Must hold m.mu.
func (m *TabManager) resolveLocked(op string, id entity.TabID) (View, entity.TabID, error) {
	if id == "" {
		id = m.currentID
		if id == "" {
			return View{}, "", nil
		}
	}
	view, ok := m.registry.Lookup(id)
	if !ok {
		return View{}, "", &TabNotFoundError{Op: op, TabID: id}
	}
	return view, id, nil
}

// GoBack navigates back if the surface has history. Reaching the start of
// history, or having no tab at all, yields NavResult{Performed: false}.
func (m *TabManager) GoBack(ctx context.Context, id entity.TabID) (entity.NavResult, error) {
	return m.traverse(ctx, "go back", id, func(h entity.HistoryState) bool { return h.CanGoBack },
		func(s port.Surface) error { return s.GoBack(ctx) })
}

// GoForward mirrors GoBack.
func (m *TabManager) GoForward(ctx context.Context, id entity.TabID) (entity.NavResult, error) {
	return m.traverse(ctx, "go forward", id, func(h entity.HistoryState) bool { return h.CanGoForward },
		func(s port.Surface) error { return s.GoForward(ctx) })
}

func (m *TabManager) traverse(
	ctx context.Context,
	op string,
	id entity.TabID,
	possible func(entity.HistoryState) bool,
	move func(port.Surface) error,
) (entity.NavResult, error) {
	m.mu.Lock()
	if err := m.ready(); err != nil {
		m.mu.Unlock()
		return entity.NavResult{}, err
	}
	view, resolved, err := m.resolveLocked(op, id)
	m.mu.Unlock()
	if err != nil {
		return entity.NavResult{}, err
	}
	if view.Surface == nil {
		return entity.NavResult{}, nil
	}

	history, err := view.Surface.History(ctx)
	if err != nil {
		return entity.NavResult{}, fmt.Errorf("%s: read history: %w", op, err)
	}
	if !possible(history) {
		return entity.NavResult{}, nil
	}
	if err := move(view.Surface); err != nil {
		return entity.NavResult{}, &NavigationError{TabID: resolved, Err: err}
	}
	return entity.NavResult{Performed: true}, nil
}

// Reload reloads id or the active tab. No tab is not an error.
func (m *TabManager) Reload(ctx context.Context, id entity.TabID) error {
	m.mu.Lock()
	if err := m.ready(); err != nil {
		m.mu.Unlock()
		return err
	}
	view, resolved, err := m.resolveLocked("reload", id)
	if err != nil || view.Surface == nil {
		m.mu.Unlock()
		return err
	}
	view.Tab.BeginLoading()
	m.mu.Unlock()

	if err := view.Surface.Reload(ctx); err != nil {
		m.mu.Lock()
		if current, ok := m.registry.Lookup(resolved); ok && current.Surface == view.Surface {
			current.Tab.FailLoading(err)
		}
		m.mu.Unlock()
		return &NavigationError{TabID: resolved, URL: view.Surface.URL(), Err: err}
	}
	return nil
}

// Stop stops loading in id or the active tab. No tab is not an error.
func (m *TabManager) Stop(ctx context.Context, id entity.TabID) error {
	m.mu.Lock()
	if err := m.ready(); err != nil {
		m.mu.Unlock()
		return err
	}
	view, _, err := m.resolveLocked("stop", id)
	m.mu.Unlock()
	if err != nil || view.Surface == nil {
		return err
	}

	if err := view.Surface.Stop(ctx); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}

// ExecuteScript runs code in id or the active tab and returns the JSON
// result. Surface failures come back as *ScriptExecutionError wrapping the
// original error.
func (m *TabManager) ExecuteScript(ctx context.Context, code string, id entity.TabID) (json.RawMessage, error) {
	m.mu.Lock()
	if err := m.ready(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	view, resolved, err := m.resolveLocked("execute script", id)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if view.Surface == nil {
		return nil, ErrNoActiveTab
	}

	result, err := view.Surface.ExecuteScript(ctx, code)
	if err != nil {
		return nil, &ScriptExecutionError{TabID: resolved, Err: err}
	}
	return result, nil
}

// NavigationState never fails: it returns entity.DefaultNavigationState()
// when no tab resolves, including before Initialize and after Destroy.
func (m *TabManager) NavigationState(ctx context.Context, id entity.TabID) entity.NavigationState {
	m.mu.Lock()
	if m.ready() != nil {
		m.mu.Unlock()
		return entity.DefaultNavigationState()
	}
	view, _, err := m.resolveLocked("navigation state", id)
	if err != nil || view.Surface == nil {
		m.mu.Unlock()
		return entity.DefaultNavigationState()
	}
	state := entity.NavigationState{
		IsLoading: view.Tab.IsLoading,
		URL:       view.Tab.URL,
		Title:     view.Tab.DisplayTitle(),
	}
	surface := view.Surface
	m.mu.Unlock()

	if surface.IsDestroyed() {
		return state
	}
	history, err := surface.History(ctx)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("history query failed")
		return state
	}
	state.CanGoBack = history.CanGoBack
	state.CanGoForward = history.CanGoForward
	return state
}

// UpdateBounds queues bounds for the active surface. nil requests an
// estimate from the host window size.
func (m *TabManager) UpdateBounds(ctx context.Context, bounds *entity.Bounds) error {
	m.mu.Lock()
	err := m.ready()
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.bounds.Request(ctx, bounds)
	return nil
}

// Tabs lists tabs in creation order.
func (m *TabManager) Tabs(_ context.Context) []entity.TabSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	views := m.registry.Views()
	snaps := make([]entity.TabSnapshot, 0, len(views))
	for _, v := range views {
		snaps = append(snaps, v.Tab.Snapshot(v.Tab.ID == m.currentID))
	}
	return snaps
}

// Tab returns a snapshot of one tab.
func (m *TabManager) Tab(id entity.TabID) (entity.TabSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	view, ok := m.registry.Lookup(id)
	if !ok {
		return entity.TabSnapshot{}, false
	}
	return view.Tab.Snapshot(id == m.currentID), true
}

// ActiveTabID returns the attached tab, or "" when none is.
func (m *TabManager) ActiveTabID() entity.TabID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentID
}

// Destroy closes every tab best-effort, forgets the host window and drops
// all subscriptions. Calling it again is a no-op.
func (m *TabManager) Destroy(ctx context.Context) error {
	log := logging.FromContext(ctx)

	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return nil
	}
	m.destroyed = true

	views := m.registry.Views()
	closed := make([]event.TabClosed, 0, len(views))
	for _, v := range views {
		active := v.Tab.ID == m.currentID
		if active && m.host != nil {
			if err := m.host.Detach(ctx, v.Surface); err != nil {
				log.Warn().Err(err).Str("tab_id", string(v.Tab.ID)).Msg("failed to detach surface during destroy")
			}
		}
		v.Surface.SetCallbacks(nil)
		m.releaseSurface(ctx, v.Tab.ID, v.Surface)
		closed = append(closed, event.TabClosed{TabID: v.Tab.ID, WasActive: active})
	}
	m.registry.Clear()
	m.currentID = ""
	m.host = nil
	hooks := m.hostHooks
	m.hostHooks = nil
	m.mu.Unlock()

	for _, unsubscribe := range hooks {
		unsubscribe()
	}
	m.bounds.stop()

	for _, ev := range closed {
		m.bus.Emit(ctx, ev)
	}
	m.bus.Clear()

	log.Debug().Int("tabs", len(closed)).Msg("tab manager destroyed")
	return nil
}

// SetLayout applies new layout constants, e.g. after a config reload.
func (m *TabManager) SetLayout(ctx context.Context, metrics entity.LayoutMetrics, debounce time.Duration) {
	m.bounds.SetMetrics(metrics)
	m.bounds.SetDebounce(debounce)

	m.mu.Lock()
	active := m.ready() == nil && m.currentID != ""
	m.mu.Unlock()
	if active {
		m.bounds.requestForSwitch(ctx)
	}
}

func (m *TabManager) boundsTarget() (boundsTarget, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.host == nil || m.currentID == "" {
		return boundsTarget{}, false
	}
	view, ok := m.registry.Lookup(m.currentID)
	if !ok {
		return boundsTarget{}, false
	}
	return boundsTarget{tabID: m.currentID, surface: view.Surface, host: m.host}, true
}

func (m *TabManager) emitBoundsApplied(ctx context.Context, ev event.BoundsApplied) {
	m.bus.Emit(ctx, ev)
}
