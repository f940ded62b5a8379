// Package bootstrap wires the browser runtime: engine host, tab manager,
// persistence and the command dispatcher shared by every front end.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/egdesk/taehwa/internal/application/command"
	"github.com/egdesk/taehwa/internal/application/eventbus"
	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/application/usecase"
	"github.com/egdesk/taehwa/internal/config"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/event"
	"github.com/egdesk/taehwa/internal/infrastructure/persistence/sqlite"
	"github.com/egdesk/taehwa/internal/logging"
	"github.com/egdesk/taehwa/internal/ui/coordinator"
	"github.com/egdesk/taehwa/internal/ui/mainloop"
)

// ErrHostClosed is returned by Run when the browser window went away.
var ErrHostClosed = errors.New("host window closed")

// errFrontendDone stops the run group when a front end returns cleanly.
var errFrontendDone = errors.New("front end finished")

// Options configure a Runtime.
type Options struct {
	Config *config.Config
	// Manager, when set, pushes config reloads into the running tabs.
	Manager *config.Manager
	// NewHost overrides the engine selected by Config.Browser.Engine.
	NewHost HostFactory
	// SessionID names this run. Generated when empty.
	SessionID entity.SessionID

	// InitialURL is opened when nothing was restored. Empty opens the
	// homepage.
	InitialURL string
	// RestoreSessionID restores that snapshot. Empty restores the latest
	// one when Config.Session.RestoreOnStartup is set.
	RestoreSessionID entity.SessionID
	// NoRestore skips session restore.
	NoRestore bool
	// NoInitialTab starts without any tab, e.g. for scripts.
	NoInitialTab bool
}

// Runtime owns everything that lives as long as the browser window.
type Runtime struct {
	cfg       *config.Config
	sessionID entity.SessionID
	timer     *StartupTimer

	loop     *mainloop.Loop
	loopDone chan struct{}

	host       port.Host
	tabs       *coordinator.TabManager
	dispatcher *command.Dispatcher
	navigate   *usecase.NavigateUseCase
	db         *sqlite.LazyDB

	snapshotUC *usecase.SnapshotSessionUseCase
	restoreUC  *usecase.RestoreSessionUseCase
	cleanupUC  *usecase.CleanupSessionsUseCase

	dirty       atomic.Bool
	snapshotNow chan struct{}
	hostClosed  chan struct{}
	closedOnce  sync.Once
	unhook      []func()

	closeOnce sync.Once
	closeErr  error
}

// Start launches the engine and opens the database in parallel, then binds
// the tab manager to the host window and opens the first tabs.
func Start(ctx context.Context, opts Options) (*Runtime, error) {
	if opts.Config == nil {
		return nil, errors.New("start runtime: config is nil")
	}
	log := logging.FromContext(ctx)
	cfg := opts.Config

	r := &Runtime{
		cfg:        cfg,
		sessionID:  opts.SessionID,
		timer:      NewStartupTimer(),
		loop:       mainloop.NewLoop(),
		loopDone:    make(chan struct{}),
		snapshotNow: make(chan struct{}, 1),
		hostClosed:  make(chan struct{}),
	}
	if r.sessionID == "" {
		r.sessionID = entity.SessionID(logging.GenerateSessionID())
	}
	go func() {
		defer close(r.loopDone)
		_ = r.loop.Run(logging.WithComponent(context.WithoutCancel(ctx), "mainloop"))
	}()

	dbPath := cfg.Database.Path
	if dbPath == "" {
		path, err := config.GetDatabaseFile()
		if err != nil {
			r.loop.Close()
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		dbPath = path
	}
	r.db = sqlite.NewLazyDB(dbPath)

	newHost := opts.NewHost
	if newHost == nil {
		newHost = EngineHost(false)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		host, err := newHost(gctx, cfg, r.loop.Post)
		if err != nil {
			return fmt.Errorf("start browser engine: %w", err)
		}
		r.host = host
		r.timer.MarkDuration("host", time.Since(start))
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		if _, err := r.db.DB(gctx); err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		r.timer.MarkDuration("database", time.Since(start))
		return nil
	})
	if err := g.Wait(); err != nil {
		r.abort(ctx)
		return nil, err
	}
	r.timer.Mark("parallel_init")

	r.tabs = coordinator.NewTabManager(ctx, coordinator.TabManagerConfig{
		Factory:                   r.host,
		Layout:                    LayoutFrom(cfg),
		BoundsDebounce:            time.Duration(cfg.Layout.DebounceMs) * time.Millisecond,
		AcceptInvalidCertificates: cfg.Security.AcceptInvalidCertificates,
	})
	r.unhook = append(r.unhook, r.host.OnClosed(r.markHostClosed))
	if err := r.tabs.Initialize(ctx, r.host); err != nil {
		r.abort(ctx)
		return nil, fmt.Errorf("initialize tabs: %w", err)
	}
	r.unhook = append(r.unhook,
		trackChanges(r.tabs.Bus(), &r.dirty),
		snapshotOnCrash(r.tabs.Bus(), r.snapshotNow),
	)

	stateRepo := sqlite.NewLazySessionStateRepository(r.db)
	settings := usecase.NewManageSettingsUseCase(sqlite.NewLazySettingsRepository(r.db))
	r.snapshotUC = usecase.NewSnapshotSessionUseCase(stateRepo, r.tabs)
	r.restoreUC = usecase.NewRestoreSessionUseCase(stateRepo, r.tabs)
	r.cleanupUC = usecase.NewCleanupSessionsUseCase(stateRepo)
	r.navigate = usecase.NewNavigateUseCase(r.tabs, cfg.Search.ShortcutURLs(), cfg.Search.DefaultEngine)
	r.dispatcher = command.NewDispatcher(command.Deps{
		Tabs:     r.tabs,
		Navigate: r.navigate,
		Wait:     usecase.NewWaitForElementUseCase(r.tabs, time.Duration(cfg.Automation.WaitPollIntervalMs)*time.Millisecond),
		Settings: settings,
	})
	r.timer.Mark("wiring")

	if opts.Manager != nil {
		r.watchConfig(ctx, opts.Manager)
	}

	r.openInitialTabs(ctx, opts)
	r.timer.Mark("initial_tabs")
	r.timer.Log(ctx)

	log.Info().
		Str("session_id", string(r.sessionID)).
		Str("engine", string(cfg.Browser.Engine)).
		Int("tabs", len(r.tabs.Tabs(ctx))).
		Dur("startup", r.timer.Total()).
		Msg("runtime started")
	return r, nil
}

// LayoutFrom converts the layout config section.
func LayoutFrom(cfg *config.Config) entity.LayoutMetrics {
	return entity.LayoutMetrics{
		HeaderHeight:     cfg.Layout.HeaderHeight,
		ControlBarHeight: cfg.Layout.ControlBarHeight,
		Padding:          cfg.Layout.Padding,
		ConsoleRatio:     cfg.Layout.ConsoleRatio,
	}
}

// trackChanges flags the session dirty on every tab change. Bounds updates
// do not change what a snapshot stores.
func trackChanges(bus *eventbus.Bridge, dirty *atomic.Bool) func() {
	sub := bus.OnAll(func(_ context.Context, ev event.Event) {
		if ev.Kind() != event.KindBoundsApplied {
			dirty.Store(true)
		}
	})
	return func() { bus.Off(sub) }
}

// snapshotOnCrash asks the snapshot loop for an immediate save when a
// content process dies, before the engine can take other tabs down with it.
func snapshotOnCrash(bus *eventbus.Bridge, now chan<- struct{}) func() {
	sub := eventbus.Subscribe(bus, func(ctx context.Context, ev event.TabCrashed) {
		logging.FromContext(ctx).Debug().
			Str("tab_id", string(ev.TabID)).
			Msg("snapshot requested after crash")
		select {
		case now <- struct{}{}:
		default:
		}
	})
	return func() { bus.Off(sub) }
}

func (r *Runtime) openInitialTabs(ctx context.Context, opts Options) {
	log := logging.FromContext(ctx)

	restore := !opts.NoRestore && (opts.RestoreSessionID != "" || r.cfg.Session.RestoreOnStartup)
	if restore {
		out, err := r.restoreUC.Execute(ctx, usecase.RestoreInput{
			SessionID:        opts.RestoreSessionID,
			CurrentSessionID: r.sessionID,
		})
		switch {
		case errors.Is(err, usecase.ErrSessionNotFound):
			log.Debug().Msg("no session to restore")
		case err != nil:
			log.Warn().Err(err).Msg("session restore failed")
		case len(out.Restored) > 0:
			log.Info().
				Str("restored_from", string(out.SessionID)).
				Int("tabs", len(out.Restored)).
				Msg("session restored")
			if opts.InitialURL == "" {
				return
			}
		}
	}

	if opts.NoInitialTab {
		return
	}
	target := opts.InitialURL
	if target == "" {
		target = r.cfg.Browser.Homepage
	}
	if _, err := r.navigate.Execute(ctx, usecase.NavigateInput{Input: target}); err != nil {
		log.Warn().Err(err).Str("url", logging.TruncateURL(target, 80)).Msg("failed to open initial tab")
	}
}

func (r *Runtime) watchConfig(ctx context.Context, manager *config.Manager) {
	log := logging.FromContext(ctx)
	manager.OnConfigChange(func(cfg *config.Config) {
		r.loop.Post(func() {
			r.tabs.SetLayout(ctx, LayoutFrom(cfg), time.Duration(cfg.Layout.DebounceMs)*time.Millisecond)
			r.navigate.SetSearch(cfg.Search.ShortcutURLs(), cfg.Search.DefaultEngine)
			log.Info().Msg("config reloaded")
		})
	})
	if err := manager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch disabled")
	}
}

func (r *Runtime) markHostClosed() {
	r.closedOnce.Do(func() { close(r.hostClosed) })
}

// SessionID identifies this run in the session store.
func (r *Runtime) SessionID() entity.SessionID { return r.sessionID }

// Dispatcher runs named commands against the tabs.
func (r *Runtime) Dispatcher() *command.Dispatcher { return r.dispatcher }

// Tabs returns the tab manager.
func (r *Runtime) Tabs() *coordinator.TabManager { return r.tabs }

// Events streams tab events until the runtime closes.
func (r *Runtime) Events(depth int) (<-chan event.Event, func()) {
	return r.tabs.Bus().Stream(depth)
}

// Timer exposes the startup phase timings.
func (r *Runtime) Timer() *StartupTimer { return r.timer }

// HostClosed is closed once the browser window goes away.
func (r *Runtime) HostClosed() <-chan struct{} { return r.hostClosed }

// Snapshot saves the open tabs under this session. Nothing is written once
// the window is gone, so the last good snapshot survives.
func (r *Runtime) Snapshot(ctx context.Context) error {
	select {
	case <-r.hostClosed:
		return nil
	default:
	}
	r.dirty.Store(false)
	return r.snapshotUC.Execute(ctx, usecase.SnapshotInput{SessionID: r.sessionID})
}

// Run blocks until ctx is done, the window closes, or a front end returns.
// Front ends run concurrently with the snapshotter and share the
// group's context. ErrHostClosed is reported; clean stops return nil.
func (r *Runtime) Run(ctx context.Context, frontends ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-r.hostClosed:
			return ErrHostClosed
		case <-gctx.Done():
			return nil
		}
	})
	g.Go(func() error {
		r.snapshotLoop(gctx, time.Duration(r.cfg.Session.SnapshotIntervalMs)*time.Millisecond)
		return nil
	})
	for _, run := range frontends {
		g.Go(func() error {
			if err := run(gctx); err != nil {
				return err
			}
			return errFrontendDone
		})
	}

	err := g.Wait()
	switch {
	case errors.Is(err, errFrontendDone):
		return nil
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		return nil
	}
	return err
}

// snapshotLoop saves dirty sessions every interval and on demand. A
// non-positive interval disables the periodic saves only.
func (r *Runtime) snapshotLoop(ctx context.Context, interval time.Duration) {
	log := logging.FromContext(ctx)
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.snapshotNow:
			if err := r.Snapshot(ctx); err != nil {
				log.Warn().Err(err).Msg("snapshot after crash failed")
			}
		case <-tick:
			if !r.dirty.Load() {
				continue
			}
			if err := r.Snapshot(ctx); err != nil {
				log.Warn().Err(err).Msg("periodic snapshot failed")
			}
		}
	}
}

// Close takes a final snapshot, prunes old ones, then tears down the tabs,
// the engine and the database in that order. Safe to call more than once.
func (r *Runtime) Close(ctx context.Context) error {
	r.closeOnce.Do(func() { r.closeErr = r.shutdown(ctx) })
	return r.closeErr
}

func (r *Runtime) shutdown(ctx context.Context) error {
	log := logging.FromContext(ctx)
	var errs []error

	if err := r.Snapshot(ctx); err != nil {
		log.Warn().Err(err).Msg("final snapshot failed")
	}
	if _, err := r.cleanupUC.Execute(ctx, usecase.CleanupSessionsInput{
		CurrentSessionID: r.sessionID,
		MaxSnapshots:     r.cfg.Session.MaxSnapshots,
		MaxAgeDays:       r.cfg.Session.MaxAgeDays,
	}); err != nil {
		log.Warn().Err(err).Msg("session cleanup failed")
	}

	for _, unhook := range r.unhook {
		unhook()
	}
	if err := r.tabs.Destroy(ctx); err != nil {
		errs = append(errs, fmt.Errorf("destroy tabs: %w", err))
	}
	if err := r.host.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown host: %w", err))
	}
	r.loop.Close()
	<-r.loopDone
	if err := r.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}

	log.Info().Str("session_id", string(r.sessionID)).Msg("runtime stopped")
	return errors.Join(errs...)
}

// abort releases whatever Start managed to bring up.
func (r *Runtime) abort(ctx context.Context) {
	log := logging.FromContext(ctx)
	for _, unhook := range r.unhook {
		unhook()
	}
	if r.tabs != nil {
		_ = r.tabs.Destroy(ctx)
	}
	if r.host != nil {
		if err := r.host.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to shut down engine after startup error")
		}
	}
	r.loop.Close()
	<-r.loopDone
	if r.db != nil {
		_ = r.db.Close()
	}
}
