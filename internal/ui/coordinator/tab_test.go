package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egdesk/taehwa/internal/application/eventbus"
	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/event"
	"github.com/egdesk/taehwa/internal/testutil/fakehost"
)

func TestTabManager_OperationsBeforeInitialize(t *testing.T) {
	ctx := testContext()
	host := fakehost.New(800, 600)
	m := NewTabManager(ctx, TabManagerConfig{Factory: host})

	_, err := m.CreateTab(ctx, "")
	assert.ErrorIs(t, err, ErrUninitialized)
	_, err = m.SwitchTab(ctx, "tab-1")
	assert.ErrorIs(t, err, ErrUninitialized)
	assert.ErrorIs(t, m.CloseTab(ctx, "tab-1"), ErrUninitialized)
	_, err = m.LoadURL(ctx, "example.com", "")
	assert.ErrorIs(t, err, ErrUninitialized)
	_, err = m.GoBack(ctx, "")
	assert.ErrorIs(t, err, ErrUninitialized)
	_, err = m.GoForward(ctx, "")
	assert.ErrorIs(t, err, ErrUninitialized)
	assert.ErrorIs(t, m.Reload(ctx, ""), ErrUninitialized)
	assert.ErrorIs(t, m.Stop(ctx, ""), ErrUninitialized)
	_, err = m.ExecuteScript(ctx, "1", "")
	assert.ErrorIs(t, err, ErrUninitialized)
	assert.ErrorIs(t, m.UpdateBounds(ctx, nil), ErrUninitialized)

	assert.Equal(t, entity.DefaultNavigationState(), m.NavigationState(ctx, ""))
	assert.Empty(t, host.Surfaces(), "nothing touches the host before Initialize")
}

func TestTabManager_Initialize(t *testing.T) {
	ctx := testContext()

	t.Run("twice", func(t *testing.T) {
		host := fakehost.New(800, 600)
		m := NewTabManager(ctx, TabManagerConfig{Factory: host})
		require.NoError(t, m.Initialize(ctx, host))
		assert.ErrorIs(t, m.Initialize(ctx, host), ErrAlreadyInitialized)
		assert.Equal(t, 2, host.HookCount(), "hooks registered once")
	})

	t.Run("after destroy", func(t *testing.T) {
		host := fakehost.New(800, 600)
		m := NewTabManager(ctx, TabManagerConfig{Factory: host})
		require.NoError(t, m.Destroy(ctx))
		assert.ErrorIs(t, m.Initialize(ctx, host), ErrDestroyed)
		assert.Zero(t, host.HookCount())
	})

	t.Run("nil host", func(t *testing.T) {
		m := NewTabManager(ctx, TabManagerConfig{})
		assert.Error(t, m.Initialize(ctx, nil))
	})
}

func TestCreateTab_IDsAreUniqueAndResolvable(t *testing.T) {
	h := newHarness(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h.manager.now = func() time.Time { return fixed }

	seen := make(map[entity.TabID]bool)
	for i := 0; i < 50; i++ {
		id := h.create(t, "")
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true

		assert.Regexp(t, `^tab-\d+-[0-9a-f]{8}$`, string(id))
		state := h.manager.NavigationState(h.ctx, id)
		assert.NotEqual(t, entity.DefaultNavigationState(), state)
		assert.Equal(t, entity.BlankURL, state.URL)
	}
	assert.Len(t, h.manager.Tabs(h.ctx), 50)
}

func TestCreateTab_LoadsInitialURL(t *testing.T) {
	h := newHarness(t)

	id := h.create(t, "example.com")

	surface := h.surface(t, 0)
	assert.Equal(t, []string{"https://example.com"}, surface.Loads())
	assert.True(t, surface.HasCallbacks())
	assert.True(t, h.host.LastOptions.AcceptInvalidCertificates)

	snap, ok := h.manager.Tab(id)
	require.True(t, ok)
	assert.Equal(t, "https://example.com", snap.URL)
	assert.True(t, snap.IsLoading, "loading until the surface reports did-finish-load")
	assert.Equal(t, entity.LoadStateLoading, snap.LoadState)

	ev, ok := h.events.last(event.KindTabCreated)
	require.True(t, ok)
	assert.Equal(t, event.TabCreated{TabID: id, URL: "https://example.com"}, ev)
}

func TestCreateTab_ReturnsBeforeLoad(t *testing.T) {
	h := newHarness(t, withQueuedLoads())

	id := h.create(t, "https://example.com")

	surface := h.surface(t, 0)
	assert.Empty(t, surface.Loads(), "load has not started yet")
	require.Len(t, h.queued, 1)

	h.runQueued()
	assert.Equal(t, []string{"https://example.com"}, surface.Loads())
	snap, _ := h.manager.Tab(id)
	assert.True(t, snap.IsLoading)
}

func TestCreateTab_BlankDoesNotLoad(t *testing.T) {
	h := newHarness(t, withQueuedLoads())

	h.create(t, "")
	h.create(t, entity.BlankURL)

	assert.Empty(t, h.queued)
}

func TestCreateTab_SurfaceCreationFailure(t *testing.T) {
	h := newHarness(t)
	h.host.CreateErr = errors.New("renderer unavailable")

	id, err := h.manager.CreateTab(h.ctx, "https://example.com")

	var creationErr *SurfaceCreationError
	require.ErrorAs(t, err, &creationErr)
	assert.ErrorIs(t, err, h.host.CreateErr)
	assert.Empty(t, id)
	assert.Empty(t, h.manager.Tabs(h.ctx))
	assert.Zero(t, h.events.count(event.KindTabCreated))
}

func TestCreateTab_InitialLoadFailureKeepsTab(t *testing.T) {
	h := newHarness(t, withQueuedLoads())

	id := h.create(t, "https://unreachable.invalid")
	h.surface(t, 0).LoadErr = errors.New("net::ERR_NAME_NOT_RESOLVED")
	h.runQueued()

	snap, ok := h.manager.Tab(id)
	require.True(t, ok, "tab survives a failed initial load")
	assert.False(t, snap.IsLoading)
	assert.Equal(t, entity.LoadStateFailed, snap.LoadState)
	assert.Equal(t, entity.BlankURL, snap.URL)

	ev, ok := h.events.last(event.KindLoadingFailed)
	require.True(t, ok)
	failed := ev.(event.LoadingFailed)
	var navErr *NavigationError
	assert.ErrorAs(t, failed.Err, &navErr)
	assert.Equal(t, "https://unreachable.invalid", failed.URL)
}

func TestSwitchTab_DetachAttachHideThenBounds(t *testing.T) {
	h := newHarness(t)
	first := h.create(t, "")
	second := h.create(t, "")

	_, err := h.manager.SwitchTab(h.ctx, first)
	require.NoError(t, err)
	h.settle()
	h.host.ResetCalls()

	snap, err := h.manager.SwitchTab(h.ctx, second)
	require.NoError(t, err)
	assert.Equal(t, second, snap.ID)
	assert.True(t, snap.Active)

	assert.Equal(t, []string{
		"detach surface-1",
		"attach surface-2",
		"visible surface-2 false",
	}, h.host.Calls())
	assert.False(t, h.host.Visible(h.surface(t, 1)), "hidden until bounds are applied")

	h.settle()
	assert.Equal(t, []string{
		"detach surface-1",
		"attach surface-2",
		"visible surface-2 false",
		"bounds surface-2",
		"visible surface-2 true",
	}, h.host.Calls())
	assert.Equal(t, []fakehost.BoundsCall{{
		Surface: "surface-2",
		Bounds:  entity.Bounds{X: 10, Y: 90, Width: 880, Height: 700},
	}}, h.host.BoundsCalls())

	ev, ok := h.events.last(event.KindTabSwitched)
	require.True(t, ok)
	assert.Equal(t, first, ev.(event.TabSwitched).Previous)
	applied, ok := h.events.last(event.KindBoundsApplied)
	require.True(t, ok)
	assert.Equal(t, entity.BoundsEstimated, applied.(event.BoundsApplied).Source)
}

func TestSwitchTab_SameTabStillEmits(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "")
	_, err := h.manager.SwitchTab(h.ctx, id)
	require.NoError(t, err)
	h.settle()
	h.host.ResetCalls()
	h.events.reset()

	_, err = h.manager.SwitchTab(h.ctx, id)
	require.NoError(t, err)

	assert.Empty(t, h.host.Calls(), "no detach/attach cycle")
	assert.Equal(t, 1, h.events.count(event.KindTabSwitched))
}

func TestSwitchTab_UnknownDoesNotMutate(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "")
	_, err := h.manager.SwitchTab(h.ctx, id)
	require.NoError(t, err)
	h.host.ResetCalls()

	_, err = h.manager.SwitchTab(h.ctx, "tab-missing")

	var notFound *TabNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, err, ErrTabNotFound)
	assert.Equal(t, entity.TabID("tab-missing"), notFound.TabID)
	assert.Equal(t, id, h.manager.ActiveTabID())
	assert.Empty(t, h.host.Calls())
}

func TestSwitchTab_AttachFailure(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "")
	h.host.AttachErr = errors.New("window gone")

	_, err := h.manager.SwitchTab(h.ctx, id)

	assert.ErrorIs(t, err, h.host.AttachErr)
	assert.Empty(t, h.manager.ActiveTabID())
}

func TestCloseTab_ActiveTabResetsState(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "https://example.com")
	_, err := h.manager.SwitchTab(h.ctx, id)
	require.NoError(t, err)
	h.host.ResetCalls()

	require.NoError(t, h.manager.CloseTab(h.ctx, id))

	assert.Empty(t, h.manager.ActiveTabID())
	assert.Equal(t, entity.DefaultNavigationState(), h.manager.NavigationState(h.ctx, ""))
	assert.Equal(t, entity.NavigationState{
		CanGoBack:    false,
		CanGoForward: false,
		IsLoading:    false,
		URL:          "about:blank",
		Title:        "No Tab",
	}, h.manager.NavigationState(h.ctx, ""))
	assert.Equal(t, []string{"detach surface-1", "close surface-1", "destroy surface-1"}, h.host.Calls())
	assert.Nil(t, h.host.Attached())

	_, ok := h.manager.Tab(id)
	assert.False(t, ok)
	ev, ok := h.events.last(event.KindTabClosed)
	require.True(t, ok)
	assert.Equal(t, event.TabClosed{TabID: id, WasActive: true}, ev)
}

func TestCloseTab_InactiveKeepsActive(t *testing.T) {
	h := newHarness(t)
	active := h.create(t, "")
	other := h.create(t, "")
	_, err := h.manager.SwitchTab(h.ctx, active)
	require.NoError(t, err)
	h.host.ResetCalls()

	require.NoError(t, h.manager.CloseTab(h.ctx, other))

	assert.Equal(t, active, h.manager.ActiveTabID())
	assert.Equal(t, []string{"close surface-2", "destroy surface-2"}, h.host.Calls())
}

func TestCloseTab_Unknown(t *testing.T) {
	h := newHarness(t)

	err := h.manager.CloseTab(h.ctx, "tab-missing")

	var notFound *TabNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.NotErrorIs(t, err, ErrNoActiveTab)
}

func TestCloseTab_CloseErrorStillReleases(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "")
	surface := h.surface(t, 0)
	surface.CloseErr = errors.New("target already gone")

	require.NoError(t, h.manager.CloseTab(h.ctx, id))

	assert.True(t, surface.IsDestroyed())
	assert.Empty(t, h.manager.Tabs(h.ctx))
}

func TestLoadURL_NoTabsCreatesAndAttaches(t *testing.T) {
	h := newHarness(t)

	id, err := h.manager.LoadURL(h.ctx, "example.com", "")
	require.NoError(t, err)

	tabs := h.manager.Tabs(h.ctx)
	require.Len(t, tabs, 1)
	assert.Equal(t, id, tabs[0].ID)
	assert.True(t, tabs[0].Active)
	assert.Equal(t, id, h.manager.ActiveTabID())

	surface := h.surface(t, 0)
	assert.Same(t, surface, h.host.Attached())
	assert.Equal(t, []string{"https://example.com"}, surface.Loads())
	assert.Equal(t, 1, h.events.count(event.KindTabCreated))
}

func TestLoadURL_UsesActiveTab(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "")
	_, err := h.manager.SwitchTab(h.ctx, id)
	require.NoError(t, err)

	got, err := h.manager.LoadURL(h.ctx, "https://go.dev/doc", "")
	require.NoError(t, err)

	assert.Equal(t, id, got)
	snap, _ := h.manager.Tab(id)
	assert.Equal(t, "https://go.dev/doc", snap.URL)
	assert.True(t, snap.IsLoading)
	assert.Len(t, h.manager.Tabs(h.ctx), 1)
}

func TestLoadURL_UnknownExplicitTab(t *testing.T) {
	h := newHarness(t)

	_, err := h.manager.LoadURL(h.ctx, "https://example.com", "tab-missing")

	assert.ErrorIs(t, err, ErrNoActiveTab)
	assert.ErrorIs(t, err, ErrTabNotFound)
	assert.Empty(t, h.manager.Tabs(h.ctx), "explicit target never creates a tab")
}

func TestLoadURL_EmptyInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.manager.LoadURL(h.ctx, "   ", "")

	assert.ErrorIs(t, err, ErrEmptyURL)
	assert.Empty(t, h.manager.Tabs(h.ctx))
}

func TestLoadURL_FailureLeavesURL(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "https://example.com")
	surface := h.surface(t, 0)
	surface.FireLoadFinished("https://example.com")
	surface.LoadErr = errors.New("net::ERR_CONNECTION_REFUSED")

	_, err := h.manager.LoadURL(h.ctx, "https://down.example", id)

	var navErr *NavigationError
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, id, navErr.TabID)
	assert.ErrorIs(t, err, surface.LoadErr)

	snap, _ := h.manager.Tab(id)
	assert.False(t, snap.IsLoading)
	assert.Equal(t, "https://example.com", snap.URL)
	assert.Equal(t, entity.LoadStateFailed, snap.LoadState)
	assert.Equal(t, 1, h.events.count(event.KindLoadingFailed))
}

func TestLoadURL_LateCompletionAfterClose(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "")
	surface := h.surface(t, 0)
	surface.LoadGate = make(chan struct{})
	surface.LoadEntered = make(chan string, 1)

	type result struct {
		id  entity.TabID
		err error
	}
	done := make(chan result, 1)
	go func() {
		got, err := h.manager.LoadURL(h.ctx, "https://slow.example", id)
		done <- result{got, err}
	}()

	select {
	case <-surface.LoadEntered:
	case <-time.After(2 * time.Second):
		t.Fatal("load never started")
	}

	require.NoError(t, h.manager.CloseTab(h.ctx, id), "close is not blocked by the pending load")
	close(surface.LoadGate)

	select {
	case res := <-done:
		assert.NoError(t, res.err)
	case <-time.After(2 * time.Second):
		t.Fatal("load never completed")
	}

	assert.Empty(t, h.manager.Tabs(h.ctx), "late completion must not re-insert the tab")
	_, ok := h.manager.Tab(id)
	assert.False(t, ok)
}

func TestCallbacksAfterCloseAreDropped(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "https://example.com")
	surface := h.surface(t, 0)
	callbacks := surface.Callbacks()
	require.NotNil(t, callbacks)

	require.NoError(t, h.manager.CloseTab(h.ctx, id))
	h.events.reset()

	assert.NotPanics(t, func() {
		callbacks.OnLoadFinished("https://example.com")
		callbacks.OnTitleChanged("Example")
		callbacks.OnCrashed("oom")
	})
	assert.Empty(t, h.events.kinds())
	assert.Empty(t, h.manager.Tabs(h.ctx))
	assert.False(t, surface.HasCallbacks(), "callbacks are unwired on close")
}

func TestScenario_FinishLoadUpdatesNavigationState(t *testing.T) {
	h := newHarness(t)

	id := h.create(t, "https://example.com")
	_, err := h.manager.SwitchTab(h.ctx, id)
	require.NoError(t, err)

	surface := h.surface(t, 0)
	surface.FireLoadStarted()
	assert.True(t, h.manager.NavigationState(h.ctx, id).IsLoading)

	surface.SetTitle("Example Domain")
	surface.FireLoadFinished("https://example.com")

	state := h.manager.NavigationState(h.ctx, id)
	assert.False(t, state.IsLoading)
	assert.Equal(t, "https://example.com", state.URL)
	assert.Equal(t, "Example Domain", state.Title)
	assert.True(t, state.CanGoBack, "about:blank is behind the first page")
	assert.Equal(t, state, h.manager.NavigationState(h.ctx, ""))

	assert.Equal(t, []event.Kind{
		event.KindTabCreated,
		event.KindTabSwitched,
		event.KindLoadingStarted,
		event.KindTitleUpdated,
		event.KindLoadingFinished,
	}, h.events.kinds())
}

func TestSurfaceEvents(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "")
	surface := h.surface(t, 0)

	surface.FireNavigated("https://example.com/#top", true)
	snap, _ := h.manager.Tab(id)
	assert.Equal(t, "https://example.com/#top", snap.URL)
	nav, _ := h.events.last(event.KindNavigation)
	assert.True(t, nav.(event.Navigation).InPage)

	surface.FireLoadStarted()
	surface.FireLoadStopped()
	snap, _ = h.manager.Tab(id)
	assert.False(t, snap.IsLoading)
	assert.Equal(t, 1, h.events.count(event.KindLoadingStopped))

	surface.FireLoadFailed("https://example.com/missing", errors.New("net::ERR_ABORTED"))
	snap, _ = h.manager.Tab(id)
	assert.Equal(t, entity.LoadStateFailed, snap.LoadState)

	surface.FireCrashed("oom")
	snap, _ = h.manager.Tab(id)
	assert.Equal(t, entity.LoadStateCrashed, snap.LoadState)
	crashed, _ := h.events.last(event.KindTabCrashed)
	assert.Equal(t, event.TabCrashed{TabID: id, Reason: "oom"}, crashed)

	surface.FireCertificateError(port.CertificateError{
		URL:      "https://self-signed.local",
		Host:     "self-signed.local",
		Reason:   "net::ERR_CERT_AUTHORITY_INVALID",
		Accepted: true,
	})
	certEv, ok := h.events.last(event.KindCertificateError)
	require.True(t, ok)
	assert.True(t, certEv.(event.CertificateError).Accepted)
	assert.Equal(t, id, event.TabIDOf(certEv))
}

func TestGoBackGoForward(t *testing.T) {
	h := newHarness(t)

	res, err := h.manager.GoBack(h.ctx, "")
	require.NoError(t, err)
	assert.False(t, res.Performed, "no tab is a no-op")

	id := h.create(t, "")
	_, err = h.manager.SwitchTab(h.ctx, id)
	require.NoError(t, err)

	res, err = h.manager.GoBack(h.ctx, "")
	require.NoError(t, err)
	assert.False(t, res.Performed, "start of history is a boundary, not an error")

	_, err = h.manager.LoadURL(h.ctx, "https://a.example", "")
	require.NoError(t, err)
	_, err = h.manager.LoadURL(h.ctx, "https://b.example", "")
	require.NoError(t, err)

	res, err = h.manager.GoBack(h.ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Performed)
	assert.Equal(t, "https://a.example", h.surface(t, 0).URL())

	res, err = h.manager.GoForward(h.ctx, "")
	require.NoError(t, err)
	assert.True(t, res.Performed)

	res, err = h.manager.GoForward(h.ctx, "")
	require.NoError(t, err)
	assert.False(t, res.Performed)

	_, err = h.manager.GoBack(h.ctx, "tab-missing")
	assert.ErrorIs(t, err, ErrTabNotFound)
}

func TestGoBack_HistoryError(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, "")
	h.surface(t, 0).HistoryErr = errors.New("target detached")

	_, err := h.manager.GoBack(h.ctx, id)
	assert.Error(t, err)

	state := h.manager.NavigationState(h.ctx, id)
	assert.False(t, state.CanGoBack, "navigation state degrades instead of failing")
	assert.Equal(t, entity.BlankURL, state.URL)
}

func TestReload(t *testing.T) {
	h := newHarness(t)
	assert.NoError(t, h.manager.Reload(h.ctx, ""), "no tab is a no-op")

	id := h.create(t, "")
	surface := h.surface(t, 0)
	surface.FireCrashed("killed")

	require.NoError(t, h.manager.Reload(h.ctx, id))
	snap, _ := h.manager.Tab(id)
	assert.Equal(t, entity.LoadStateLoading, snap.LoadState, "reload re-enters loading after a crash")
	assert.Contains(t, h.host.Calls(), "reload surface-1")

	surface.ReloadErr = errors.New("boom")
	err := h.manager.Reload(h.ctx, id)
	var navErr *NavigationError
	assert.ErrorAs(t, err, &navErr)
	snap, _ = h.manager.Tab(id)
	assert.False(t, snap.IsLoading)

	assert.ErrorIs(t, h.manager.Reload(h.ctx, "tab-missing"), ErrTabNotFound)
}

func TestStop(t *testing.T) {
	h := newHarness(t)
	assert.NoError(t, h.manager.Stop(h.ctx, ""))

	id := h.create(t, "")
	require.NoError(t, h.manager.Stop(h.ctx, id))
	assert.Contains(t, h.host.Calls(), "stop surface-1")
}

func TestExecuteScript(t *testing.T) {
	h := newHarness(t)

	_, err := h.manager.ExecuteScript(h.ctx, "document.title", "")
	assert.ErrorIs(t, err, ErrNoActiveTab)

	id := h.create(t, "")
	_, err = h.manager.SwitchTab(h.ctx, id)
	require.NoError(t, err)
	surface := h.surface(t, 0)
	surface.ScriptResult = json.RawMessage(`"Example Domain"`)

	got, err := h.manager.ExecuteScript(h.ctx, "document.title", "")
	require.NoError(t, err)
	assert.JSONEq(t, `"Example Domain"`, string(got))

	scriptErr := errors.New("ReferenceError: foo is not defined")
	surface.ScriptErr = scriptErr
	surface.ScriptResult = nil

	_, err = h.manager.ExecuteScript(h.ctx, "foo()", id)
	var execErr *ScriptExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Same(t, scriptErr, execErr.Err, "the surface error is carried unchanged")
	assert.ErrorIs(t, err, scriptErr)

	_, err = h.manager.ExecuteScript(h.ctx, "1", "tab-missing")
	assert.ErrorIs(t, err, ErrTabNotFound)
}

func TestDestroy_Idempotent(t *testing.T) {
	h := newHarness(t)
	first := h.create(t, "")
	h.create(t, "")
	_, err := h.manager.SwitchTab(h.ctx, first)
	require.NoError(t, err)
	bus := h.manager.Bus()

	require.NoError(t, h.manager.Destroy(h.ctx))
	assert.Empty(t, h.manager.Tabs(h.ctx))
	assert.Empty(t, h.manager.ActiveTabID())
	for _, s := range h.host.Surfaces() {
		assert.True(t, s.IsClosed())
		assert.True(t, s.IsDestroyed())
	}
	assert.Nil(t, h.host.Attached())
	assert.Zero(t, h.host.HookCount())
	assert.Equal(t, 2, h.events.count(event.KindTabClosed))
	assert.Zero(t, bus.HandlerCount(""), "subscriptions cleared")

	require.NoError(t, h.manager.Destroy(h.ctx))
	assert.Empty(t, h.manager.Tabs(h.ctx))

	_, err = h.manager.CreateTab(h.ctx, "")
	assert.ErrorIs(t, err, ErrDestroyed)
	assert.Equal(t, entity.DefaultNavigationState(), h.manager.NavigationState(h.ctx, first))
}

func TestDestroy_BestEffort(t *testing.T) {
	h := newHarness(t)
	h.create(t, "")
	h.create(t, "")
	h.surface(t, 0).CloseErr = errors.New("already crashed")

	require.NoError(t, h.manager.Destroy(h.ctx))

	assert.True(t, h.surface(t, 1).IsDestroyed(), "one failing close does not abort the rest")
}

func TestHostCloseDestroysTabs(t *testing.T) {
	h := newHarness(t)
	h.create(t, "")

	h.host.CloseWindow()

	assert.Empty(t, h.manager.Tabs(h.ctx))
	assert.True(t, h.surface(t, 0).IsDestroyed())
	_, err := h.manager.CreateTab(h.ctx, "")
	assert.ErrorIs(t, err, ErrDestroyed)
}

func TestHandlersMayReenterManager(t *testing.T) {
	h := newHarness(t)
	var seen int
	eventbus.Subscribe(h.manager.Bus(), func(ctx context.Context, ev event.TabCreated) {
		seen = len(h.manager.Tabs(ctx))
	})
	h.manager.Bus().On(event.KindTabCreated, func(context.Context, event.Event) {
		panic("broken subscriber")
	})

	h.create(t, "")

	assert.Equal(t, 1, seen)
}
