package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egdesk/taehwa/internal/application/command"
	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/application/usecase"
	"github.com/egdesk/taehwa/internal/config"
	"github.com/egdesk/taehwa/internal/infrastructure/persistence/sqlite"
	"github.com/egdesk/taehwa/internal/testutil/fakehost"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "egdesk.db")
	cfg.Session.SnapshotIntervalMs = 0
	cfg.Layout.DebounceMs = 0
	return cfg
}

func fakeFactory(h *fakehost.Host) HostFactory {
	return func(context.Context, *config.Config, func(func()) bool) (port.Host, error) {
		return h, nil
	}
}

func startRuntime(t *testing.T, cfg *config.Config, host *fakehost.Host, opts Options) *Runtime {
	t.Helper()
	opts.Config = cfg
	opts.NewHost = fakeFactory(host)
	rt, err := Start(context.Background(), opts)
	require.NoError(t, err)
	return rt
}

func TestStart_OpensInitialURL(t *testing.T) {
	host := fakehost.New(1400, 900)
	rt := startRuntime(t, testConfig(t), host, Options{InitialURL: "example.com", NoRestore: true})
	defer func() { require.NoError(t, rt.Close(context.Background())) }()

	tabs := rt.Tabs().Tabs(context.Background())
	require.Len(t, tabs, 1)
	assert.Contains(t, tabs[0].URL, "example.com")
	assert.Equal(t, tabs[0].ID, rt.Tabs().ActiveTabID())
	assert.NotNil(t, host.Attached())
	assert.NotEmpty(t, rt.SessionID())

	_, ok := rt.Timer().Phase("parallel_init")
	assert.True(t, ok)
}

func TestStart_NoInitialTab(t *testing.T) {
	host := fakehost.New(1400, 900)
	rt := startRuntime(t, testConfig(t), host, Options{NoRestore: true, NoInitialTab: true})
	defer func() { _ = rt.Close(context.Background()) }()

	assert.Empty(t, rt.Tabs().Tabs(context.Background()))
	assert.Nil(t, host.Attached())
}

func TestStart_HostFailure(t *testing.T) {
	boom := errors.New("no chromium")
	_, err := Start(context.Background(), Options{
		Config: testConfig(t),
		NewHost: func(context.Context, *config.Config, func(func()) bool) (port.Host, error) {
			return nil, boom
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "start browser engine")
}

func TestStart_RequiresConfig(t *testing.T) {
	_, err := Start(context.Background(), Options{})
	assert.Error(t, err)
}

func TestRuntime_DispatcherDrivesTabs(t *testing.T) {
	ctx := context.Background()
	host := fakehost.New(1400, 900)
	rt := startRuntime(t, testConfig(t), host, Options{NoRestore: true, NoInitialTab: true})
	defer func() { _ = rt.Close(ctx) }()

	res, err := rt.Dispatcher().Dispatch(ctx, command.NavigateInput, []byte(`{"input":"example.org"}`))
	require.NoError(t, err)
	nav, ok := res.(command.NavigateResult)
	require.True(t, ok)
	assert.NotEmpty(t, nav.TabID)

	res, err = rt.Dispatcher().Dispatch(ctx, command.ListTabs, nil)
	require.NoError(t, err)
	list, ok := res.(command.TabsResult)
	require.True(t, ok)
	assert.Len(t, list.Tabs, 1)
}

func TestRuntime_SnapshotAndRestore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Session.RestoreOnStartup = true

	first := startRuntime(t, cfg, fakehost.New(1400, 900), Options{
		SessionID:  "20260101_000000_aaaa",
		InitialURL: "https://example.com/a",
	})
	require.NoError(t, first.Close(ctx))

	host := fakehost.New(1400, 900)
	second := startRuntime(t, cfg, host, Options{SessionID: "20260101_000100_bbbb"})
	defer func() { _ = second.Close(ctx) }()

	require.Len(t, second.Tabs().Tabs(ctx), 1)
	assert.Eventually(t, func() bool {
		tabs := second.Tabs().Tabs(ctx)
		return len(tabs) == 1 && tabs[0].URL == "https://example.com/a"
	}, time.Second, 10*time.Millisecond)
	assert.Len(t, host.Surfaces(), 1)
}

func TestRuntime_RestoreIgnoredWhenDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Session.RestoreOnStartup = false

	first := startRuntime(t, cfg, fakehost.New(1400, 900), Options{InitialURL: "https://example.com/a"})
	require.NoError(t, first.Close(ctx))

	second := startRuntime(t, cfg, fakehost.New(1400, 900), Options{NoInitialTab: true})
	defer func() { _ = second.Close(ctx) }()
	assert.Empty(t, second.Tabs().Tabs(ctx))
}

func TestRuntime_RunStopsWhenHostCloses(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	host := fakehost.New(1400, 900)
	rt := startRuntime(t, cfg, host, Options{
		SessionID:  "20260101_000000_cccc",
		InitialURL: "https://example.com",
		NoRestore:  true,
	})
	require.NoError(t, rt.Snapshot(ctx))

	done := make(chan error, 1)
	go func() { done <- rt.Run(ctx) }()
	host.CloseWindow()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrHostClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the window closed")
	}
	require.NoError(t, rt.Close(ctx))
	assert.True(t, host.IsShutdown())

	// The snapshot taken while the window was open survives the close.
	db := sqlite.NewLazyDB(cfg.Database.Path)
	defer func() { _ = db.Close() }()
	sessions, err := usecase.NewListSessionsUseCase(sqlite.NewLazySessionStateRepository(db)).Execute(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].TabCount)
}

func TestRuntime_CrashTriggersSnapshot(t *testing.T) {
	cfg := testConfig(t)
	host := fakehost.New(1400, 900)
	rt := startRuntime(t, cfg, host, Options{
		SessionID:  "20260101_000000_dddd",
		InitialURL: "https://example.com",
		NoRestore:  true,
	})
	defer func() { _ = rt.Close(context.Background()) }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rt.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	sessions := usecase.NewListSessionsUseCase(sqlite.NewLazySessionStateRepository(rt.db))
	listed, err := sessions.Execute(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, listed)

	surfaces := host.Surfaces()
	require.Len(t, surfaces, 1)
	surfaces[0].FireCrashed("oom")

	assert.Eventually(t, func() bool {
		listed, err := sessions.Execute(ctx, 10)
		return err == nil && len(listed) == 1 && listed[0].TabCount == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRuntime_RunReturnsWhenFrontendFinishes(t *testing.T) {
	ctx := context.Background()
	rt := startRuntime(t, testConfig(t), fakehost.New(1400, 900), Options{NoRestore: true, NoInitialTab: true})
	defer func() { _ = rt.Close(ctx) }()

	err := rt.Run(ctx, func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestRuntime_RunReportsFrontendError(t *testing.T) {
	ctx := context.Background()
	rt := startRuntime(t, testConfig(t), fakehost.New(1400, 900), Options{NoRestore: true, NoInitialTab: true})
	defer func() { _ = rt.Close(ctx) }()

	boom := errors.New("console crashed")
	err := rt.Run(ctx, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestRuntime_RunStopsOnCancel(t *testing.T) {
	rt := startRuntime(t, testConfig(t), fakehost.New(1400, 900), Options{NoRestore: true, NoInitialTab: true})
	defer func() { _ = rt.Close(context.Background()) }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, rt.Run(ctx))
}

func TestRuntime_CloseIsIdempotent(t *testing.T) {
	host := fakehost.New(1400, 900)
	rt := startRuntime(t, testConfig(t), host, Options{NoRestore: true, NoInitialTab: true})

	require.NoError(t, rt.Close(context.Background()))
	require.NoError(t, rt.Close(context.Background()))
	assert.True(t, host.IsShutdown())
}

func TestLayoutFrom(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layout.HeaderHeight = 10
	cfg.Layout.ControlBarHeight = 20
	cfg.Layout.Padding = 3
	cfg.Layout.ConsoleRatio = 0.25

	m := LayoutFrom(cfg)
	assert.Equal(t, 10, m.HeaderHeight)
	assert.Equal(t, 20, m.ControlBarHeight)
	assert.Equal(t, 3, m.Padding)
	assert.InDelta(t, 0.25, m.ConsoleRatio, 1e-9)
}
