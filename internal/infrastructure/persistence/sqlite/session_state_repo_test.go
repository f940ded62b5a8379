package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/infrastructure/persistence/sqlite"
	"github.com/egdesk/taehwa/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func snapshot(id entity.SessionID, savedAt time.Time, urls ...string) *entity.SessionState {
	tabs := make([]entity.TabSnapshot, 0, len(urls))
	for i, u := range urls {
		tabs = append(tabs, entity.TabSnapshot{ID: entity.TabID(u), URL: u, Active: i == 0})
	}
	return entity.NewSessionState(id, tabs, savedAt)
}

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSessionStateRepository_SaveAndGet(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewSessionStateRepository(openMemory(t))

	state := snapshot("s1", t0, "https://a.example", "https://b.example")
	require.NoError(t, repo.SaveSnapshot(ctx, state))

	got, err := repo.GetSnapshot(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, state.SessionID, got.SessionID)
	assert.Equal(t, state.ActiveTabIndex, got.ActiveTabIndex)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, got.RestorableURLs())
	assert.True(t, got.SavedAt.Equal(t0))

	missing, err := repo.GetSnapshot(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionStateRepository_SaveReplaces(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewSessionStateRepository(openMemory(t))

	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("s1", t0, "https://a.example")))
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("s1", t0.Add(time.Minute), "https://c.example")))

	all, err := repo.GetAllSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"https://c.example"}, all[0].RestorableURLs())
}

func TestSessionStateRepository_SaveNil(t *testing.T) {
	repo := sqlite.NewSessionStateRepository(openMemory(t))
	assert.Error(t, repo.SaveSnapshot(testCtx(), nil))
}

func TestSessionStateRepository_GetLatestSkipsExcludedAndEmpty(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewSessionStateRepository(openMemory(t))

	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("old", t0, "https://old.example")))
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("blank", t0.Add(time.Hour), entity.BlankURL)))
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("current", t0.Add(2*time.Hour), "https://cur.example")))

	got, err := repo.GetLatestSnapshot(ctx, "current")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.SessionID("old"), got.SessionID)
}

func TestSessionStateRepository_GetAllNewestFirst(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewSessionStateRepository(openMemory(t))

	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("a", t0, "https://a.example")))
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("c", t0.Add(2*time.Hour), "https://c.example")))
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("b", t0.Add(time.Hour), "https://b.example")))

	all, err := repo.GetAllSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entity.SessionID("c"), all[0].SessionID)
	assert.Equal(t, entity.SessionID("b"), all[1].SessionID)
	assert.Equal(t, entity.SessionID("a"), all[2].SessionID)
}

func TestSessionStateRepository_Deletes(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewSessionStateRepository(openMemory(t))

	for i, id := range []entity.SessionID{"s0", "s1", "s2", "s3", "s4"} {
		require.NoError(t, repo.SaveSnapshot(ctx, snapshot(id, t0.Add(time.Duration(i)*time.Hour), "https://x.example")))
	}

	n, err := repo.DeleteSnapshotsBefore(ctx, t0.Add(90*time.Minute), "s0")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "s1 is older than the cutoff, s0 is kept")

	n, err = repo.DeleteOldestSnapshots(ctx, 1, "s0")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "s2 and s3 go, s4 is the newest")

	all, err := repo.GetAllSnapshots(ctx)
	require.NoError(t, err)
	ids := make([]entity.SessionID, 0, len(all))
	for _, s := range all {
		ids = append(ids, s.SessionID)
	}
	assert.Equal(t, []entity.SessionID{"s4", "s0"}, ids)

	require.NoError(t, repo.DeleteSnapshot(ctx, "s4"))
	n, err = repo.DeleteAllSnapshots(ctx, "s0")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeleteAllSnapshots(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGetMigrationStatus(t *testing.T) {
	version, err := sqlite.GetMigrationStatus(testCtx(), openMemory(t))
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}
