// Package sqlite provides SQLite implementations of domain repositories.
//
// The Lazy* wrappers implement the same interfaces on top of a
// port.DatabaseProvider and open the database on their first call.
package sqlite

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/repository"
)

type lazyInit[R any] struct {
	provider port.DatabaseProvider
	build    func(db *sql.DB) R
	once     sync.Once
	repo     R
	err      error
}

func (l *lazyInit[R]) get(ctx context.Context) (R, error) {
	l.once.Do(func() {
		db, err := l.provider.DB(ctx)
		if err != nil {
			l.err = err
			return
		}
		l.repo = l.build(db)
	})
	return l.repo, l.err
}

// LazySessionStateRepository defers opening the database until first use.
type LazySessionStateRepository struct {
	init lazyInit[repository.SessionStateRepository]
}

// NewLazySessionStateRepository creates a lazy session state repository.
func NewLazySessionStateRepository(provider port.DatabaseProvider) *LazySessionStateRepository {
	return &LazySessionStateRepository{init: lazyInit[repository.SessionStateRepository]{
		provider: provider,
		build:    func(db *sql.DB) repository.SessionStateRepository { return NewSessionStateRepository(db) },
	}}
}

var _ repository.SessionStateRepository = (*LazySessionStateRepository)(nil)

func (r *LazySessionStateRepository) SaveSnapshot(ctx context.Context, state *entity.SessionState) error {
	repo, err := r.init.get(ctx)
	if err != nil {
		return err
	}
	return repo.SaveSnapshot(ctx, state)
}

func (r *LazySessionStateRepository) GetSnapshot(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetSnapshot(ctx, sessionID)
}

func (r *LazySessionStateRepository) GetLatestSnapshot(ctx context.Context, exclude entity.SessionID) (*entity.SessionState, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetLatestSnapshot(ctx, exclude)
}

func (r *LazySessionStateRepository) GetAllSnapshots(ctx context.Context) ([]*entity.SessionState, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetAllSnapshots(ctx)
}

func (r *LazySessionStateRepository) DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error {
	repo, err := r.init.get(ctx)
	if err != nil {
		return err
	}
	return repo.DeleteSnapshot(ctx, sessionID)
}

func (r *LazySessionStateRepository) DeleteAllSnapshots(ctx context.Context, keep entity.SessionID) (int64, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return 0, err
	}
	return repo.DeleteAllSnapshots(ctx, keep)
}

func (r *LazySessionStateRepository) DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time, keep entity.SessionID) (int64, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return 0, err
	}
	return repo.DeleteSnapshotsBefore(ctx, cutoff, keep)
}

func (r *LazySessionStateRepository) DeleteOldestSnapshots(ctx context.Context, limit int, keep entity.SessionID) (int64, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return 0, err
	}
	return repo.DeleteOldestSnapshots(ctx, limit, keep)
}

// LazySettingsRepository defers opening the database until first use.
type LazySettingsRepository struct {
	init lazyInit[repository.SettingsRepository]
}

// NewLazySettingsRepository creates a lazy settings repository.
func NewLazySettingsRepository(provider port.DatabaseProvider) *LazySettingsRepository {
	return &LazySettingsRepository{init: lazyInit[repository.SettingsRepository]{
		provider: provider,
		build:    func(db *sql.DB) repository.SettingsRepository { return NewSettingsRepository(db) },
	}}
}

var _ repository.SettingsRepository = (*LazySettingsRepository)(nil)

func (r *LazySettingsRepository) Get(ctx context.Context, key string) (*entity.Setting, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, key)
}

func (r *LazySettingsRepository) Set(ctx context.Context, key, value string) error {
	repo, err := r.init.get(ctx)
	if err != nil {
		return err
	}
	return repo.Set(ctx, key, value)
}

func (r *LazySettingsRepository) Delete(ctx context.Context, key string) error {
	repo, err := r.init.get(ctx)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, key)
}

func (r *LazySettingsRepository) List(ctx context.Context) ([]*entity.Setting, error) {
	repo, err := r.init.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}
