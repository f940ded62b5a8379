package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/repository"
)

type settingsRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepo{db: db, now: time.Now}
}

func (r *settingsRepo) Get(ctx context.Context, key string) (*entity.Setting, error) {
	var (
		s       = entity.Setting{Key: key}
		updated int64
	)
	err := r.db.QueryRowContext(ctx, `SELECT value, updated_at FROM settings WHERE key = ?`, key).
		Scan(&s.Value, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.UpdatedAt = fromMillis(updated)
	return &s, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, toMillis(r.now()))
	return err
}

func (r *settingsRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	return err
}

func (r *settingsRepo) List(ctx context.Context) ([]*entity.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.Setting
	for rows.Next() {
		var (
			s       entity.Setting
			updated int64
		)
		if err := rows.Scan(&s.Key, &s.Value, &updated); err != nil {
			return nil, err
		}
		s.UpdatedAt = fromMillis(updated)
		out = append(out, &s)
	}
	return out, rows.Err()
}
