package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/repository"
	"github.com/egdesk/taehwa/internal/logging"
)

const (
	upsertSessionStateSQL = `
INSERT INTO session_states (session_id, state_json, version, tab_count, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
    state_json = excluded.state_json,
    version = excluded.version,
    tab_count = excluded.tab_count,
    updated_at = excluded.updated_at`

	getSessionStateSQL = `SELECT state_json FROM session_states WHERE session_id = ?`

	getLatestSessionStateSQL = `
SELECT state_json FROM session_states
WHERE session_id != ? AND tab_count > 0
ORDER BY updated_at DESC
LIMIT 1`

	getAllSessionStatesSQL = `SELECT session_id, state_json FROM session_states ORDER BY updated_at DESC`

	deleteSessionStateSQL = `DELETE FROM session_states WHERE session_id = ?`

	deleteAllSessionStatesSQL = `DELETE FROM session_states WHERE session_id != ?`

	deleteSessionStatesBeforeSQL = `DELETE FROM session_states WHERE updated_at < ? AND session_id != ?`

	deleteOldestSessionStatesSQL = `
DELETE FROM session_states
WHERE session_id != ?
  AND session_id NOT IN (
    SELECT session_id FROM session_states
    WHERE session_id != ?
    ORDER BY updated_at DESC
    LIMIT ?
  )`
)

type sessionStateRepo struct {
	db *sql.DB
}

// NewSessionStateRepository creates a new session state repository.
func NewSessionStateRepository(db *sql.DB) repository.SessionStateRepository {
	return &sessionStateRepo{db: db}
}

// SaveSnapshot saves or updates a session state snapshot. tab_count holds
// the number of restorable tabs so empty sessions are never picked for
// restore.
func (r *sessionStateRepo) SaveSnapshot(ctx context.Context, state *entity.SessionState) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return errors.New("session state cannot be nil")
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	log.Debug().
		Str("session_id", string(state.SessionID)).
		Int("tab_count", len(state.Tabs)).
		Msg("saving session state snapshot")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Debug().Err(rollbackErr).Msg("snapshot rollback reported non-terminal error")
		}
	}()

	if _, err := tx.ExecContext(ctx, upsertSessionStateSQL,
		string(state.SessionID),
		string(stateJSON),
		state.Version,
		len(state.RestorableURLs()),
		toMillis(state.SavedAt),
	); err != nil {
		return fmt.Errorf("upsert session state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot transaction: %w", err)
	}
	return nil
}

// GetSnapshot returns the snapshot for a session, or nil.
func (r *sessionStateRepo) GetSnapshot(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error) {
	return r.queryOne(ctx, getSessionStateSQL, string(sessionID))
}

// GetLatestSnapshot returns the newest restorable snapshot of another session.
func (r *sessionStateRepo) GetLatestSnapshot(ctx context.Context, exclude entity.SessionID) (*entity.SessionState, error) {
	return r.queryOne(ctx, getLatestSessionStateSQL, string(exclude))
}

func (r *sessionStateRepo) queryOne(ctx context.Context, query string, args ...any) (*entity.SessionState, error) {
	var raw string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var state entity.SessionState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &state, nil
}

// GetAllSnapshots returns every snapshot, most recent first. Corrupted rows
// are skipped.
func (r *sessionStateRepo) GetAllSnapshots(ctx context.Context) ([]*entity.SessionState, error) {
	rows, err := r.db.QueryContext(ctx, getAllSessionStatesSQL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var states []*entity.SessionState
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var state entity.SessionState
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			logging.FromContext(ctx).Warn().Err(err).
				Str("session_id", id).
				Msg("skipping corrupted session state")
			continue
		}
		states = append(states, &state)
	}
	return states, rows.Err()
}

// DeleteSnapshot removes a session's snapshot.
func (r *sessionStateRepo) DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error {
	logging.FromContext(ctx).Debug().Str("session_id", string(sessionID)).Msg("deleting session state snapshot")
	_, err := r.db.ExecContext(ctx, deleteSessionStateSQL, string(sessionID))
	return err
}

// DeleteAllSnapshots removes every snapshot except keep's.
func (r *sessionStateRepo) DeleteAllSnapshots(ctx context.Context, keep entity.SessionID) (int64, error) {
	return r.exec(ctx, deleteAllSessionStatesSQL, string(keep))
}

// DeleteSnapshotsBefore removes snapshots saved before cutoff.
func (r *sessionStateRepo) DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time, keep entity.SessionID) (int64, error) {
	return r.exec(ctx, deleteSessionStatesBeforeSQL, toMillis(cutoff), string(keep))
}

// DeleteOldestSnapshots keeps the newest limit snapshots besides keep's.
func (r *sessionStateRepo) DeleteOldestSnapshots(ctx context.Context, limit int, keep entity.SessionID) (int64, error) {
	if limit < 0 {
		return 0, nil
	}
	return r.exec(ctx, deleteOldestSessionStatesSQL, string(keep), string(keep), limit)
}

func (r *sessionStateRepo) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
