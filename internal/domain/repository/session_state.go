// Package repository defines persistence interfaces for domain entities.
package repository

import (
	"context"
	"time"

	"github.com/egdesk/taehwa/internal/domain/entity"
)

// SessionStateRepository persists tab session snapshots.
type SessionStateRepository interface {
	// SaveSnapshot saves or replaces the snapshot of a session.
	SaveSnapshot(ctx context.Context, state *entity.SessionState) error

	// GetSnapshot returns the snapshot for a session, or nil if none exists.
	GetSnapshot(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error)

	// GetLatestSnapshot returns the most recently saved snapshot, excluding
	// the given session, or nil if none exists.
	GetLatestSnapshot(ctx context.Context, exclude entity.SessionID) (*entity.SessionState, error)

	// GetAllSnapshots returns every snapshot, most recent first.
	GetAllSnapshots(ctx context.Context) ([]*entity.SessionState, error)

	// DeleteSnapshot removes a session's snapshot.
	DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error

	// DeleteAllSnapshots removes every snapshot except the given session.
	// Returns the number of deleted snapshots.
	DeleteAllSnapshots(ctx context.Context, keep entity.SessionID) (int64, error)

	// DeleteSnapshotsBefore removes snapshots saved before cutoff, except
	// the given session.
	DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time, keep entity.SessionID) (int64, error)

	// DeleteOldestSnapshots keeps the newest limit snapshots (not counting
	// the given session) and removes the rest.
	DeleteOldestSnapshots(ctx context.Context, limit int, keep entity.SessionID) (int64, error)
}
