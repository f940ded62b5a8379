package usecase

import (
	"context"
	"fmt"

	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/repository"
	"github.com/egdesk/taehwa/internal/logging"
)

// DeleteSessionUseCase removes stored session snapshots.
type DeleteSessionUseCase struct {
	stateRepo repository.SessionStateRepository
}

// NewDeleteSessionUseCase creates a new DeleteSessionUseCase.
func NewDeleteSessionUseCase(stateRepo repository.SessionStateRepository) *DeleteSessionUseCase {
	return &DeleteSessionUseCase{stateRepo: stateRepo}
}

// Execute deletes one session's snapshot. The running session cannot be deleted.
func (uc *DeleteSessionUseCase) Execute(ctx context.Context, currentSessionID, sessionID entity.SessionID) error {
	if sessionID == "" {
		return fmt.Errorf("session id required")
	}
	if sessionID == currentSessionID {
		return fmt.Errorf("cannot delete the running session")
	}
	if err := uc.stateRepo.DeleteSnapshot(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session snapshot: %w", err)
	}
	return nil
}

// ClearAll deletes every snapshot except the running session's.
func (uc *DeleteSessionUseCase) ClearAll(ctx context.Context, currentSessionID entity.SessionID) (int64, error) {
	n, err := uc.stateRepo.DeleteAllSnapshots(ctx, currentSessionID)
	if err != nil {
		return 0, fmt.Errorf("clear session snapshots: %w", err)
	}
	logging.FromContext(ctx).Info().Int64("deleted", n).Msg("cleared session snapshots")
	return n, nil
}
