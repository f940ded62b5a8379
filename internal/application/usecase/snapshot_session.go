package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/repository"
	"github.com/egdesk/taehwa/internal/logging"
)

// SnapshotSessionUseCase saves the open tabs of the running session.
type SnapshotSessionUseCase struct {
	stateRepo repository.SessionStateRepository
	tabs      port.TabController
	now       func() time.Time
}

// NewSnapshotSessionUseCase creates a new SnapshotSessionUseCase.
func NewSnapshotSessionUseCase(stateRepo repository.SessionStateRepository, tabs port.TabController) *SnapshotSessionUseCase {
	return &SnapshotSessionUseCase{stateRepo: stateRepo, tabs: tabs, now: time.Now}
}

// SnapshotInput contains the parameters for creating a session snapshot.
type SnapshotInput struct {
	SessionID entity.SessionID
}

// Execute snapshots the current tabs and saves them.
func (uc *SnapshotSessionUseCase) Execute(ctx context.Context, input SnapshotInput) error {
	log := logging.FromContext(ctx)

	if input.SessionID == "" {
		return fmt.Errorf("session id required")
	}

	state := entity.NewSessionState(input.SessionID, uc.tabs.Tabs(ctx), uc.now())

	log.Debug().
		Str("session_id", string(input.SessionID)).
		Int("tab_count", len(state.Tabs)).
		Int("active_index", state.ActiveTabIndex).
		Msg("creating session snapshot")

	if err := uc.stateRepo.SaveSnapshot(ctx, state); err != nil {
		return fmt.Errorf("save session snapshot: %w", err)
	}
	return nil
}
