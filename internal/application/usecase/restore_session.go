package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/repository"
	"github.com/egdesk/taehwa/internal/logging"
)

// ErrSessionNotFound is returned when a session state cannot be found.
var ErrSessionNotFound = errors.New("session not found")

// ErrVersionMismatch is returned when the session state version is incompatible.
var ErrVersionMismatch = errors.New("session state version mismatch")

// RestoreSessionUseCase reopens the tabs of a saved session.
type RestoreSessionUseCase struct {
	stateRepo repository.SessionStateRepository
	tabs      port.TabController
}

// NewRestoreSessionUseCase creates a new RestoreSessionUseCase.
func NewRestoreSessionUseCase(stateRepo repository.SessionStateRepository, tabs port.TabController) *RestoreSessionUseCase {
	return &RestoreSessionUseCase{stateRepo: stateRepo, tabs: tabs}
}

// RestoreInput selects the session to restore.
type RestoreInput struct {
	// SessionID to restore. Empty picks the latest snapshot that is not
	// CurrentSessionID.
	SessionID        entity.SessionID
	CurrentSessionID entity.SessionID
}

// RestoreOutput lists the tabs that were reopened.
type RestoreOutput struct {
	SessionID entity.SessionID
	Restored  []entity.TabID
	Active    entity.TabID
}

// Execute loads the snapshot and creates one tab per restorable URL. A tab
// that fails to open is logged and skipped.
func (uc *RestoreSessionUseCase) Execute(ctx context.Context, input RestoreInput) (*RestoreOutput, error) {
	log := logging.FromContext(ctx)

	var (
		state *entity.SessionState
		err   error
	)
	if input.SessionID != "" {
		state, err = uc.stateRepo.GetSnapshot(ctx, input.SessionID)
	} else {
		state, err = uc.stateRepo.GetLatestSnapshot(ctx, input.CurrentSessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("get session snapshot: %w", err)
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}

	if state.Version > entity.SessionStateVersion {
		log.Warn().
			Int("state_version", state.Version).
			Int("current_version", entity.SessionStateVersion).
			Msg("session state version is newer than current version")
		return nil, ErrVersionMismatch
	}

	log.Info().
		Str("session_id", string(state.SessionID)).
		Int("tab_count", len(state.Tabs)).
		Msg("restoring session")

	out := &RestoreOutput{SessionID: state.SessionID}
	for i, tab := range state.Tabs {
		if tab.URL == "" || tab.URL == entity.BlankURL {
			continue
		}
		id, err := uc.tabs.CreateTab(ctx, tab.URL)
		if err != nil {
			log.Warn().Err(err).Str("url", logging.TruncateURL(tab.URL, 120)).Msg("failed to restore tab")
			continue
		}
		out.Restored = append(out.Restored, id)
		if i == state.ActiveTabIndex || out.Active == "" {
			out.Active = id
		}
	}

	if out.Active != "" {
		if _, err := uc.tabs.SwitchTab(ctx, out.Active); err != nil {
			return out, fmt.Errorf("activate restored tab: %w", err)
		}
	}
	return out, nil
}
