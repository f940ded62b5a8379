package usecase

import (
	"context"
	"time"

	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/repository"
	"github.com/egdesk/taehwa/internal/logging"
)

// CleanupSessionsUseCase prunes old session snapshots.
type CleanupSessionsUseCase struct {
	stateRepo repository.SessionStateRepository
	now       func() time.Time
}

// NewCleanupSessionsUseCase creates a new CleanupSessionsUseCase.
func NewCleanupSessionsUseCase(stateRepo repository.SessionStateRepository) *CleanupSessionsUseCase {
	return &CleanupSessionsUseCase{stateRepo: stateRepo, now: time.Now}
}

// CleanupSessionsInput contains the cleanup configuration.
type CleanupSessionsInput struct {
	// CurrentSessionID is never pruned.
	CurrentSessionID entity.SessionID

	// MaxSnapshots is the number of older snapshots to keep. Negative
	// disables count-based cleanup.
	MaxSnapshots int

	// MaxAgeDays removes snapshots older than this. 0 disables it.
	MaxAgeDays int
}

// CleanupSessionsOutput contains the cleanup results.
type CleanupSessionsOutput struct {
	DeletedByAge   int64
	DeletedByCount int64
	TotalDeleted   int64
}

// Execute deletes by age first, then enforces the count limit. Failures are
// logged and do not stop the other pass.
func (uc *CleanupSessionsUseCase) Execute(ctx context.Context, input CleanupSessionsInput) (CleanupSessionsOutput, error) {
	log := logging.FromContext(ctx)
	output := CleanupSessionsOutput{}

	if input.MaxAgeDays > 0 {
		cutoff := uc.now().AddDate(0, 0, -input.MaxAgeDays)
		deleted, err := uc.stateRepo.DeleteSnapshotsBefore(ctx, cutoff, input.CurrentSessionID)
		if err != nil {
			log.Warn().Err(err).Msg("failed to delete snapshots by age")
		} else {
			output.DeletedByAge = deleted
		}
	}

	if input.MaxSnapshots >= 0 {
		deleted, err := uc.stateRepo.DeleteOldestSnapshots(ctx, input.MaxSnapshots, input.CurrentSessionID)
		if err != nil {
			log.Warn().Err(err).Msg("failed to delete snapshots by count")
		} else {
			output.DeletedByCount = deleted
		}
	}

	output.TotalDeleted = output.DeletedByAge + output.DeletedByCount
	if output.TotalDeleted > 0 {
		log.Info().
			Int64("by_age", output.DeletedByAge).
			Int64("by_count", output.DeletedByCount).
			Msg("pruned session snapshots")
	}
	return output, nil
}
