package usecase

import (
	"context"
	"sort"

	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/repository"
)

// ListSessionsUseCase summarizes stored session snapshots.
type ListSessionsUseCase struct {
	stateRepo repository.SessionStateRepository
}

// NewListSessionsUseCase creates a new ListSessionsUseCase.
func NewListSessionsUseCase(stateRepo repository.SessionStateRepository) *ListSessionsUseCase {
	return &ListSessionsUseCase{stateRepo: stateRepo}
}

// Execute returns session summaries, most recent first, capped at limit
// (50 when limit <= 0).
func (uc *ListSessionsUseCase) Execute(ctx context.Context, limit int) ([]entity.SessionInfo, error) {
	if limit <= 0 {
		limit = 50
	}

	snapshots, err := uc.stateRepo.GetAllSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]entity.SessionInfo, 0, len(snapshots))
	for _, s := range snapshots {
		if s == nil {
			continue
		}
		infos = append(infos, entity.SessionInfo{
			SessionID: s.SessionID,
			TabCount:  len(s.RestorableURLs()),
			UpdatedAt: s.SavedAt,
		})
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})
	if len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}
