package ports

import (
	"context"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

// SummaryCache caches per-owner edit summaries between sync polls.
type SummaryCache interface {
	// Get reports (items, true, nil) on a hit and (nil, false, nil) on a miss.
	Get(ctx context.Context, owner string) ([]domain.EditSummary, bool, error)
	Set(ctx context.Context, owner string, items []domain.EditSummary) error
	Invalidate(ctx context.Context, owner string) error
}

// QueryService is the read-side façade composing record store reads.
type QueryService interface {
	// GetProcess returns (nil, nil) when the process does not exist.
	GetProcess(ctx context.Context, id string, withSteps bool) (*domain.Process, error)
	// GetUserWithProcesses returns domain.ErrUserNotFound when the user is
	// absent, otherwise the user with all owned processes fully hydrated.
	GetUserWithProcesses(ctx context.Context, username string) (*domain.User, error)
	GetEditSummary(ctx context.Context, owner string) ([]domain.EditSummary, error)
	GetDeletedIDs(ctx context.Context) ([]string, error)
	GetSteps(ctx context.Context, processID string) ([]domain.Step, error)
	IsDeleted(ctx context.Context, id string) (bool, error)
	ListUsernames(ctx context.Context) ([]string, error)
}
