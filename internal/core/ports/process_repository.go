package ports

import (
	"context"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

// ProcessRepository defines persistence operations for process rows. Embedded
// steps are handled separately by StepRepository; FindByID and FindByOwner
// return processes without steps.
type ProcessRepository interface {
	// Insert creates a process row. Returns domain.ErrProcessExists on a
	// duplicate id.
	Insert(ctx context.Context, p *domain.Process, owner string) error
	// Update overwrites every field except id, unconditionally.
	Update(ctx context.Context, p *domain.Process, owner string) error
	// UpdateIfNewer overwrites every field except id, but only when the
	// stored editAt is strictly older than the incoming one. The editAt
	// predicate is evaluated by the store engine inside a single statement.
	// Reports whether the row was actually written; a false return with nil
	// error means the stored version won and the write was discarded.
	UpdateIfNewer(ctx context.Context, p *domain.Process, owner string) (bool, error)
	// Delete removes the process row. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
	// FindByID returns (nil, nil) when no such process exists.
	FindByID(ctx context.Context, id string) (*domain.Process, error)
	FindByOwner(ctx context.Context, owner string) ([]domain.Process, error)
	// EditSummaries returns (id, editAt) pairs for every process owned by
	// owner, for sync polling.
	EditSummaries(ctx context.Context, owner string) ([]domain.EditSummary, error)
}

// StepRepository defines persistence operations for checklist steps. Steps
// carry no version column: writes always win.
type StepRepository interface {
	// Insert creates a step row. Returns domain.ErrStepExists on a
	// duplicate id.
	Insert(ctx context.Context, s *domain.Step, processID string) error
	// Update overwrites text, done, mandatory and the owning process,
	// keyed by step id.
	Update(ctx context.Context, s *domain.Step, processID string) error
	FindByProcess(ctx context.Context, processID string) ([]domain.Step, error)
	DeleteByProcess(ctx context.Context, processID string) error
	DeleteByIDs(ctx context.Context, ids []string) error
}
