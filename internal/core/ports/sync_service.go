package ports

import (
	"context"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

// BatchOutcome reports the result of one element of a bulk operation.
// Batches are best-effort: a failing element never aborts the rest, and its
// error is carried here instead of being discarded.
type BatchOutcome struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// CacheInvalidator drops cached read-side state for an owner after a
// mutation. Implementations are fire-and-forget.
type CacheInvalidator interface {
	Enqueue(owner string)
}

// SyncService is the create/update/delete resolver enforcing last-write-wins
// semantics and tombstone consistency across repeated or out-of-order client
// submissions.
type SyncService interface {
	// CreateProcess inserts the process, or on a duplicate id falls back to
	// a conditional overwrite gated on the stored editAt being older. A
	// stale submission succeeds silently without persisting. Embedded steps
	// are always upserted, even when the process write was discarded.
	// Returns domain.ErrProcessDeleted for tombstoned ids.
	CreateProcess(ctx context.Context, p *domain.Process, owner string) error
	CreateProcesses(ctx context.Context, ps []domain.Process, owner string) []BatchOutcome
	// UpdateProcess applies the same conditional overwrite without the
	// insert fallback. Updating a tombstoned or absent id is a no-op.
	UpdateProcess(ctx context.Context, p *domain.Process, owner string) error
	// UpdateSteps unconditionally overwrites each step, repointing it to
	// processID.
	UpdateSteps(ctx context.Context, processID string, steps []domain.Step) []BatchOutcome
	// DeleteProcess cascades: steps first, then the row, then the
	// tombstone. Safe to retry; a repeat delete is a no-op.
	DeleteProcess(ctx context.Context, id string) error
	DeleteProcesses(ctx context.Context, ids []string) []BatchOutcome
	DeleteSteps(ctx context.Context, ids []string) error
}
