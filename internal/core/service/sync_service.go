package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/stepwise/process-tracker/internal/api/metrics"
	"github.com/stepwise/process-tracker/internal/core/domain"
	"github.com/stepwise/process-tracker/internal/core/ports"
)

// SyncService resolves create/update/delete submissions from offline-capable
// clients. Process metadata writes follow last-write-wins gated on editAt;
// step writes always win; deletions are tombstoned so deleted ids can never
// be resurrected from a stale client cache.
type SyncService struct {
	processes   ports.ProcessRepository
	steps       ports.StepRepository
	tombstones  ports.TombstoneRepository
	invalidator ports.CacheInvalidator // optional
	logger      zerolog.Logger
}

func NewSyncService(
	processes ports.ProcessRepository,
	steps ports.StepRepository,
	tombstones ports.TombstoneRepository,
	invalidator ports.CacheInvalidator,
	logger zerolog.Logger,
) *SyncService {
	return &SyncService{
		processes:   processes,
		steps:       steps,
		tombstones:  tombstones,
		invalidator: invalidator,
		logger:      logger,
	}
}

// CreateProcess is the upsert-if-newer path. The insert-then-conditional-
// update sequence is not atomic across statements; the editAt predicate in
// the fallback UPDATE is the only gate, evaluated row-atomically by the
// store engine.
func (s *SyncService) CreateProcess(ctx context.Context, p *domain.Process, owner string) error {
	deleted, err := s.tombstones.Contains(ctx, p.ID)
	if err != nil {
		metrics.ProcessSyncsTotal.WithLabelValues("error").Inc()
		return err
	}
	if deleted {
		metrics.ProcessSyncsTotal.WithLabelValues("rejected_deleted").Inc()
		s.logger.Info().Str("process_id", p.ID).Msg("create rejected: id is tombstoned")
		return domain.ErrProcessDeleted
	}

	outcome := "created"
	err = s.processes.Insert(ctx, p, owner)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrProcessExists):
		applied, uerr := s.processes.UpdateIfNewer(ctx, p, owner)
		if uerr != nil {
			metrics.ProcessSyncsTotal.WithLabelValues("error").Inc()
			return uerr
		}
		if applied {
			outcome = "updated"
		} else {
			// Existing data wins; the client's edit is discarded without
			// error (last-write-wins).
			outcome = "stale"
			metrics.StaleWritesDroppedTotal.Inc()
			s.logger.Debug().Str("process_id", p.ID).Str("edit_at", p.EditAt).Msg("stale write dropped")
		}
	default:
		metrics.ProcessSyncsTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("process_id", p.ID).Msg("process insert failed")
		return err
	}

	// Steps are not gated by the process edit check: the latest submitted
	// content always wins, even when the parent update was rejected.
	for i := range p.Steps {
		if err := s.upsertStep(ctx, &p.Steps[i], p.ID); err != nil {
			metrics.ProcessSyncsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	metrics.ProcessSyncsTotal.WithLabelValues(outcome).Inc()
	s.logger.Info().Str("process_id", p.ID).Str("owner", owner).Str("outcome", outcome).Msg("process synced")
	s.invalidate(owner)
	return nil
}

// CreateProcesses processes each element independently: one bad record must
// not block the rest.
func (s *SyncService) CreateProcesses(ctx context.Context, ps []domain.Process, owner string) []ports.BatchOutcome {
	outcomes := make([]ports.BatchOutcome, 0, len(ps))
	for i := range ps {
		outcomes = append(outcomes, batchOutcome("create", ps[i].ID, s.CreateProcess(ctx, &ps[i], owner)))
	}
	return outcomes
}

// UpdateProcess applies the conditional overwrite without the insert
// fallback. No tombstone check: an update against a tombstoned or absent id
// matches zero rows and is a no-op.
func (s *SyncService) UpdateProcess(ctx context.Context, p *domain.Process, owner string) error {
	applied, err := s.processes.UpdateIfNewer(ctx, p, owner)
	if err != nil {
		return err
	}
	if applied {
		metrics.ProcessSyncsTotal.WithLabelValues("updated").Inc()
		s.invalidate(owner)
	} else {
		metrics.StaleWritesDroppedTotal.Inc()
		s.logger.Debug().Str("process_id", p.ID).Str("edit_at", p.EditAt).Msg("update matched no rows")
	}
	return nil
}

// UpdateSteps overwrites each step unconditionally, repointing it to
// processID.
func (s *SyncService) UpdateSteps(ctx context.Context, processID string, steps []domain.Step) []ports.BatchOutcome {
	outcomes := make([]ports.BatchOutcome, 0, len(steps))
	for i := range steps {
		outcomes = append(outcomes, batchOutcome("update_steps", steps[i].ID, s.steps.Update(ctx, &steps[i], processID)))
	}
	return outcomes
}

// DeleteProcess cascades steps, then the row, then records the tombstone.
// A repeat delete finds the tombstone already present and is tolerated:
// deletion must be safe to retry without the caller checking prior state.
func (s *SyncService) DeleteProcess(ctx context.Context, id string) error {
	if err := s.steps.DeleteByProcess(ctx, id); err != nil {
		return err
	}
	if err := s.processes.Delete(ctx, id); err != nil {
		return err
	}
	switch err := s.tombstones.Insert(ctx, id); {
	case err == nil:
		metrics.TombstonesCreatedTotal.Inc()
		s.logger.Info().Str("process_id", id).Msg("process deleted")
	case errors.Is(err, domain.ErrProcessDeleted):
		// repeat delete
	default:
		return err
	}
	s.invalidateAll()
	return nil
}

func (s *SyncService) DeleteProcesses(ctx context.Context, ids []string) []ports.BatchOutcome {
	outcomes := make([]ports.BatchOutcome, 0, len(ids))
	for _, id := range ids {
		outcomes = append(outcomes, batchOutcome("delete", id, s.DeleteProcess(ctx, id)))
	}
	return outcomes
}

func (s *SyncService) DeleteSteps(ctx context.Context, ids []string) error {
	return s.steps.DeleteByIDs(ctx, ids)
}

// upsertStep inserts a step, falling back to an unconditional overwrite on a
// duplicate id.
func (s *SyncService) upsertStep(ctx context.Context, st *domain.Step, processID string) error {
	err := s.steps.Insert(ctx, st, processID)
	if errors.Is(err, domain.ErrStepExists) {
		return s.steps.Update(ctx, st, processID)
	}
	return err
}

func (s *SyncService) invalidate(owner string) {
	if s.invalidator != nil {
		s.invalidator.Enqueue(owner)
	}
}

// invalidateAll is used after deletions, where the owner is unknown (the row
// is already gone). The empty owner key signals a full flush.
func (s *SyncService) invalidateAll() {
	if s.invalidator != nil {
		s.invalidator.Enqueue("")
	}
}

func batchOutcome(op, id string, err error) ports.BatchOutcome {
	if err != nil {
		metrics.BatchItemsTotal.WithLabelValues(op, "error").Inc()
		return ports.BatchOutcome{ID: id, Error: err.Error()}
	}
	metrics.BatchItemsTotal.WithLabelValues(op, "ok").Inc()
	return ports.BatchOutcome{ID: id, OK: true}
}
