package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stepwise/process-tracker/internal/api/metrics"
	"github.com/stepwise/process-tracker/internal/core/domain"
	"github.com/stepwise/process-tracker/internal/core/ports"
)

// QueryService composes record store reads to answer "get process", "get
// user's processes" and "what changed since last sync" queries. Edit
// summaries are served from an optional cache between sync polls.
type QueryService struct {
	users      ports.UserRepository
	processes  ports.ProcessRepository
	steps      ports.StepRepository
	tombstones ports.TombstoneRepository
	cache      ports.SummaryCache // optional
	logger     zerolog.Logger
}

func NewQueryService(
	users ports.UserRepository,
	processes ports.ProcessRepository,
	steps ports.StepRepository,
	tombstones ports.TombstoneRepository,
	cache ports.SummaryCache,
	logger zerolog.Logger,
) *QueryService {
	return &QueryService{
		users:      users,
		processes:  processes,
		steps:      steps,
		tombstones: tombstones,
		cache:      cache,
		logger:     logger,
	}
}

// GetProcess returns (nil, nil) when the process does not exist; absence is
// not an error at this layer.
func (s *QueryService) GetProcess(ctx context.Context, id string, withSteps bool) (*domain.Process, error) {
	p, err := s.processes.FindByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if withSteps {
		steps, err := s.steps.FindByProcess(ctx, id)
		if err != nil {
			return nil, err
		}
		p.Steps = steps
	}
	return p, nil
}

// GetUserWithProcesses hydrates the user with all owned processes and their
// steps. Returns domain.ErrUserNotFound when the user does not exist.
func (s *QueryService) GetUserWithProcesses(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	procs, err := s.processes.FindByOwner(ctx, username)
	if err != nil {
		return nil, err
	}
	for i := range procs {
		steps, err := s.steps.FindByProcess(ctx, procs[i].ID)
		if err != nil {
			return nil, err
		}
		procs[i].Steps = steps
	}
	u.Processes = procs
	return u, nil
}

func (s *QueryService) GetEditSummary(ctx context.Context, owner string) ([]domain.EditSummary, error) {
	if s.cache != nil {
		items, ok, err := s.cache.Get(ctx, owner)
		if err != nil {
			// A broken cache must not break sync polling.
			s.logger.Warn().Err(err).Str("owner", owner).Msg("summary cache read failed")
		} else if ok {
			metrics.SummaryCacheTotal.WithLabelValues("hit").Inc()
			return items, nil
		} else {
			metrics.SummaryCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	items, err := s.processes.EditSummaries(ctx, owner)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, owner, items); err != nil {
			s.logger.Warn().Err(err).Str("owner", owner).Msg("summary cache write failed")
		}
	}
	return items, nil
}

func (s *QueryService) GetDeletedIDs(ctx context.Context) ([]string, error) {
	return s.tombstones.ListIDs(ctx)
}

func (s *QueryService) GetSteps(ctx context.Context, processID string) ([]domain.Step, error) {
	return s.steps.FindByProcess(ctx, processID)
}

func (s *QueryService) IsDeleted(ctx context.Context, id string) (bool, error) {
	return s.tombstones.Contains(ctx, id)
}

func (s *QueryService) ListUsernames(ctx context.Context) ([]string, error) {
	return s.users.ListUsernames(ctx)
}
