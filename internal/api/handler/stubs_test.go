package handler

import (
	"context"

	"github.com/stepwise/process-tracker/internal/core/domain"
	"github.com/stepwise/process-tracker/internal/core/ports"
)

type stubSyncService struct {
	createFn       func(ctx context.Context, p *domain.Process, owner string) error
	createBatchFn  func(ctx context.Context, ps []domain.Process, owner string) []ports.BatchOutcome
	updateFn       func(ctx context.Context, p *domain.Process, owner string) error
	updateStepsFn  func(ctx context.Context, processID string, steps []domain.Step) []ports.BatchOutcome
	deleteFn       func(ctx context.Context, id string) error
	deleteBatchFn  func(ctx context.Context, ids []string) []ports.BatchOutcome
	deleteStepsFn  func(ctx context.Context, ids []string) error
}

func (s *stubSyncService) CreateProcess(ctx context.Context, p *domain.Process, owner string) error {
	return s.createFn(ctx, p, owner)
}

func (s *stubSyncService) CreateProcesses(ctx context.Context, ps []domain.Process, owner string) []ports.BatchOutcome {
	return s.createBatchFn(ctx, ps, owner)
}

func (s *stubSyncService) UpdateProcess(ctx context.Context, p *domain.Process, owner string) error {
	return s.updateFn(ctx, p, owner)
}

func (s *stubSyncService) UpdateSteps(ctx context.Context, processID string, steps []domain.Step) []ports.BatchOutcome {
	return s.updateStepsFn(ctx, processID, steps)
}

func (s *stubSyncService) DeleteProcess(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubSyncService) DeleteProcesses(ctx context.Context, ids []string) []ports.BatchOutcome {
	return s.deleteBatchFn(ctx, ids)
}

func (s *stubSyncService) DeleteSteps(ctx context.Context, ids []string) error {
	return s.deleteStepsFn(ctx, ids)
}

type stubQueryService struct {
	getProcessFn   func(ctx context.Context, id string, withSteps bool) (*domain.Process, error)
	getUserFn      func(ctx context.Context, username string) (*domain.User, error)
	editSummaryFn  func(ctx context.Context, owner string) ([]domain.EditSummary, error)
	deletedIDsFn   func(ctx context.Context) ([]string, error)
	getStepsFn     func(ctx context.Context, processID string) ([]domain.Step, error)
	isDeletedFn    func(ctx context.Context, id string) (bool, error)
	listUsersFn    func(ctx context.Context) ([]string, error)
}

func (s *stubQueryService) GetProcess(ctx context.Context, id string, withSteps bool) (*domain.Process, error) {
	return s.getProcessFn(ctx, id, withSteps)
}

func (s *stubQueryService) GetUserWithProcesses(ctx context.Context, username string) (*domain.User, error) {
	return s.getUserFn(ctx, username)
}

func (s *stubQueryService) GetEditSummary(ctx context.Context, owner string) ([]domain.EditSummary, error) {
	return s.editSummaryFn(ctx, owner)
}

func (s *stubQueryService) GetDeletedIDs(ctx context.Context) ([]string, error) {
	return s.deletedIDsFn(ctx)
}

func (s *stubQueryService) GetSteps(ctx context.Context, processID string) ([]domain.Step, error) {
	return s.getStepsFn(ctx, processID)
}

func (s *stubQueryService) IsDeleted(ctx context.Context, id string) (bool, error) {
	return s.isDeletedFn(ctx, id)
}

func (s *stubQueryService) ListUsernames(ctx context.Context) ([]string, error) {
	return s.listUsersFn(ctx)
}
