package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

// StepRepository persists checklist steps. Steps have no version column and
// no deletion tracking of their own; they live and die with their process.
type StepRepository struct {
	store *Store
}

func NewStepRepository(store *Store) *StepRepository {
	return &StepRepository{store: store}
}

func (r *StepRepository) Insert(ctx context.Context, s *domain.Step, processID string) error {
	res, err := r.store.db.ExecContext(ctx, `
		INSERT INTO steps (id, text, done, isMandatory, processId)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, s.ID, s.Text, boolToInt(s.Done), boolToInt(s.IsMandatory), processID)
	if err != nil {
		return fmt.Errorf("insert step: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert step: %w", err)
	}
	if n == 0 {
		return domain.ErrStepExists
	}
	return nil
}

// Update overwrites text, done, mandatory and the owning process, keyed by
// step id. Updating an absent id matches zero rows and is a no-op.
func (r *StepRepository) Update(ctx context.Context, s *domain.Step, processID string) error {
	_, err := r.store.db.ExecContext(ctx, `
		UPDATE steps
		SET text = ?, done = ?, isMandatory = ?, processId = ?
		WHERE id = ?
	`, s.Text, boolToInt(s.Done), boolToInt(s.IsMandatory), processID, s.ID)
	if err != nil {
		return fmt.Errorf("update step: %w", err)
	}
	return nil
}

func (r *StepRepository) FindByProcess(ctx context.Context, processID string) ([]domain.Step, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, text, done, isMandatory FROM steps WHERE processId = ?
	`, processID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	steps := []domain.Step{}
	for rows.Next() {
		var s domain.Step
		var done, isMandatory int
		if err := rows.Scan(&s.ID, &s.Text, &done, &isMandatory); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		s.Done = done != 0
		s.IsMandatory = isMandatory != 0
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

func (r *StepRepository) DeleteByProcess(ctx context.Context, processID string) error {
	if _, err := r.store.db.ExecContext(ctx, `DELETE FROM steps WHERE processId = ?`, processID); err != nil {
		return fmt.Errorf("delete steps by process: %w", err)
	}
	return nil
}

func (r *StepRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := fmt.Sprintf(`DELETE FROM steps WHERE id IN (%s)`, placeholders)
	if _, err := r.store.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete steps by ids: %w", err)
	}
	return nil
}
