package sqlite

import (
	"context"
	"fmt"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

// TombstoneRepository records deleted process ids in the deletedProcesses
// table. Rows are never removed.
type TombstoneRepository struct {
	store *Store
}

func NewTombstoneRepository(store *Store) *TombstoneRepository {
	return &TombstoneRepository{store: store}
}

func (r *TombstoneRepository) Insert(ctx context.Context, id string) error {
	res, err := r.store.db.ExecContext(ctx, `
		INSERT INTO deletedProcesses (id)
		VALUES (?)
		ON CONFLICT(id) DO NOTHING
	`, id)
	if err != nil {
		return fmt.Errorf("insert tombstone: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert tombstone: %w", err)
	}
	if n == 0 {
		return domain.ErrProcessDeleted
	}
	return nil
}

func (r *TombstoneRepository) Contains(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.store.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM deletedProcesses WHERE id = ?
	`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check tombstone: %w", err)
	}
	return n > 0, nil
}

// ListIDs materialises the full tombstone dump. The scan itself is a
// restartable row walk, so a cursor layer can slot in without changing the
// callers.
func (r *TombstoneRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	if err := r.forEachID(ctx, func(id string) error {
		ids = append(ids, id)
		return nil
	}); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *TombstoneRepository) forEachID(ctx context.Context, fn func(id string) error) error {
	rows, err := r.store.db.QueryContext(ctx, `SELECT id FROM deletedProcesses`)
	if err != nil {
		return fmt.Errorf("query tombstones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan tombstone: %w", err)
		}
		if err := fn(id); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate tombstones: %w", err)
	}
	return nil
}
