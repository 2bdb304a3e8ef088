package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

// ProcessRepository persists process rows. Booleans are stored as 0/1 ints
// and round-tripped back to bools on read; assignedAt/editAt are stored as
// epoch seconds via the codec; deadline is stored as the raw wire string.
type ProcessRepository struct {
	store *Store
	codec *domain.TimeCodec
}

func NewProcessRepository(store *Store, codec *domain.TimeCodec) *ProcessRepository {
	return &ProcessRepository{store: store, codec: codec}
}

func (r *ProcessRepository) Insert(ctx context.Context, p *domain.Process, owner string) error {
	assignedAt, editAt, err := r.encodeTimes(p)
	if err != nil {
		return err
	}

	res, err := r.store.db.ExecContext(ctx, `
		INSERT INTO processes
		(id, name, description, isMandatory, processType, timeNeeded, groupName, deadline, assignedAt, owner, editAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		p.ID, p.Name, p.Description, boolToInt(p.IsMandatory), p.ProcessType,
		p.TimeNeeded, p.GroupName, p.Deadline, assignedAt, owner, editAt,
	)
	if err != nil {
		return fmt.Errorf("insert process: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert process: %w", err)
	}
	if n == 0 {
		return domain.ErrProcessExists
	}
	return nil
}

// Update overwrites every field except id, unconditionally.
func (r *ProcessRepository) Update(ctx context.Context, p *domain.Process, owner string) error {
	assignedAt, editAt, err := r.encodeTimes(p)
	if err != nil {
		return err
	}

	_, err = r.store.db.ExecContext(ctx, `
		UPDATE processes
		SET name = ?, description = ?, isMandatory = ?, processType = ?,
		    timeNeeded = ?, groupName = ?, deadline = ?, assignedAt = ?,
		    owner = ?, editAt = ?
		WHERE id = ?
	`,
		p.Name, p.Description, boolToInt(p.IsMandatory), p.ProcessType,
		p.TimeNeeded, p.GroupName, p.Deadline, assignedAt, owner, editAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update process: %w", err)
	}
	return nil
}

// UpdateIfNewer includes the editAt guard in the predicate. The comparison
// and the write happen inside one statement, so the write is row-atomic even
// though the surrounding insert-then-update sequence is not.
func (r *ProcessRepository) UpdateIfNewer(ctx context.Context, p *domain.Process, owner string) (bool, error) {
	assignedAt, editAt, err := r.encodeTimes(p)
	if err != nil {
		return false, err
	}

	res, err := r.store.db.ExecContext(ctx, `
		UPDATE processes
		SET name = ?, description = ?, isMandatory = ?, processType = ?,
		    timeNeeded = ?, groupName = ?, deadline = ?, assignedAt = ?,
		    owner = ?, editAt = ?
		WHERE id = ? AND editAt < ?
	`,
		p.Name, p.Description, boolToInt(p.IsMandatory), p.ProcessType,
		p.TimeNeeded, p.GroupName, p.Deadline, assignedAt, owner, editAt,
		p.ID, editAt,
	)
	if err != nil {
		return false, fmt.Errorf("update process if newer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update process if newer: %w", err)
	}
	return n > 0, nil
}

func (r *ProcessRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.store.db.ExecContext(ctx, `DELETE FROM processes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete process: %w", err)
	}
	return nil
}

func (r *ProcessRepository) FindByID(ctx context.Context, id string) (*domain.Process, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, name, description, isMandatory, processType, timeNeeded, groupName, deadline, assignedAt, editAt
		FROM processes
		WHERE id = ?
	`, id)

	p, err := r.scanProcess(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find process: %w", err)
	}
	return p, nil
}

func (r *ProcessRepository) FindByOwner(ctx context.Context, owner string) ([]domain.Process, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, name, description, isMandatory, processType, timeNeeded, groupName, deadline, assignedAt, editAt
		FROM processes
		WHERE owner = ?
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("query processes: %w", err)
	}
	defer rows.Close()

	processes := []domain.Process{}
	for rows.Next() {
		p, err := r.scanProcess(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan process: %w", err)
		}
		processes = append(processes, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate processes: %w", err)
	}
	return processes, nil
}

func (r *ProcessRepository) EditSummaries(ctx context.Context, owner string) ([]domain.EditSummary, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, editAt FROM processes WHERE owner = ?
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("query edit summaries: %w", err)
	}
	defer rows.Close()

	summaries := []domain.EditSummary{}
	for rows.Next() {
		var id string
		var editAt int64
		if err := rows.Scan(&id, &editAt); err != nil {
			return nil, fmt.Errorf("scan edit summary: %w", err)
		}
		summaries = append(summaries, domain.EditSummary{ID: id, EditAt: r.codec.Decode(editAt)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edit summaries: %w", err)
	}
	return summaries, nil
}

func (r *ProcessRepository) scanProcess(scan func(dest ...any) error) (*domain.Process, error) {
	var p domain.Process
	var isMandatory int
	var assignedAt, editAt int64
	err := scan(
		&p.ID, &p.Name, &p.Description, &isMandatory, &p.ProcessType,
		&p.TimeNeeded, &p.GroupName, &p.Deadline, &assignedAt, &editAt,
	)
	if err != nil {
		return nil, err
	}
	p.IsMandatory = isMandatory != 0
	p.AssignedAt = r.codec.Decode(assignedAt)
	p.EditAt = r.codec.Decode(editAt)
	p.Steps = []domain.Step{}
	return &p, nil
}

func (r *ProcessRepository) encodeTimes(p *domain.Process) (assignedAt, editAt int64, err error) {
	assignedAt, err = r.codec.Encode(p.AssignedAt)
	if err != nil {
		return 0, 0, err
	}
	editAt, err = r.codec.Encode(p.EditAt)
	if err != nil {
		return 0, 0, err
	}
	return assignedAt, editAt, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
