package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Insert creates a user. ON CONFLICT DO NOTHING keeps the statement free of
// driver-specific error inspection: zero rows affected means the username
// was already taken.
func (r *UserRepository) Insert(ctx context.Context, username, password string) error {
	res, err := r.store.db.ExecContext(ctx, `
		INSERT INTO users (username, password)
		VALUES (?, ?)
		ON CONFLICT(username) DO NOTHING
	`, username, password)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserExists
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.store.db.QueryRowContext(ctx, `
		SELECT username, password FROM users WHERE username = ?
	`, username).Scan(&u.Username, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Processes = []domain.Process{}
	return &u, nil
}

func (r *UserRepository) ListUsernames(ctx context.Context) ([]string, error) {
	rows, err := r.store.db.QueryContext(ctx, `SELECT username FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan username: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usernames: %w", err)
	}
	return names, nil
}
