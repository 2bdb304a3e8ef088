package ports

import (
	"context"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

// UserRepository defines persistence operations for users. Users are created
// once and never updated or deleted by this core.
type UserRepository interface {
	// Insert creates a user. Returns domain.ErrUserExists when the username
	// is already taken.
	Insert(ctx context.Context, username, password string) error
	// FindByUsername returns domain.ErrUserNotFound when no such user exists.
	// Processes are not hydrated at this layer.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsernames(ctx context.Context) ([]string, error)
}
