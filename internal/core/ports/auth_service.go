package ports

import (
	"context"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

// AuthService implements registration and login. The issued token carries
// the username claim only; the core never cross-checks it against the owner
// of the data being written.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login returns a signed JWT on success, domain.ErrInvalidCredentials
	// on a bad password.
	Login(ctx context.Context, username, password string) (string, error)
}
