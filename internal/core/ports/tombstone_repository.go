package ports

import "context"

// TombstoneRepository records the ids of deleted processes. Membership is
// permanent: once an id is tombstoned it can never become an active process
// again.
type TombstoneRepository interface {
	// Insert marks an id as deleted. Returns domain.ErrProcessDeleted when
	// the id is already tombstoned.
	Insert(ctx context.Context, id string) error
	Contains(ctx context.Context, id string) (bool, error)
	ListIDs(ctx context.Context) ([]string, error)
}
