package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

const summaryTTL = 5 * time.Minute

// SummaryCache caches per-owner edit summaries between sync polls.
// Key format: editsum:<owner>
type SummaryCache struct {
	client *redis.Client
}

// NewSummaryCache creates a SummaryCache wrapping the given Redis client.
func NewSummaryCache(client *redis.Client) *SummaryCache {
	return &SummaryCache{client: client}
}

// Get reports (items, true, nil) on a hit and (nil, false, nil) on a miss.
func (c *SummaryCache) Get(ctx context.Context, owner string) ([]domain.EditSummary, bool, error) {
	raw, err := c.client.Get(ctx, c.key(owner)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("summary cache get: %w", err)
	}

	var items []domain.EditSummary
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("summary cache decode: %w", err)
	}
	return items, true, nil
}

// Set stores the summaries for owner (expires after summaryTTL).
func (c *SummaryCache) Set(ctx context.Context, owner string, items []domain.EditSummary) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("summary cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(owner), raw, summaryTTL).Err()
}

// Invalidate drops the cached summaries for owner. The empty owner flushes
// every summary key; deletions do not know the owning user, so they flush
// everything.
func (c *SummaryCache) Invalidate(ctx context.Context, owner string) error {
	if owner != "" {
		return c.client.Del(ctx, c.key(owner)).Err()
	}

	iter := c.client.Scan(ctx, 0, "editsum:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("summary cache flush: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("summary cache scan: %w", err)
	}
	return nil
}

func (c *SummaryCache) key(owner string) string {
	return "editsum:" + owner
}
