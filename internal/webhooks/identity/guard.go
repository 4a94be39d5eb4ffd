package identitywebhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/admaster-ai/admaster-backend/pkg/redis"
)

const replayScope = "webhooks:identity"

// ReplayGuard suppresses duplicate deliveries of the same provider message.
// Event application is idempotent regardless; the guard saves the directory
// round trip and bounds replay storms at the edge.
type ReplayGuard struct {
	store redis.IdempotencyStore
	ttl   time.Duration
}

// NewReplayGuard builds a guard that remembers message ids for ttl.
func NewReplayGuard(store redis.IdempotencyStore, ttl time.Duration) (*ReplayGuard, error) {
	if store == nil {
		return nil, errors.New("replay store is required")
	}
	if ttl < 0 {
		return nil, errors.New("ttl must be non-negative")
	}
	return &ReplayGuard{store: store, ttl: ttl}, nil
}

// CheckAndMark records the message id; true means it was already delivered.
func (g *ReplayGuard) CheckAndMark(ctx context.Context, messageID string) (bool, error) {
	if messageID == "" {
		return false, errors.New("message id is required")
	}
	key := g.store.IdempotencyKey(replayScope, messageID)
	set, err := g.store.SetNX(ctx, key, "1", g.ttl)
	if err != nil {
		return false, fmt.Errorf("set replay key: %w", err)
	}
	return !set, nil
}

// Release forgets the message id so the provider's retry can re-apply an
// event whose handling failed.
func (g *ReplayGuard) Release(ctx context.Context, messageID string) error {
	if messageID == "" {
		return errors.New("message id is required")
	}
	return g.store.Del(ctx, g.store.IdempotencyKey(replayScope, messageID))
}
