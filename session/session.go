package session

import (
	"context"
	"time"
)

// TTL is the sliding session lifetime: every successful Get renews it.
const TTL = 24 * time.Hour

// Store binds opaque session tokens to user IDs. Adapters: RedisStore for
// production, MemoryStore for tests and dev runs.
type Store interface {
	// Create binds a fresh token to the user and returns it.
	Create(ctx context.Context, userID uint) (string, error)
	// Get resolves a token to a user ID and renews the TTL. A missing or
	// expired token resolves to apperrors.ErrUnauthorized.
	Get(ctx context.Context, token string) (uint, error)
	// Destroy invalidates the token. Destroying an unknown token is a no-op.
	Destroy(ctx context.Context, token string) error
}
