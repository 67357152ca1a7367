// Package revocation keeps a denylist of revoked refresh-token IDs in Redis.
// Entries expire together with the token they revoke, so the list never
// outgrows the set of tokens that are still otherwise valid.
package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "rt:denylist:"

// Store records revoked refresh-token JTIs. A nil *Store is a valid no-op
// store, used when Redis is not configured: nothing is ever revoked and no
// token is ever reported as revoked.
type Store struct {
	client *redis.Client
}

// NewStore wraps an existing Redis client. Pass the result around even when
// client is nil so callers never need to branch on configuration.
func NewStore(client *redis.Client) *Store {
	if client == nil {
		return nil
	}
	return &Store{client: client}
}

// Enabled reports whether revocation is backed by a live store.
func (s *Store) Enabled() bool {
	return s != nil
}

// Revoke denylists jti until expiresAt. Tokens past their expiry need no
// entry, the signature check already rejects them.
func (s *Store) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if s == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, denylistKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to denylist token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been denylisted.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s == nil {
		return false, nil
	}
	err := s.client.Get(ctx, denylistKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check denylist: %w", err)
	}
	return true, nil
}
