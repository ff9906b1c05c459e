package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore keeps deleted account identities whose outstanding bearer
// tokens must stop working. Entries expire with the same TTL as the tokens
// they cover. Key format: revoked:<user_id>
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis client.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke records the identity for ttl; any token presenting it is rejected.
func (s *RevocationStore) Revoke(ctx context.Context, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(userID), "1", ttl).Err()
}

// IsRevoked reports whether the identity has been revoked.
func (s *RevocationStore) IsRevoked(ctx context.Context, userID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *RevocationStore) key(userID string) string {
	return fmt.Sprintf("revoked:%s", userID)
}
