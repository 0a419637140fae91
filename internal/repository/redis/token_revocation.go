package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/redis/go-redis/v9"
)

type tokenRevocationStore struct {
	client *redis.Client
}

func NewTokenRevocationStore(client *redis.Client) auth.TokenRevocationStore {
	return &tokenRevocationStore{client: client}
}

func revokedKey(tokenID string) string {
	return keyPrefix + "revoked:" + tokenID
}

// Revoke keeps the marker only as long as the token could still verify.
func (s *tokenRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *tokenRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return n > 0, nil
}
