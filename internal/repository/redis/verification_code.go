package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/redis/go-redis/v9"
)

const (
	fieldHash     = "hash"
	fieldAttempts = "attempts"
)

type verificationCodeStore struct {
	client *redis.Client
}

func NewVerificationCodeStore(client *redis.Client) auth.VerificationCodeStore {
	return &verificationCodeStore{client: client}
}

func codeKey(cid, employeeNo string) string {
	return fmt.Sprintf("%scode:%s:%s", keyPrefix, cid, employeeNo)
}

func cooldownKey(cid, employeeNo string) string {
	return fmt.Sprintf("%scode-cooldown:%s:%s", keyPrefix, cid, employeeNo)
}

// Save replaces any outstanding code and resets its attempt counter.
func (s *verificationCodeStore) Save(ctx context.Context, cid, employeeNo, hash string, ttl time.Duration) error {
	key := codeKey(cid, employeeNo)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fieldHash, hash, fieldAttempts, 0)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline failed: %w", err)
	}
	return nil
}

func (s *verificationCodeStore) Get(ctx context.Context, cid, employeeNo string) (auth.VerificationCode, error) {
	values, err := s.client.HGetAll(ctx, codeKey(cid, employeeNo)).Result()
	if err != nil {
		return auth.VerificationCode{}, fmt.Errorf("redis hgetall failed: %w", err)
	}

	hash := values[fieldHash]
	if hash == "" {
		return auth.VerificationCode{}, auth.ErrCodeNotFound
	}

	attempts, err := strconv.ParseInt(values[fieldAttempts], 10, 64)
	if err != nil {
		attempts = 0
	}

	return auth.VerificationCode{Hash: hash, Attempts: attempts}, nil
}

func (s *verificationCodeStore) IncrementAttempts(ctx context.Context, cid, employeeNo string) (int64, error) {
	n, err := s.client.HIncrBy(ctx, codeKey(cid, employeeNo), fieldAttempts, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("redis hincrby failed: %w", err)
	}
	return n, nil
}

func (s *verificationCodeStore) Delete(ctx context.Context, cid, employeeNo string) error {
	return s.client.Del(ctx, codeKey(cid, employeeNo)).Err()
}

// AcquireCooldown reports false while a previous send is still cooling down.
func (s *verificationCodeStore) AcquireCooldown(ctx context.Context, cid, employeeNo string, cooldown time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, cooldownKey(cid, employeeNo), 1, cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx failed: %w", err)
	}
	return ok, nil
}
