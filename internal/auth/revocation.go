package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker tracks signed-out session tokens by jti until they would have
// expired anyway. Revoking the same jti twice is a no-op, which makes
// sign-out idempotent.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedKeyPrefix = "session:revoked:"

type redisRevoker struct {
	client *redis.Client
}

// NewRedisRevoker returns a Redis-backed revocation list.
func NewRedisRevoker(client *redis.Client) Revoker {
	return &redisRevoker{client: client}
}

func (r *redisRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if ttl <= 0 {
		// Already past expiry; nothing to track.
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (r *redisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, err := r.client.Get(ctx, revokedKeyPrefix+jti).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type memoryRevoker struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewMemoryRevoker returns an in-process revocation list, used in tests and
// when Redis is not configured.
func NewMemoryRevoker() Revoker {
	return &memoryRevoker{revoked: make(map[string]time.Time)}
}

func (r *memoryRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	r.mu.RLock()
	until, ok := r.revoked[jti]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		r.mu.Lock()
		delete(r.revoked, jti)
		r.mu.Unlock()
		return false, nil
	}
	return true, nil
}
