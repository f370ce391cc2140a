package roles

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/tenant-passport/internal/domain"
)

// Store maps an account identity to its chosen role. Assignments outlive
// sessions and never expire; they are absent until explicitly chosen.
type Store interface {
	// Get returns the role for identity, or RoleNone when identity is blank
	// or no assignment exists.
	Get(ctx context.Context, identity string) (domain.Role, error)
	// Set overwrites any existing assignment. Silent no-op when identity is blank.
	Set(ctx context.Context, identity string, role domain.Role) error
	// Clear removes the assignment. No-op when none exists or identity is blank.
	Clear(ctx context.Context, identity string) error
}

const roleKeyPrefix = "role:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Redis-backed role store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, identity string) (domain.Role, error) {
	if identity == "" {
		return domain.RoleNone, nil
	}
	val, err := s.client.Get(ctx, roleKeyPrefix+identity).Result()
	if err == redis.Nil {
		return domain.RoleNone, nil
	}
	if err != nil {
		return domain.RoleNone, err
	}
	role := domain.Role(val)
	if !domain.ValidRole(role) {
		return domain.RoleNone, nil
	}
	return role, nil
}

func (s *redisStore) Set(ctx context.Context, identity string, role domain.Role) error {
	if identity == "" {
		return nil
	}
	// No TTL: role assignments never auto-expire.
	return s.client.Set(ctx, roleKeyPrefix+identity, string(role), 0).Err()
}

func (s *redisStore) Clear(ctx context.Context, identity string) error {
	if identity == "" {
		return nil
	}
	return s.client.Del(ctx, roleKeyPrefix+identity).Err()
}

type memoryStore struct {
	mu    sync.RWMutex
	byKey map[string]domain.Role
}

// NewMemoryStore returns an in-process role store, used in tests and when
// Redis is not configured.
func NewMemoryStore() Store {
	return &memoryStore{byKey: make(map[string]domain.Role)}
}

func (s *memoryStore) Get(_ context.Context, identity string) (domain.Role, error) {
	if identity == "" {
		return domain.RoleNone, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byKey[identity], nil
}

func (s *memoryStore) Set(_ context.Context, identity string, role domain.Role) error {
	if identity == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey[identity] = role
	return nil
}

func (s *memoryStore) Clear(_ context.Context, identity string) error {
	if identity == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byKey, identity)
	return nil
}
