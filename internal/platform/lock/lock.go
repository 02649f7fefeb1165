// Package lock provides the short-lived duplicate-suppression lock used to
// guard event-triggered sends. Acquisition is immediate and non-blocking;
// the TTL is the sole release guarantee against stuck locks.
package lock

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard is a shared, atomic, TTL-capable lock store. TryAcquire returns false
// when the key is already held; that is a normal outcome, not an error.
type Guard interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// ---------------------------------------------------------------------------
// Redis guard
// ---------------------------------------------------------------------------

const keyPrefix = "care_im:lock:"

type redisGuard struct {
	rdb *redis.Client
}

// NewRedisGuard returns a Guard backed by a shared Redis instance, reachable
// by all workers.
func NewRedisGuard(rdb *redis.Client) Guard {
	return &redisGuard{rdb: rdb}
}

func (g *redisGuard) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, keyPrefix+key, "locked", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (g *redisGuard) Release(ctx context.Context, key string) error {
	return g.rdb.Del(ctx, keyPrefix+key).Err()
}

// ---------------------------------------------------------------------------
// In-memory guard
// ---------------------------------------------------------------------------

// MemoryGuard is a thread-safe, in-process Guard for tests and single-node
// deployments.
type MemoryGuard struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryGuard creates an empty MemoryGuard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

// SetClock overrides the guard's time source. Test hook.
func (g *MemoryGuard) SetClock(now func() time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.now = now
}

func (g *MemoryGuard) TryAcquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if exp, held := g.expires[key]; held && now.Before(exp) {
		return false, nil
	}
	g.expires[key] = now.Add(ttl)
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.expires, key)
	return nil
}
