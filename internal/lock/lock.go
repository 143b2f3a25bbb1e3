// Package lock provides the time-boxed re-entrancy guard that protects the
// roster-join path from rapid-fire duplicate triggers (a double-tapped join
// button, a redelivered webhook event).  The guard is deliberately
// best-effort: it deduplicates within a short window, it is not a durable
// idempotency mechanism.  Idempotence of the join itself is enforced by the
// roster rules in the booking package.
package lock

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Acquirer is the guard capability injected into handlers.  TryAcquire
// returns true when the caller is first in for the key within ttl; later
// callers with the same key get false until the window expires.
type Acquirer interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) bool
}

// New returns a Redis-backed guard when a client is available, otherwise an
// in-process one.  The Redis guard keeps deduplication working across
// replicas; the in-process fallback only covers a single instance.
func New(rdb *redis.Client) Acquirer {
	if rdb != nil {
		return &redisAcquirer{rdb: rdb}
	}
	return NewMemoryAcquirer()
}

type redisAcquirer struct {
	rdb *redis.Client
}

// TryAcquire sets the key with NX and a PX expiry in a single round trip.
// On a Redis error the guard fails open: a duplicate slipping through is
// harmless (the join is idempotent), whereas dropping a legitimate request
// is not.
func (a *redisAcquirer) TryAcquire(ctx context.Context, key string, ttl time.Duration) bool {
	ok, err := a.rdb.SetNX(ctx, "guard:"+key, 1, ttl).Result()
	if err != nil {
		log.Printf("lock: redis SetNX failed for %s: %v", key, err)
		return true
	}
	return ok
}

// MemoryAcquirer is a process-local expiring key set.  Entries are evicted
// by a timer scheduled at acquisition, so an idle process does not
// accumulate keys.
type MemoryAcquirer struct {
	mu   sync.Mutex
	held map[string]time.Time
}

// NewMemoryAcquirer returns an empty in-process guard.
func NewMemoryAcquirer() *MemoryAcquirer {
	return &MemoryAcquirer{held: make(map[string]time.Time)}
}

// TryAcquire records the key for ttl.  The check-then-insert runs under the
// mutex, so concurrent callers race safely.
func (a *MemoryAcquirer) TryAcquire(_ context.Context, key string, ttl time.Duration) bool {
	now := time.Now()
	a.mu.Lock()
	defer a.mu.Unlock()
	if until, ok := a.held[key]; ok && now.Before(until) {
		return false
	}
	a.held[key] = now.Add(ttl)
	time.AfterFunc(ttl, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		// Only evict if nobody re-acquired with a later deadline meanwhile.
		if until, ok := a.held[key]; ok && !time.Now().Before(until) {
			delete(a.held, key)
		}
	})
	return true
}
