package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/clock"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value    any
	storedAt time.Time
}

// TimedCache is the response cache shared by every read path. Values are
// treated as immutable once stored; staleness is decided per ResourceType
// at read time and stale entries stay in place until the next Set or an
// explicit invalidation.
type TimedCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttls    TTLTable
	clk     clock.Clock
	logger  *slog.Logger

	group    singleflight.Group
	inflight sync.Map // key -> struct{}, so Clear can forget pending flights
}

type FetchFunc func(ctx context.Context) (any, error)

func NewTimedCache(ttls TTLTable, clk clock.Clock, logger *slog.Logger) *TimedCache {
	return &TimedCache{
		entries: make(map[string]entry),
		ttls:    ttls,
		clk:     clk,
		logger:  logger,
	}
}

// Get returns the stored value unless it is missing or stale. A stale read
// behaves exactly like a miss; the entry is not evicted here.
func (c *TimedCache) Get(key string, rt ResourceType) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.staleLocked(e, rt) {
		return nil, false
	}
	return e.value, true
}

func (c *TimedCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.clk.Now()}
}

func (c *TimedCache) IsStale(key string, rt ResourceType) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return !ok || c.staleLocked(e, rt)
}

func (c *TimedCache) staleLocked(e entry, rt ResourceType) bool {
	return c.clk.Now().Sub(e.storedAt) > c.ttls.For(rt)
}

func (c *TimedCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidatePattern removes every key containing the given substring. Used
// after mutations to drop a booking's detail key alongside the list key.
func (c *TimedCache) InvalidatePattern(pattern string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.Contains(k, pattern) {
			delete(c.entries, k)
		}
	}
}

// Clear wipes all entries and forgets all pending fetches. Logout path.
func (c *TimedCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	c.inflight.Range(func(key, _ any) bool {
		c.group.Forget(key.(string))
		c.inflight.Delete(key)
		return true
	})
}

func (c *TimedCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns a snapshot of the cached keys, for the debug surface.
func (c *TimedCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Fetch is the deduplicated read-through path: a fresh cached value wins;
// otherwise all concurrent callers for the same key share one invocation of
// fn and its result or error. The in-flight slot is dropped on settle either
// way, so a failure never poisons later fetches, and the cache is only
// written on success.
func (c *TimedCache) Fetch(ctx context.Context, key string, rt ResourceType, fn FetchFunc) (any, error) {
	if v, ok := c.Get(key, rt); ok {
		return v, nil
	}

	c.inflight.Store(key, struct{}{})
	v, err, shared := c.group.Do(key, func() (any, error) {
		defer c.inflight.Delete(key)

		// Another flight may have landed between the miss and here.
		if v, ok := c.Get(key, rt); ok {
			return v, nil
		}
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("fetch coalesced", "key", key)
	}
	return v, nil
}
