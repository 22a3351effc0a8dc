package userdir

import (
	"sync"
	"time"

	"github.com/hucklog/ultimate-stats/internal/domain/playerstats"
)

type identityEntry struct {
	identity  playerstats.Identity
	expiresAt time.Time
}

// identityCache is a small TTL cache for resolved identities. Guest
// reconciliation resolves the same player once per team scope, so even
// a short TTL removes most repeat lookups.
type identityCache struct {
	mu         sync.RWMutex
	entries    map[string]identityEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newIdentityCache(ttl time.Duration, maxEntries int) *identityCache {
	return &identityCache{
		entries:    make(map[string]identityEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *identityCache) Get(playerID string) (playerstats.Identity, bool) {
	c.mu.RLock()
	entry, ok := c.entries[playerID]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		return playerstats.Identity{}, false
	}
	return entry.identity, true
}

func (c *identityCache) Set(playerID string, identity playerstats.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		// Full reset is fine at this size; avoids tracking an LRU list.
		c.entries = make(map[string]identityEntry)
	}
	c.entries[playerID] = identityEntry{
		identity:  identity,
		expiresAt: c.now().Add(c.ttl),
	}
}
