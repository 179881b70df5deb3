package registry

import (
	"sync"
	"time"
)

// FetchCache throttles and caches registry calls. The upstream API enforces
// an informal daily quota; every outbound call must consult this gate first.
type FetchCache struct {
	mu          sync.Mutex
	minInterval time.Duration
	ttl         time.Duration
	now         func() time.Time

	payload     []RawRecord
	hasPayload  bool
	cachedAt    time.Time
	lastAttempt time.Time
}

func NewFetchCache(minInterval, ttl time.Duration) *FetchCache {
	return &FetchCache{
		minInterval: minInterval,
		ttl:         ttl,
		now:         time.Now,
	}
}

// ShouldFetch reports whether enough time has passed since the last
// successful fetch to permit another outbound call.
func (c *FetchCache) ShouldFetch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now().Sub(c.lastAttempt) >= c.minInterval
}

// Cached returns the last stored payload if it is still within the TTL.
func (c *FetchCache) Cached() ([]RawRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasPayload || c.now().Sub(c.cachedAt) >= c.ttl {
		return nil, false
	}
	return c.payload, true
}

// Update stores a payload and stamps both the cache time and the
// last-attempt time.
func (c *FetchCache) Update(payload []RawRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.payload = payload
	c.hasPayload = true
	c.cachedAt = now
	c.lastAttempt = now
}

// NextFetchIn returns how long until the next outbound call is permitted.
func (c *FetchCache) NextFetchIn() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	remaining := c.minInterval - c.now().Sub(c.lastAttempt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
