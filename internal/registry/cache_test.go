package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(minInterval, ttl time.Duration) (*FetchCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	cache := NewFetchCache(minInterval, ttl)
	cache.now = clock.now
	return cache, clock
}

func TestShouldFetchRespectsMinInterval(t *testing.T) {
	cache, clock := newTestCache(5*time.Minute, time.Hour)

	assert.True(t, cache.ShouldFetch())

	cache.Update([]RawRecord{{Name: "홍길동"}})
	assert.False(t, cache.ShouldFetch())

	clock.advance(4 * time.Minute)
	assert.False(t, cache.ShouldFetch())

	clock.advance(time.Minute)
	assert.True(t, cache.ShouldFetch())
}

func TestCachedExpiresAfterTTL(t *testing.T) {
	cache, clock := newTestCache(5*time.Minute, time.Hour)

	_, ok := cache.Cached()
	assert.False(t, ok, "empty cache must not report a payload")

	records := []RawRecord{{Name: "홍길동"}, {Name: "김철수"}}
	cache.Update(records)

	got, ok := cache.Cached()
	assert.True(t, ok)
	assert.Len(t, got, 2)

	clock.advance(59 * time.Minute)
	_, ok = cache.Cached()
	assert.True(t, ok)

	clock.advance(time.Minute)
	_, ok = cache.Cached()
	assert.False(t, ok, "payload older than the TTL must not be served")
}

func TestCachedEmptyPayloadIsStillValid(t *testing.T) {
	cache, _ := newTestCache(5*time.Minute, time.Hour)

	cache.Update([]RawRecord{})

	got, ok := cache.Cached()
	assert.True(t, ok, "an empty result is a valid cached payload")
	assert.Empty(t, got)
}

func TestNextFetchInCountsDown(t *testing.T) {
	cache, clock := newTestCache(5*time.Minute, time.Hour)

	cache.Update(nil)
	assert.Equal(t, 5*time.Minute, cache.NextFetchIn())

	clock.advance(2 * time.Minute)
	assert.Equal(t, 3*time.Minute, cache.NextFetchIn())

	clock.advance(10 * time.Minute)
	assert.Equal(t, time.Duration(0), cache.NextFetchIn())
}
