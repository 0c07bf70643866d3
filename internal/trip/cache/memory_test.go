package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcheck/pkg/platform/sentinel"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithClock(clock.Now))

	value := []byte(`{"entryType":"ETA"}`)
	require.NoError(t, c.Set(ctx, "trip:a", value, time.Minute))
	value[0] = 'X'

	got, err := c.Get(ctx, "trip:a")
	require.NoError(t, err)
	assert.Equal(t, `{"entryType":"ETA"}`, string(got), "stored value is a copy")

	got[0] = 'Y'
	again, err := c.Get(ctx, "trip:a")
	require.NoError(t, err)
	assert.Equal(t, byte('{'), again[0], "returned value is a copy")
}

func TestMemoryCacheMissAndExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithClock(clock.Now))

	_, err := c.Get(ctx, "absent")
	assert.True(t, errors.Is(err, sentinel.ErrCacheMiss))

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	clock.Advance(59 * time.Second)
	_, err = c.Get(ctx, "k")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, sentinel.ErrCacheMiss)
	assert.Equal(t, 0, c.Len(), "expired entries are dropped on read")
}

func TestMemoryCacheExpiredReadKeepsConcurrentSet(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}

	var c *MemoryCache
	var refresh bool
	c = NewMemoryCache(WithClock(func() time.Time {
		now := clock.Now()
		if refresh {
			// Simulates a writer landing between the expiry check and the delete.
			refresh = false
			require.NoError(t, c.Set(ctx, "k", []byte("fresh"), time.Minute))
		}
		return now
	}))

	require.NoError(t, c.Set(ctx, "k", []byte("stale"), time.Minute))
	clock.Advance(time.Minute)

	refresh = true
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, sentinel.ErrCacheMiss)

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(got))
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCacheIgnoresNonPositiveTTL(t *testing.T) {
	c := NewMemoryCache()
	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), 0))
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCacheBounded(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithMaxEntries(2), WithClock(clock.Now))

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Hour))
	assert.Equal(t, 2, c.Len())
	_, err := c.Get(ctx, "c")
	assert.ErrorIs(t, err, sentinel.ErrCacheMiss, "full cache refuses new keys")

	require.NoError(t, c.Set(ctx, "a", []byte("1b"), time.Minute))
	got, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1b", string(got), "existing keys can be overwritten when full")

	clock.Advance(2 * time.Minute)
	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Hour))
	_, err = c.Get(ctx, "c")
	assert.NoError(t, err, "expired entries make room")
}

func TestMemoryCacheSweep(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithClock(clock.Now))

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("short-%d", i), []byte("v"), time.Second))
	}
	require.NoError(t, c.Set(ctx, "long", []byte("v"), time.Hour))

	clock.Advance(time.Minute)
	assert.Equal(t, 5, c.Sweep())
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k-%d", i%5)
			_ = c.Set(ctx, key, []byte("v"), time.Minute)
			_, _ = c.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, c.Len())
}
