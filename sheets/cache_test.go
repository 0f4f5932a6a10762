package sheets

import (
	"testing"
	"time"
)

func TestCacheHitWithinTTL(t *testing.T) {
	t.Parallel()

	clock := time.Date(2025, time.November, 18, 10, 0, 0, 0, time.UTC)
	c := NewCache(5 * time.Minute)
	c.now = func() time.Time { return clock }

	rows := [][]string{{"a", "b"}}
	c.Set(TicketsKey, rows)

	clock = clock.Add(4 * time.Minute)
	got, ok := c.Get(TicketsKey)
	if !ok {
		t.Fatal("Get: miss within the TTL window")
	}
	if len(got) != 1 || got[0][0] != "a" {
		t.Errorf("Get: got %v", got)
	}
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	clock := time.Date(2025, time.November, 18, 10, 0, 0, 0, time.UTC)
	c := NewCache(5 * time.Minute)
	c.now = func() time.Time { return clock }

	c.Set(TicketsKey, [][]string{{"a"}})

	clock = clock.Add(5*time.Minute + time.Second)
	if _, ok := c.Get(TicketsKey); ok {
		t.Error("Get: hit after the TTL elapsed")
	}
}

func TestCacheInvalidate(t *testing.T) {
	t.Parallel()

	c := NewCache(5 * time.Minute)
	c.Set(TicketsKey, [][]string{{"a"}})
	c.Set(BookingsKey, [][]string{{"b"}})

	c.Invalidate(TicketsKey)
	if _, ok := c.Get(TicketsKey); ok {
		t.Error("Get: invalidated key still present")
	}
	if _, ok := c.Get(BookingsKey); !ok {
		t.Error("Get: unrelated key dropped by Invalidate")
	}
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	t.Parallel()

	c := NewCache(0) // zero falls back to the default TTL
	if _, ok := c.Get(HistoryKey); ok {
		t.Error("Get: hit on a key never set")
	}
}
