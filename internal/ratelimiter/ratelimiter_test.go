package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketAllow(t *testing.T) {
	t.Run("allows requests within the limit", func(t *testing.T) {
		b := &bucket{tokens: 10, capacity: 10, rate: 1, lastRefill: time.Now()}
		assert.True(t, b.allow())
		assert.Equal(t, 9.0, b.tokens)
	})

	t.Run("denies when tokens are depleted", func(t *testing.T) {
		b := &bucket{tokens: 0, capacity: 10, rate: 1, lastRefill: time.Now()}
		assert.False(t, b.allow())
	})

	t.Run("refills over time", func(t *testing.T) {
		b := &bucket{tokens: 0, capacity: 10, rate: 1, lastRefill: time.Now().Add(-2 * time.Second)}
		assert.True(t, b.allow())
		assert.InDelta(t, 1.0, b.tokens, 1.1)
	})

	t.Run("never exceeds capacity", func(t *testing.T) {
		b := &bucket{tokens: 9, capacity: 10, rate: 1, lastRefill: time.Now().Add(-time.Hour)}
		b.allow()
		assert.Equal(t, 9.0, b.tokens)
	})
}

func TestLimiterAllow(t *testing.T) {
	l := New(1, 2, time.Minute) // 1 token/s, burst of 2

	assert.True(t, l.Allow("alice"))
	assert.True(t, l.Allow("alice"))
	assert.False(t, l.Allow("alice"), "burst depleted")

	assert.True(t, l.Allow("bob"), "identities are independent")
}

func TestLimiterGetBucket(t *testing.T) {
	t.Run("same identity reuses the bucket", func(t *testing.T) {
		l := New(1, 10, time.Minute)
		assert.Same(t, l.getBucket("alice"), l.getBucket("alice"))
		assert.NotSame(t, l.getBucket("alice"), l.getBucket("bob"))
	})

	t.Run("concurrent creation yields one bucket", func(t *testing.T) {
		l := New(1, 10, time.Minute)
		wg := sync.WaitGroup{}
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				l.getBucket("alice")
			}()
		}
		wg.Wait()

		l.mu.RLock()
		defer l.mu.RUnlock()
		assert.Len(t, l.buckets, 1)
	})
}

func TestLimiterCleanup(t *testing.T) {
	t.Run("idle bucket expires", func(t *testing.T) {
		l := New(1, 10, time.Millisecond)
		l.getBucket("alice")

		require.Eventually(t, func() bool {
			l.mu.RLock()
			defer l.mu.RUnlock()
			_, exists := l.buckets["alice"]
			return !exists
		}, 100*time.Millisecond, 10*time.Millisecond)
	})

	t.Run("access resets the expiry timer", func(t *testing.T) {
		l := New(1, 10, 50*time.Millisecond)
		l.Allow("alice")
		time.Sleep(30 * time.Millisecond)
		l.Allow("alice")
		time.Sleep(30 * time.Millisecond)

		l.mu.RLock()
		_, exists := l.buckets["alice"]
		l.mu.RUnlock()
		assert.True(t, exists, "timer was reset by the second access")
	})
}

func TestLimiterStop(t *testing.T) {
	l := New(1, 10, time.Minute)
	l.getBucket("alice")
	l.getBucket("bob")

	l.Stop()

	assert.False(t, l.buckets["alice"].timer.Stop())
	assert.False(t, l.buckets["bob"].timer.Stop())
}
