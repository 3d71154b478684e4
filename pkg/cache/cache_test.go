package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/pkg/cache"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("get and set", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()

		_, err := c.Get(ctx, "a")
		require.ErrorIs(t, err, cache.ErrNotFound)

		require.NoError(t, c.Set(ctx, "a", "one", 0))
		require.NoError(t, c.Set(ctx, "a", "two", 0))
		v, err := c.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "two", v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()
		clk := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		c := cache.NewMemory[int](cache.WithClock(clk.Now), cache.WithDefaultTTL(time.Minute))

		require.NoError(t, c.Set(ctx, "default", 1, 0))
		require.NoError(t, c.Set(ctx, "short", 2, time.Second))
		require.NoError(t, c.Set(ctx, "forever", 3, -1))

		clk.Advance(2 * time.Second)
		_, err := c.Get(ctx, "short")
		require.ErrorIs(t, err, cache.ErrNotFound)
		_, err = c.Get(ctx, "default")
		require.NoError(t, err)

		clk.Advance(time.Hour)
		_, err = c.Get(ctx, "default")
		require.ErrorIs(t, err, cache.ErrNotFound)
		v, err := c.Get(ctx, "forever")
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("lru eviction", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](cache.WithMaxEntries(2))

		require.NoError(t, c.Set(ctx, "a", 1, 0))
		require.NoError(t, c.Set(ctx, "b", 2, 0))
		_, err := c.Get(ctx, "a")
		require.NoError(t, err)
		require.NoError(t, c.Set(ctx, "c", 3, 0))

		_, err = c.Get(ctx, "b")
		require.ErrorIs(t, err, cache.ErrNotFound)
		_, err = c.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("closed", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int]()
		require.NoError(t, c.Close())
		require.ErrorIs(t, c.Set(ctx, "a", 1, 0), cache.ErrClosed)
		require.ErrorIs(t, c.Delete(ctx, "a"), cache.ErrClosed)
	})
}

func TestLoader(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("caches loaded values", func(t *testing.T) {
		t.Parallel()
		l := cache.NewLoader[string](cache.NewMemory[string](), time.Minute)

		var calls atomic.Int32
		load := func(context.Context) (string, error) {
			calls.Add(1)
			return "value", nil
		}

		for range 3 {
			v, err := l.Get(ctx, "k", load)
			require.NoError(t, err)
			assert.Equal(t, "value", v)
		}
		assert.Equal(t, int32(1), calls.Load())

		require.NoError(t, l.Forget(ctx, "k"))
		_, err := l.Get(ctx, "k", load)
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()
		l := cache.NewLoader[int](cache.NewMemory[int](), time.Minute)
		errLoad := errors.New("load failed")

		_, err := l.Get(ctx, "k", func(context.Context) (int, error) { return 0, errLoad })
		require.ErrorIs(t, err, errLoad)

		v, err := l.Get(ctx, "k", func(context.Context) (int, error) { return 7, nil })
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("collapses concurrent misses", func(t *testing.T) {
		t.Parallel()
		l := cache.NewLoader[int](cache.NewMemory[int](), time.Minute)

		var calls atomic.Int32
		release := make(chan struct{})
		load := func(context.Context) (int, error) {
			calls.Add(1)
			<-release
			return 1, nil
		}

		var wg sync.WaitGroup
		for range 10 {
			wg.Go(func() {
				v, err := l.Get(ctx, "k", load)
				assert.NoError(t, err)
				assert.Equal(t, 1, v)
			})
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.LessOrEqual(t, calls.Load(), int32(2))
	})

	t.Run("forget during load skips the write", func(t *testing.T) {
		t.Parallel()
		mem := cache.NewMemory[string]()
		l := cache.NewLoader[string](mem, time.Minute)

		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			v, err := l.Get(ctx, "k", func(context.Context) (string, error) {
				close(started)
				<-release
				return "deleted", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "deleted", v)
		}()

		<-started
		require.NoError(t, l.Forget(ctx, "k"))
		close(release)
		<-done

		_, err := mem.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)

		v, err := l.Get(ctx, "k", func(context.Context) (string, error) { return "fresh", nil })
		require.NoError(t, err)
		assert.Equal(t, "fresh", v)

		got, err := mem.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "fresh", got)
	})
}
