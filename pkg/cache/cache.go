package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a key-value store with expiry.
type Cache[V any] interface {
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Loader reads through a Cache. Concurrent misses for the same key share
// a single load.
type Loader[V any] struct {
	cache Cache[V]
	group singleflight.Group
	ttl   time.Duration

	mu      sync.Mutex
	loading map[string]*flight
}

// flight is one load in progress. stale is set when the key is forgotten
// before the load finishes; guarded by Loader.mu.
type flight struct {
	stale bool
}

// NewLoader caches loaded values in c for ttl.
func NewLoader[V any](c Cache[V], ttl time.Duration) *Loader[V] {
	return &Loader[V]{cache: c, ttl: ttl, loading: make(map[string]*flight)}
}

// Get returns the cached value for key or calls load on a miss. Load errors
// are returned and not cached. Cache read errors other than ErrNotFound fall
// through to load. A value whose key is forgotten while it loads is returned
// but not cached.
func (l *Loader[V]) Get(ctx context.Context, key string, load func(ctx context.Context) (V, error)) (V, error) {
	if v, err := l.cache.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		f := l.begin(key)
		defer l.end(key, f)

		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if !l.stale(f) {
			_ = l.cache.Set(ctx, key, val, l.ttl)
			// Forget may have run between the check and the write.
			if l.stale(f) {
				_ = l.cache.Delete(ctx, key)
			}
		}
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Forget drops key so the next Get loads it again. A load already running
// for key will not store its result.
func (l *Loader[V]) Forget(ctx context.Context, key string) error {
	l.mu.Lock()
	if f, ok := l.loading[key]; ok {
		f.stale = true
	}
	l.mu.Unlock()

	l.group.Forget(key)
	if err := l.cache.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (l *Loader[V]) begin(key string) *flight {
	f := &flight{}
	l.mu.Lock()
	l.loading[key] = f
	l.mu.Unlock()
	return f
}

func (l *Loader[V]) end(key string, f *flight) {
	l.mu.Lock()
	// A load started after Forget may own the slot by now.
	if l.loading[key] == f {
		delete(l.loading, key)
	}
	l.mu.Unlock()
}

func (l *Loader[V]) stale(f *flight) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return f.stale
}
