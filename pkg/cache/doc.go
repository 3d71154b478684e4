// Package cache provides TTL caches with an in-memory and a Redis backend,
// plus a read-through [Loader] that collapses concurrent misses.
//
//	entries := cache.NewLoader[Entry](cache.NewMemory[Entry](cache.WithMaxEntries(1000)), time.Minute)
//	e, err := entries.Get(ctx, "entry:42", func(ctx context.Context) (Entry, error) {
//		return store.Get(ctx, 42)
//	})
//
// TTL semantics for Set: positive expires after the duration, zero uses the
// backend default, negative never expires.
package cache
