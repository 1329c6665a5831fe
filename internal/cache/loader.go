package cache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadFunc computes the value for a cache miss.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Loader fronts an LRUCache: concurrent misses on the same key share one
// load, and Invalidate discards both cached values and results of loads
// that started before it.
type Loader[T any] struct {
	cache *LRUCache[T]
	group singleflight.Group

	mu         sync.Mutex
	generation uint64
}

func NewLoader[T any](c *LRUCache[T]) *Loader[T] {
	return &Loader[T]{cache: c}
}

// Get returns the cached value for key, loading it on a miss. Load errors
// are returned and not cached.
func (l *Loader[T]) Get(ctx context.Context, key string, load LoadFunc[T]) (T, error) {
	if v, ok := l.cache.Get(key); ok {
		return v, nil
	}

	gen := l.currentGeneration()
	v, err, _ := l.group.Do(strconv.FormatUint(gen, 10)+"/"+key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		l.mu.Lock()
		if gen == l.generation {
			l.cache.Set(key, v)
		}
		l.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate drops every cached value.
func (l *Loader[T]) Invalidate() {
	l.mu.Lock()
	l.generation++
	l.cache.Purge()
	l.mu.Unlock()
}

// CleanExpired lets a Manager sweep the underlying cache.
func (l *Loader[T]) CleanExpired() int {
	return l.cache.CleanExpired()
}

// Size returns the number of cached values.
func (l *Loader[T]) Size() int {
	return l.cache.Size()
}

func (l *Loader[T]) currentGeneration() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}
