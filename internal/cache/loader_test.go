package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_CachesValue(t *testing.T) {
	l := NewLoader(NewLRUCache[string](4, time.Minute))
	var calls int32
	load := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v", nil
	}

	for i := 0; i < 3; i++ {
		v, err := l.Get(context.Background(), "k", load)
		require.NoError(t, err)
		assert.Equal(t, "v", v)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestLoader_ErrorsAreNotCached(t *testing.T) {
	l := NewLoader(NewLRUCache[int](4, time.Minute))
	boom := errors.New("boom")

	_, err := l.Get(context.Background(), "k", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, l.Size())

	v, err := l.Get(context.Background(), "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestLoader_ConcurrentMissesShareOneLoad(t *testing.T) {
	l := NewLoader(NewLRUCache[int](4, time.Minute))
	var calls int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = l.Get(context.Background(), "k", load)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, 42, r)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestLoader_Invalidate(t *testing.T) {
	l := NewLoader(NewLRUCache[int](4, time.Minute))
	n := 0
	load := func(context.Context) (int, error) {
		n++
		return n, nil
	}

	v, _ := l.Get(context.Background(), "k", load)
	assert.Equal(t, 1, v)

	l.Invalidate()
	v, _ = l.Get(context.Background(), "k", load)
	assert.Equal(t, 2, v)
}

func TestLoader_InvalidateDuringLoadDropsResult(t *testing.T) {
	l := NewLoader(NewLRUCache[int](4, time.Minute))

	v, err := l.Get(context.Background(), "k", func(context.Context) (int, error) {
		l.Invalidate()
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Zero(t, l.Size(), "stale result must not be cached")
}
