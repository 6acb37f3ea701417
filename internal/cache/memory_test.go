package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestGetOrComputeCachesWithinTTL(t *testing.T) {
	store := NewMemoryStore()
	var calls int32

	compute := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("payload"), nil
	}

	got, err := store.GetOrCompute(context.Background(), "feed:op:a=1", time.Minute, compute)
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte("payload"), got)

	got, err = store.GetOrCompute(context.Background(), "feed:op:a=1", time.Minute, compute)
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte("payload"), got)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrComputeRecomputesAfterExpiry(t *testing.T) {
	store := NewMemoryStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	var calls int32
	compute := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("payload"), nil
	}

	store.GetOrCompute(context.Background(), "feed:op:a=1", time.Minute, compute)
	current = current.Add(2 * time.Minute)
	store.GetOrCompute(context.Background(), "feed:op:a=1", time.Minute, compute)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestInvalidatePrefixOnlyRemovesItsPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := func(ctx context.Context) ([]byte, error) { return []byte("x"), nil }
	store.GetOrCompute(ctx, "feed:prioritized:a=1", time.Minute, payload)
	store.GetOrCompute(ctx, "feed:prioritized:a=2", time.Minute, payload)
	store.GetOrCompute(ctx, "country:headlines:c=in", time.Minute, payload)

	removed, err := store.InvalidatePrefix(ctx, "feed:")
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, removed)

	var feedCalls, countryCalls int32
	store.GetOrCompute(ctx, "feed:prioritized:a=1", time.Minute, func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&feedCalls, 1)
		return []byte("x"), nil
	})
	store.GetOrCompute(ctx, "country:headlines:c=in", time.Minute, func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&countryCalls, 1)
		return []byte("x"), nil
	})

	// Feed keys miss, the untouched prefix still hits.
	assert.Equal(t, int32(1), atomic.LoadInt32(&feedCalls))
	assert.Equal(t, int32(0), atomic.LoadInt32(&countryCalls))
}

func TestInvalidateAllClearsEverything(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := func(ctx context.Context) ([]byte, error) { return []byte("x"), nil }
	store.GetOrCompute(ctx, "feed:op:a=1", time.Minute, payload)
	store.GetOrCompute(ctx, "country:op:c=in", time.Minute, payload)

	err := store.InvalidateAll(ctx)
	assert.Equal(t, nil, err)

	var calls int32
	store.GetOrCompute(ctx, "feed:op:a=1", time.Minute, func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("x"), nil
	})
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrComputeCollapsesConcurrentCallers(t *testing.T) {
	store := NewMemoryStore()
	var calls int32

	release := make(chan struct{})
	compute := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte("payload"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := store.GetOrCompute(context.Background(), "feed:op:a=1", time.Minute, compute)
			assert.Equal(t, nil, err)
			assert.Equal(t, []byte("payload"), got)
		}()
	}

	// Give the goroutines time to pile onto the same key.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestKeyIsDeterministic(t *testing.T) {
	a := Key("feed", "prioritized", map[string]string{"primary": "in", "limit": "50", "others": "us,gb"})
	b := Key("feed", "prioritized", map[string]string{"others": "us,gb", "limit": "50", "primary": "in"})

	assert.Equal(t, a, b)
	assert.Equal(t, "feed:prioritized:limit=50_others=us,gb_primary=in", a)
	assert.Equal(t, "feed:prioritized:default", Key("feed", "prioritized", nil))
}
