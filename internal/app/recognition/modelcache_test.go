package recognition

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

func TestModelCache_LoadsOncePerModel(t *testing.T) {
	var calls int32
	cache := NewModelCache(func(ctx context.Context, model string) error {
		atomic.AddInt32(&calls, 1)
		time.Sleep(20 * time.Millisecond)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, cache.Ensure(context.Background(), "base"))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, cache.Loaded("base"))
}

func TestModelCache_DifferentModelsLoadIndependently(t *testing.T) {
	started := make(chan string, 2)
	release := make(chan struct{})
	cache := NewModelCache(func(ctx context.Context, model string) error {
		started <- model
		<-release
		return nil
	})

	go func() { _ = cache.Ensure(context.Background(), "base") }()
	go func() { _ = cache.Ensure(context.Background(), "small") }()

	// Both loads must be in flight at the same time.
	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case m := <-started:
			seen[m] = true
		case <-time.After(time.Second):
			t.Fatal("second model load blocked behind the first")
		}
	}
	close(release)

	assert.True(t, seen["base"])
	assert.True(t, seen["small"])
}

func TestModelCache_FailedLoadIsRetried(t *testing.T) {
	var calls int32
	loadErr := errors.New("server unreachable")
	cache := NewModelCache(func(ctx context.Context, model string) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return loadErr
		}
		return nil
	})

	err := cache.Ensure(context.Background(), "base")
	require.ErrorIs(t, err, loadErr)
	assert.False(t, cache.Loaded("base"))

	require.NoError(t, cache.Ensure(context.Background(), "base"))
	assert.True(t, cache.Loaded("base"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestModelCache_WaiterHonorsContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	cache := NewModelCache(func(ctx context.Context, model string) error {
		<-release
		return nil
	})

	go func() { _ = cache.Ensure(context.Background(), "base") }()

	// Wait for the first load to be in flight.
	require.Eventually(t, func() bool {
		return cache.States()["base"] == ModelStateLoading
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := cache.Ensure(ctx, "base")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestModelCache_States(t *testing.T) {
	cache := NewModelCache(func(ctx context.Context, model string) error { return nil })

	require.NoError(t, cache.Ensure(context.Background(), "base"))

	states := cache.States()
	assert.Equal(t, ModelStateReady, states["base"])
	_, ok := states["small"]
	assert.False(t, ok, "never-requested models are absent")
}
