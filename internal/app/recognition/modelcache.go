package recognition

import (
	"context"
	"sync"
)

// ModelState is the cache state of one model as seen by the catalog
// endpoint.
type ModelState string

const (
	ModelStateLoading ModelState = "loading"
	ModelStateReady   ModelState = "ready"
	ModelStateFailed  ModelState = "failed"
)

// LoadFunc performs the actual model load. It is called at most once per
// model name while that load is in flight.
type LoadFunc func(ctx context.Context, model string) error

type cacheEntry struct {
	ready chan struct{}
	err   error
}

// ModelCache deduplicates concurrent loads of the same model. The first
// caller for a model name runs the load; everyone else asking for the same
// name waits on the same in-flight entry. Loads of different models never
// serialize behind each other. A failed load is evicted so a later request
// retries it.
type ModelCache struct {
	load LoadFunc

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

func NewModelCache(load LoadFunc) *ModelCache {
	return &ModelCache{
		load:    load,
		entries: make(map[string]*cacheEntry),
	}
}

// Ensure blocks until the model is loaded, running the load itself if no
// other caller already is. Waiters honor ctx; the load itself runs under the
// first caller's ctx.
func (c *ModelCache) Ensure(ctx context.Context, model string) error {
	c.mu.Lock()
	e, ok := c.entries[model]
	if !ok {
		e = &cacheEntry{ready: make(chan struct{})}
		c.entries[model] = e
		c.mu.Unlock()

		e.err = c.load(ctx, model)
		close(e.ready)

		if e.err != nil {
			c.mu.Lock()
			if c.entries[model] == e {
				delete(c.entries, model)
			}
			c.mu.Unlock()
		}
		return e.err
	}
	c.mu.Unlock()

	select {
	case <-e.ready:
		return e.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loaded reports whether the model finished loading successfully.
func (c *ModelCache) Loaded(model string) bool {
	c.mu.Lock()
	e, ok := c.entries[model]
	c.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-e.ready:
		return e.err == nil
	default:
		return false
	}
}

// States snapshots the cache for the model catalog. Models that were never
// requested do not appear.
func (c *ModelCache) States() map[string]ModelState {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]ModelState, len(c.entries))
	for name, e := range c.entries {
		select {
		case <-e.ready:
			if e.err != nil {
				out[name] = ModelStateFailed
			} else {
				out[name] = ModelStateReady
			}
		default:
			out[name] = ModelStateLoading
		}
	}
	return out
}
