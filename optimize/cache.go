// Package optimize caches route-optimization results and collapses
// concurrent requests for the same route into a single upstream call.
package optimize

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

// ComputeFunc performs the expensive optimization call for one route.
type ComputeFunc func(ctx context.Context) (fleet.OptimizationResult, error)

type cached struct {
	result   fleet.OptimizationResult
	storedAt time.Time
}

// Cache is the single-flight optimization cache. A completed result is
// served until its TTL lapses (a non-positive TTL keeps results
// forever). While a computation for a route is in flight, additional
// callers for that route attach to it and receive the same result; a
// failed computation stores nothing, so the next caller retries.
type Cache struct {
	ttl time.Duration

	mu      sync.Mutex
	results map[string]cached

	group singleflight.Group
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, results: map[string]cached{}}
}

// GetOrCompute returns the cached result for routeID or runs fn exactly
// once across all concurrent callers for that route. A caller whose
// context is cancelled while waiting gets the context error; the
// underlying computation is left to finish for the remaining waiters.
func (c *Cache) GetOrCompute(ctx context.Context, routeID string, fn ComputeFunc) (fleet.OptimizationResult, error) {
	if res, ok := c.lookup(routeID); ok {
		return res, nil
	}

	ch := c.group.DoChan(routeID, func() (any, error) {
		// Recheck under the flight: a result may have landed between
		// the lookup and the flight starting.
		if res, ok := c.lookup(routeID); ok {
			return res, nil
		}
		res, err := fn(ctx)
		if err != nil {
			return fleet.OptimizationResult{}, err
		}
		c.store(routeID, res)
		return res, nil
	})

	select {
	case <-ctx.Done():
		return fleet.OptimizationResult{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return fleet.OptimizationResult{}, r.Err
		}
		return r.Val.(fleet.OptimizationResult), nil
	}
}

// Peek returns the cached result without computing.
func (c *Cache) Peek(routeID string) (fleet.OptimizationResult, bool) {
	return c.lookup(routeID)
}

// Invalidate drops the cached result for routeID, forcing the next
// caller to recompute. Used when the underlying route data changes.
func (c *Cache) Invalidate(routeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, routeID)
}

// Len reports how many unexpired results are held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.results {
		if !c.expired(e) {
			n++
		}
	}
	return n
}

func (c *Cache) lookup(routeID string) (fleet.OptimizationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.results[routeID]
	if !ok || c.expired(e) {
		return fleet.OptimizationResult{}, false
	}
	return e.result, true
}

func (c *Cache) store(routeID string, res fleet.OptimizationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[routeID] = cached{result: res, storedAt: time.Now()}
}

func (c *Cache) expired(e cached) bool {
	return c.ttl > 0 && time.Since(e.storedAt) > c.ttl
}
