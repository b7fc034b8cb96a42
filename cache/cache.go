// Package cache provides memoization for traversal results keyed by
// subgraph fingerprint. Caching pays off when the same subgraphs are
// measured repeatedly, such as bounding-box queries against a scene that
// changes in only a few places per frame.
package cache

import (
	"sync"

	"github.com/scene-xyz/go-scene/fingerprint"
	"github.com/scene-xyz/go-scene/geom"
)

// BoxCache caches bounding boxes keyed by subgraph fingerprint.
type BoxCache struct {
	mu        sync.Mutex
	entries   map[fingerprint.Fingerprint]geom.Box3
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

// NewBoxCache creates a cache with the specified maximum size. When the
// cache is full the next Put evicts an arbitrary entry. Set maxSize to 0
// for an unbounded cache.
func NewBoxCache(maxSize int) *BoxCache {
	return &BoxCache{
		entries: make(map[fingerprint.Fingerprint]geom.Box3),
		maxSize: maxSize,
	}
}

// Get retrieves a cached box for the given fingerprint.
func (c *BoxCache) Get(fp fingerprint.Fingerprint) (geom.Box3, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if box, ok := c.entries[fp]; ok {
		c.hits++
		return box, true
	}
	c.misses++
	return geom.Box3{}, false
}

// Put stores a box under the given fingerprint.
func (c *BoxCache) Put(fp fingerprint.Fingerprint, box geom.Box3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		for k := range c.entries {
			delete(c.entries, k)
			c.evictions++
			break
		}
	}
	c.entries[fp] = box
}

// GetOrCompute retrieves from the cache or computes and stores the result.
func (c *BoxCache) GetOrCompute(fp fingerprint.Fingerprint, compute func() geom.Box3) geom.Box3 {
	if box, ok := c.Get(fp); ok {
		return box
	}
	box := compute()
	c.Put(fp, box)
	return box
}

// Clear removes all entries.
func (c *BoxCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[fingerprint.Fingerprint]geom.Box3)
}

// Size returns the current number of cached entries.
func (c *BoxCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats describes cache effectiveness.
type Stats struct {
	Size      int
	MaxSize   int
	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64
}

// Stats returns cache statistics.
func (c *BoxCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return Stats{
		Size:      len(c.entries),
		MaxSize:   c.maxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}
