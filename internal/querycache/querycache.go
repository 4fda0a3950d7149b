// Package querycache provides an optional LRU+TTL cache of recent
// search results, adapted from the teacher's generic LRUCache down to
// a single concrete value type ([]scorer.Result) so callers never deal
// with interface{} assertions. Caching is purely an optimization: the
// query engine itself is stateless and total, so a cache miss or a
// disabled cache changes latency, never correctness.
package querycache

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"github.com/persiafts/engine/internal/scorer"
)

type entry struct {
	key       string
	value     []scorer.Result
	createdAt time.Time
}

// Cache is a thread-safe, fixed-capacity LRU cache of query results
// with an optional TTL. A zero TTL disables expiry.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List

	hits   int64
	misses int64
}

// New creates a Cache with the given capacity and TTL. capacity <= 0
// falls back to 100.
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 100
	}
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get looks up key (typically the raw query string plus top_k).
func (c *Cache) Get(key string) ([]scorer.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if c.ttl > 0 && time.Since(e.createdAt) > c.ttl {
		c.removeElement(el)
		c.misses++
		return nil, false
	}

	c.order.MoveToFront(el)
	c.hits++
	return e.value, true
}

// Put stores value under key, evicting the least recently used entry
// if the cache is at capacity.
func (c *Cache) Put(key string, value []scorer.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.createdAt = time.Now()
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry{key: key, value: value, createdAt: time.Now()})
	c.items[key] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Clear empties the cache and resets hit/miss counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.hits = 0
	c.misses = 0
}

// Len returns the current number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats reports hit/miss counts since the last Clear.
type Stats struct {
	Hits   int64
	Misses int64
}

// Stats returns the cache's current hit/miss counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses}
}

func (s Stats) String() string {
	total := s.Hits + s.Misses
	var ratio float64
	if total > 0 {
		ratio = float64(s.Hits) / float64(total)
	}
	return fmt.Sprintf("hits=%d misses=%d hit_ratio=%.2f%%", s.Hits, s.Misses, ratio*100)
}

func (c *Cache) removeElement(el *list.Element) {
	c.order.Remove(el)
	e := el.Value.(*entry)
	delete(c.items, e.key)
}
