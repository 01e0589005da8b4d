// Package cache provides a generic LRU cache used to keep loaded corpora
// open across lookups.
package cache

import (
	"container/list"
	"sync"
)

// Cache is a thread-safe LRU cache.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	maxSize   int
	onEvict   func(key K, value V)
	entries   map[K]*list.Element
	evictList *list.List
	stats     Stats
}

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an LRU cache holding at most maxSize entries (0 means
// unlimited). onEvict, if non-nil, is called for every entry that leaves
// the cache through eviction, Remove, or Clear.
func New[K comparable, V any](maxSize int, onEvict func(key K, value V)) *Cache[K, V] {
	if maxSize < 0 {
		maxSize = 0
	}
	return &Cache[K, V]{
		maxSize:   maxSize,
		onEvict:   onEvict,
		entries:   make(map[K]*list.Element),
		evictList: list.New(),
	}
}

// Get retrieves a value and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	c.evictList.MoveToFront(el)
	return el.Value.(*entry[K, V]).value, true
}

// Put stores a value, evicting the least recently used entry when full.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(el)
		el.Value.(*entry[K, V]).value = value
		return
	}

	el := c.evictList.PushFront(&entry[K, V]{key: key, value: value})
	c.entries[key] = el

	if c.maxSize > 0 && c.evictList.Len() > c.maxSize {
		c.evictOldest()
	}
}

// Remove drops an entry, invoking the eviction callback.
func (c *Cache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
}

// Clear drops every entry, invoking the eviction callback for each.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.evictList.Len() > 0 {
		c.removeElement(c.evictList.Back())
	}
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.maxSize
	return s
}

func (c *Cache[K, V]) evictOldest() {
	if el := c.evictList.Back(); el != nil {
		c.stats.Evictions++
		c.removeElement(el)
	}
}

func (c *Cache[K, V]) removeElement(el *list.Element) {
	ent := el.Value.(*entry[K, V])
	c.evictList.Remove(el)
	delete(c.entries, ent.key)
	if c.onEvict != nil {
		c.onEvict(ent.key, ent.value)
	}
}
