package pipeline

import (
	"fmt"
	"sync"

	"github.com/couchcryptid/venus-data/internal/domain"
)

// CachedGenerator wraps a Generator with an in-memory LRU cache. A seeded
// request always yields the same series, so repeated requests reuse it.
// Cached datasets share their Records slice and must not be modified.
type CachedGenerator struct {
	inner Generator
	cache *lruCache
}

// NewCachedGenerator creates a cache decorator holding up to maxEntries datasets.
func NewCachedGenerator(inner Generator, maxEntries int) *CachedGenerator {
	return &CachedGenerator{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedGenerator) NewDataset(t domain.DataType, r domain.YearRange, seed uint64) (domain.Dataset, error) {
	key := fmt.Sprintf("%s|%d|%d|%d", t, r.Start, r.End, seed)
	if ds, ok := c.cache.get(key); ok {
		return ds, nil
	}
	ds, err := c.inner.NewDataset(t, r, seed)
	if err != nil {
		return ds, err
	}
	c.cache.put(key, ds)
	return ds, nil
}

// Len reports how many datasets are cached.
func (c *CachedGenerator) Len() int {
	return c.cache.len()
}

// lruCache is a simple thread-safe LRU cache of datasets.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.Dataset
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.Dataset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Dataset{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
