package simplelru

import (
	"github.com/pkg/errors"

	"github.com/venkatsvpr/lrucache/internal/nilable"
)

// EvictCallback is used to get a callback when a cache entry is evicted
type EvictCallback[K comparable, V any] func(key K, value V)

// LRU implements a non-thread safe fixed size LRU cache.
//
// items maps every key to the slot holding it in evictList; the two are
// updated together by every method so that both always hold exactly the same
// set of keys.
type LRU[K comparable, V any] struct {
	size      int
	evictList *lruList[K, V]
	items     map[K]handle
	onEvict   EvictCallback[K, V]

	// nilKeys is set when K can hold nil and keys have to be checked.
	nilKeys bool
}

// NewLRU constructs an LRU of the given size
func NewLRU[K comparable, V any](size int, onEvict EvictCallback[K, V]) (*LRU[K, V], error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "size %d", size)
	}
	c := &LRU[K, V]{
		size:      size,
		evictList: newList[K, V](size),
		items:     make(map[K]handle, min(size, initialSlots)),
		onEvict:   onEvict,
		nilKeys:   nilable.Kind[K](),
	}
	return c, nil
}

// Capacity returns the maximum number of entries the cache holds.
func (c *LRU[K, V]) Capacity() int {
	return c.size
}

// Purge is used to completely clear the cache.
func (c *LRU[K, V]) Purge() {
	if c.onEvict != nil {
		for h := c.evictList.front(); h != nilHandle; h = c.evictList.next(h) {
			c.onEvict(c.evictList.key(h), c.evictList.value(h))
		}
	}
	clear(c.items)
	c.evictList.init()
}

// Add adds a value to the cache, or replaces the value of an existing key,
// and marks the key as most recently used. Returns true if an eviction
// occurred.
func (c *LRU[K, V]) Add(key K, value V) (evicted bool) {
	c.checkKey(key)

	// Check for existing item
	if h, ok := c.items[key]; ok {
		c.evictList.setValue(h, value)
		c.evictList.moveToBack(h)
		return false
	}

	// Make room before inserting so the list never holds more than size
	if c.evictList.length() >= c.size {
		c.removeOldest()
		evicted = true
	}

	c.items[key] = c.evictList.pushBack(key, value)
	return evicted
}

// Get looks up a key's value from the cache and marks it as most recently
// used.
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	c.checkKey(key)
	if h, found := c.items[key]; found {
		c.evictList.moveToBack(h)
		return c.evictList.value(h), true
	}
	return value, false
}

// Contains checks if a key is in the cache, without updating the recent-ness
// or deleting it for being stale.
func (c *LRU[K, V]) Contains(key K) (ok bool) {
	c.checkKey(key)
	_, ok = c.items[key]
	return ok
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *LRU[K, V]) Peek(key K) (value V, ok bool) {
	c.checkKey(key)
	if h, found := c.items[key]; found {
		return c.evictList.value(h), true
	}
	return value, false
}

// Remove removes the provided key from the cache, returning if the
// key was contained.
func (c *LRU[K, V]) Remove(key K) (present bool) {
	c.checkKey(key)
	if h, ok := c.items[key]; ok {
		c.removeElement(h)
		return true
	}
	return false
}

// RemoveOldest removes the oldest item from the cache.
func (c *LRU[K, V]) RemoveOldest() (key K, value V, ok bool) {
	if h := c.evictList.front(); h != nilHandle {
		key, value = c.removeElement(h)
		return key, value, true
	}
	return key, value, false
}

// GetOldest returns the oldest entry
func (c *LRU[K, V]) GetOldest() (key K, value V, ok bool) {
	if h := c.evictList.front(); h != nilHandle {
		return c.evictList.key(h), c.evictList.value(h), true
	}
	return key, value, false
}

// Keys returns a slice of the keys in the cache, from oldest to newest.
func (c *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, c.evictList.length())
	for h := c.evictList.front(); h != nilHandle; h = c.evictList.next(h) {
		keys = append(keys, c.evictList.key(h))
	}
	return keys
}

// Values returns a slice of the values in the cache, from oldest to newest.
func (c *LRU[K, V]) Values() []V {
	values := make([]V, 0, c.evictList.length())
	for h := c.evictList.front(); h != nilHandle; h = c.evictList.next(h) {
		values = append(values, c.evictList.value(h))
	}
	return values
}

// Len returns the number of items in the cache.
func (c *LRU[K, V]) Len() int {
	return c.evictList.length()
}

// removeOldest removes the oldest item from the cache.
func (c *LRU[K, V]) removeOldest() {
	if h := c.evictList.front(); h != nilHandle {
		c.removeElement(h)
	}
}

// removeElement is used to remove a given list element from the cache
func (c *LRU[K, V]) removeElement(h handle) (K, V) {
	key, value := c.evictList.remove(h)
	delete(c.items, key)
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
	return key, value
}

// checkKey panics with ErrNilKey if key is nil. It never touches the cache,
// so a rejected call leaves no trace.
func (c *LRU[K, V]) checkKey(key K) {
	if c.nilKeys && nilable.IsNil(key) {
		panic(errors.WithStack(ErrNilKey))
	}
}
