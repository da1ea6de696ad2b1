package lru

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/venkatsvpr/lrucache/internal/nilable"
	"github.com/venkatsvpr/lrucache/simplelru"
)

const (
	// DefaultEvictedBufferSize defines the default buffer size to store evicted key/val
	DefaultEvictedBufferSize = 16
)

// Cache is a thread-safe fixed size LRU cache.
type Cache[K comparable, V any] struct {
	lru         *simplelru.LRU[K, V]
	evictedKeys []K
	evictedVals []V
	onEvictedCB func(k K, v V)
	lock        RWLocker
	metrics     *Metrics
	nilKeys     bool
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	locker  RWLocker
	metrics *Metrics
}

// WithLocker replaces the default sync.RWMutex. Pass NoOpRWLocker{} when the
// cache is only ever used from a single goroutine.
func WithLocker(l RWLocker) Option {
	return func(o *options) {
		o.locker = l
	}
}

// WithMetrics records cache operations in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// New creates an LRU of the given size.
func New[K comparable, V any](size int, opts ...Option) (*Cache[K, V], error) {
	return NewWithEvict[K, V](size, nil, opts...)
}

// NewWithEvict constructs a fixed size cache with the given eviction
// callback. The callback is also called for entries removed with Remove,
// RemoveOldest and Purge, and always runs outside the cache lock.
func NewWithEvict[K comparable, V any](size int, onEvicted func(key K, value V), opts ...Option) (c *Cache[K, V], err error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.locker == nil {
		o.locker = &sync.RWMutex{}
	}

	// create a cache with default settings
	c = &Cache[K, V]{
		onEvictedCB: onEvicted,
		lock:        o.locker,
		metrics:     o.metrics,
		nilKeys:     nilable.Kind[K](),
	}
	var cb simplelru.EvictCallback[K, V]
	if onEvicted != nil {
		c.initEvictBuffers()
		cb = c.onEvicted
	}
	c.lru, err = simplelru.NewLRU(size, cb)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// checkKey rejects nil keys before the lock is taken so the panic never
// leaves the cache locked.
func (c *Cache[K, V]) checkKey(key K) {
	if c.nilKeys && nilable.IsNil(key) {
		panic(errors.WithStack(simplelru.ErrNilKey))
	}
}

func (c *Cache[K, V]) initEvictBuffers() {
	c.evictedKeys = make([]K, 0, DefaultEvictedBufferSize)
	c.evictedVals = make([]V, 0, DefaultEvictedBufferSize)
}

// onEvicted save evicted key/val and sent in externally registered callback
// outside critical section
func (c *Cache[K, V]) onEvicted(k K, v V) {
	c.evictedKeys = append(c.evictedKeys, k)
	c.evictedVals = append(c.evictedVals, v)
}

// takeEvicted hands the buffered entries to the caller. Has to be called with lock!
func (c *Cache[K, V]) takeEvicted() (ks []K, vs []V) {
	if c.onEvictedCB == nil || len(c.evictedKeys) == 0 {
		return nil, nil
	}
	ks, vs = c.evictedKeys, c.evictedVals
	c.initEvictBuffers()
	return ks, vs
}

func (c *Cache[K, V]) notify(ks []K, vs []V) {
	for i := range ks {
		c.onEvictedCB(ks[i], vs[i])
	}
}

// Purge is used to completely clear the cache.
func (c *Cache[K, V]) Purge() {
	c.lock.Lock()
	c.lru.Purge()
	ks, vs := c.takeEvicted()
	c.metrics.setEntries(0)
	c.lock.Unlock()
	// invoke callback outside critical section
	c.notify(ks, vs)
}

// Add adds a value to the cache, or replaces the value of a present key, and
// marks the key as most recently used. Returns true if an eviction occurred.
func (c *Cache[K, V]) Add(key K, value V) (evicted bool) {
	c.checkKey(key)
	c.lock.Lock()
	evicted = c.add(key, value)
	ks, vs := c.takeEvicted()
	c.lock.Unlock()
	c.notify(ks, vs)
	return evicted
}

// add is Add without locking. Has to be called with lock!
func (c *Cache[K, V]) add(key K, value V) (evicted bool) {
	if c.metrics == nil {
		return c.lru.Add(key, value)
	}
	present := c.lru.Contains(key)
	evicted = c.lru.Add(key, value)
	c.metrics.set(present, evicted, c.lru.Len())
	return evicted
}

// Get looks up a key's value from the cache and marks it as most recently
// used.
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	c.checkKey(key)
	c.lock.Lock()
	value, ok = c.lru.Get(key)
	c.lock.Unlock()
	c.metrics.lookup(ok)
	return value, ok
}

// Contains checks if a key is in the cache, without updating the
// recent-ness or deleting it for being stale.
func (c *Cache[K, V]) Contains(key K) bool {
	c.checkKey(key)
	c.lock.RLock()
	containKey := c.lru.Contains(key)
	c.lock.RUnlock()
	return containKey
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	c.checkKey(key)
	c.lock.RLock()
	value, ok = c.lru.Peek(key)
	c.lock.RUnlock()
	return value, ok
}

// ContainsOrAdd checks if a key is in the cache without updating the
// recent-ness or deleting it for being stale, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *Cache[K, V]) ContainsOrAdd(key K, value V) (ok, evicted bool) {
	c.checkKey(key)
	c.lock.Lock()
	if c.lru.Contains(key) {
		c.lock.Unlock()
		return true, false
	}
	evicted = c.add(key, value)
	ks, vs := c.takeEvicted()
	c.lock.Unlock()
	c.notify(ks, vs)
	return false, evicted
}

// PeekOrAdd checks if a key is in the cache without updating the
// recent-ness or deleting it for being stale, and if not, adds the value.
// Returns the present value, whether found and whether an eviction occurred.
func (c *Cache[K, V]) PeekOrAdd(key K, value V) (previous V, ok, evicted bool) {
	c.checkKey(key)
	c.lock.Lock()
	previous, ok = c.lru.Peek(key)
	if ok {
		c.lock.Unlock()
		return previous, true, false
	}
	evicted = c.add(key, value)
	ks, vs := c.takeEvicted()
	c.lock.Unlock()
	c.notify(ks, vs)
	return previous, false, evicted
}

// Remove removes the provided key from the cache, returning if the key was
// contained.
func (c *Cache[K, V]) Remove(key K) (present bool) {
	c.checkKey(key)
	c.lock.Lock()
	present = c.lru.Remove(key)
	ks, vs := c.takeEvicted()
	if present {
		c.metrics.remove(c.lru.Len())
	}
	c.lock.Unlock()
	c.notify(ks, vs)
	return present
}

// RemoveOldest removes the oldest item from the cache.
func (c *Cache[K, V]) RemoveOldest() (key K, value V, ok bool) {
	c.lock.Lock()
	key, value, ok = c.lru.RemoveOldest()
	ks, vs := c.takeEvicted()
	if ok {
		c.metrics.remove(c.lru.Len())
	}
	c.lock.Unlock()
	c.notify(ks, vs)
	return key, value, ok
}

// GetOldest returns the oldest entry
func (c *Cache[K, V]) GetOldest() (key K, value V, ok bool) {
	c.lock.RLock()
	key, value, ok = c.lru.GetOldest()
	c.lock.RUnlock()
	return key, value, ok
}

// Keys returns a slice of the keys in the cache, from oldest to newest.
func (c *Cache[K, V]) Keys() []K {
	c.lock.RLock()
	keys := c.lru.Keys()
	c.lock.RUnlock()
	return keys
}

// Values returns a slice of the values in the cache, from oldest to newest.
func (c *Cache[K, V]) Values() []V {
	c.lock.RLock()
	values := c.lru.Values()
	c.lock.RUnlock()
	return values
}

// Len returns the number of items in the cache.
func (c *Cache[K, V]) Len() int {
	c.lock.RLock()
	length := c.lru.Len()
	c.lock.RUnlock()
	return length
}

// Capacity returns the maximum number of items in the cache.
func (c *Cache[K, V]) Capacity() int {
	// fixed at construction, no lock needed
	return c.lru.Capacity()
}

var _ simplelru.LRUCache[string, int] = (*Cache[string, int])(nil)
