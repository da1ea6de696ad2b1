// Package lru provides a fixed size cache that evicts the least recently used
// entry when a new key does not fit.
//
// Cache is the thread-safe facade. It guards a simplelru.LRU, which keeps a
// hash index from key to a slot in an index-linked recency list, so every
// lookup, insert, promotion, eviction and removal costs O(1) regardless of
// how many entries are live.
//
// Get and Add mark the key as most recently used. Contains and Peek never
// change the eviction order.
//
// All caches in this package take locks while operating, and are therefore
// thread-safe for consumers, unless built WithLocker(NoOpRWLocker{}).
// Use simplelru directly for a cache owned by a single goroutine.
package lru
