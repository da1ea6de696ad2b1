package lru

import "sync"

// RWLocker is the locking a Cache needs. Lookups that promote an entry take
// the write lock; Contains, Peek and the listing methods take the read lock.
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

var (
	_ RWLocker = (*sync.RWMutex)(nil)
	_ RWLocker = NoOpRWLocker{}
)

// NoOpRWLocker does no locking. Use it for a Cache owned by one goroutine,
// where the mutex would only add cost.
type NoOpRWLocker struct{}

// Lock is a no-op.
func (NoOpRWLocker) Lock() {}

// Unlock is a no-op.
func (NoOpRWLocker) Unlock() {}

// RLock is a no-op.
func (NoOpRWLocker) RLock() {}

// RUnlock is a no-op.
func (NoOpRWLocker) RUnlock() {}
