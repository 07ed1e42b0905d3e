package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key. Keys are kept for the life of
// the manager, so use it for bounded key spaces or short-lived managers.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires the mutex for key and returns its unlock function
func (lm *LockManager) Lock(key string) func() {
	m := lm.GetLock(key)
	m.Lock()
	return m.Unlock
}

// Forget drops the mutex for key. Callers must not hold it.
func (lm *LockManager) Forget(key string) {
	lm.locks.Delete(key)
}
