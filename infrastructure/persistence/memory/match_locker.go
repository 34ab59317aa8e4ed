package memory

import (
	"sync"

	"beadloom/application/ports"
)

// MatchLocker hands out one mutex per match id. Locks are never evicted;
// a mutex is a few words and match ids are short-lived enough that the
// registry stays small.
type MatchLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMatchLocker creates an empty lock registry
func NewMatchLocker() ports.MatchLocker {
	return &MatchLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

// Acquire blocks until the per-match lock is held and returns its release
func (l *MatchLocker) Acquire(matchID string) func() {
	l.mu.Lock()
	lock, exists := l.locks[matchID]
	if !exists {
		lock = &sync.Mutex{}
		l.locks[matchID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
