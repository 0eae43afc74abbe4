package upload

import "sync"

// userLocks serializes the quota-sensitive part of an upload per user.
// Without it two concurrent uploads could both pass the pre-flight check
// before either commits its increment. The map is never evicted; it is
// bounded by the number of distinct users seen by this instance.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

func (ul *userLocks) lock(userID int64) func() {
	ul.mu.Lock()
	m, ok := ul.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		ul.locks[userID] = m
	}
	ul.mu.Unlock()

	m.Lock()
	return m.Unlock
}
