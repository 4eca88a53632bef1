package storage

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// SessionCache keeps per-session state objects in process so that concurrent
// requests of one session share a single lock and cached copy.
//
// Entries handed out by Acquire are pinned until released. The LRU may evict a
// pinned entry from its index, but the entry is parked and handed back to the
// next Acquire for that session, so a session never has two live instances in
// one process. Only idle entries are dropped for good. Instances are still
// per process: several API replicas each hold their own.
type SessionCache[T any] struct {
	mu     sync.Mutex
	cache  *lru.Cache
	build  func(sessionID string) T
	refs   map[string]int
	parked map[string]T
}

func NewSessionCache[T any](size int, build func(sessionID string) T) (*SessionCache[T], error) {
	if size <= 0 {
		size = 1024
	}
	s := &SessionCache[T]{
		build:  build,
		refs:   make(map[string]int),
		parked: make(map[string]T),
	}
	c, err := lru.NewWithEvict(size, s.onEvict)
	if err != nil {
		return nil, err
	}
	s.cache = c
	return s, nil
}

// onEvict runs inside cache.Add or cache.Remove, which are only called with s.mu held.
func (s *SessionCache[T]) onEvict(key, value any) {
	id := key.(string)
	if s.refs[id] > 0 {
		s.parked[id] = value.(T)
	}
}

// Acquire returns the state for the session, building it on a miss, and pins
// it until release is called. release is safe to call more than once.
func (s *SessionCache[T]) Acquire(sessionID string) (T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.lookupLocked(sessionID)
	s.refs[sessionID]++

	var once sync.Once
	return v, func() {
		once.Do(func() { s.release(sessionID) })
	}
}

// Get returns the state for the session without pinning it.
func (s *SessionCache[T]) Get(sessionID string) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lookupLocked(sessionID)
}

func (s *SessionCache[T]) lookupLocked(sessionID string) T {
	if v, ok := s.cache.Get(sessionID); ok {
		return v.(T)
	}
	if v, ok := s.parked[sessionID]; ok {
		delete(s.parked, sessionID)
		s.cache.Add(sessionID, v)
		return v
	}
	v := s.build(sessionID)
	s.cache.Add(sessionID, v)
	return v
}

func (s *SessionCache[T]) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refs[sessionID]--
	if s.refs[sessionID] > 0 {
		return
	}
	delete(s.refs, sessionID)
	delete(s.parked, sessionID)
}

// Forget drops the session's entry. A pinned entry stays parked until released.
func (s *SessionCache[T]) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(sessionID)
}

// Len counts indexed entries, not parked ones.
func (s *SessionCache[T]) Len() int {
	return s.cache.Len()
}

// Pinned counts sessions with at least one outstanding Acquire.
func (s *SessionCache[T]) Pinned() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.refs)
}
