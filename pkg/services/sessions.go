package services

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// sessionCache keeps the most recently used per-session values. Evicted
// values are rebuilt on next use, except those keep reports true: they are
// parked until their session comes back.
type sessionCache[T any] struct {
	mu    sync.Mutex
	cache *lru.Cache
	build func(ctx context.Context, sessionID string) T
	keep  func(T) bool

	parkMu sync.Mutex
	parked map[string]T
}

func newSessionCache[T any](size int, build func(ctx context.Context, sessionID string) T, keep func(T) bool) (*sessionCache[T], error) {
	s := &sessionCache[T]{build: build, keep: keep, parked: make(map[string]T)}
	cache, err := lru.NewWithEvict(size, s.evicted)
	if err != nil {
		return nil, err
	}
	s.cache = cache
	return s, nil
}

// evicted runs inside the LRU's lock.
func (s *sessionCache[T]) evicted(key, value any) {
	v := value.(T)
	if s.keep == nil || !s.keep(v) {
		return
	}
	s.parkMu.Lock()
	s.parked[key.(string)] = v
	s.parkMu.Unlock()
}

// get returns the session's value. build runs without holding the cache
// lock; if another request stored a value meanwhile, that one wins.
func (s *sessionCache[T]) get(ctx context.Context, sessionID string) T {
	s.mu.Lock()
	v, ok := s.lookupLocked(sessionID)
	s.mu.Unlock()
	if ok {
		return v
	}

	built := s.build(ctx, sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.lookupLocked(sessionID); ok {
		return v
	}
	s.cache.Add(sessionID, built)
	return built
}

func (s *sessionCache[T]) lookupLocked(sessionID string) (T, bool) {
	if v, ok := s.cache.Get(sessionID); ok {
		return v.(T), true
	}

	s.parkMu.Lock()
	v, ok := s.parked[sessionID]
	delete(s.parked, sessionID)
	s.parkMu.Unlock()
	if ok {
		s.cache.Add(sessionID, v)
	}
	return v, ok
}

func (s *sessionCache[T]) len() int {
	return s.cache.Len()
}

func (s *sessionCache[T]) parkedLen() int {
	s.parkMu.Lock()
	defer s.parkMu.Unlock()
	return len(s.parked)
}
