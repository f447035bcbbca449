package store

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when a key is absent or its entry has expired.
	ErrNotFound = errors.New("no cached entry for key")
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// MemoryCache is a concurrency-safe in-memory cache with count and age retention.
type MemoryCache[V any] struct {
	mu sync.RWMutex

	data  map[string]entry[V]
	order []string // insertion order, oldest first

	// retention configuration
	maxEntries int           // max number of entries (0 = unlimited)
	maxAge     time.Duration // max age of an entry (0 = unlimited)

	now func() time.Time
}

// NewMemoryCache creates a MemoryCache with optional limits.
// If maxEntries is <= 0, it is treated as unlimited.
func NewMemoryCache[V any](maxEntries int, maxAge time.Duration) *MemoryCache[V] {
	return &MemoryCache[V]{
		data:       make(map[string]entry[V]),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Put stores value under key and enforces retention.
func (s *MemoryCache[V]) Put(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; ok {
		s.removeFromOrder(key)
	}
	s.data[key] = entry[V]{value: value, storedAt: s.now()}
	s.order = append(s.order, key)

	// Enforce retention by count.
	if s.maxEntries > 0 && len(s.order) > s.maxEntries {
		over := len(s.order) - s.maxEntries
		for _, k := range s.order[:over] {
			delete(s.data, k)
		}
		s.order = append([]string(nil), s.order[over:]...)
	}

	s.pruneExpired()
}

// Get returns the value for key, or ErrNotFound when missing or older than maxAge.
func (s *MemoryCache[V]) Get(key string) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.expired(e) {
		var zero V
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Len returns the number of stored entries, expired ones included until pruned.
func (s *MemoryCache[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryCache[V]) expired(e entry[V]) bool {
	return s.maxAge > 0 && s.now().Sub(e.storedAt) > s.maxAge
}

// pruneExpired drops expired entries from the front of the insertion order.
// Caller must hold the write lock.
func (s *MemoryCache[V]) pruneExpired() {
	if s.maxAge <= 0 {
		return
	}
	i := 0
	for ; i < len(s.order); i++ {
		if !s.expired(s.data[s.order[i]]) {
			break
		}
		delete(s.data, s.order[i])
	}
	if i > 0 {
		s.order = append([]string(nil), s.order[i:]...)
	}
}

func (s *MemoryCache[V]) removeFromOrder(key string) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
