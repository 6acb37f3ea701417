package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore is the in-process backend. Expired entries are dropped
// lazily on read and on prefix invalidation.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	group   singleflight.Group
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) get(key string) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.payload, true
}

func (s *MemoryStore) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if payload, ok := s.get(key); ok {
		return payload, nil
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have stored the entry while this
		// flight was queued.
		if payload, ok := s.get(key); ok {
			return payload, nil
		}

		payload, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.entries[key] = memoryEntry{payload: payload, expiresAt: s.now().Add(ttl)}
		s.mu.Unlock()

		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

func (s *MemoryStore) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) InvalidateAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]memoryEntry)
	return nil
}
