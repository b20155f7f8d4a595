package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

// MemoryStore is an in-process Store. Values are JSON-encoded on Set so
// callers get the same copy semantics as with Redis.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, key string, dest any) bool {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()

	if !ok || (!e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)) {
		if ok {
			s.mu.Lock()
			delete(s.items, key)
			s.mu.Unlock()
		}
		metrics.CacheMisses.WithLabelValues("memory").Inc()
		return false
	}

	if err := json.Unmarshal(e.data, dest); err != nil {
		metrics.CacheMisses.WithLabelValues("memory").Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues("memory").Inc()
	return true
}

func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.items[key] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.items, k)
	}
	return nil
}
