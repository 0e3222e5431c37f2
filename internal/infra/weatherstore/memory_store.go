package weatherstore

import (
	"context"
	"sync"
	"time"

	"github.com/luwei/smart-travel/internal/domain/weather"
)

type cachedObservation struct {
	payload   weather.Observation
	expiresAt time.Time
}

// MemoryStore is an in-memory observation cache for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]cachedObservation
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]cachedObservation)}
}

// GetObservation implements weather.Store.
func (s *MemoryStore) GetObservation(_ context.Context, key string) (weather.Observation, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return weather.Observation{}, false, nil
	}
	if hasExpired(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return weather.Observation{}, false, nil
	}
	return entry.payload, true, nil
}

// SaveObservation caches the observation with optional TTL.
func (s *MemoryStore) SaveObservation(_ context.Context, key string, obs weather.Observation, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.entries[key] = cachedObservation{payload: obs, expiresAt: exp}
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ weather.Store = (*MemoryStore)(nil)
