package favoritesrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/luwei/smart-travel/internal/domain/favorites"
)

// MemoryRepository is an in-memory favorites.Repository used for tests/dev
// and as the fallback when no Postgres DSN is configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	routes map[string]favorites.Route // keyed by route ID
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{routes: make(map[string]favorites.Route)}
}

// Insert implements favorites.Repository.
func (r *MemoryRepository) Insert(_ context.Context, route favorites.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[route.ID] = route
	return nil
}

// ListByDevice implements favorites.Repository.
func (r *MemoryRepository) ListByDevice(_ context.Context, deviceID string) ([]favorites.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var routes []favorites.Route
	for _, route := range r.routes {
		if route.DeviceID == deviceID {
			routes = append(routes, route)
		}
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].CreatedAt.Equal(routes[j].CreatedAt) {
			return routes[i].ID < routes[j].ID
		}
		return routes[i].CreatedAt.After(routes[j].CreatedAt)
	})
	return routes, nil
}

// Delete implements favorites.Repository.
func (r *MemoryRepository) Delete(_ context.Context, deviceID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	route, ok := r.routes[id]
	if !ok || route.DeviceID != deviceID {
		return false, nil
	}
	delete(r.routes, id)
	return true, nil
}

var _ favorites.Repository = (*MemoryRepository)(nil)
