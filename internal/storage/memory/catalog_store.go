// Package memory provides in-memory storage implementations for tests and
// dry runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"mlb-roster-sync/internal/storage"
)

// CatalogStore implements storage.CatalogStore in memory.
type CatalogStore struct {
	mu      sync.RWMutex
	teams   map[int]struct{}
	players map[int]struct{}
}

// NewCatalogStore creates a CatalogStore seeded with the given ids.
func NewCatalogStore(teamIDs, playerIDs []int) *CatalogStore {
	s := &CatalogStore{
		teams:   make(map[int]struct{}, len(teamIDs)),
		players: make(map[int]struct{}, len(playerIDs)),
	}
	for _, id := range teamIDs {
		s.teams[id] = struct{}{}
	}
	for _, id := range playerIDs {
		s.players[id] = struct{}{}
	}
	return s
}

// Compile-time interface check.
var _ storage.CatalogStore = (*CatalogStore)(nil)

// ValidTeamIDs returns all team ids, ascending.
func (s *CatalogStore) ValidTeamIDs(ctx context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.teams), nil
}

// ValidPlayerIDs returns all player ids, ascending.
func (s *CatalogStore) ValidPlayerIDs(ctx context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.players), nil
}

func sortedKeys(m map[int]struct{}) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
