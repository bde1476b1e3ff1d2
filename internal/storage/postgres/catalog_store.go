package postgres

import (
	"context"
	"fmt"

	"mlb-roster-sync/internal/storage"
)

// CatalogStore implements storage.CatalogStore using PostgreSQL.
type CatalogStore struct {
	pool *Pool
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(pool *Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CatalogStore = (*CatalogStore)(nil)

// ValidTeamIDs returns all team ids from the mlb_teams catalog, ascending.
func (s *CatalogStore) ValidTeamIDs(ctx context.Context) ([]int, error) {
	ids, err := s.queryIDs(ctx, `SELECT team_id FROM mlb_teams ORDER BY team_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetch valid team ids: %w", err)
	}
	return ids, nil
}

// ValidPlayerIDs returns all player ids from the mlb_players catalog, ascending.
func (s *CatalogStore) ValidPlayerIDs(ctx context.Context) ([]int, error) {
	ids, err := s.queryIDs(ctx, `SELECT player_id FROM mlb_players ORDER BY player_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetch valid player ids: %w", err)
	}
	return ids, nil
}

// queryIDs runs a single-column integer query and collects the results.
func (s *CatalogStore) queryIDs(ctx context.Context, query string) ([]int, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
