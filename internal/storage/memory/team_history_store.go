package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mlb-roster-sync/internal/domain"
	"mlb-roster-sync/internal/storage"
)

// historyKey is the natural key of a team history row.
type historyKey struct {
	player int
	date   string
}

// TeamHistoryStore implements storage.TeamHistoryStore in memory.
// The whole Upsert is applied atomically under one lock, mirroring the
// single-transaction semantics of the Postgres implementation.
type TeamHistoryStore struct {
	mu   sync.RWMutex
	rows map[historyKey]*domain.TeamHistoryRecord
}

// NewTeamHistoryStore creates an empty TeamHistoryStore.
func NewTeamHistoryStore() *TeamHistoryStore {
	return &TeamHistoryStore{rows: make(map[historyKey]*domain.TeamHistoryRecord)}
}

// Compile-time interface check.
var _ storage.TeamHistoryStore = (*TeamHistoryStore)(nil)

// Upsert merges records, matching on (player, date). Records with an
// unparsable date fail the whole call without applying anything.
func (s *TeamHistoryStore) Upsert(ctx context.Context, records []*domain.TeamHistoryRecord) (storage.UpsertResult, error) {
	var result storage.UpsertResult
	if len(records) == 0 {
		return result, nil
	}

	// Validate up front so a bad record leaves the store untouched.
	for _, r := range records {
		if _, err := time.Parse(domain.DateLayout, r.Date); err != nil {
			return result, fmt.Errorf("%w: record date %q: %v", storage.ErrInvalidInput, r.Date, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		key := historyKey{player: r.Player, date: r.Date}
		if _, exists := s.rows[key]; exists {
			result.Updated++
		} else {
			result.Inserted++
		}
		clone := *r
		s.rows[key] = &clone
	}

	result.Total = result.Inserted + result.Updated
	return result, nil
}

// Get returns the row for (player, date), or storage.ErrNotFound.
func (s *TeamHistoryStore) Get(ctx context.Context, player int, date string) (*domain.TeamHistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rows[historyKey{player: player, date: date}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

// Len returns the number of stored rows.
func (s *TeamHistoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
