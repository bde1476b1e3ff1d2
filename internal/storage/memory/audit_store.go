package memory

import (
	"context"
	"sync"

	"mlb-roster-sync/internal/domain"
	"mlb-roster-sync/internal/storage"
)

// AuditLogStore implements storage.AuditLogStore in memory.
type AuditLogStore struct {
	mu      sync.RWMutex
	entries []*domain.AuditEntry
}

// NewAuditLogStore creates an empty AuditLogStore.
func NewAuditLogStore() *AuditLogStore {
	return &AuditLogStore{}
}

// Compile-time interface check.
var _ storage.AuditLogStore = (*AuditLogStore)(nil)

// Append records one entry.
func (s *AuditLogStore) Append(ctx context.Context, e *domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *e
	s.entries = append(s.entries, &clone)
	return nil
}

// Entries returns a copy of all appended entries in insertion order.
func (s *AuditLogStore) Entries() []*domain.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.AuditEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
