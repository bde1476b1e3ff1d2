package postgres

import (
	"context"
	"fmt"
	"time"

	"mlb-roster-sync/internal/domain"
	"mlb-roster-sync/internal/storage"
)

// AuditLogStore implements storage.AuditLogStore using PostgreSQL.
type AuditLogStore struct {
	pool *Pool
}

// NewAuditLogStore creates a new AuditLogStore.
func NewAuditLogStore(pool *Pool) *AuditLogStore {
	return &AuditLogStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AuditLogStore = (*AuditLogStore)(nil)

// Append writes one audit entry. The audit_log table is append-only.
func (s *AuditLogStore) Append(ctx context.Context, e *domain.AuditEntry) error {
	query := `
		INSERT INTO audit_log (logged_at, actor, description)
		VALUES ($1, $2, $3)
	`

	_, err := s.pool.Exec(ctx, query,
		time.UnixMilli(e.LoggedAt).UTC(),
		e.Actor,
		e.Description,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}
