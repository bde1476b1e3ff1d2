package clickhouse

import (
	"context"
	"fmt"
	"time"

	"mlb-roster-sync/internal/domain"
	"mlb-roster-sync/internal/storage"
)

// AuditLogStore implements storage.AuditLogStore using ClickHouse.
// Deployments that keep the audit stream in ClickHouse use this instead of
// the Postgres implementation; the MergeTree table is append-only.
type AuditLogStore struct {
	conn *Conn
}

// NewAuditLogStore creates a new AuditLogStore.
func NewAuditLogStore(conn *Conn) *AuditLogStore {
	return &AuditLogStore{conn: conn}
}

// Compile-time interface check.
var _ storage.AuditLogStore = (*AuditLogStore)(nil)

// Append writes one audit entry.
func (s *AuditLogStore) Append(ctx context.Context, e *domain.AuditEntry) error {
	query := `
		INSERT INTO audit_log (logged_at, actor, description)
		VALUES (?, ?, ?)
	`

	err := s.conn.Exec(ctx, query,
		time.UnixMilli(e.LoggedAt).UTC(),
		e.Actor,
		e.Description,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}
