package storage

import (
	"context"

	"mlb-roster-sync/internal/domain"
)

// CatalogStore provides read access to the authoritative entity catalogs.
// The catalogs are owned and maintained elsewhere; this job only reads them.
type CatalogStore interface {
	// ValidTeamIDs returns all valid team ids in ascending order. The list
	// doubles as the server-side fetch filter and the relevance set.
	ValidTeamIDs(ctx context.Context) ([]int, error)

	// ValidPlayerIDs returns all valid player ids in ascending order.
	ValidPlayerIDs(ctx context.Context) ([]int, error)
}

// UpsertResult reports row actions taken by one Upsert call.
type UpsertResult struct {
	Inserted int // rows created
	Updated  int // rows matched on (player, date) and overwritten
	Total    int // Inserted + Updated
}

// TeamHistoryStore persists player team history rows.
type TeamHistoryStore interface {
	// Upsert merges records into the history table, matching existing rows
	// on (player, date): update team and description on match, insert
	// otherwise. Implementations chunk the input into bounded batches but
	// apply all batches atomically; on any failure nothing is committed.
	// Callers must not pass two records sharing a (player, date) key.
	Upsert(ctx context.Context, records []*domain.TeamHistoryRecord) (UpsertResult, error)
}

// AuditLogStore appends run invocation entries to the audit log.
type AuditLogStore interface {
	// Append writes one entry. The log is append-only; entries are never
	// updated or deleted.
	Append(ctx context.Context, e *domain.AuditEntry) error
}
