package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"mlb-roster-sync/internal/domain"
	"mlb-roster-sync/internal/storage"
)

// DefaultBatchSize bounds records per merge statement. Each record binds 4
// parameters, so 500 records stay far below the backend's bound-parameter
// ceiling.
const DefaultBatchSize = 500

// TeamHistoryStore implements storage.TeamHistoryStore using PostgreSQL.
type TeamHistoryStore struct {
	pool      *Pool
	batchSize int
}

// NewTeamHistoryStore creates a new TeamHistoryStore with DefaultBatchSize.
func NewTeamHistoryStore(pool *Pool) *TeamHistoryStore {
	return &TeamHistoryStore{pool: pool, batchSize: DefaultBatchSize}
}

// WithBatchSize overrides the records-per-batch bound. Values < 1 are ignored.
func (s *TeamHistoryStore) WithBatchSize(n int) *TeamHistoryStore {
	if n >= 1 {
		s.batchSize = n
	}
	return s
}

// Compile-time interface check.
var _ storage.TeamHistoryStore = (*TeamHistoryStore)(nil)

// Upsert merges records into player_team_history, matching on (player, date).
// The input is chunked into batches of at most batchSize records, but every
// batch runs inside the same transaction: a failure in any batch rolls back
// the whole call and nothing is committed.
func (s *TeamHistoryStore) Upsert(ctx context.Context, records []*domain.TeamHistoryRecord) (storage.UpsertResult, error) {
	var result storage.UpsertResult
	if len(records) == 0 {
		return result, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, batch := range chunkRecords(records, s.batchSize) {
		inserted, updated, err := upsertBatch(ctx, tx, batch)
		if err != nil {
			return storage.UpsertResult{}, fmt.Errorf("upsert batch: %w", err)
		}
		result.Inserted += inserted
		result.Updated += updated
	}

	if err := tx.Commit(ctx); err != nil {
		return storage.UpsertResult{}, fmt.Errorf("commit tx: %w", err)
	}

	result.Total = result.Inserted + result.Updated
	return result, nil
}

// upsertBatch merges one batch with a single multi-row statement and counts
// row actions via RETURNING (xmax = 0): xmax is zero for freshly inserted
// rows and nonzero for rows rewritten by the conflict update.
func upsertBatch(ctx context.Context, tx pgx.Tx, batch []*domain.TeamHistoryRecord) (inserted, updated int, err error) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO player_team_history (player_id, date, team_id, description) VALUES `)

	args := make([]any, 0, len(batch)*4)
	for i, r := range batch {
		date, err := time.Parse(domain.DateLayout, r.Date)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: record date %q: %v", storage.ErrInvalidInput, r.Date, err)
		}

		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 4
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4)
		args = append(args, r.Player, date, r.Team, r.Description)
	}

	sb.WriteString(` ON CONFLICT (player_id, date) DO UPDATE SET
		team_id = EXCLUDED.team_id,
		description = EXCLUDED.description
	RETURNING (xmax = 0)`)

	rows, err := tx.Query(ctx, sb.String(), args...)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var wasInsert bool
		if err := rows.Scan(&wasInsert); err != nil {
			return 0, 0, err
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}

	return inserted, updated, nil
}
