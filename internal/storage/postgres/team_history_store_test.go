package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mlb-roster-sync/internal/domain"
	"mlb-roster-sync/internal/storage/postgres"
)

func TestTeamHistoryStore_UpsertInsertThenUpdate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewTeamHistoryStore(pool)
	ctx := context.Background()

	result, err := store.Upsert(ctx, []*domain.TeamHistoryRecord{
		{Player: 12345, Date: "2024-04-01", Team: 141, Description: "Traded to Yankees"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Inserted)
	require.Equal(t, 0, result.Updated)
	require.Equal(t, 1, result.Total)

	// Re-running the same key with new values must update, not insert.
	result, err = store.Upsert(ctx, []*domain.TeamHistoryRecord{
		{Player: 12345, Date: "2024-04-01", Team: 147, Description: "Claimed off waivers"},
	})
	require.NoError(t, err)
	require.Equal(t, 0, result.Inserted)
	require.Equal(t, 1, result.Updated)

	var team int
	var description string
	err = pool.QueryRow(ctx,
		`SELECT team_id, description FROM player_team_history WHERE player_id = $1 AND date = $2`,
		12345, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	).Scan(&team, &description)
	require.NoError(t, err)
	require.Equal(t, 147, team)
	require.Equal(t, "Claimed off waivers", description)

	var count int
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM player_team_history`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "natural key must stay unique")
}

func TestTeamHistoryStore_UpsertSpansBatches(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	// Batch size 2 forces the 5 records across 3 batches in one transaction.
	store := postgres.NewTeamHistoryStore(pool).WithBatchSize(2)
	ctx := context.Background()

	records := make([]*domain.TeamHistoryRecord, 5)
	for i := range records {
		records[i] = &domain.TeamHistoryRecord{
			Player:      100000 + i,
			Date:        "2024-04-01",
			Team:        141,
			Description: "Recalled from Triple-A",
		}
	}

	result, err := store.Upsert(ctx, records)
	require.NoError(t, err)
	require.Equal(t, 5, result.Inserted)
	require.Equal(t, 5, result.Total)

	var count int
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM player_team_history`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 5, count)
}

func TestTeamHistoryStore_RollbackOnLaterBatchFailure(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewTeamHistoryStore(pool).WithBatchSize(1)
	ctx := context.Background()

	// The third record overflows the varchar(255) column, failing its batch
	// after two batches have already been applied inside the transaction.
	records := []*domain.TeamHistoryRecord{
		{Player: 1, Date: "2024-04-01", Team: 141, Description: "ok"},
		{Player: 2, Date: "2024-04-01", Team: 147, Description: "ok"},
		{Player: 3, Date: "2024-04-01", Team: 158, Description: strings.Repeat("x", 300)},
	}

	_, err := store.Upsert(ctx, records)
	require.Error(t, err)

	var count int
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM player_team_history`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count, "no batch may be visible after rollback")
}

func TestTeamHistoryStore_EmptyInput(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewTeamHistoryStore(pool)

	result, err := store.Upsert(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, result.Total)
}
