package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"mlb-roster-sync/internal/storage/migrations"
	"mlb-roster-sync/internal/storage/postgres"
)

// setupTestDB creates a PostgreSQL container for testing and applies the
// embedded migrations. Returns a cleanup function that must be called after
// tests complete.
func setupTestDB(t *testing.T) (*postgres.Pool, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := postgres.NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	err = migrations.RunPostgresMigrations(ctx, pool)
	require.NoError(t, err, "failed to run migrations")

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// seedCatalogs inserts team and player ids into the catalog tables.
func seedCatalogs(t *testing.T, pool *postgres.Pool, teamIDs, playerIDs []int) {
	t.Helper()

	ctx := context.Background()
	for _, id := range teamIDs {
		_, err := pool.Exec(ctx, `INSERT INTO mlb_teams (team_id) VALUES ($1) ON CONFLICT DO NOTHING`, id)
		require.NoError(t, err, "failed to seed team %d", id)
	}
	for _, id := range playerIDs {
		_, err := pool.Exec(ctx, `INSERT INTO mlb_players (player_id) VALUES ($1) ON CONFLICT DO NOTHING`, id)
		require.NoError(t, err, "failed to seed player %d", id)
	}
}
