package memory

import (
	"context"
	"errors"
	"testing"

	"mlb-roster-sync/internal/domain"
	"mlb-roster-sync/internal/storage"
)

func TestTeamHistoryStore_InsertThenUpdate(t *testing.T) {
	store := NewTeamHistoryStore()
	ctx := context.Background()

	first := &domain.TeamHistoryRecord{
		Player:      12345,
		Date:        "2024-04-01",
		Team:        141,
		Description: "Traded to Yankees",
	}

	result, err := store.Upsert(ctx, []*domain.TeamHistoryRecord{first})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if result.Inserted != 1 || result.Updated != 0 || result.Total != 1 {
		t.Errorf("first upsert counts: got %+v, want {Inserted:1 Updated:0 Total:1}", result)
	}

	// Second run touching the same (player, date) must update in place.
	second := &domain.TeamHistoryRecord{
		Player:      12345,
		Date:        "2024-04-01",
		Team:        147,
		Description: "Claimed off waivers",
	}

	result, err = store.Upsert(ctx, []*domain.TeamHistoryRecord{second})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if result.Inserted != 0 || result.Updated != 1 || result.Total != 1 {
		t.Errorf("second upsert counts: got %+v, want {Inserted:0 Updated:1 Total:1}", result)
	}

	got, err := store.Get(ctx, 12345, "2024-04-01")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Team != 147 {
		t.Errorf("Team mismatch after update: got %d, want 147", got.Team)
	}
	if got.Description != "Claimed off waivers" {
		t.Errorf("Description mismatch after update: got %q", got.Description)
	}
	if store.Len() != 1 {
		t.Errorf("row count mismatch: got %d, want 1", store.Len())
	}
}

func TestTeamHistoryStore_MixedBatch(t *testing.T) {
	store := NewTeamHistoryStore()
	ctx := context.Background()

	seed := []*domain.TeamHistoryRecord{
		{Player: 1, Date: "2024-04-01", Team: 141},
		{Player: 2, Date: "2024-04-01", Team: 147},
	}
	if _, err := store.Upsert(ctx, seed); err != nil {
		t.Fatalf("seed upsert failed: %v", err)
	}

	mixed := []*domain.TeamHistoryRecord{
		{Player: 1, Date: "2024-04-01", Team: 158}, // existing key
		{Player: 3, Date: "2024-04-02", Team: 141}, // new key
	}

	result, err := store.Upsert(ctx, mixed)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if result.Inserted != 1 || result.Updated != 1 || result.Total != 2 {
		t.Errorf("mixed upsert counts: got %+v, want {Inserted:1 Updated:1 Total:2}", result)
	}
}

func TestTeamHistoryStore_InvalidDateLeavesStoreUntouched(t *testing.T) {
	store := NewTeamHistoryStore()
	ctx := context.Background()

	records := []*domain.TeamHistoryRecord{
		{Player: 1, Date: "2024-04-01", Team: 141},
		{Player: 2, Date: "04/02/2024", Team: 147},
	}

	_, err := store.Upsert(ctx, records)
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("store should be empty after failed upsert, has %d rows", store.Len())
	}
}

func TestTeamHistoryStore_GetMissing(t *testing.T) {
	store := NewTeamHistoryStore()

	_, err := store.Get(context.Background(), 999, "2024-04-01")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
