package postgres

import (
	"fmt"
	"testing"

	"mlb-roster-sync/internal/domain"
)

func makeRecords(n int) []*domain.TeamHistoryRecord {
	records := make([]*domain.TeamHistoryRecord, n)
	for i := range records {
		records[i] = &domain.TeamHistoryRecord{
			Player: 100000 + i,
			Date:   "2024-04-01",
			Team:   141,
		}
	}
	return records
}

func TestChunkRecords(t *testing.T) {
	tests := []struct {
		total     int
		size      int
		wantSizes []int
	}{
		{0, 500, nil},
		{1, 500, []int{1}},
		{500, 500, []int{500}},
		{501, 500, []int{500, 1}},
		{1000, 500, []int{500, 500}},
		{1250, 500, []int{500, 500, 250}},
		{5, 2, []int{2, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_by_%d", tt.total, tt.size), func(t *testing.T) {
			batches := chunkRecords(makeRecords(tt.total), tt.size)

			if len(batches) != len(tt.wantSizes) {
				t.Fatalf("batch count mismatch: got %d, want %d", len(batches), len(tt.wantSizes))
			}
			for i, batch := range batches {
				if len(batch) != tt.wantSizes[i] {
					t.Errorf("batch %d size mismatch: got %d, want %d", i, len(batch), tt.wantSizes[i])
				}
			}
		})
	}
}

func TestChunkRecords_PreservesOrder(t *testing.T) {
	records := makeRecords(7)
	batches := chunkRecords(records, 3)

	i := 0
	for _, batch := range batches {
		for _, r := range batch {
			if r != records[i] {
				t.Fatalf("record %d out of order after chunking", i)
			}
			i++
		}
	}
	if i != len(records) {
		t.Fatalf("chunking lost records: saw %d, want %d", i, len(records))
	}
}
