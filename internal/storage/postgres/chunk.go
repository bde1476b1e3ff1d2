package postgres

import "mlb-roster-sync/internal/domain"

// chunkRecords splits records into consecutive batches of at most size
// records. Records are never split or reordered across batch boundaries.
func chunkRecords(records []*domain.TeamHistoryRecord, size int) [][]*domain.TeamHistoryRecord {
	if size < 1 {
		size = DefaultBatchSize
	}

	batches := make([][]*domain.TeamHistoryRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches
}
