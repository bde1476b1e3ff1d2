package projection

import (
	"sort"

	"mlb-roster-sync/internal/domain"
)

// dedupKey matches the persistence layer's natural key (player, date), not
// (player, date, team). The upsert merges on (player, date) only, so two
// candidates differing just by team would collide inside one merge batch if
// both survived.
type dedupKey struct {
	player int
	date   string
}

// Deduplicate resolves candidates sharing a (player, date) key, keeping
// exactly the one with the numerically highest source id. Source ids are
// monotonically increasing, so the highest id is the most recent word from
// the source even when several transactions share a calendar date. Output
// is sorted by (player, date) for deterministic batches.
func Deduplicate(candidates []*domain.CandidateRecord) []*domain.CandidateRecord {
	if len(candidates) == 0 {
		return nil
	}

	survivors := make(map[dedupKey]*domain.CandidateRecord, len(candidates))
	for _, c := range candidates {
		key := dedupKey{player: c.Player, date: c.Date}
		if current, ok := survivors[key]; ok && current.SourceID >= c.SourceID {
			continue
		}
		survivors[key] = c
	}

	out := make([]*domain.CandidateRecord, 0, len(survivors))
	for _, c := range survivors {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Player != out[j].Player {
			return out[i].Player < out[j].Player
		}
		return out[i].Date < out[j].Date
	})
	return out
}

// ToHistoryRecords converts deduplicated candidates into persistence rows,
// dropping the tie-break source id.
func ToHistoryRecords(candidates []*domain.CandidateRecord) []*domain.TeamHistoryRecord {
	records := make([]*domain.TeamHistoryRecord, len(candidates))
	for i, c := range candidates {
		records[i] = &domain.TeamHistoryRecord{
			Player:      c.Player,
			Date:        c.Date,
			Team:        c.Team,
			Description: c.Description,
		}
	}
	return records
}
