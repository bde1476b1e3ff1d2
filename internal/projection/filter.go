// Package projection turns raw roster transactions into deduplicated
// candidate records ready for persistence.
package projection

import (
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"mlb-roster-sync/internal/domain"
)

// MaxDescriptionLen is the persisted description column bound.
const MaxDescriptionLen = 255

// FilterResult carries the surviving candidates and drop accounting.
type FilterResult struct {
	Candidates []*domain.CandidateRecord
	Dropped    int // malformed or irrelevant records removed
}

// FilterAndProject validates raw transactions and projects the survivors
// into candidate records. Two stages per record: structural validity
// (non-nil player and destination team, parsable date), then relevance
// (player and team present in the catalogs). Failures are per-record:
// logged as warnings and dropped, never fatal.
func FilterAndProject(txs []domain.RosterTransaction, validPlayers, validTeams map[int]struct{}, logger *log.Logger) FilterResult {
	if logger == nil {
		logger = log.Default()
	}

	var result FilterResult
	for _, tx := range txs {
		candidate, reason := project(tx, validPlayers, validTeams)
		if candidate == nil {
			logger.Printf("WARN: dropping transaction %d: %s", tx.ID, reason)
			result.Dropped++
			continue
		}
		result.Candidates = append(result.Candidates, candidate)
	}
	return result
}

// project validates one transaction. Returns the candidate, or nil with a
// drop reason.
func project(tx domain.RosterTransaction, validPlayers, validTeams map[int]struct{}) (*domain.CandidateRecord, string) {
	// Stage 1: structural validity.
	if tx.PlayerID == nil {
		return nil, "no player id"
	}
	if tx.ToTeamID == nil {
		return nil, "no destination team"
	}
	if _, err := time.Parse(domain.DateLayout, tx.Date); err != nil {
		return nil, fmt.Sprintf("unparsable date %q", tx.Date)
	}

	// Stage 2: relevance. The team set already shaped the server-side fetch
	// filter; it is re-checked here in case the source returns extras.
	if _, ok := validPlayers[*tx.PlayerID]; !ok {
		return nil, "player not in catalog"
	}
	if _, ok := validTeams[*tx.ToTeamID]; !ok {
		return nil, "team not in catalog"
	}

	description := strings.TrimSpace(tx.Description)
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		// Truncate on a rune boundary; a byte slice could split a rune and
		// hand the store invalid UTF-8.
		description = string([]rune(description)[:MaxDescriptionLen])
	}

	return &domain.CandidateRecord{
		Player:      *tx.PlayerID,
		Date:        tx.Date,
		Team:        *tx.ToTeamID,
		Description: description,
		SourceID:    tx.ID,
	}, ""
}

// IDSet builds a membership set from an id list.
func IDSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
