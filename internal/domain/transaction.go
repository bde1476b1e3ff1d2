package domain

// RosterTransaction is one transaction record as returned by the MLB Stats
// API, already parsed into a typed value. Fields the API may omit are
// pointers; a nil pointer routes the record to the malformed-record path
// during projection instead of surfacing as a late nil dereference.
type RosterTransaction struct {
	ID          int64  // external transaction id, monotonically increasing
	PlayerID    *int   // person.id, nil when the API omits the person object
	ToTeamID    *int   // toTeam.id, nil for transactions without a destination team
	Date        string // transaction date as reported, expected YYYY-MM-DD
	Description string // free-text description, unbounded on the wire
}

// CandidateRecord is a roster transaction projected into persistence shape,
// not yet deduplicated or committed. Produced by filtering, consumed by
// dedup and the upserter.
type CandidateRecord struct {
	Player      int    // validated player id
	Date        string // YYYY-MM-DD, validated parsable
	Team        int    // validated destination team id
	Description string // trimmed and truncated to 255 chars
	SourceID    int64  // external transaction id, tie-break key only, never persisted
}
