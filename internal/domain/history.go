package domain

// TeamHistoryRecord is one row of the persisted player team history.
// Corresponds to the player_team_history table. Natural key (Player, Date):
// at most one row per player per calendar date, updated in place when a
// later run reconciles the same key. Rows are never deleted by this job.
type TeamHistoryRecord struct {
	Player      int    // player id
	Date        string // YYYY-MM-DD
	Team        int    // team the player moved to on that date
	Description string // transaction description, at most 255 chars
}

// AuditEntry is one append-only audit-log row recording a run invocation.
type AuditEntry struct {
	LoggedAt    int64  // Unix timestamp in milliseconds
	Actor       string // job name plus run correlation id
	Description string // invocation context (window, environment)
}
