package domain

import "time"

// DateLayout is the calendar-date format used everywhere in the pipeline:
// trigger input, the external API query string, and persisted rows.
const DateLayout = "2006-01-02"

// Window is the inclusive calendar-date range a reconciliation run covers.
// Both bounds are date-only (midnight, no meaningful time component).
// Invariant: Start <= End. Created once per run, never persisted.
type Window struct {
	Start time.Time
	End   time.Time
}

// StartDate returns the start bound formatted as YYYY-MM-DD.
func (w Window) StartDate() string {
	return w.Start.Format(DateLayout)
}

// EndDate returns the end bound formatted as YYYY-MM-DD.
func (w Window) EndDate() string {
	return w.End.Format(DateLayout)
}

func (w Window) String() string {
	return w.StartDate() + ".." + w.EndDate()
}
