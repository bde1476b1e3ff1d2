// Package window resolves and validates the calendar-date range a
// reconciliation run processes.
package window

import (
	"errors"
	"fmt"
	"time"

	"mlb-roster-sync/internal/domain"
)

// ErrInvalidRange is returned when the window input is malformed or the
// start date falls after the end date.
var ErrInvalidRange = errors.New("invalid date range")

// Resolve builds the run window from optional YYYY-MM-DD bounds.
// An empty start defaults to yesterday, an empty end to tomorrow, both in
// the local calendar of now(). No side effects.
func Resolve(start, end string, now func() time.Time) (domain.Window, error) {
	if now == nil {
		now = time.Now
	}

	today := now()

	startDate, err := resolveBound(start, today.AddDate(0, 0, -1))
	if err != nil {
		return domain.Window{}, fmt.Errorf("%w: start date %q: %v", ErrInvalidRange, start, err)
	}

	endDate, err := resolveBound(end, today.AddDate(0, 0, 1))
	if err != nil {
		return domain.Window{}, fmt.Errorf("%w: end date %q: %v", ErrInvalidRange, end, err)
	}

	if startDate.After(endDate) {
		return domain.Window{}, fmt.Errorf("%w: start %s after end %s",
			ErrInvalidRange, startDate.Format(domain.DateLayout), endDate.Format(domain.DateLayout))
	}

	return domain.Window{Start: startDate, End: endDate}, nil
}

// resolveBound parses one bound, falling back to the default for empty input.
// Parsed and defaulted bounds are both truncated to date-only.
func resolveBound(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return truncateToDate(fallback), nil
	}

	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
