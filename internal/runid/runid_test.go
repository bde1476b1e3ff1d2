package runid

import (
	"testing"
	"time"

	"mlb-roster-sync/internal/domain"
)

func TestNew_Deterministic(t *testing.T) {
	w := domain.Window{
		Start: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
	}
	start := time.Date(2024, 4, 3, 6, 30, 0, 0, time.UTC)

	first := New(w, start)
	second := New(w, start)

	if first == "" {
		t.Fatal("empty run id")
	}
	if first != second {
		t.Errorf("same inputs produced different ids: %s vs %s", first, second)
	}
}

func TestNew_DistinctInputs(t *testing.T) {
	w := domain.Window{
		Start: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
	}
	start := time.Date(2024, 4, 3, 6, 30, 0, 0, time.UTC)

	base := New(w, start)

	laterStart := New(w, start.Add(time.Millisecond))
	if laterStart == base {
		t.Error("different start times produced the same id")
	}

	shifted := w
	shifted.End = shifted.End.AddDate(0, 0, 1)
	otherWindow := New(shifted, start)
	if otherWindow == base {
		t.Error("different windows produced the same id")
	}
}
