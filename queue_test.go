package recall

import (
	"fmt"
	"testing"
	"time"
)

func dueState(id string, stability float64, due time.Time, lastReview time.Time) ReviewState {
	lr := lastReview
	return ReviewState{
		VocabularyID:   id,
		Schema:         SchemaCurrent,
		Phase:          Active,
		Stability:      stability,
		Difficulty:     5,
		NextReviewDate: due,
		LastReviewDate: &lr,
		ReviewHistory:  []ReviewHistoryEntry{{Date: lastReview, Rating: Good}},
	}
}

func TestBuildDueQueueCapsAtMaxReviews(t *testing.T) {
	// 60 due states, cap 50: exactly 50 back, least urgent excluded.
	settings := NewSettings(0.9, 50, 20, time.UTC)
	var states []ReviewState
	for i := 0; i < 60; i++ {
		id := fmt.Sprintf("v%03d", i)
		states = append(states, dueState(id, float64(i+1), t0, t0.AddDate(0, 0, -1)))
	}

	queue := BuildDueQueue(states, nil, settings, t0, SortByFragility)
	if len(queue) != 50 {
		t.Fatalf("queue length = %d, want 50", len(queue))
	}
	// Ascending stability; the 10 most stable must be the ones omitted.
	for i := 1; i < len(queue); i++ {
		if queue[i].Stability < queue[i-1].Stability {
			t.Fatalf("queue not ascending at %d: %f < %f", i, queue[i].Stability, queue[i-1].Stability)
		}
	}
	if queue[len(queue)-1].Stability > 50 {
		t.Errorf("most stable kept card = %f, want <= 50", queue[len(queue)-1].Stability)
	}
}

func TestBuildDueQueueExcludesFutureCards(t *testing.T) {
	settings := DefaultSettings()
	states := []ReviewState{
		dueState("past", 3, t0.AddDate(0, 0, -2), t0.AddDate(0, 0, -5)),
		dueState("today", 2, t0, t0.AddDate(0, 0, -3)),
		dueState("tomorrow", 1, t0.AddDate(0, 0, 1), t0.AddDate(0, 0, -1)),
	}
	queue := BuildDueQueue(states, nil, settings, t0, SortByFragility)
	if len(queue) != 2 {
		t.Fatalf("queue length = %d, want 2", len(queue))
	}
	for _, s := range queue {
		if s.VocabularyID == "tomorrow" {
			t.Error("future card included in due queue")
		}
	}
}

func TestBuildDueQueueCivilDayBoundary(t *testing.T) {
	// A card due later the same civil day is due, regardless of clock time;
	// the comparison runs in the settings timezone, not the host zone.
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	settings := NewSettings(0.9, 50, 20, tokyo)

	// 23:30 Tokyo on March 10th is 14:30 UTC March 10th.
	lateTokyo := time.Date(2026, 3, 10, 23, 30, 0, 0, tokyo)
	// 01:00 Tokyo on March 11th is still March 10th in UTC.
	earlyNext := time.Date(2026, 3, 11, 1, 0, 0, 0, tokyo)

	states := []ReviewState{
		dueState("same-day", 3, lateTokyo, lateTokyo.AddDate(0, 0, -1)),
		dueState("next-day", 2, earlyNext, lateTokyo.AddDate(0, 0, -1)),
	}

	morning := time.Date(2026, 3, 10, 8, 0, 0, 0, tokyo)
	queue := BuildDueQueue(states, nil, settings, morning, SortByFragility)
	if len(queue) != 1 || queue[0].VocabularyID != "same-day" {
		t.Fatalf("queue = %v, want only same-day", ids(queue))
	}

	// The same instants compared under UTC fall on different civil days
	// (08:00 Tokyo is still the previous day in UTC), which would hide
	// the same-day card. The timezone has to come from settings.
	utcSettings := NewSettings(0.9, 50, 20, time.UTC)
	utcQueue := BuildDueQueue(states, nil, utcSettings, morning, SortByFragility)
	if len(utcQueue) != 0 {
		t.Fatalf("UTC day boundary sanity check: got %d, want 0", len(utcQueue))
	}
}

func TestBuildDueQueueFragilityOrder(t *testing.T) {
	settings := DefaultSettings()
	states := []ReviewState{
		dueState("b", 5, t0, t0.AddDate(0, 0, -1)),
		dueState("a", 1, t0, t0.AddDate(0, 0, -1)),
		dueState("c", 3, t0, t0.AddDate(0, 0, -1)),
	}
	queue := BuildDueQueue(states, nil, settings, t0, SortByFragility)
	want := []string{"a", "c", "b"}
	if got := ids(queue); !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestBuildDueQueueRecencyOrder(t *testing.T) {
	settings := DefaultSettings()
	states := []ReviewState{
		dueState("old", 1, t0, t0.AddDate(0, 0, -9)),
		dueState("fresh", 5, t0, t0.AddDate(0, 0, -1)),
		dueState("mid", 3, t0, t0.AddDate(0, 0, -4)),
	}
	queue := BuildDueQueue(states, nil, settings, t0, SortByRecency)
	want := []string{"fresh", "mid", "old"}
	if got := ids(queue); !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestBuildDueQueueDeterministicTieBreak(t *testing.T) {
	settings := DefaultSettings()
	mk := func() []ReviewState {
		return []ReviewState{
			dueState("z", 2, t0, t0.AddDate(0, 0, -1)),
			dueState("a", 2, t0, t0.AddDate(0, 0, -1)),
			dueState("m", 2, t0, t0.AddDate(0, 0, -1)),
		}
	}
	first := ids(BuildDueQueue(mk(), nil, settings, t0, SortByFragility))
	second := ids(BuildDueQueue(mk(), nil, settings, t0, SortByFragility))
	if !equalStrings(first, second) {
		t.Errorf("non-deterministic order: %v vs %v", first, second)
	}
	if !equalStrings(first, []string{"a", "m", "z"}) {
		t.Errorf("tie-break order = %v, want by vocabulary ID", first)
	}
}

func TestBuildDueQueueSkipsOrphans(t *testing.T) {
	// A state whose vocabulary item was deleted out-of-band must be
	// skipped, not break the queue.
	settings := DefaultSettings()
	vocab := []VocabularyItem{{ID: "kept", CreatedAt: t0}}
	states := []ReviewState{
		dueState("kept", 2, t0, t0.AddDate(0, 0, -1)),
		dueState("orphan", 1, t0, t0.AddDate(0, 0, -1)),
	}
	queue := BuildDueQueue(states, vocab, settings, t0, SortByFragility)
	if len(queue) != 1 || queue[0].VocabularyID != "kept" {
		t.Errorf("queue = %v, want only kept", ids(queue))
	}
}

func TestParseSortMode(t *testing.T) {
	if m, err := ParseSortMode("fragility"); err != nil || m != SortByFragility {
		t.Errorf("ParseSortMode(fragility) = %v, %v", m, err)
	}
	if m, err := ParseSortMode("recency"); err != nil || m != SortByRecency {
		t.Errorf("ParseSortMode(recency) = %v, %v", m, err)
	}
	if _, err := ParseSortMode("nope"); err == nil {
		t.Error("ParseSortMode(nope) should fail")
	}
}

func ids(states []ReviewState) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.VocabularyID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
