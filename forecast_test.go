package recall

import (
	"testing"
	"time"
)

func TestForecastLoadCountsPerDay(t *testing.T) {
	settings := DefaultSettings()
	states := []ReviewState{
		dueState("overdue", 3, t0.AddDate(0, 0, -4), t0.AddDate(0, 0, -8)),
		dueState("today", 2, t0, t0.AddDate(0, 0, -2)),
		dueState("plus1", 5, t0.AddDate(0, 0, 1), t0.AddDate(0, 0, -5)),
		dueState("plus1b", 6, t0.AddDate(0, 0, 1), t0.AddDate(0, 0, -6)),
		dueState("plus3", 9, t0.AddDate(0, 0, 3), t0.AddDate(0, 0, -9)),
		dueState("beyond", 20, t0.AddDate(0, 0, 30), t0.AddDate(0, 0, -20)),
	}

	f := ForecastLoad(states, settings, t0, 7)
	if len(f.Days) != 7 {
		t.Fatalf("horizon = %d days, want 7", len(f.Days))
	}
	wantDue := []int{2, 2, 0, 1, 0, 0, 0} // overdue collapses into day 0
	for i, want := range wantDue {
		if f.Days[i].Due != want {
			t.Errorf("day %d due = %d, want %d", i, f.Days[i].Due, want)
		}
	}
	if f.Rated != 6 {
		t.Errorf("Rated = %d, want 6", f.Rated)
	}
	if f.MeanRetrievability <= 0 || f.MeanRetrievability > 1 {
		t.Errorf("MeanRetrievability = %f, outside (0, 1]", f.MeanRetrievability)
	}
}

func TestForecastLoadUnratedPool(t *testing.T) {
	settings := DefaultSettings()
	states := []ReviewState{
		{VocabularyID: "new", Schema: SchemaCurrent, Phase: New, NextReviewDate: t0},
	}
	f := ForecastLoad(states, settings, t0, 3)
	if f.Rated != 0 {
		t.Errorf("Rated = %d, want 0", f.Rated)
	}
	if f.MeanRetrievability != 0 {
		t.Errorf("MeanRetrievability = %f, want 0", f.MeanRetrievability)
	}
	if f.Days[0].Due != 1 {
		t.Errorf("day 0 due = %d, want 1 (admitted card due now)", f.Days[0].Due)
	}
}

func TestForecastLoadMinimumHorizon(t *testing.T) {
	f := ForecastLoad(nil, DefaultSettings(), t0, 0)
	if len(f.Days) != 1 {
		t.Errorf("horizon = %d, want floor of 1", len(f.Days))
	}
	if !f.Days[0].Date.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("day 0 = %v, want midnight of the as-of day", f.Days[0].Date)
	}
}
