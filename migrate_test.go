package recall

import "testing"

func legacyState(id string, intervalDays int, history []ReviewHistoryEntry) ReviewState {
	return ReviewState{
		VocabularyID:        id,
		Schema:              SchemaLegacy,
		CurrentIntervalDays: intervalDays,
		NextReviewDate:      t0.AddDate(0, 0, intervalDays),
		ReviewHistory:       history,
	}
}

func historyOf(ratings ...Rating) []ReviewHistoryEntry {
	out := make([]ReviewHistoryEntry, len(ratings))
	for i, r := range ratings {
		out[i] = ReviewHistoryEntry{Date: t0.AddDate(0, 0, i-len(ratings)), Rating: r}
	}
	return out
}

func TestMigrateIdempotent(t *testing.T) {
	legacy := legacyState("v1", 12, historyOf(Good, Again, Good))
	once := Migrate(legacy)
	twice := Migrate(once)

	if once.Schema != SchemaCurrent {
		t.Fatal("migrated state not tagged current")
	}
	if twice.Stability != once.Stability || twice.Difficulty != once.Difficulty ||
		twice.Lapses != once.Lapses || len(twice.ReviewHistory) != len(once.ReviewHistory) {
		t.Error("migrate(migrate(x)) != migrate(x)")
	}
}

func TestMigrateLeavesCurrentUntouched(t *testing.T) {
	current := ratedState(14, 3.5, t0.AddDate(0, 0, -14))
	got := Migrate(current)
	if got.Stability != 14 || got.Difficulty != 3.5 {
		t.Errorf("current record changed: S=%f D=%f", got.Stability, got.Difficulty)
	}
}

func TestMigrateStabilityFromInterval(t *testing.T) {
	got := Migrate(legacyState("v1", 12, historyOf(Good)))
	assertFloat(t, "Stability", got.Stability, 12)

	// Interval 0 floors at 1.
	got = Migrate(legacyState("v2", 0, historyOf(Good)))
	assertFloat(t, "Stability", got.Stability, 1)
}

func TestMigrateDifficultyFromSuccessRate(t *testing.T) {
	tests := []struct {
		name    string
		history []ReviewHistoryEntry
		want    float64
	}{
		{"all successes", historyOf(Good, Easy, Hard, Good), 1.0},
		{"half", historyOf(Good, Again, Easy, Again), 5.5},
		{"all failures", historyOf(Again, Again, Again), 10.0},
		{"three quarters", historyOf(Good, Good, Good, Again), 3.25},
		{"empty history", nil, NeutralDifficulty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Migrate(legacyState("v1", 5, tt.history))
			assertFloat(t, "Difficulty", got.Difficulty, tt.want)
		})
	}
}

func TestMigrateLapsesFromHistory(t *testing.T) {
	got := Migrate(legacyState("v1", 5, historyOf(Again, Good, Again, Hard, Again)))
	if got.Lapses != 3 {
		t.Errorf("Lapses = %d, want 3", got.Lapses)
	}
	if got.Phase != Relapsed {
		t.Errorf("Phase = %s, want Relapsed (last rating was Again)", got.Phase)
	}

	got = Migrate(legacyState("v2", 5, historyOf(Again, Good)))
	if got.Phase != Active {
		t.Errorf("Phase = %s, want Active", got.Phase)
	}
	got = Migrate(legacyState("v3", 0, nil))
	if got.Phase != New {
		t.Errorf("Phase = %s, want New", got.Phase)
	}
}

func TestMigratePreservesHistory(t *testing.T) {
	history := historyOf(Good, Again, Good)
	got := Migrate(legacyState("v1", 5, history))
	if len(got.ReviewHistory) != 3 {
		t.Errorf("history length = %d, want 3 (migration clears no history)", len(got.ReviewHistory))
	}
}

func TestMigrateAllSkipsOrphans(t *testing.T) {
	vocab := []VocabularyItem{
		{ID: "kept", CreatedAt: t0},
		{ID: "current", CreatedAt: t0},
	}
	states := []ReviewState{
		legacyState("kept", 5, historyOf(Good)),
		legacyState("orphan", 5, historyOf(Good)),
		ratedState(10, 5, t0.AddDate(0, 0, -10)),
	}
	states[2].VocabularyID = "current"

	got := MigrateAll(states, vocab)
	if len(got) != 2 {
		t.Fatalf("migrated = %d states, want 2", len(got))
	}
	for _, s := range got {
		if s.Schema != SchemaCurrent {
			t.Errorf("%s not migrated", s.VocabularyID)
		}
		if s.VocabularyID == "orphan" {
			t.Error("orphan record survived migration")
		}
	}
}

func TestMigratedStateSchedulable(t *testing.T) {
	// End to end: a legacy record passes migration and can be rated.
	s := mustScheduler(t, noJitterCfg())
	legacy := legacyState("v1", 12, historyOf(Good, Good))
	lr := t0.AddDate(0, 0, -12)
	legacy.LastReviewDate = &lr

	migrated := Migrate(legacy)
	c, err := s.Schedule(&migrated, Good, t0)
	if err != nil {
		t.Fatalf("Schedule after migrate: %v", err)
	}
	if c.Stability <= migrated.Stability {
		t.Errorf("Stability = %f, want growth over %f", c.Stability, migrated.Stability)
	}
}

func TestResetRewindsButKeepsHistory(t *testing.T) {
	state := ratedState(25, 7.5, t0.AddDate(0, 0, -25))
	state.Lapses = 4

	got := Reset(state, t0)
	if got.Stability != 0 {
		t.Errorf("Stability = %f, want 0", got.Stability)
	}
	assertFloat(t, "Difficulty", got.Difficulty, NeutralDifficulty)
	if got.Lapses != 0 || got.CurrentIntervalDays != 0 {
		t.Errorf("Lapses = %d, interval = %d, want 0/0", got.Lapses, got.CurrentIntervalDays)
	}
	if !got.NextReviewDate.Equal(t0) {
		t.Errorf("NextReviewDate = %v, want now", got.NextReviewDate)
	}
	if len(got.ReviewHistory) != len(state.ReviewHistory) {
		t.Error("reset cleared history")
	}
	if got.Phase != New {
		t.Errorf("Phase = %s, want New", got.Phase)
	}
}
