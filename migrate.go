package recall

import "math"

// Migrate normalizes a record persisted before the stability/difficulty
// model existed. Current records pass through unchanged, so the function
// is idempotent and safe to apply whenever a record's origin is uncertain.
//
// Estimates for legacy records:
//   - stability from max(1, currentIntervalDays)
//   - difficulty from the aggregate historical success rate, linear from
//     1 (always recalled) through 5.5 (half) to 10 (never recalled)
//   - lapses from the count of recorded failures
func Migrate(state ReviewState) ReviewState {
	if state.Schema == SchemaCurrent {
		return state
	}
	s := state.clone()
	s.Stability = math.Max(1, float64(s.CurrentIntervalDays))
	s.Difficulty = difficultyFromHistory(s.ReviewHistory)
	s.Lapses = countLapses(s.ReviewHistory)
	s.Phase = phaseFromHistory(s.ReviewHistory)
	s.Schema = SchemaCurrent
	return s
}

// MigrateAll migrates a batch of records at the data-access boundary.
// Records whose vocabulary item no longer exists (content deleted
// out-of-band) are skipped rather than failing the batch.
func MigrateAll(states []ReviewState, vocab []VocabularyItem) []ReviewState {
	known := indexVocabulary(vocab)
	out := make([]ReviewState, 0, len(states))
	for _, s := range states {
		if _, ok := known[s.VocabularyID]; !ok {
			continue
		}
		out = append(out, Migrate(s))
	}
	return out
}

// indexVocabulary builds an ID set for integrity checks.
func indexVocabulary(items []VocabularyItem) map[string]struct{} {
	idx := make(map[string]struct{}, len(items))
	for _, it := range items {
		idx[it.ID] = struct{}{}
	}
	return idx
}

// difficultyFromHistory maps the historical success rate onto [1, 10]:
// 100% → 1, 50% → 5.5, 0% → 10. An empty history yields the neutral
// default.
func difficultyFromHistory(history []ReviewHistoryEntry) float64 {
	if len(history) == 0 {
		return NeutralDifficulty
	}
	successes := 0
	for _, e := range history {
		if e.Rating.IsSuccess() {
			successes++
		}
	}
	rate := float64(successes) / float64(len(history))
	return clampDifficulty(10 - 9*rate)
}

func countLapses(history []ReviewHistoryEntry) int {
	n := 0
	for _, e := range history {
		if e.Rating == Again {
			n++
		}
	}
	return n
}

func phaseFromHistory(history []ReviewHistoryEntry) Phase {
	if len(history) == 0 {
		return New
	}
	if history[len(history)-1].Rating == Again {
		return Relapsed
	}
	return Active
}
