package recall

import (
	"fmt"
	"sort"
	"time"
)

// SortMode selects the ordering of a due queue.
type SortMode int

const (
	// SortByFragility surfaces the most at-risk cards first (ascending
	// stability). Used for standard due-review sessions.
	SortByFragility SortMode = iota + 1
	// SortByRecency surfaces the most recently touched cards first
	// (descending last review date). Used to interleave freshly-learned
	// material into reinforcement sessions.
	SortByRecency
)

var sortModeNames = [...]string{SortByFragility: "fragility", SortByRecency: "recency"}

// String returns "fragility" or "recency".
func (m SortMode) String() string {
	if m >= SortByFragility && m <= SortByRecency {
		return sortModeNames[m]
	}
	return fmt.Sprintf("SortMode(%d)", int(m))
}

// ParseSortMode converts a mode name ("fragility" or "recency") to a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch s {
	case "fragility":
		return SortByFragility, nil
	case "recency":
		return SortByRecency, nil
	default:
		return 0, fmt.Errorf("recall: unknown sort mode %q", s)
	}
}

// BuildDueQueue selects the cards due on or before today, orders them by
// the given mode, and caps the result at settings.MaxReviewsPerDay. The
// excluded remainder is simply omitted, not rescheduled.
//
// Dueness compares civil dates in the settings timezone, so the day
// boundary does not shift with the time of day or the host's local zone.
// When vocab is non-nil, states referencing a missing vocabulary item are
// skipped so one orphaned record never blocks queue construction. Both
// orderings break ties by vocabulary ID, so identical input yields an
// identical queue.
func BuildDueQueue(states []ReviewState, vocab []VocabularyItem, settings Settings, today time.Time, mode SortMode) []ReviewState {
	loc := settings.location()
	todayKey := civilDate(today, loc)

	var known map[string]struct{}
	if vocab != nil {
		known = indexVocabulary(vocab)
	}

	due := make([]ReviewState, 0, len(states))
	for _, s := range states {
		if known != nil {
			if _, ok := known[s.VocabularyID]; !ok {
				continue
			}
		}
		if civilDate(s.NextReviewDate, loc) <= todayKey {
			due = append(due, s.clone())
		}
	}

	switch mode {
	case SortByRecency:
		sort.Slice(due, func(i, j int) bool {
			ti, tj := lastReviewOrZero(due[i]), lastReviewOrZero(due[j])
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
			return due[i].VocabularyID < due[j].VocabularyID
		})
	default:
		sort.Slice(due, func(i, j int) bool {
			if due[i].Stability != due[j].Stability {
				return due[i].Stability < due[j].Stability
			}
			return due[i].VocabularyID < due[j].VocabularyID
		})
	}

	if settings.MaxReviewsPerDay > 0 && len(due) > settings.MaxReviewsPerDay {
		due = due[:settings.MaxReviewsPerDay]
	}
	return due
}

func lastReviewOrZero(s ReviewState) time.Time {
	if s.LastReviewDate == nil {
		return time.Time{}
	}
	return *s.LastReviewDate
}

// civilDate collapses a timestamp to a comparable yyyymmdd key in loc.
func civilDate(t time.Time, loc *time.Location) int {
	y, m, d := t.In(loc).Date()
	return y*10000 + int(m)*100 + d
}
