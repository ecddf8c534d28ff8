package recall

import "time"

// VocabularyItem is a vocabulary card owned by the content layer. The
// engine only reads it; creation and deletion happen out of scope.
type VocabularyItem struct {
	ID        string    `json:"id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	ChatRefs  []string  `json:"chat_refs"` // chat messages the item appeared in
	CreatedAt time.Time `json:"created_at"`
}

// Schema tags a ReviewState as either a legacy record (persisted before
// the stability/difficulty model existed) or a current one. Records are
// resolved to SchemaCurrent exactly once, by Migrate at the data-access
// boundary; engine functions never re-check it downstream.
type Schema int

const (
	SchemaLegacy Schema = iota + 1
	SchemaCurrent
)

// ReviewHistoryEntry records a single rating event. Entries are write-once
// and never mutated after append.
type ReviewHistoryEntry struct {
	Date             time.Time `json:"date"`
	Rating           Rating    `json:"rating"`
	IntervalBefore   int       `json:"interval_before"`
	IntervalAfter    int       `json:"interval_after"`
	StabilityBefore  float64   `json:"stability_before"`
	StabilityAfter   float64   `json:"stability_after"`
	DifficultyBefore float64   `json:"difficulty_before"`
	DifficultyAfter  float64   `json:"difficulty_after"`
	Retrievability   float64   `json:"retrievability"` // at the moment of rating
}

// ReviewState is the scheduling state of one vocabulary item. Values are
// treated as immutable snapshots: the scheduler returns a new state per
// rating rather than mutating in place.
type ReviewState struct {
	VocabularyID string `json:"vocabulary_id"`
	OwnerChatID  string `json:"owner_chat_id"` // back-reference, not ownership
	Schema       Schema `json:"-"`
	Phase        Phase  `json:"phase"`

	Stability           float64 `json:"stability"`  // 0 until first rated
	Difficulty          float64 `json:"difficulty"` // [1,10], 5 before first rating
	CurrentIntervalDays int     `json:"current_interval_days"`

	NextReviewDate time.Time  `json:"next_review_date"`
	LastReviewDate *time.Time `json:"last_review_date"` // nil before first review

	ReviewHistory []ReviewHistoryEntry `json:"review_history"`
	Lapses        int                  `json:"lapses"`

	IsStarred     bool   `json:"is_starred,omitempty"`
	CardDirection string `json:"card_direction,omitempty"` // presentation hint only
}

// clone returns a deep copy of the state. The history slice is copied so
// appends on the copy never alias the original.
func (s ReviewState) clone() ReviewState {
	out := s
	if s.LastReviewDate != nil {
		v := *s.LastReviewDate
		out.LastReviewDate = &v
	}
	if s.ReviewHistory != nil {
		out.ReviewHistory = make([]ReviewHistoryEntry, len(s.ReviewHistory))
		copy(out.ReviewHistory, s.ReviewHistory)
	}
	return out
}

// appendHistory returns a new history slice with entry appended, leaving
// the receiver's slice untouched.
func appendHistory(history []ReviewHistoryEntry, entry ReviewHistoryEntry) []ReviewHistoryEntry {
	out := make([]ReviewHistoryEntry, len(history), len(history)+1)
	copy(out, history)
	return append(out, entry)
}

// Reset returns the state wound back to an unrated baseline: stability 0,
// neutral difficulty, no lapses, due immediately. The review history is
// preserved.
func Reset(state ReviewState, now time.Time) ReviewState {
	s := state.clone()
	s.Stability = 0
	s.Difficulty = NeutralDifficulty
	s.Lapses = 0
	s.CurrentIntervalDays = 0
	s.NextReviewDate = now
	s.Phase = New
	return s
}
