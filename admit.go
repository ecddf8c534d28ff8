package recall

import (
	"sort"
	"time"
)

// AdmitNewCards promotes unseen vocabulary into the active scheduling
// pool. Candidates are pool items with no existing ReviewState, admitted
// oldest-first (FIFO over creation time, ties broken by ID), at most
// settings.NewCardsPerDay per invocation.
//
// Each new state starts with zero stability, neutral difficulty, and
// nextReviewDate == now, so the first rating happens in the same session
// that introduces the card.
func AdmitNewCards(pool []VocabularyItem, existing []ReviewState, settings Settings, now time.Time) []ReviewState {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s.VocabularyID] = struct{}{}
	}

	candidates := make([]VocabularyItem, 0, len(pool))
	for _, item := range pool {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		candidates = append(candidates, item)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		}
		return candidates[i].ID < candidates[j].ID
	})

	limit := settings.NewCardsPerDay
	if limit > len(candidates) {
		limit = len(candidates)
	}
	if limit < 0 {
		limit = 0
	}

	admitted := make([]ReviewState, 0, limit)
	for _, item := range candidates[:limit] {
		ownerChat := ""
		if len(item.ChatRefs) > 0 {
			ownerChat = item.ChatRefs[0]
		}
		admitted = append(admitted, ReviewState{
			VocabularyID:   item.ID,
			OwnerChatID:    ownerChat,
			Schema:         SchemaCurrent,
			Phase:          New,
			Stability:      0,
			Difficulty:     NeutralDifficulty,
			NextReviewDate: now,
		})
	}
	return admitted
}
