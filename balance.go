package recall

import (
	"sort"
	"time"
)

// BalanceLoad redistributes review dates so that no civil day carries more
// than maxPerDay due cards. Days are processed in ascending order; when a
// day overflows, the least fragile excess (highest stability first) is
// deferred to the next day, and any overflow there carries forward until
// absorbed. Low-stability cards are never deferred ahead of more stable
// ones.
//
// Only NextReviewDate is rewritten; stability, difficulty, and history are
// untouched. Day boundaries are civil dates in loc (nil means UTC). A
// non-positive maxPerDay disables redistribution.
func BalanceLoad(states []ReviewState, maxPerDay int, loc *time.Location) []ReviewState {
	out := make([]ReviewState, 0, len(states))
	if maxPerDay <= 0 {
		for _, s := range states {
			out = append(out, s.clone())
		}
		return out
	}
	if loc == nil {
		loc = time.UTC
	}

	buckets := make(map[int][]ReviewState)
	for _, s := range states {
		k := civilDate(s.NextReviewDate, loc)
		buckets[k] = append(buckets[k], s.clone())
	}
	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for i := 0; i < len(keys); i++ {
		k := keys[i]
		day := buckets[k]
		sort.Slice(day, func(a, b int) bool {
			if day[a].Stability != day[b].Stability {
				return day[a].Stability < day[b].Stability
			}
			return day[a].VocabularyID < day[b].VocabularyID
		})
		if len(day) <= maxPerDay {
			out = append(out, day...)
			continue
		}

		out = append(out, day[:maxPerDay]...)
		overflow := day[maxPerDay:]

		nextKey := 0
		for j := range overflow {
			overflow[j].NextReviewDate = overflow[j].NextReviewDate.In(loc).AddDate(0, 0, 1)
			nextKey = civilDate(overflow[j].NextReviewDate, loc)
		}
		if _, ok := buckets[nextKey]; !ok {
			// The next civil day sorts immediately after k; splice it in.
			keys = append(keys, 0)
			copy(keys[i+2:], keys[i+1:])
			keys[i+1] = nextKey
		}
		buckets[nextKey] = append(buckets[nextKey], overflow...)
	}

	return out
}
