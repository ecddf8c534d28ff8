package recall

import "time"

// ForecastDay is the projected review count for one civil day.
type ForecastDay struct {
	Date time.Time `json:"date"`
	Due  int       `json:"due"`
}

// Forecast summarizes the upcoming review load of a pool of states.
type Forecast struct {
	// Days holds one entry per civil day of the horizon, starting at the
	// as-of day. Overdue cards count toward the first day.
	Days []ForecastDay `json:"days"`
	// MeanRetrievability averages recall probability over all rated
	// states at the as-of instant. 0 when nothing has been rated.
	MeanRetrievability float64 `json:"mean_retrievability"`
	// Rated is the number of states with at least one review.
	Rated int `json:"rated"`
}

// ForecastLoad projects the due-card counts for the next horizonDays civil
// days and the current mean retrievability of the rated pool. It reads the
// states without modifying anything, so hosts can render workload stats
// without touching the schedule.
func ForecastLoad(states []ReviewState, settings Settings, asOf time.Time, horizonDays int) Forecast {
	if horizonDays < 1 {
		horizonDays = 1
	}
	loc := settings.location()
	start := asOf.In(loc)
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	startKey := civilDate(startDay, loc)

	f := Forecast{Days: make([]ForecastDay, horizonDays)}
	for i := range f.Days {
		f.Days[i].Date = startDay.AddDate(0, 0, i)
	}
	keyToIndex := make(map[int]int, horizonDays)
	for i, d := range f.Days {
		keyToIndex[civilDate(d.Date, loc)] = i
	}

	var retrievabilitySum float64
	for _, s := range states {
		k := civilDate(s.NextReviewDate, loc)
		if k <= startKey {
			f.Days[0].Due++
		} else if i, ok := keyToIndex[k]; ok {
			f.Days[i].Due++
		}

		if len(s.ReviewHistory) > 0 && s.LastReviewDate != nil {
			elapsed := asOf.Sub(*s.LastReviewDate).Hours() / 24.0
			retrievabilitySum += Retrievability(s.Stability, elapsed)
			f.Rated++
		}
	}
	if f.Rated > 0 {
		f.MeanRetrievability = retrievabilitySum / float64(f.Rated)
	}
	return f
}
