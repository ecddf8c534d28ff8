package recall

import "time"

// Retention bounds enforced at settings ingestion. Values outside the
// range are clamped, not rejected.
const (
	MinRetention = 0.70
	MaxRetention = 0.97
)

// Settings holds the per-user scheduling configuration.
//
// Construct with NewSettings (or DefaultSettings) so that DesiredRetention
// is clamped at ingestion; the clamped value is observable by reading the
// field back.
type Settings struct {
	DesiredRetention float64 `json:"desired_retention"`
	MaxReviewsPerDay int     `json:"max_reviews_per_day"`
	NewCardsPerDay   int     `json:"new_cards_per_day"`

	// Location is the fixed civil timezone used for every day-boundary
	// comparison (due tests, load balancing). nil means UTC. Day
	// boundaries must not depend on the host machine's local zone.
	Location *time.Location `json:"-"`
}

// NewSettings returns Settings with desiredRetention clamped to
// [MinRetention, MaxRetention].
func NewSettings(desiredRetention float64, maxReviewsPerDay, newCardsPerDay int, loc *time.Location) Settings {
	return Settings{
		DesiredRetention: clampRetention(desiredRetention),
		MaxReviewsPerDay: maxReviewsPerDay,
		NewCardsPerDay:   newCardsPerDay,
		Location:         loc,
	}
}

// DefaultSettings returns the stock configuration: 90% retention, 50
// reviews and 20 new cards per day, UTC day boundaries.
func DefaultSettings() Settings {
	return NewSettings(0.9, 50, 20, time.UTC)
}

// location returns the configured civil timezone, defaulting to UTC.
func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func clampRetention(r float64) float64 {
	if r < MinRetention {
		return MinRetention
	}
	if r > MaxRetention {
		return MaxRetention
	}
	return r
}
