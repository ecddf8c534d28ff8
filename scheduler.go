package recall

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// SchedulerConfig configures a Scheduler.
// Zero values produce sensible defaults; see field comments.
type SchedulerConfig struct {
	Settings      Settings   // zero → DefaultSettings()
	Weights       Weights    // zero → DefaultWeights
	Rand          *rand.Rand // nil → time-seeded source; inject for reproducible jitter
	DisableJitter bool       // zero false → jitter enabled
}

// Scheduler computes the next review state for a card given a rating.
//
// A Scheduler is an explicit value object constructed once per settings
// and passed by the caller; there is no hidden cache keyed by retention. It is
// pure apart from the injected random source used for interval jitter.
type Scheduler struct {
	model         model
	settings      Settings
	disableJitter bool
	rng           *rand.Rand
}

// NewScheduler creates a Scheduler from the given config.
// Zero-value fields are filled with defaults; invalid weights return an error.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	w := cfg.Weights
	if w.isZero() {
		w = DefaultWeights
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	settings := cfg.Settings
	if settings == (Settings{}) {
		settings = DefaultSettings()
	} else {
		// Re-clamp in case the caller built Settings by hand.
		settings.DesiredRetention = clampRetention(settings.DesiredRetention)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Scheduler{
		model:         model{w: w},
		settings:      settings,
		disableJitter: cfg.DisableJitter,
		rng:           rng,
	}, nil
}

// Settings returns the effective settings, with the retention clamp applied.
func (s *Scheduler) Settings() Settings {
	return s.settings
}

// Schedule processes one rating of a card at the given time and returns
// the new state. A nil state, a state with an empty review history, or a
// state whose stability is not positive (a Reset card) takes the new-card
// branch: stability and difficulty come from the per-rating calibration
// tables rather than elapsed time.
//
// The input state is never mutated. The only error condition is an
// invalid rating, in which case no state transition occurs.
func (s *Scheduler) Schedule(state *ReviewState, rating Rating, now time.Time) (ReviewState, error) {
	if !rating.IsValid() {
		return ReviewState{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}

	var c ReviewState
	if state != nil {
		c = state.clone()
	}
	c.Schema = SchemaCurrent

	stabilityBefore := c.Stability
	difficultyBefore := c.Difficulty
	intervalBefore := c.CurrentIntervalDays

	var retrievability float64
	if len(c.ReviewHistory) == 0 || c.Stability <= 0 {
		// First rating, or a card wiped by Reset (history kept but
		// stability zeroed): calibration tables, not elapsed time.
		c.Stability = s.model.initStability(rating)
		c.Difficulty = s.model.initDifficulty(rating)
	} else {
		var elapsedDays float64
		if c.LastReviewDate != nil {
			elapsedDays = now.Sub(*c.LastReviewDate).Hours() / 24.0
		}
		retrievability = Retrievability(c.Stability, elapsedDays)
		c.Stability = s.model.nextStability(c.Difficulty, c.Stability, retrievability, rating)
		c.Difficulty = s.model.nextDifficulty(difficultyBefore, rating)
	}

	if rating == Again {
		c.Lapses++
		c.Phase = Relapsed
	} else {
		c.Phase = Active
	}

	interval := s.nextInterval(c.Stability)
	if !s.disableJitter {
		interval = applyJitter(interval, s.rng)
	}

	c.CurrentIntervalDays = interval
	c.NextReviewDate = now.AddDate(0, 0, interval)
	c.LastReviewDate = &now

	c.ReviewHistory = appendHistory(c.ReviewHistory, ReviewHistoryEntry{
		Date:             now,
		Rating:           rating,
		IntervalBefore:   intervalBefore,
		IntervalAfter:    interval,
		StabilityBefore:  stabilityBefore,
		StabilityAfter:   c.Stability,
		DifficultyBefore: difficultyBefore,
		DifficultyAfter:  c.Difficulty,
		Retrievability:   retrievability,
	})

	return c, nil
}

// Preview returns the result of rating the card with each possible rating.
func (s *Scheduler) Preview(state *ReviewState, now time.Time) map[Rating]ReviewState {
	result := make(map[Rating]ReviewState, 4)
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		c, _ := s.Schedule(state, r, now)
		result[r] = c
	}
	return result
}

// Retrievability returns the probability of recall for the state at the
// given time. Returns 0 for a never-reviewed state.
func (s *Scheduler) Retrievability(state ReviewState, now time.Time) float64 {
	if state.LastReviewDate == nil {
		return 0
	}
	elapsed := now.Sub(*state.LastReviewDate).Hours() / 24.0
	return Retrievability(state.Stability, elapsed)
}

// nextInterval converts stability into a whole-day interval at the
// configured retention: round(9 * S * (1/retention - 1)), floored at 1 day.
func (s *Scheduler) nextInterval(stability float64) int {
	ivl := math.Round(9 * stability * (1/s.settings.DesiredRetention - 1))
	if ivl < 1 {
		return 1
	}
	return int(ivl)
}
