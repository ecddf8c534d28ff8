package recall

import (
	"math"
	"math/rand"
)

// jitterFraction and jitterCapDays bound the interval jitter: at most ±5%
// of the interval, never more than ±2 days.
const (
	jitterFraction = 0.05
	jitterCapDays  = 2.0
)

// applyJitter randomizes an interval to keep cards rated together from
// converging on identical future dates. Intervals of 2 days or less are
// returned unchanged. The random source is injected so schedules are
// reproducible under a seeded generator.
func applyJitter(intervalDays int, rng *rand.Rand) int {
	if intervalDays <= 2 {
		return intervalDays
	}
	delta := math.Min(jitterFraction*float64(intervalDays), jitterCapDays)
	offset := int(math.Round((rng.Float64()*2 - 1) * delta))
	jittered := intervalDays + offset
	if jittered < 1 {
		jittered = 1
	}
	return jittered
}
