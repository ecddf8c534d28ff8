package recall

import "fmt"

// Weights holds the fixed calibration constants of the memory model:
// per-rating initial tables plus the coefficients of the stability and
// difficulty update formulas. They are not trained from review logs.
type Weights struct {
	// InitialStability and InitialDifficulty are indexed by Rating - 1
	// (Again, Hard, Good, Easy). They seed the state on the first rating.
	InitialStability  [4]float64
	InitialDifficulty [4]float64

	// DifficultyStep scales the per-rating difficulty delta -step*(G-3).
	DifficultyStep float64
	// MeanReversion blends difficulty back toward NeutralDifficulty on
	// every update, preventing runaway drift under repeated identical
	// ratings.
	MeanReversion float64

	// Success (recall) stability growth coefficients.
	RecallScale        float64 // exponent of the leading e^w factor
	StabilityDecay     float64 // S^-w term, higher stability grows slower
	RetrievabilityGain float64 // e^((1-R)*w) term, surprise amplifier
	HardPenalty        float64 // multiplicative, < 1
	EasyBonus          float64 // multiplicative, > 1

	// Failure (forget) stability recovery coefficients.
	ForgetScale              float64
	ForgetDifficultyGain     float64 // D^w term
	ForgetStabilityGain      float64 // (S+1)^w - 1 term
	ForgetRetrievabilityGain float64 // e^((1-R)*w) term
}

// NeutralDifficulty is the difficulty assigned before any rating and the
// target of mean reversion.
const NeutralDifficulty = 5.0

// DefaultWeights is the shipped calibration.
var DefaultWeights = Weights{
	InitialStability:  [4]float64{0.55, 1.4, 3.2, 7.8},
	InitialDifficulty: [4]float64{7.0, 6.0, 5.0, 4.0},

	DifficultyStep: 0.9,
	MeanReversion:  0.06,

	RecallScale:        1.65,
	StabilityDecay:     0.14,
	RetrievabilityGain: 0.94,
	HardPenalty:        0.28,
	EasyBonus:          2.4,

	ForgetScale:              1.05,
	ForgetDifficultyGain:     0.12,
	ForgetStabilityGain:      0.26,
	ForgetRetrievabilityGain: 2.1,
}

type weightBound struct {
	name   string
	val    float64
	lo, hi float64
}

// Validate checks that every weight is within its allowed range.
func (w Weights) Validate() error {
	bounds := []weightBound{
		{"DifficultyStep", w.DifficultyStep, 0.01, 4.0},
		{"MeanReversion", w.MeanReversion, 0.0, 0.75},
		{"RecallScale", w.RecallScale, 0.0, 4.5},
		{"StabilityDecay", w.StabilityDecay, 0.0, 0.8},
		{"RetrievabilityGain", w.RetrievabilityGain, 0.01, 3.5},
		{"HardPenalty", w.HardPenalty, 0.01, 1.0},
		{"EasyBonus", w.EasyBonus, 1.0, 6.0},
		{"ForgetScale", w.ForgetScale, 0.01, 5.0},
		{"ForgetDifficultyGain", w.ForgetDifficultyGain, 0.0, 1.0},
		{"ForgetStabilityGain", w.ForgetStabilityGain, 0.01, 0.9},
		{"ForgetRetrievabilityGain", w.ForgetRetrievabilityGain, 0.0, 4.0},
	}
	for i := range w.InitialStability {
		bounds = append(bounds, weightBound{
			fmt.Sprintf("InitialStability[%s]", Rating(i+1)), w.InitialStability[i], 0.001, 100.0,
		})
	}
	for i := range w.InitialDifficulty {
		bounds = append(bounds, weightBound{
			fmt.Sprintf("InitialDifficulty[%s]", Rating(i+1)), w.InitialDifficulty[i], 1.0, 10.0,
		})
	}
	for _, b := range bounds {
		if b.val < b.lo || b.val > b.hi {
			return fmt.Errorf("%w: %s = %f, bounds [%f, %f]",
				ErrInvalidWeights, b.name, b.val, b.lo, b.hi)
		}
	}
	return nil
}

// isZero reports whether w is the zero value, so constructors can
// substitute DefaultWeights.
func (w Weights) isZero() bool {
	return w == Weights{}
}
