package recall

import "math"

// The forgetting curve uses a fixed power-law shape. decayExponent is
// negative; decayFactor is derived so that R(S, S) = 0.9 exactly, which is
// what makes "stability" mean "days until recall probability hits 90%".
const decayExponent = -0.5

var decayFactor = math.Pow(0.9, 1.0/decayExponent) - 1.0 // = 19/81

// Retrievability computes the probability of successful recall after
// elapsedDays, for a card with the given stability.
//
// R(t, S) = (1 + F * t / S) ^ D
//
// stability <= 0 is a defined floor case (a freshly admitted, never-rated
// card) and returns 0. Negative elapsed time is treated as 0, so R(0) = 1.
func Retrievability(stability, elapsedDays float64) float64 {
	if stability <= 0 {
		return 0
	}
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	return math.Pow(1+decayFactor*elapsedDays/stability, decayExponent)
}

// model evaluates the memory update formulas for one Weights calibration.
type model struct {
	w Weights
}

// initStability returns the first-rating stability S0(G) from the
// calibration table.
func (m model) initStability(r Rating) float64 {
	return clampStability(m.w.InitialStability[r-1])
}

// initDifficulty returns the first-rating difficulty D0(G), nudged toward
// NeutralDifficulty by the mean-reversion weight so that a deck built from
// identical first ratings does not pin every card at the table value.
func (m model) initDifficulty(r Rating) float64 {
	d := m.w.InitialDifficulty[r-1]
	d = m.w.MeanReversion*NeutralDifficulty + (1-m.w.MeanReversion)*d
	return clampDifficulty(d)
}

// nextDifficulty computes the updated difficulty after a review.
// delta = -step * (G - 3), damped by remaining headroom, then partially
// reverted toward NeutralDifficulty to avoid ease hell.
func (m model) nextDifficulty(difficulty float64, r Rating) float64 {
	delta := -m.w.DifficultyStep * (float64(r) - 3)
	dPrime := difficulty + (10-difficulty)*delta/9
	dPrime = m.w.MeanReversion*NeutralDifficulty + (1-m.w.MeanReversion)*dPrime
	return clampDifficulty(dPrime)
}

// nextStability dispatches to the recall or forget formula.
func (m model) nextStability(difficulty, stability, retrievability float64, r Rating) float64 {
	if r == Again {
		return m.forgetStability(difficulty, stability, retrievability)
	}
	return m.recallStability(difficulty, stability, retrievability, r)
}

// recallStability computes stability after a successful recall.
//
//	S' = S * (1 + e^a * (11-D) * S^-b * (e^((1-R)*c) - 1) * hardPenalty * easyBonus)
//
// Growth is larger for easier cards, smaller for already-stable cards, and
// larger the more surprising the success (lower R).
func (m model) recallStability(d, s, r float64, rating Rating) float64 {
	hardPenalty := 1.0
	if rating == Hard {
		hardPenalty = m.w.HardPenalty
	}
	easyBonus := 1.0
	if rating == Easy {
		easyBonus = m.w.EasyBonus
	}
	growth := math.Exp(m.w.RecallScale) *
		(11 - d) *
		math.Pow(s, -m.w.StabilityDecay) *
		(math.Exp((1-r)*m.w.RetrievabilityGain) - 1) *
		hardPenalty * easyBonus
	return clampStability(s * (1 + growth))
}

// forgetStability computes the post-lapse stability. It grows with prior
// stability and difficulty and shrinks with retrievability, and is capped
// at the prior stability since forgetting never strengthens memory.
func (m model) forgetStability(d, s, r float64) float64 {
	recovered := m.w.ForgetScale *
		math.Pow(d, m.w.ForgetDifficultyGain) *
		(math.Pow(s+1, m.w.ForgetStabilityGain) - 1) *
		math.Exp((1-r)*m.w.ForgetRetrievabilityGain)
	return clampStability(math.Min(recovered, s))
}

// clampStability clamps stability to a minimum of 0.001.
func clampStability(s float64) float64 {
	return math.Max(s, 0.001)
}

// clampDifficulty clamps difficulty to [1, 10].
func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, 1), 10)
}
