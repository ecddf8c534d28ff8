package recall

import (
	"errors"
	"testing"
)

func TestDefaultWeightsValid(t *testing.T) {
	if err := DefaultWeights.Validate(); err != nil {
		t.Fatalf("DefaultWeights.Validate() = %v", err)
	}
}

func TestValidateRejectsOutOfBounds(t *testing.T) {
	mutations := []func(*Weights){
		func(w *Weights) { w.HardPenalty = 1.5 },
		func(w *Weights) { w.EasyBonus = 0.9 },
		func(w *Weights) { w.MeanReversion = 0.9 },
		func(w *Weights) { w.InitialStability[0] = -1 },
		func(w *Weights) { w.InitialDifficulty[3] = 11 },
		func(w *Weights) { w.ForgetStabilityGain = 0 },
	}
	for i, mutate := range mutations {
		w := DefaultWeights
		mutate(&w)
		if err := w.Validate(); !errors.Is(err, ErrInvalidWeights) {
			t.Errorf("mutation %d: Validate() = %v, want ErrInvalidWeights", i, err)
		}
	}
}

func TestInitialTablesOrdered(t *testing.T) {
	// Sanity on the shipped calibration: better ratings seed higher
	// stability and lower difficulty.
	w := DefaultWeights
	for i := 1; i < 4; i++ {
		if w.InitialStability[i] <= w.InitialStability[i-1] {
			t.Errorf("InitialStability[%d] = %f not increasing", i, w.InitialStability[i])
		}
		if w.InitialDifficulty[i] >= w.InitialDifficulty[i-1] {
			t.Errorf("InitialDifficulty[%d] = %f not decreasing", i, w.InitialDifficulty[i])
		}
	}
}
