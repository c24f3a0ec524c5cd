package sim

import (
	"github.com/AbdouB/skillsim/internal/models"
)

// Tracker aggregates per-trial correctness into an accuracy series, one
// point per completed trial. With window 0 the curve is cumulative
// (correct so far / trials so far); with window w it is the mean of the
// last w outcomes. Past points are never mutated.
type Tracker struct {
	window   int
	outcomes []bool
	correct  int
	series   []*models.AccuracyPoint
}

// NewTracker creates a tracker; window 0 means cumulative accuracy
func NewTracker(window int) *Tracker {
	return &Tracker{window: window}
}

// Record appends the outcome of a completed trial and the resulting
// accuracy point.
func (t *Tracker) Record(trialIndex int, correct bool) {
	t.outcomes = append(t.outcomes, correct)
	if correct {
		t.correct++
	}

	var accuracy float64
	if t.window > 0 {
		start := len(t.outcomes) - t.window
		if start < 0 {
			start = 0
		}
		hits := 0
		for _, ok := range t.outcomes[start:] {
			if ok {
				hits++
			}
		}
		accuracy = float64(hits) / float64(len(t.outcomes)-start)
	} else {
		accuracy = float64(t.correct) / float64(len(t.outcomes))
	}

	t.series = append(t.series, &models.AccuracyPoint{
		TrialIndex: trialIndex,
		Accuracy:   accuracy,
	})
}

// Series returns the accuracy series recorded so far
func (t *Tracker) Series() []*models.AccuracyPoint {
	return t.series
}

// FinalAccuracy returns the cumulative accuracy over all recorded trials,
// independent of the windowing used for the curve.
func (t *Tracker) FinalAccuracy() float64 {
	if len(t.outcomes) == 0 {
		return 0
	}
	return float64(t.correct) / float64(len(t.outcomes))
}
