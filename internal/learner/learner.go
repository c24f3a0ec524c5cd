// Package learner implements the two learning mechanisms of the simulation:
// an explicit learner that decides from symbolic rules and acquires new ones
// from its failures, and an implicit learner that estimates action values
// from reward with no symbolic knowledge at all.
//
// Both variants are driven through the same Learner interface by the trial
// driver, which is what makes the two conditions comparable.
package learner

import (
	"github.com/AbdouB/skillsim/internal/models"
)

// Outcome is the feedback a learner receives after a trial completes
type Outcome struct {
	TrialIndex    int
	Stimulus      models.Stimulus
	ChosenAction  models.Action
	CorrectAction models.Action
	IsCorrect     bool
	Reward        float64
}

// Learner is the capability the trial driver depends on. Decide performs no
// learning; all updates happen in Observe.
type Learner interface {
	// ID identifies the learner in trial records
	ID() string

	// Decide selects an action for the stimulus
	Decide(stimulus models.Stimulus) models.Action

	// Observe delivers the outcome of the trial the learner just decided
	Observe(outcome Outcome)
}
