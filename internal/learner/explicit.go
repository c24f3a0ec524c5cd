package learner

import (
	"errors"

	"github.com/AbdouB/skillsim/internal/knowledge"
	"github.com/AbdouB/skillsim/internal/models"
)

// ActionUnknown is the explicit learner's fallback when no rule matches a
// stimulus: it passes rather than guess. The pass is always scored incorrect,
// which is the source of early-trial errors before acquisition.
const ActionUnknown models.Action = "pass"

// Explicit decides from symbolic rules in a knowledge store. When no rule
// matches a stimulus it emits ActionUnknown, and after every miss it
// synthesizes a rule mapping the missed stimulus to the correct action, so
// repeats of that stimulus are answered by deterministic recall.
type Explicit struct {
	store *knowledge.Store
}

// NewExplicit creates an explicit learner over a knowledge store. The store
// may be pre-populated with prior knowledge or empty for pure acquisition.
func NewExplicit(store *knowledge.Store) *Explicit {
	return &Explicit{store: store}
}

// ID identifies the explicit learner in trial records
func (l *Explicit) ID() string {
	return string(models.ConditionExplicit)
}

// Decide emits the winning rule's action, or ActionUnknown when no rule matches
func (l *Explicit) Decide(stimulus models.Stimulus) models.Action {
	if rule := l.store.Best(stimulus); rule != nil {
		return rule.Action
	}
	return ActionUnknown
}

// Observe acquires a rule for the missed stimulus on an incorrect trial.
// If a wrong rule drove the decision its confidence is halved first, so the
// acquired rule (confidence 1.0) wins every later tie-break. A duplicate
// acquisition is a no-op.
func (l *Explicit) Observe(outcome Outcome) {
	if outcome.IsCorrect {
		return
	}

	if rule := l.store.Best(outcome.Stimulus); rule != nil && rule.Action == outcome.ChosenAction {
		rule.Confidence /= 2
	}

	acquired := models.NewAcquiredRule(outcome.Stimulus, outcome.CorrectAction, outcome.TrialIndex)
	if err := l.store.AddRule(acquired); err != nil {
		var dup *knowledge.DuplicateRuleError
		if errors.As(err, &dup) {
			return
		}
	}
}

// Store exposes the knowledge store for end-of-run reporting and persistence
func (l *Explicit) Store() *knowledge.Store {
	return l.store
}
