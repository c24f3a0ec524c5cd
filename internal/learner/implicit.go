package learner

import (
	"math/rand"

	"github.com/AbdouB/skillsim/internal/models"
)

// Implicit learns stimulus→action values from reward alone. It holds no
// symbolic rules and never touches the knowledge store: all of its knowledge
// lives in the value table, built lazily as (stimulus, action) pairs are
// first encountered. Entries persist for the simulation's lifetime.
type Implicit struct {
	alpha   float64
	actions []models.Action
	values  map[valueKey]float64
	rng     *rand.Rand
}

type valueKey struct {
	stimulus models.Stimulus
	action   models.Action
}

// NewImplicit creates an implicit learner with learning rate alpha in (0,1].
// The RNG breaks ties among equally valued actions; with a negative penalty
// for misses this is what lets trial-and-error escape a wrong first guess.
func NewImplicit(alpha float64, actions []models.Action, rng *rand.Rand) *Implicit {
	return &Implicit{
		alpha:   alpha,
		actions: actions,
		values:  make(map[valueKey]float64),
		rng:     rng,
	}
}

// ID identifies the implicit learner in trial records
func (l *Implicit) ID() string {
	return string(models.ConditionImplicit)
}

// Decide selects the action with the highest value estimate for the
// stimulus. Unseen pairs count as 0. Ties are broken uniformly at random
// from the learner's seeded RNG.
func (l *Implicit) Decide(stimulus models.Stimulus) models.Action {
	best := []models.Action{l.actions[0]}
	bestValue := l.Value(stimulus, l.actions[0])
	for _, a := range l.actions[1:] {
		v := l.Value(stimulus, a)
		switch {
		case v > bestValue:
			bestValue = v
			best = []models.Action{a}
		case v == bestValue:
			best = append(best, a)
		}
	}
	if len(best) == 1 {
		return best[0]
	}
	return best[l.rng.Intn(len(best))]
}

// Observe updates the chosen pair's estimate toward the reward:
// value ← value + α × (reward − value).
func (l *Implicit) Observe(outcome Outcome) {
	key := valueKey{stimulus: outcome.Stimulus, action: outcome.ChosenAction}
	v := l.values[key]
	l.values[key] = v + l.alpha*(outcome.Reward-v)
}

// Value returns the current estimate for a (stimulus, action) pair,
// 0 if the pair has never been updated.
func (l *Implicit) Value(stimulus models.Stimulus, action models.Action) float64 {
	return l.values[valueKey{stimulus: stimulus, action: action}]
}
