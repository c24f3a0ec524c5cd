// Package task defines the typing task: the stimulus set, the candidate
// actions, the ground-truth mapping between them, and the curricula that
// generate stimulus sequences for a run.
package task

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/AbdouB/skillsim/internal/models"
)

// Task is the typing task: each letter stimulus has exactly one correct
// keypress action. Immutable after construction.
type Task struct {
	stimuli []models.Stimulus
	actions []models.Action
	truth   map[models.Stimulus]models.Action
}

// New builds a typing task from a letter set, e.g. "ABC" yields stimuli
// letter-A..letter-C and actions press_a..press_c.
func New(letters string) (*Task, error) {
	letters = strings.TrimSpace(letters)
	if letters == "" {
		return nil, fmt.Errorf("letter set is empty")
	}
	t := &Task{
		truth: make(map[models.Stimulus]models.Action),
	}
	for _, r := range letters {
		if !unicode.IsLetter(r) {
			return nil, fmt.Errorf("invalid letter %q in letter set", r)
		}
		s := models.Stimulus("letter-" + string(unicode.ToUpper(r)))
		a := models.Action("press_" + string(unicode.ToLower(r)))
		if _, ok := t.truth[s]; ok {
			return nil, fmt.Errorf("duplicate letter %q in letter set", r)
		}
		t.stimuli = append(t.stimuli, s)
		t.actions = append(t.actions, a)
		t.truth[s] = a
	}
	return t, nil
}

// Stimuli returns the task's stimuli in canonical order
func (t *Task) Stimuli() []models.Stimulus {
	return t.stimuli
}

// Actions returns the candidate actions in canonical order. Every learner
// chooses from this set.
func (t *Task) Actions() []models.Action {
	return t.actions
}

// CorrectAction returns the ground-truth action for a stimulus
func (t *Task) CorrectAction(s models.Stimulus) (models.Action, bool) {
	a, ok := t.truth[s]
	return a, ok
}

// BuiltinRules returns the full letter→key rule set for this task, the
// "prior explicit knowledge" condition of the original experiment.
func (t *Task) BuiltinRules() []models.RuleDef {
	defs := make([]models.RuleDef, 0, len(t.stimuli))
	for i, s := range t.stimuli {
		defs = append(defs, models.RuleDef{
			Stimulus: string(s),
			Action:   string(t.actions[i]),
		})
	}
	return defs
}
