package models

// Condition identifies which learning mechanism drove a run
type Condition string

const (
	// ConditionExplicit is the symbolic, rule-based learning condition
	ConditionExplicit Condition = "explicit"
	// ConditionImplicit is the reinforcement-driven learning condition
	ConditionImplicit Condition = "implicit"
)

// Valid reports whether the condition names a known learner
func (c Condition) Valid() bool {
	return c == ConditionExplicit || c == ConditionImplicit
}

// TrialRecord captures one completed stimulus-response-feedback cycle.
// Records are immutable after creation and appended to an ordered log.
type TrialRecord struct {
	RunID         string   `json:"run_id,omitempty" db:"run_id"`
	Index         int      `json:"index" db:"trial_index"`
	Stimulus      Stimulus `json:"stimulus" db:"stimulus"`
	ChosenAction  Action   `json:"chosen_action" db:"chosen_action"`
	CorrectAction Action   `json:"correct_action" db:"correct_action"`
	IsCorrect     bool     `json:"is_correct" db:"is_correct"`
	Reward        float64  `json:"reward" db:"reward"`
	LearnerID     string   `json:"learner_id" db:"learner_id"`
}

// AccuracyPoint is one entry of a learning curve: accuracy after a given trial
type AccuracyPoint struct {
	RunID      string  `json:"run_id,omitempty" db:"run_id"`
	TrialIndex int     `json:"trial_index" db:"trial_index"`
	Accuracy   float64 `json:"accuracy" db:"accuracy"`
}
