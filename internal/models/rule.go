// Package models defines the core entities of the typing-skill simulation
package models

// Stimulus identifies a typing-task input presented on a trial (e.g. "letter-A").
// Immutable once generated for a trial.
type Stimulus string

// Action is the response a learner emits for a stimulus (e.g. "press_a").
type Action string

// RuleSource records how a rule entered the knowledge store
type RuleSource string

const (
	// RuleSourceInitial marks rules bulk-loaded at startup (prior knowledge)
	RuleSourceInitial RuleSource = "initial"
	// RuleSourceAcquired marks rules synthesized by the explicit learner mid-run
	RuleSourceAcquired RuleSource = "acquired"
)

// Rule is a symbolic stimulus→action production owned by the knowledge store.
// Rules are immutable after creation except for confidence; duplicates
// (same stimulus and action) are rejected on insertion.
type Rule struct {
	Stimulus   Stimulus   `json:"stimulus" db:"stimulus"`
	Action     Action     `json:"action" db:"action"`
	Confidence float64    `json:"confidence" db:"confidence"`
	Source     RuleSource `json:"source" db:"source"`
	// AcquiredAt is the trial index at which the rule was synthesized,
	// -1 for initial rules.
	AcquiredAt int `json:"acquired_at" db:"acquired_at"`
}

// Matches reports whether the rule's condition applies to the stimulus
func (r *Rule) Matches(s Stimulus) bool {
	return r.Stimulus == s
}

// NewInitialRule creates a rule representing prior knowledge
func NewInitialRule(s Stimulus, a Action, confidence float64) *Rule {
	return &Rule{
		Stimulus:   s,
		Action:     a,
		Confidence: confidence,
		Source:     RuleSourceInitial,
		AcquiredAt: -1,
	}
}

// NewAcquiredRule creates a rule synthesized from an observed failure
func NewAcquiredRule(s Stimulus, a Action, trialIndex int) *Rule {
	return &Rule{
		Stimulus:   s,
		Action:     a,
		Confidence: 1.0,
		Source:     RuleSourceAcquired,
		AcquiredAt: trialIndex,
	}
}

// RuleDef is the on-disk form of a rule in a JSON rule-definition file
type RuleDef struct {
	Stimulus   string   `json:"stimulus"`
	Action     string   `json:"action"`
	Confidence *float64 `json:"confidence,omitempty"` // defaults to 1.0
}
