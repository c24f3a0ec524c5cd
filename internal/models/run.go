package models

import (
	"time"

	"github.com/google/uuid"
)

// Run represents one completed simulation of a single learning condition:
// its configuration, full trial log, accuracy series, and (for the explicit
// condition) the rules held at the end of the run.
type Run struct {
	RunID           string    `json:"run_id" db:"run_id"`
	Condition       Condition `json:"condition" db:"condition"`
	Trials          int       `json:"trials" db:"trials"`
	Seed            int64     `json:"seed" db:"seed"`
	Alpha           float64   `json:"alpha" db:"alpha"`
	WindowSize      int       `json:"window_size" db:"window_size"`
	RewardCorrect   float64   `json:"reward_correct" db:"reward_correct"`
	RewardIncorrect float64   `json:"reward_incorrect" db:"reward_incorrect"`
	Letters         string    `json:"letters" db:"letters"`
	RulesPreloaded  int       `json:"rules_preloaded" db:"rules_preloaded"`
	FinalAccuracy   float64   `json:"final_accuracy" db:"final_accuracy"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	// Materialized after the run completes; not stored on the run row itself.
	TrialLog       []*TrialRecord   `json:"trial_log,omitempty" db:"-"`
	AccuracySeries []*AccuracyPoint `json:"accuracy_series,omitempty" db:"-"`
	Rules          []*Rule          `json:"rules,omitempty" db:"-"`
}

// NewRun creates a run shell with a fresh identity; the driver fills in results
func NewRun(condition Condition) *Run {
	return &Run{
		RunID:     uuid.New().String(),
		Condition: condition,
		CreatedAt: time.Now(),
	}
}
