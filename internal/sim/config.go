// Package sim runs the simulation: it validates configuration, drives the
// per-trial loop for a learning condition, and tracks accuracy over trials.
package sim

import (
	"fmt"

	"github.com/AbdouB/skillsim/internal/models"
)

// Defaults for the typing task experiment
const (
	DefaultTrials          = 300
	DefaultAlpha           = 0.5
	DefaultRewardCorrect   = 1.0
	DefaultRewardIncorrect = -1.0
	DefaultLetters         = "ABC"
)

// ConfigError reports an invalid configuration. It is fatal and surfaces
// before any trial runs.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Config is the full configuration for one run of one learning condition.
// There is no package-level state: every run gets its own Config and the
// same Config always produces the same run.
type Config struct {
	Condition       models.Condition
	Trials          int
	Seed            int64
	Alpha           float64 // implicit learning rate, in (0,1]
	WindowSize      int     // 0 = cumulative accuracy, >0 = moving average
	RewardCorrect   float64
	RewardIncorrect float64
	Letters         string
	// RuleDefs preloads the knowledge store (explicit condition only)
	RuleDefs []models.RuleDef
}

// DefaultConfig returns the canonical experiment configuration for a condition
func DefaultConfig(condition models.Condition) Config {
	return Config{
		Condition:       condition,
		Trials:          DefaultTrials,
		Alpha:           DefaultAlpha,
		RewardCorrect:   DefaultRewardCorrect,
		RewardIncorrect: DefaultRewardIncorrect,
		Letters:         DefaultLetters,
	}
}

// Validate checks the configuration before any trial runs
func (c Config) Validate() error {
	if !c.Condition.Valid() {
		return &ConfigError{Field: "condition", Reason: fmt.Sprintf("unknown condition %q", c.Condition)}
	}
	if c.Trials < 1 {
		return &ConfigError{Field: "trials", Reason: fmt.Sprintf("must be >= 1, got %d", c.Trials)}
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return &ConfigError{Field: "alpha", Reason: fmt.Sprintf("must be in (0,1], got %v", c.Alpha)}
	}
	if c.WindowSize < 0 {
		return &ConfigError{Field: "window", Reason: fmt.Sprintf("must be >= 0, got %d", c.WindowSize)}
	}
	if c.RewardCorrect <= c.RewardIncorrect {
		return &ConfigError{Field: "reward", Reason: "correct reward must exceed incorrect reward"}
	}
	if c.Letters == "" {
		return &ConfigError{Field: "letters", Reason: "letter set is empty"}
	}
	if len(c.RuleDefs) > 0 && c.Condition != models.ConditionExplicit {
		return &ConfigError{Field: "rules", Reason: "preloaded rules only apply to the explicit condition"}
	}
	return nil
}
