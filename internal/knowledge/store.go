// Package knowledge implements the symbolic rule store used by the explicit learner
package knowledge

import (
	"fmt"

	"github.com/AbdouB/skillsim/internal/models"
)

// DuplicateRuleError is returned by AddRule when an identical stimulus+action
// pair already exists in the store. Callers that acquire rules opportunistically
// treat it as a no-op.
type DuplicateRuleError struct {
	Stimulus models.Stimulus
	Action   models.Action
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %s -> %s already exists", e.Stimulus, e.Action)
}

// Store holds the set of symbolic rules available to the explicit learner.
// It is the single owner and mutation point for rules: inserts go through
// AddRule, reads are side-effect-free. Not safe for concurrent use; the
// simulation is strictly sequential.
type Store struct {
	rules []*models.Rule
	index map[string]int // stimulus+action -> position in rules
}

// NewStore creates an empty rule store
func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
	}
}

func ruleKey(s models.Stimulus, a models.Action) string {
	return string(s) + "\x00" + string(a)
}

// AddRule inserts a rule. Rules with the same stimulus but a different action
// may coexist; an identical stimulus+action pair is rejected with
// DuplicateRuleError and the store is left unchanged.
func (s *Store) AddRule(rule *models.Rule) error {
	key := ruleKey(rule.Stimulus, rule.Action)
	if _, ok := s.index[key]; ok {
		return &DuplicateRuleError{Stimulus: rule.Stimulus, Action: rule.Action}
	}
	s.index[key] = len(s.rules)
	s.rules = append(s.rules, rule)
	return nil
}

// Match returns the rules whose condition matches the stimulus, ordered by
// descending confidence with insertion order breaking ties. An empty result
// is not an error; the caller falls back to its no-match policy.
func (s *Store) Match(stimulus models.Stimulus) []*models.Rule {
	var matched []*models.Rule
	for _, r := range s.rules {
		if r.Matches(stimulus) {
			matched = append(matched, r)
		}
	}
	// Stable selection sort keeps first-inserted ahead on equal confidence.
	for i := 1; i < len(matched); i++ {
		for j := i; j > 0 && matched[j].Confidence > matched[j-1].Confidence; j-- {
			matched[j], matched[j-1] = matched[j-1], matched[j]
		}
	}
	return matched
}

// Best returns the winning rule for a stimulus after tie-break, or nil if
// no rule matches.
func (s *Store) Best(stimulus models.Stimulus) *models.Rule {
	matched := s.Match(stimulus)
	if len(matched) == 0 {
		return nil
	}
	return matched[0]
}

// LoadInitial bulk-loads prior-knowledge rules at startup. Definitions with a
// missing confidence default to 1.0. A duplicate within the source is a
// configuration problem, not an acquisition race, so it fails loudly.
func (s *Store) LoadInitial(defs []models.RuleDef) error {
	for i, def := range defs {
		if def.Stimulus == "" || def.Action == "" {
			return fmt.Errorf("rule %d: stimulus and action are required", i)
		}
		confidence := 1.0
		if def.Confidence != nil {
			confidence = *def.Confidence
		}
		if confidence <= 0 || confidence > 1 {
			return fmt.Errorf("rule %d: confidence %v outside (0,1]", i, confidence)
		}
		rule := models.NewInitialRule(models.Stimulus(def.Stimulus), models.Action(def.Action), confidence)
		if err := s.AddRule(rule); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}

// Len returns the number of rules in the store
func (s *Store) Len() int {
	return len(s.rules)
}

// Rules returns the stored rules in insertion order. The slice is a copy;
// the rules themselves are shared and must not be mutated by callers.
func (s *Store) Rules() []*models.Rule {
	out := make([]*models.Rule, len(s.rules))
	copy(out, s.rules)
	return out
}
