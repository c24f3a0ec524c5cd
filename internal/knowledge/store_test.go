package knowledge

import (
	"errors"
	"testing"

	"github.com/AbdouB/skillsim/internal/models"
)

func TestAddRule(t *testing.T) {
	t.Run("inserts a rule", func(t *testing.T) {
		s := NewStore()
		if err := s.AddRule(models.NewInitialRule("letter-A", "press_a", 1.0)); err != nil {
			t.Fatalf("AddRule failed: %v", err)
		}
		if s.Len() != 1 {
			t.Errorf("expected 1 rule, got %d", s.Len())
		}
	})

	t.Run("rejects identical stimulus+action", func(t *testing.T) {
		s := NewStore()
		if err := s.AddRule(models.NewInitialRule("letter-A", "press_a", 1.0)); err != nil {
			t.Fatalf("AddRule failed: %v", err)
		}

		err := s.AddRule(models.NewInitialRule("letter-A", "press_a", 0.5))
		var dup *DuplicateRuleError
		if !errors.As(err, &dup) {
			t.Fatalf("expected DuplicateRuleError, got %v", err)
		}
		if s.Len() != 1 {
			t.Errorf("duplicate insert changed rule count: got %d, want 1", s.Len())
		}
	})

	t.Run("same stimulus with different action coexists", func(t *testing.T) {
		s := NewStore()
		if err := s.AddRule(models.NewInitialRule("letter-A", "press_a", 1.0)); err != nil {
			t.Fatalf("AddRule failed: %v", err)
		}
		if err := s.AddRule(models.NewInitialRule("letter-A", "press_b", 1.0)); err != nil {
			t.Fatalf("AddRule failed: %v", err)
		}
		if s.Len() != 2 {
			t.Errorf("expected 2 rules, got %d", s.Len())
		}
	})
}

func TestMatch(t *testing.T) {
	t.Run("returns only matching rules", func(t *testing.T) {
		s := NewStore()
		s.AddRule(models.NewInitialRule("letter-A", "press_a", 1.0))
		s.AddRule(models.NewInitialRule("letter-B", "press_b", 1.0))

		matched := s.Match("letter-A")
		if len(matched) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matched))
		}
		if matched[0].Action != "press_a" {
			t.Errorf("expected press_a, got %s", matched[0].Action)
		}
	})

	t.Run("no match yields empty result, not an error", func(t *testing.T) {
		s := NewStore()
		if matched := s.Match("letter-Z"); len(matched) != 0 {
			t.Errorf("expected no matches, got %d", len(matched))
		}
		if s.Best("letter-Z") != nil {
			t.Error("expected Best to return nil for unmatched stimulus")
		}
	})

	t.Run("higher confidence wins", func(t *testing.T) {
		s := NewStore()
		s.AddRule(models.NewInitialRule("letter-A", "press_b", 0.4))
		s.AddRule(models.NewInitialRule("letter-A", "press_a", 0.9))

		best := s.Best("letter-A")
		if best == nil || best.Action != "press_a" {
			t.Fatalf("expected press_a to win, got %+v", best)
		}
	})

	t.Run("equal confidence breaks ties by insertion order", func(t *testing.T) {
		s := NewStore()
		s.AddRule(models.NewInitialRule("letter-A", "press_c", 1.0))
		s.AddRule(models.NewInitialRule("letter-A", "press_a", 1.0))

		best := s.Best("letter-A")
		if best == nil || best.Action != "press_c" {
			t.Fatalf("expected first-inserted press_c to win, got %+v", best)
		}
	})
}

func TestLoadInitial(t *testing.T) {
	t.Run("loads definitions with default confidence", func(t *testing.T) {
		s := NewStore()
		err := s.LoadInitial([]models.RuleDef{
			{Stimulus: "letter-A", Action: "press_a"},
			{Stimulus: "letter-B", Action: "press_b"},
		})
		if err != nil {
			t.Fatalf("LoadInitial failed: %v", err)
		}
		if s.Len() != 2 {
			t.Fatalf("expected 2 rules, got %d", s.Len())
		}
		for _, r := range s.Rules() {
			if r.Confidence != 1.0 {
				t.Errorf("expected default confidence 1.0, got %v", r.Confidence)
			}
			if r.Source != models.RuleSourceInitial {
				t.Errorf("expected source initial, got %s", r.Source)
			}
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		s := NewStore()
		if err := s.LoadInitial([]models.RuleDef{{Stimulus: "letter-A"}}); err == nil {
			t.Error("expected error for missing action")
		}
	})

	t.Run("rejects confidence outside (0,1]", func(t *testing.T) {
		bad := 1.5
		s := NewStore()
		err := s.LoadInitial([]models.RuleDef{
			{Stimulus: "letter-A", Action: "press_a", Confidence: &bad},
		})
		if err == nil {
			t.Error("expected error for confidence 1.5")
		}
	})

	t.Run("rejects duplicates within the source", func(t *testing.T) {
		s := NewStore()
		err := s.LoadInitial([]models.RuleDef{
			{Stimulus: "letter-A", Action: "press_a"},
			{Stimulus: "letter-A", Action: "press_a"},
		})
		if err == nil {
			t.Error("expected error for duplicate definition")
		}
	})
}
