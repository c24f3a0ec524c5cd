package sim

import (
	"errors"
	"testing"

	"github.com/AbdouB/skillsim/internal/models"
	"github.com/AbdouB/skillsim/internal/task"
)

func testConfig(condition models.Condition, trials int) Config {
	cfg := DefaultConfig(condition)
	cfg.Trials = trials
	cfg.Seed = 7
	return cfg
}

func mustRun(t *testing.T, cfg Config, curriculum task.Curriculum) *models.Run {
	t.Helper()
	driver, err := NewDriver(cfg, curriculum)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	run, err := driver.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return run
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero trials", func(c *Config) { c.Trials = 0 }},
		{"negative trials", func(c *Config) { c.Trials = -5 }},
		{"zero alpha", func(c *Config) { c.Alpha = 0 }},
		{"alpha above one", func(c *Config) { c.Alpha = 1.5 }},
		{"negative window", func(c *Config) { c.WindowSize = -1 }},
		{"unknown condition", func(c *Config) { c.Condition = "osmotic" }},
		{"empty letters", func(c *Config) { c.Letters = "" }},
		{"rewards inverted", func(c *Config) { c.RewardCorrect = -1; c.RewardIncorrect = 1 }},
		{"rules on implicit", func(c *Config) {
			c.Condition = models.ConditionImplicit
			c.RuleDefs = []models.RuleDef{{Stimulus: "letter-A", Action: "press_a"}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(models.ConditionExplicit, 10)
			tc.mutate(&cfg)

			_, err := NewDriver(cfg, nil)
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
		})
	}

	t.Run("malformed rule source", func(t *testing.T) {
		cfg := testConfig(models.ConditionExplicit, 10)
		cfg.RuleDefs = []models.RuleDef{{Stimulus: "letter-A"}}

		_, err := NewDriver(cfg, nil)
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
	})
}

func TestSeriesLengthMatchesTrialCount(t *testing.T) {
	for _, n := range []int{1, 5, 50} {
		for _, condition := range []models.Condition{models.ConditionExplicit, models.ConditionImplicit} {
			run := mustRun(t, testConfig(condition, n), nil)
			if len(run.AccuracySeries) != n {
				t.Errorf("%s n=%d: expected %d accuracy points, got %d",
					condition, n, n, len(run.AccuracySeries))
			}
			if len(run.TrialLog) != n {
				t.Errorf("%s n=%d: expected %d trial records, got %d",
					condition, n, n, len(run.TrialLog))
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	for _, condition := range []models.Condition{models.ConditionExplicit, models.ConditionImplicit} {
		t.Run(string(condition), func(t *testing.T) {
			a := mustRun(t, testConfig(condition, 100), nil)
			b := mustRun(t, testConfig(condition, 100), nil)

			for i := range a.TrialLog {
				x, y := a.TrialLog[i], b.TrialLog[i]
				if x.Stimulus != y.Stimulus || x.ChosenAction != y.ChosenAction ||
					x.CorrectAction != y.CorrectAction || x.IsCorrect != y.IsCorrect ||
					x.Reward != y.Reward || x.LearnerID != y.LearnerID {
					t.Fatalf("trial %d differs between identical runs: %+v vs %+v", i, x, y)
				}
			}
		})
	}
}

func TestRewardDerivesFromCorrectness(t *testing.T) {
	cfg := testConfig(models.ConditionImplicit, 60)
	cfg.RewardCorrect = 2
	cfg.RewardIncorrect = -3
	run := mustRun(t, cfg, nil)

	for _, tr := range run.TrialLog {
		want := -3.0
		if tr.IsCorrect {
			want = 2.0
		}
		if tr.Reward != want {
			t.Fatalf("trial %d: is_correct=%v but reward=%v", tr.Index, tr.IsCorrect, tr.Reward)
		}
	}
}

// The scripted scenario: 10 trials of two alternating stimuli, reward +1/0,
// empty knowledge store, acquisition on miss. First exposure to each
// stimulus misses and acquires a rule; every repeat is answered by recall,
// for a cumulative accuracy of 8/10.
func TestExplicitAcquisitionScenario(t *testing.T) {
	cfg := testConfig(models.ConditionExplicit, 10)
	cfg.Letters = "AB"
	cfg.RewardCorrect = 1
	cfg.RewardIncorrect = 0

	tk, err := task.New(cfg.Letters)
	if err != nil {
		t.Fatalf("task.New failed: %v", err)
	}
	run := mustRun(t, cfg, task.NewRoundRobin(tk))

	for i, tr := range run.TrialLog {
		wantCorrect := i >= 2
		if tr.IsCorrect != wantCorrect {
			t.Errorf("trial %d: expected correct=%v, got %v (chose %s)",
				i, wantCorrect, tr.IsCorrect, tr.ChosenAction)
		}
	}
	if run.FinalAccuracy != 0.8 {
		t.Errorf("expected final accuracy 0.8, got %v", run.FinalAccuracy)
	}

	acquired := 0
	for _, r := range run.Rules {
		if r.Source == models.RuleSourceAcquired {
			acquired++
		}
	}
	if acquired != 2 {
		t.Errorf("expected 2 acquired rules, got %d", acquired)
	}
}

// With the full rule set preloaded (the prior-knowledge condition of the
// original experiment) the explicit learner never errs.
func TestExplicitPreloadedScenario(t *testing.T) {
	cfg := testConfig(models.ConditionExplicit, 30)
	tk, err := task.New(cfg.Letters)
	if err != nil {
		t.Fatalf("task.New failed: %v", err)
	}
	cfg.RuleDefs = tk.BuiltinRules()

	run := mustRun(t, cfg, nil)
	if run.FinalAccuracy != 1.0 {
		t.Errorf("expected perfect accuracy, got %v", run.FinalAccuracy)
	}
	for _, p := range run.AccuracySeries {
		if p.Accuracy != 1.0 {
			t.Fatalf("trial %d: expected accuracy 1.0, got %v", p.TrialIndex, p.Accuracy)
		}
	}
	if run.RulesPreloaded != len(tk.BuiltinRules()) {
		t.Errorf("expected %d preloaded rules recorded, got %d",
			len(tk.BuiltinRules()), run.RulesPreloaded)
	}
}

// The implicit learner improves gradually: with two alternating stimuli and
// a miss penalty, each stimulus is answered correctly from its third
// exposure at the latest, whatever the tie-break seed did earlier.
func TestImplicitConvergenceScenario(t *testing.T) {
	cfg := testConfig(models.ConditionImplicit, 40)
	cfg.Letters = "AB"

	tk, err := task.New(cfg.Letters)
	if err != nil {
		t.Fatalf("task.New failed: %v", err)
	}
	run := mustRun(t, cfg, task.NewRoundRobin(tk))

	for _, tr := range run.TrialLog[4:] {
		if !tr.IsCorrect {
			t.Errorf("trial %d: expected correct after convergence, chose %s for %s",
				tr.Index, tr.ChosenAction, tr.Stimulus)
		}
	}
	if run.FinalAccuracy < 0.9 {
		t.Errorf("expected final accuracy >= 0.9, got %v", run.FinalAccuracy)
	}
	if len(run.Rules) != 0 {
		t.Errorf("implicit condition must hold no symbolic rules, got %d", len(run.Rules))
	}
}

func TestFairComparisonSharedCurriculum(t *testing.T) {
	tk, err := task.New(DefaultLetters)
	if err != nil {
		t.Fatalf("task.New failed: %v", err)
	}
	sequence, err := task.Materialize(task.NewRandom(tk, 7), 50)
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}

	explicit := mustRun(t, testConfig(models.ConditionExplicit, 50), task.NewFixed(sequence))
	implicit := mustRun(t, testConfig(models.ConditionImplicit, 50), task.NewFixed(sequence))

	for i := range explicit.TrialLog {
		if explicit.TrialLog[i].Stimulus != implicit.TrialLog[i].Stimulus {
			t.Fatalf("trial %d: conditions saw different stimuli: %s vs %s",
				i, explicit.TrialLog[i].Stimulus, implicit.TrialLog[i].Stimulus)
		}
	}
}

func TestCurriculumExhaustionAborts(t *testing.T) {
	cfg := testConfig(models.ConditionExplicit, 10)
	short := task.NewFixed([]models.Stimulus{"letter-A", "letter-B", "letter-C"})

	driver, err := NewDriver(cfg, short)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	run, err := driver.Run()
	if run != nil {
		t.Error("expected no partial run on curriculum failure")
	}
	var cerr *task.CurriculumError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CurriculumError, got %v", err)
	}
}

func TestUnknownStimulusAborts(t *testing.T) {
	cfg := testConfig(models.ConditionExplicit, 2)
	bad := task.NewFixed([]models.Stimulus{"letter-A", "letter-Q"})

	driver, err := NewDriver(cfg, bad)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	_, err = driver.Run()
	var cerr *task.CurriculumError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CurriculumError for unknown stimulus, got %v", err)
	}
}

func TestRunRecordsConfig(t *testing.T) {
	cfg := testConfig(models.ConditionImplicit, 25)
	cfg.Alpha = 0.3
	cfg.WindowSize = 5
	run := mustRun(t, cfg, nil)

	if run.Condition != models.ConditionImplicit || run.Trials != 25 ||
		run.Seed != 7 || run.Alpha != 0.3 || run.WindowSize != 5 {
		t.Errorf("run does not carry its configuration: %+v", run)
	}
	if run.RunID == "" {
		t.Error("expected a run ID")
	}
	for _, tr := range run.TrialLog {
		if tr.RunID != run.RunID {
			t.Fatalf("trial %d not tagged with run ID", tr.Index)
		}
		if tr.LearnerID != string(models.ConditionImplicit) {
			t.Fatalf("trial %d: unexpected learner ID %s", tr.Index, tr.LearnerID)
		}
	}
}
