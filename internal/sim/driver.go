package sim

import (
	"fmt"
	"math/rand"

	"github.com/AbdouB/skillsim/internal/knowledge"
	"github.com/AbdouB/skillsim/internal/learner"
	"github.com/AbdouB/skillsim/internal/models"
	"github.com/AbdouB/skillsim/internal/task"
)

// Driver executes the trial loop for one learning condition: fetch the next
// stimulus, ask the learner for a decision, score it, deliver the reward,
// record the trial, and update the accuracy series. Trials are strictly
// sequential; later trials depend on knowledge acquired in earlier ones.
type Driver struct {
	cfg        Config
	task       *task.Task
	curriculum task.Curriculum
	learner    learner.Learner
	store      *knowledge.Store // nil for the implicit condition
	tracker    *Tracker
}

// NewDriver validates the configuration and assembles the learner for the
// configured condition. A nil curriculum defaults to a uniform random draw
// seeded from the configuration, so two runs with the same seed see the
// same stimulus sequence. Learner-private randomness (the implicit
// learner's tie-breaking) draws from a separate stream derived from the
// same seed, which keeps the curriculum identical across conditions.
func NewDriver(cfg Config, curriculum task.Curriculum) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t, err := task.New(cfg.Letters)
	if err != nil {
		return nil, &ConfigError{Field: "letters", Reason: err.Error()}
	}

	if curriculum == nil {
		curriculum = task.NewRandom(t, cfg.Seed)
	}

	d := &Driver{
		cfg:        cfg,
		task:       t,
		curriculum: curriculum,
		tracker:    NewTracker(cfg.WindowSize),
	}

	switch cfg.Condition {
	case models.ConditionExplicit:
		store := knowledge.NewStore()
		if err := store.LoadInitial(cfg.RuleDefs); err != nil {
			return nil, &ConfigError{Field: "rules", Reason: err.Error()}
		}
		d.store = store
		d.learner = learner.NewExplicit(store)
	case models.ConditionImplicit:
		rng := rand.New(rand.NewSource(cfg.Seed + 1))
		d.learner = learner.NewImplicit(cfg.Alpha, t.Actions(), rng)
	}

	return d, nil
}

// Run executes all configured trials and returns the completed run: trial
// log, accuracy series, and the final rule set for the explicit condition.
// A curriculum failure aborts the run with nothing recorded downstream —
// no partial accuracy series is ever returned.
func (d *Driver) Run() (*models.Run, error) {
	run := models.NewRun(d.cfg.Condition)
	run.Trials = d.cfg.Trials
	run.Seed = d.cfg.Seed
	run.Alpha = d.cfg.Alpha
	run.WindowSize = d.cfg.WindowSize
	run.RewardCorrect = d.cfg.RewardCorrect
	run.RewardIncorrect = d.cfg.RewardIncorrect
	run.Letters = d.cfg.Letters
	run.RulesPreloaded = len(d.cfg.RuleDefs)

	for i := 0; i < d.cfg.Trials; i++ {
		record, err := d.runTrial(i)
		if err != nil {
			return nil, fmt.Errorf("run aborted: %w", err)
		}
		record.RunID = run.RunID
		run.TrialLog = append(run.TrialLog, record)
	}

	for _, p := range d.tracker.Series() {
		p.RunID = run.RunID
		run.AccuracySeries = append(run.AccuracySeries, p)
	}
	run.FinalAccuracy = d.tracker.FinalAccuracy()
	if d.store != nil {
		run.Rules = d.store.Rules()
	}
	return run, nil
}

// runTrial executes one stimulus-response-feedback cycle
func (d *Driver) runTrial(index int) (*models.TrialRecord, error) {
	stimulus, err := d.curriculum.Next()
	if err != nil {
		return nil, err
	}
	correctAction, ok := d.task.CorrectAction(stimulus)
	if !ok {
		return nil, &task.CurriculumError{
			Trial:  index,
			Reason: fmt.Sprintf("no ground truth for stimulus %q", stimulus),
		}
	}

	chosen := d.learner.Decide(stimulus)
	isCorrect := chosen == correctAction
	reward := d.cfg.RewardIncorrect
	if isCorrect {
		reward = d.cfg.RewardCorrect
	}

	d.learner.Observe(learner.Outcome{
		TrialIndex:    index,
		Stimulus:      stimulus,
		ChosenAction:  chosen,
		CorrectAction: correctAction,
		IsCorrect:     isCorrect,
		Reward:        reward,
	})
	d.tracker.Record(index, isCorrect)

	return &models.TrialRecord{
		Index:         index,
		Stimulus:      stimulus,
		ChosenAction:  chosen,
		CorrectAction: correctAction,
		IsCorrect:     isCorrect,
		Reward:        reward,
		LearnerID:     d.learner.ID(),
	}, nil
}
