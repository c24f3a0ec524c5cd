package db

import (
	"database/sql"
	"fmt"

	"github.com/AbdouB/skillsim/internal/models"
)

// RunRepository handles run database operations
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Save persists a completed run with its trial log, accuracy series, and
// rules in one transaction. Partial runs are never written: either the
// whole run lands or nothing does.
func (r *RunRepository) Save(run *models.Run) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO runs (
			run_id, condition, trials, seed, alpha, window_size,
			reward_correct, reward_incorrect, letters, rules_preloaded,
			final_accuracy, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query,
		run.RunID,
		run.Condition,
		run.Trials,
		run.Seed,
		run.Alpha,
		run.WindowSize,
		run.RewardCorrect,
		run.RewardIncorrect,
		run.Letters,
		run.RulesPreloaded,
		run.FinalAccuracy,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	trialQuery := `
		INSERT INTO trials (
			run_id, trial_index, stimulus, chosen_action, correct_action,
			is_correct, reward, learner_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, t := range run.TrialLog {
		if _, err := tx.Exec(trialQuery,
			run.RunID, t.Index, t.Stimulus, t.ChosenAction, t.CorrectAction,
			t.IsCorrect, t.Reward, t.LearnerID,
		); err != nil {
			return fmt.Errorf("failed to insert trial %d: %w", t.Index, err)
		}
	}

	pointQuery := `INSERT INTO accuracy_points (run_id, trial_index, accuracy) VALUES (?, ?, ?)`
	for _, p := range run.AccuracySeries {
		if _, err := tx.Exec(pointQuery, run.RunID, p.TrialIndex, p.Accuracy); err != nil {
			return fmt.Errorf("failed to insert accuracy point %d: %w", p.TrialIndex, err)
		}
	}

	ruleQuery := `
		INSERT INTO rules (run_id, stimulus, action, confidence, source, acquired_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, rule := range run.Rules {
		if _, err := tx.Exec(ruleQuery,
			run.RunID, rule.Stimulus, rule.Action, rule.Confidence, rule.Source, rule.AcquiredAt,
		); err != nil {
			return fmt.Errorf("failed to insert rule %s: %w", rule.Stimulus, err)
		}
	}

	return tx.Commit()
}

// Get retrieves a run by ID, fully materialized
func (r *RunRepository) Get(runID string) (*models.Run, error) {
	var run models.Run
	query := `SELECT * FROM runs WHERE run_id = ?`
	err := r.db.Get(&run, query, runID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if run.TrialLog, err = r.getTrials(runID); err != nil {
		return nil, err
	}
	if run.AccuracySeries, err = r.getAccuracy(runID); err != nil {
		return nil, err
	}
	if run.Rules, err = r.getRules(runID); err != nil {
		return nil, err
	}
	return &run, nil
}

// List lists runs, newest first, optionally filtered by condition
func (r *RunRepository) List(condition models.Condition, limit int) ([]*models.Run, error) {
	var runs []*models.Run
	var query string
	var args []interface{}

	if condition != "" {
		query = `SELECT * FROM runs WHERE condition = ? ORDER BY created_at DESC LIMIT ?`
		args = []interface{}{condition, limit}
	} else {
		query = `SELECT * FROM runs ORDER BY created_at DESC LIMIT ?`
		args = []interface{}{limit}
	}

	err := r.db.Select(&runs, query, args...)
	if err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *RunRepository) getTrials(runID string) ([]*models.TrialRecord, error) {
	var trials []*models.TrialRecord
	query := `
		SELECT run_id, trial_index, stimulus, chosen_action, correct_action,
		       is_correct, reward, learner_id
		FROM trials WHERE run_id = ? ORDER BY trial_index
	`
	if err := r.db.Select(&trials, query, runID); err != nil {
		return nil, err
	}
	return trials, nil
}

func (r *RunRepository) getAccuracy(runID string) ([]*models.AccuracyPoint, error) {
	var points []*models.AccuracyPoint
	query := `
		SELECT run_id, trial_index, accuracy
		FROM accuracy_points WHERE run_id = ? ORDER BY trial_index
	`
	if err := r.db.Select(&points, query, runID); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *RunRepository) getRules(runID string) ([]*models.Rule, error) {
	var rules []*models.Rule
	query := `
		SELECT stimulus, action, confidence, source, acquired_at
		FROM rules WHERE run_id = ? ORDER BY id
	`
	if err := r.db.Select(&rules, query, runID); err != nil {
		return nil, err
	}
	return rules, nil
}
