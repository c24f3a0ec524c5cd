// Package db provides sqlite persistence for completed simulation runs
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the database connection
type DB struct {
	*sqlx.DB
	path string
}

// DefaultDBPath returns the default database path
func DefaultDBPath() string {
	// Try project-local first
	localPath := ".skillsim/runs.db"
	if _, err := os.Stat(".skillsim"); err == nil {
		return localPath
	}

	// Fall back to home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return localPath
	}
	return filepath.Join(home, ".skillsim", "runs.db")
}

// Open opens or creates the database
func Open(path string) (*DB, error) {
	if path == "" {
		path = DefaultDBPath()
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &DB{DB: db, path: path}

	if err := d.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return d, nil
}

// Path returns the database file path
func (d *DB) Path() string {
	return d.path
}

// migrate runs database migrations
func (d *DB) migrate() error {
	migrations := []string{
		migrationRuns,
		migrationTrials,
		migrationAccuracy,
		migrationRules,
		migrationIndexes,
	}

	for _, m := range migrations {
		if _, err := d.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

const migrationRuns = `
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    condition TEXT NOT NULL,
    trials INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    alpha REAL NOT NULL,
    window_size INTEGER NOT NULL DEFAULT 0,
    reward_correct REAL NOT NULL,
    reward_incorrect REAL NOT NULL,
    letters TEXT NOT NULL,
    rules_preloaded INTEGER NOT NULL DEFAULT 0,
    final_accuracy REAL NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const migrationTrials = `
CREATE TABLE IF NOT EXISTS trials (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    trial_index INTEGER NOT NULL,
    stimulus TEXT NOT NULL,
    chosen_action TEXT NOT NULL,
    correct_action TEXT NOT NULL,
    is_correct BOOLEAN NOT NULL,
    reward REAL NOT NULL,
    learner_id TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

const migrationAccuracy = `
CREATE TABLE IF NOT EXISTS accuracy_points (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    trial_index INTEGER NOT NULL,
    accuracy REAL NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

const migrationRules = `
CREATE TABLE IF NOT EXISTS rules (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    stimulus TEXT NOT NULL,
    action TEXT NOT NULL,
    confidence REAL NOT NULL,
    source TEXT NOT NULL,
    acquired_at INTEGER NOT NULL DEFAULT -1,
    FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

const migrationIndexes = `
CREATE INDEX IF NOT EXISTS idx_trials_run_id ON trials(run_id);
CREATE INDEX IF NOT EXISTS idx_accuracy_run_id ON accuracy_points(run_id);
CREATE INDEX IF NOT EXISTS idx_rules_run_id ON rules(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_condition ON runs(condition);
`
