// Package cli provides the command-line interface for skillsim
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/AbdouB/skillsim/internal/db"
	"github.com/spf13/cobra"
)

var (
	database   *db.DB
	outputJSON bool // --json flag for machine-readable output (default is text for humans)
	dbPath     string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "skillsim",
	Short: "Typing-skill acquisition simulator",
	Long: `skillsim - Dual-Process Skill Acquisition Simulator

Simulates learning a typing task (press the key for the shown letter) under
two conditions and compares their learning curves:

  explicit   symbolic rules; misses trigger rule acquisition
  implicit   reinforcement learning over a stimulus-action value table

Quick Start:
  skillsim run --condition explicit       # run one condition
  skillsim run --condition implicit --alpha 0.3
  skillsim compare --trials 300           # both conditions, same curriculum
  skillsim history                        # list saved runs
  skillsim show <run-id>                  # re-render a saved run

Runs are reproducible: the same seed, configuration, and rule source always
produce the identical trial log.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB init for commands that never touch stored runs
		switch cmd.Name() {
		case "help", "version", "validate":
			return nil
		}

		var err error
		database, err = db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if database != nil {
			database.Close()
		}
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Machine-readable JSON output (default is human-readable text)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the runs database (default .skillsim/runs.db)")

	rootCmd.AddCommand(versionCmd)
}

// outputResult outputs the result in the appropriate format: the rendered
// text by default, the raw value as JSON with --json
func outputResult(result interface{}, text string) {
	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result)
	} else {
		fmt.Print(text)
	}
}

// outputError outputs an error in the appropriate format
func outputError(err error) {
	if outputJSON {
		result := map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
		enc := json.NewEncoder(os.Stderr)
		enc.Encode(result)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// readStdinJSON reads JSON from stdin
func readStdinJSON(v interface{}) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("no input provided on stdin")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// readInputJSON reads JSON from stdin or file
func readInputJSON(input string, v interface{}) error {
	if input == "-" {
		return readStdinJSON(v)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("skillsim version 1.0.0 (Go)")
	},
}
