package cli

import (
	"fmt"
	"strings"

	"github.com/AbdouB/skillsim/internal/db"
	"github.com/AbdouB/skillsim/internal/models"
	"github.com/AbdouB/skillsim/internal/report"
	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit     int
	flagHistoryCondition string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		condition := models.Condition(flagHistoryCondition)
		if flagHistoryCondition != "" && !condition.Valid() {
			err := fmt.Errorf("unknown condition %q", flagHistoryCondition)
			outputError(err)
			return err
		}

		repo := db.NewRunRepository(database)
		runs, err := repo.List(condition, flagHistoryLimit)
		if err != nil {
			outputError(fmt.Errorf("failed to list runs: %w", err))
			return err
		}

		var sb strings.Builder
		if len(runs) == 0 {
			sb.WriteString("No saved runs.\n")
		}
		for _, run := range runs {
			fmt.Fprintf(&sb, "%s  %-8s  trials=%-4d seed=%-6d accuracy=%.2f%%  %s\n",
				run.RunID, run.Condition, run.Trials, run.Seed,
				run.FinalAccuracy*100, run.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		outputResult(runs, sb.String())
		return nil
	},
}

// getRun fetches a stored run or fails with a not-found error
func getRun(runID string) (*models.Run, error) {
	repo := db.NewRunRepository(database)
	run, err := repo.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	if run == nil {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	return run, nil
}

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Re-render a saved run's report and learning curve",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := getRun(args[0])
		if err != nil {
			outputError(err)
			return err
		}
		outputResult(run, report.Summary(run))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a saved run's full trial log as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := getRun(args[0])
		if err != nil {
			outputError(err)
			return err
		}
		// Export is machine-facing regardless of --json
		outputJSON = true
		outputResult(run, "")
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of runs to list")
	historyCmd.Flags().StringVar(&flagHistoryCondition, "condition", "", "Filter by condition: explicit or implicit")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
}
