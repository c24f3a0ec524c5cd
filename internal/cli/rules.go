package cli

import (
	"fmt"
	"strings"

	"github.com/AbdouB/skillsim/internal/knowledge"
	"github.com/AbdouB/skillsim/internal/models"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Work with rule-definition files",
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a JSON rule-definition file",
	Long: `Parse a rule-definition file and load it into a fresh knowledge store,
reporting the rules it would preload. The file is a JSON array of
{"stimulus": "letter-A", "action": "press_a", "confidence": 1.0} objects;
confidence is optional and defaults to 1.0. Use '-' to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var defs []models.RuleDef
		if err := readInputJSON(args[0], &defs); err != nil {
			outputError(err)
			return err
		}

		store := knowledge.NewStore()
		if err := store.LoadInitial(defs); err != nil {
			outputError(fmt.Errorf("invalid rule definitions: %w", err))
			return err
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "OK: %d rules\n", store.Len())
		for _, r := range store.Rules() {
			fmt.Fprintf(&sb, "  %s -> %s (confidence %g)\n", r.Stimulus, r.Action, r.Confidence)
		}
		outputResult(map[string]interface{}{
			"status": "ok",
			"rules":  store.Rules(),
		}, sb.String())
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesValidateCmd)
	rootCmd.AddCommand(rulesCmd)
}
