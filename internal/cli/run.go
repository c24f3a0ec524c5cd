package cli

import (
	"fmt"

	"github.com/AbdouB/skillsim/internal/db"
	"github.com/AbdouB/skillsim/internal/models"
	"github.com/AbdouB/skillsim/internal/report"
	"github.com/AbdouB/skillsim/internal/sim"
	"github.com/AbdouB/skillsim/internal/task"
	"github.com/spf13/cobra"
)

var (
	flagCondition       string
	flagTrials          int
	flagSeed            int64
	flagAlpha           float64
	flagWindow          int
	flagRewardCorrect   float64
	flagRewardIncorrect float64
	flagLetters         string
	flagRulesFile       string
	flagBuiltinRules    bool
	flagCurriculum      string
	flagNoSave          bool
)

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagTrials, "trials", sim.DefaultTrials, "Number of trials per condition")
	cmd.Flags().Int64Var(&flagSeed, "seed", 1, "Random seed (curriculum and learner randomness derive from it)")
	cmd.Flags().Float64Var(&flagAlpha, "alpha", sim.DefaultAlpha, "Implicit learning rate, in (0,1]")
	cmd.Flags().IntVar(&flagWindow, "window", 0, "Accuracy window size (0 = cumulative curve)")
	cmd.Flags().Float64Var(&flagRewardCorrect, "reward-correct", sim.DefaultRewardCorrect, "Reward for a correct trial")
	cmd.Flags().Float64Var(&flagRewardIncorrect, "reward-incorrect", sim.DefaultRewardIncorrect, "Reward for an incorrect trial")
	cmd.Flags().StringVar(&flagLetters, "letters", sim.DefaultLetters, "Letter set for the typing task")
	cmd.Flags().StringVar(&flagRulesFile, "rules", "", "JSON rule-definition file to preload ('-' for stdin, explicit condition)")
	cmd.Flags().BoolVar(&flagBuiltinRules, "builtin-rules", false, "Preload the full letter-to-key rule set (prior-knowledge condition)")
	cmd.Flags().StringVar(&flagCurriculum, "curriculum", "random", "Stimulus sequence: random or roundrobin")
	cmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not persist the run")
}

// buildConfig assembles the config for a condition from flags; the driver
// validates it before any trial runs
func buildConfig(condition models.Condition) (sim.Config, error) {
	cfg := sim.DefaultConfig(condition)
	cfg.Trials = flagTrials
	cfg.Seed = flagSeed
	cfg.Alpha = flagAlpha
	cfg.WindowSize = flagWindow
	cfg.RewardCorrect = flagRewardCorrect
	cfg.RewardIncorrect = flagRewardIncorrect
	cfg.Letters = flagLetters

	if condition != models.ConditionExplicit {
		return cfg, nil
	}
	if flagRulesFile != "" && flagBuiltinRules {
		return cfg, fmt.Errorf("--rules and --builtin-rules are mutually exclusive")
	}
	if flagRulesFile != "" {
		var defs []models.RuleDef
		if err := readInputJSON(flagRulesFile, &defs); err != nil {
			return cfg, fmt.Errorf("failed to load rule definitions: %w", err)
		}
		cfg.RuleDefs = defs
	}
	if flagBuiltinRules {
		t, err := task.New(cfg.Letters)
		if err != nil {
			return cfg, err
		}
		cfg.RuleDefs = t.BuiltinRules()
	}
	return cfg, nil
}

// buildCurriculum returns the configured curriculum, or nil for the driver's
// default random draw
func buildCurriculum(letters string) (task.Curriculum, error) {
	switch flagCurriculum {
	case "random", "":
		return nil, nil
	case "roundrobin":
		t, err := task.New(letters)
		if err != nil {
			return nil, err
		}
		return task.NewRoundRobin(t), nil
	default:
		return nil, fmt.Errorf("unknown curriculum %q (want random or roundrobin)", flagCurriculum)
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one learning condition and report its learning curve",
	RunE: func(cmd *cobra.Command, args []string) error {
		condition := models.Condition(flagCondition)
		cfg, err := buildConfig(condition)
		if err != nil {
			outputError(err)
			return err
		}
		curriculum, err := buildCurriculum(cfg.Letters)
		if err != nil {
			outputError(err)
			return err
		}

		driver, err := sim.NewDriver(cfg, curriculum)
		if err != nil {
			outputError(err)
			return err
		}
		run, err := driver.Run()
		if err != nil {
			outputError(err)
			return err
		}

		if !flagNoSave {
			repo := db.NewRunRepository(database)
			if err := repo.Save(run); err != nil {
				outputError(fmt.Errorf("failed to save run: %w", err))
				return err
			}
		}

		outputResult(run, report.Summary(run))
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run both conditions on the identical curriculum and compare curves",
	Long: `Run the explicit and implicit conditions on the exact same stimulus
sequence and compare their learning curves. The sequence is materialized once
from the seed, so the comparison is fair: any accuracy difference comes from
the learning mechanism, not from the trials presented.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		explicitCfg, err := buildConfig(models.ConditionExplicit)
		if err != nil {
			outputError(err)
			return err
		}
		implicitCfg, err := buildConfig(models.ConditionImplicit)
		if err != nil {
			outputError(err)
			return err
		}

		t, err := task.New(explicitCfg.Letters)
		if err != nil {
			outputError(err)
			return err
		}
		source, err := buildCurriculum(explicitCfg.Letters)
		if err != nil {
			outputError(err)
			return err
		}
		if source == nil {
			source = task.NewRandom(t, explicitCfg.Seed)
		}
		sequence, err := task.Materialize(source, explicitCfg.Trials)
		if err != nil {
			outputError(err)
			return err
		}

		runs := make(map[models.Condition]*models.Run, 2)
		for _, cfg := range []sim.Config{explicitCfg, implicitCfg} {
			driver, err := sim.NewDriver(cfg, task.NewFixed(sequence))
			if err != nil {
				outputError(err)
				return err
			}
			run, err := driver.Run()
			if err != nil {
				outputError(err)
				return err
			}
			runs[cfg.Condition] = run
		}

		if !flagNoSave {
			repo := db.NewRunRepository(database)
			for _, run := range runs {
				if err := repo.Save(run); err != nil {
					outputError(fmt.Errorf("failed to save run: %w", err))
					return err
				}
			}
		}

		explicit := runs[models.ConditionExplicit]
		implicit := runs[models.ConditionImplicit]
		outputResult(map[string]*models.Run{
			"explicit": explicit,
			"implicit": implicit,
		}, report.Comparison(explicit, implicit))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&flagCondition, "condition", "explicit", "Learning condition: explicit or implicit")
	addSimFlags(runCmd)
	addSimFlags(compareCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
