// Package report renders completed runs for the terminal: summary stats and
// an ASCII learning curve. It only reads fully materialized runs; the
// simulation core never depends on it.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AbdouB/skillsim/internal/models"
)

// Curve renders an accuracy series as an ASCII plot. The series is bucketed
// into `width` columns (mean accuracy per bucket) and drawn over `height`
// rows between accuracy 0 and 1.
func Curve(series []*models.AccuracyPoint, width, height int) string {
	if len(series) == 0 || width < 1 || height < 1 {
		return ""
	}
	if width > len(series) {
		width = len(series)
	}

	// Mean accuracy per bucket
	buckets := make([]float64, width)
	counts := make([]int, width)
	for i, p := range series {
		b := i * width / len(series)
		buckets[b] += p.Accuracy
		counts[b]++
	}
	for i := range buckets {
		buckets[i] /= float64(counts[i])
	}

	var sb strings.Builder
	for row := height - 1; row >= 0; row-- {
		threshold := (float64(row) + 0.5) / float64(height)
		switch row {
		case height - 1:
			sb.WriteString("1.00 |")
		case 0:
			sb.WriteString("0.00 |")
		default:
			sb.WriteString("     |")
		}
		for _, acc := range buckets {
			if acc >= threshold {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("     +")
	sb.WriteString(strings.Repeat("-", width))
	sb.WriteString(fmt.Sprintf("\n      trials 1..%d\n", series[len(series)-1].TrialIndex+1))
	return sb.String()
}

// FirstCorrectTrials returns, per stimulus, the index of the first correct
// trial, -1 for stimuli never answered correctly.
func FirstCorrectTrials(log []*models.TrialRecord) map[models.Stimulus]int {
	first := make(map[models.Stimulus]int)
	for _, t := range log {
		if _, seen := first[t.Stimulus]; !seen {
			first[t.Stimulus] = -1
		}
		if t.IsCorrect && first[t.Stimulus] == -1 {
			first[t.Stimulus] = t.Index
		}
	}
	return first
}

// Summary renders a human-readable report for one run
func Summary(run *models.Run) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s\n", run.RunID)
	fmt.Fprintf(&sb, "  condition:       %s\n", run.Condition)
	fmt.Fprintf(&sb, "  trials:          %d\n", run.Trials)
	fmt.Fprintf(&sb, "  seed:            %d\n", run.Seed)
	fmt.Fprintf(&sb, "  letters:         %s\n", run.Letters)
	if run.Condition == models.ConditionImplicit {
		fmt.Fprintf(&sb, "  alpha:           %g\n", run.Alpha)
	}
	fmt.Fprintf(&sb, "  reward:          %+g / %+g\n", run.RewardCorrect, run.RewardIncorrect)
	if run.WindowSize > 0 {
		fmt.Fprintf(&sb, "  curve window:    %d trials\n", run.WindowSize)
	} else {
		fmt.Fprintf(&sb, "  curve:           cumulative\n")
	}
	fmt.Fprintf(&sb, "  final accuracy:  %.2f%%\n", run.FinalAccuracy*100)

	if run.Condition == models.ConditionExplicit {
		acquired := 0
		for _, r := range run.Rules {
			if r.Source == models.RuleSourceAcquired {
				acquired++
			}
		}
		fmt.Fprintf(&sb, "  rules:           %d preloaded, %d acquired\n", run.RulesPreloaded, acquired)
	}

	if len(run.TrialLog) > 0 {
		errs := 0
		for _, t := range run.TrialLog {
			if !t.IsCorrect {
				errs++
			}
		}
		fmt.Fprintf(&sb, "  errors:          %d\n", errs)

		first := FirstCorrectTrials(run.TrialLog)
		stimuli := make([]models.Stimulus, 0, len(first))
		for s := range first {
			stimuli = append(stimuli, s)
		}
		sort.Slice(stimuli, func(i, j int) bool { return stimuli[i] < stimuli[j] })
		for _, s := range stimuli {
			if first[s] >= 0 {
				fmt.Fprintf(&sb, "  first correct %s: trial %d\n", s, first[s]+1)
			} else {
				fmt.Fprintf(&sb, "  first correct %s: never\n", s)
			}
		}
	}

	if len(run.AccuracySeries) > 0 {
		sb.WriteByte('\n')
		sb.WriteString(Curve(run.AccuracySeries, 60, 10))
	}
	return sb.String()
}

// Comparison renders both conditions of a compare run side by side
func Comparison(explicit, implicit *models.Run) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Learning-curve comparison (%d trials, seed %d)\n\n",
		explicit.Trials, explicit.Seed)
	fmt.Fprintf(&sb, "  explicit final accuracy: %.2f%%\n", explicit.FinalAccuracy*100)
	fmt.Fprintf(&sb, "  implicit final accuracy: %.2f%%\n\n", implicit.FinalAccuracy*100)

	sb.WriteString("Explicit condition (rule-based):\n")
	sb.WriteString(Curve(explicit.AccuracySeries, 60, 10))
	sb.WriteString("\nImplicit condition (reinforcement):\n")
	sb.WriteString(Curve(implicit.AccuracySeries, 60, 10))
	return sb.String()
}
