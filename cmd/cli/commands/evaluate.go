package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkhrsasaki/shiftsense/pkg/core/evaluation"
	"github.com/tkhrsasaki/shiftsense/pkg/core/services"
	"github.com/tkhrsasaki/shiftsense/pkg/db"
)

// EvaluateCmd creates the evaluate command.
func EvaluateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <config.json> <schedule.json>",
		Short: "Evaluate a generated schedule against its configuration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, _ := cmd.Flags().GetBool("save")
			noCauses, _ := cmd.Flags().GetBool("no-causes")

			cfg, err := services.LoadFacilityConfig(args[0])
			if err != nil {
				return err
			}
			schedule, err := services.LoadSchedule(args[1])
			if err != nil {
				return err
			}

			var store db.EvaluationRunStore
			if save {
				store, err = app.Database()
				if err != nil {
					return err
				}
			}

			result, err := services.EvaluateSchedule(
				app.Ctx, store, app.Logger, cfg, schedule, !noCauses, save)
			if err != nil {
				return err
			}

			printEvaluation(result)
			return nil
		},
	}

	cmd.Flags().Bool("save", false, "Save the result to the history database")
	cmd.Flags().Bool("no-causes", false, "Skip root cause analysis of violations")
	return cmd
}

func printEvaluation(result *services.EvaluateScheduleResult) {
	e := result.Evaluation

	fmt.Printf("\nScore: %d / 100\n", e.Score)
	fmt.Printf("Fulfillment rate: %d%%\n", e.FulfillmentRate)

	for _, level := range []evaluation.ConstraintLevel{
		evaluation.LevelAbsolute,
		evaluation.LevelOperational,
		evaluation.LevelEffort,
		evaluation.LevelInformational,
	} {
		summary := e.LevelBreakdown[level]
		if summary.Count == 0 {
			continue
		}
		fmt.Printf("  level %d: %d violation(s), -%d\n", level, summary.Count, summary.Penalty)
	}

	if len(e.Violations) > 0 {
		fmt.Printf("\nViolations (%d):\n", len(e.Violations))
		for _, v := range e.Violations {
			fmt.Printf("  [L%d] %s\n", v.Level, v.Description)
			if v.Suggestion != "" {
				fmt.Printf("       %s\n", v.Suggestion)
			}
		}
	} else {
		fmt.Println("\nNo violations found.")
	}

	if result.RootCauses != nil && len(result.RootCauses.Causes) > 0 {
		fmt.Printf("\nRoot causes (%d):\n", len(result.RootCauses.Causes))
		for _, cause := range result.RootCauses.Causes {
			fmt.Printf("  [%s] %s\n", cause.CauseType, cause.Description)
			if cause.Evidence != nil {
				fmt.Printf("       required %d, available %d, short %d\n",
					cause.Evidence.Required, cause.Evidence.Available, cause.Evidence.Shortage)
			}
		}
		if result.RootCauses.AICommentAddition != "" {
			fmt.Printf("\n%s\n", result.RootCauses.AICommentAddition)
		}
	}

	if result.RunID != "" {
		fmt.Printf("\nSaved as run %s\n", result.RunID)
	}
	fmt.Println()
}
