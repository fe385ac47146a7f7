package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkhrsasaki/shiftsense/pkg/core/services"
)

// HistoryCmd creates the history command.
func HistoryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent diagnosis and evaluation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			database, err := app.Database()
			if err != nil {
				return err
			}

			result, err := services.ViewHistory(app.Ctx, database, app.Logger, limit)
			if err != nil {
				return err
			}

			fmt.Printf("\nDiagnosis runs (%d):\n", len(result.DiagnosisRuns))
			for _, run := range result.DiagnosisRuns {
				fmt.Printf("  %s  %s  [%s]  supply %d / demand %d, %d issue(s)\n",
					run.ExecutedAt, run.TargetMonth, run.Status,
					run.TotalSupply, run.TotalDemand, run.IssueCount)
			}

			fmt.Printf("\nEvaluation runs (%d):\n", len(result.EvaluationRuns))
			for _, run := range result.EvaluationRuns {
				fmt.Printf("  %s  %s  score %d, %d%% fulfilled, %d violation(s)\n",
					run.EvaluatedAt, run.TargetMonth, run.Score,
					run.FulfillmentRate, run.ViolationCount)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("limit", 10, "Maximum number of runs to show per kind")
	return cmd
}
