package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
	"github.com/tkhrsasaki/shiftsense/pkg/core/services"
	"github.com/tkhrsasaki/shiftsense/pkg/db"
)

// DiagnoseCmd creates the diagnose command.
func DiagnoseCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnose <config.json> <YYYY-MM>",
		Short: "Diagnose a facility configuration before generating a schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, _ := cmd.Flags().GetBool("save")

			cfg, err := services.LoadFacilityConfig(args[0])
			if err != nil {
				return err
			}
			month, err := model.ParseMonth(args[1])
			if err != nil {
				return err
			}

			var store db.DiagnosisRunStore
			if save {
				store, err = app.Database()
				if err != nil {
					return err
				}
			}

			result, err := services.DiagnoseFacility(
				app.Ctx, store, app.Logger, cfg, month, app.Cfg.DiagnosisThresholds(), save)
			if err != nil {
				return err
			}

			printDiagnosis(result)
			return nil
		},
	}

	cmd.Flags().Bool("save", false, "Save the result to the history database")
	return cmd
}

func printDiagnosis(result *services.DiagnoseFacilityResult) {
	d := result.Diagnosis

	fmt.Printf("\nStatus: %s\n", d.Status)
	fmt.Printf("%s\n\n", d.Summary)

	fmt.Printf("Supply/demand balance: %d supply vs %d demand (%+d)\n",
		d.SupplyDemandBalance.TotalSupply,
		d.SupplyDemandBalance.TotalDemand,
		d.SupplyDemandBalance.Balance)
	names := make([]string, 0, len(d.SupplyDemandBalance.ByTimeSlot))
	for name := range d.SupplyDemandBalance.ByTimeSlot {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		slot := d.SupplyDemandBalance.ByTimeSlot[name]
		fmt.Printf("  %-12s %4d / %4d  (%d%% fulfilled)\n",
			name, slot.Supply, slot.Demand, slot.FulfillmentRate)
	}

	if len(d.Issues) > 0 {
		fmt.Printf("\nIssues (%d):\n", len(d.Issues))
		for _, issue := range d.Issues {
			fmt.Printf("  [%s] %s\n      %s\n", issue.Severity, issue.Title, issue.Description)
		}
	}

	if len(d.Suggestions) > 0 {
		fmt.Printf("\nSuggestions (%d):\n", len(d.Suggestions))
		for _, suggestion := range d.Suggestions {
			fmt.Printf("  [%s] %s\n      %s\n", suggestion.Priority, suggestion.Action, suggestion.Impact)
		}
	}

	if result.RunID != "" {
		fmt.Printf("\nSaved as run %s\n", result.RunID)
	}
	fmt.Println()
}
