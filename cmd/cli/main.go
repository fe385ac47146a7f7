package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tkhrsasaki/shiftsense/cmd/cli/commands"
	"github.com/tkhrsasaki/shiftsense/internal/config"
	"github.com/tkhrsasaki/shiftsense/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftsense",
		Short: "ShiftSense - diagnose shift configurations and evaluate generated schedules",
		Long: `A CLI tool for diagnosing shift supply/demand problems before schedule
generation and for scoring generated schedules against their constraints.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				app.Close()
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "Environment name used for log files")

	app = &commands.AppContext{}
	rootCmd.AddCommand(commands.DiagnoseCmd(app))
	rootCmd.AddCommand(commands.EvaluateCmd(app))
	rootCmd.AddCommand(commands.HistoryCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and configuration. Database connections
// are opened lazily by the commands that need them.
func initApp() error {
	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Debug("Starting application", zap.String("environment", env))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Cfg = cfg
	app.Logger = logger
	app.Ctx = context.Background()
	return nil
}
