// Package root contains the root command for the application
package root

import (
	"fmt"
	"os"

	"fjacquet/finance-tracker/internal/common"
	"fjacquet/finance-tracker/internal/config"
	"fjacquet/finance-tracker/internal/container"
	"fjacquet/finance-tracker/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// App is the dependency container built once per invocation
	App *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finance-tracker",
		Short: "A CLI tool to import bank statements and categorize transactions.",
		Long: `finance-tracker imports CSV bank statements, splits them into expenses
and income, and categorizes expenses through learned preferences, keyword
rules and an optional Gemini model.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finance-tracker!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}

			App, err = container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("error wiring dependencies: %w", err)
			}
			Log = App.GetLogger()
			logging.SetLogger(Log)
			common.SetLogger(Log)

			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			}

			App.GetTracker().Load(cmd.Context())
			return nil
		},
		// Flush learned preferences after ANY command finishes
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if App != nil {
				if err := App.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close application container")
				}
			}
		},
	}

	// Common flags accessible to all commands
	Input  string
	Output string

	// Specific add command flags
	Description string
	Amount      string
	Date        string
	Category    string
	IsIncome    bool

	// Specific search command flags
	Query string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&Output, "output", "o", "", "Output file")
}
