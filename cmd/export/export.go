// Package export handles CSV export commands
package export

import (
	"fmt"

	"fjacquet/finance-tracker/cmd/root"
	"fjacquet/finance-tracker/internal/common"
	"fjacquet/finance-tracker/internal/models"

	"github.com/spf13/cobra"
)

var exportType string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored transactions to a CSV file",
	Long:  `Export writes the stored expense or income list to a CSV file.`,
	RunE:  exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&exportType, "type", "t", "expenses", "What to export: expenses or income")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	if root.Output == "" {
		return fmt.Errorf("--output is required")
	}

	trk := root.App.GetTracker()

	switch exportType {
	case "expenses":
		expenses := trk.Expenses()
		if expenses == nil {
			expenses = []models.Expense{}
		}
		if err := common.WriteExpensesToCSV(expenses, root.Output); err != nil {
			return fmt.Errorf("error exporting expenses: %w", err)
		}
	case "income":
		income := trk.Income()
		if income == nil {
			income = []models.Income{}
		}
		if err := common.WriteIncomeToCSV(income, root.Output); err != nil {
			return fmt.Errorf("error exporting income: %w", err)
		}
	default:
		return fmt.Errorf("unknown export type: %s (must be 'expenses' or 'income')", exportType)
	}

	root.Log.WithField("file_path", root.Output).Info("Export complete")
	return nil
}
