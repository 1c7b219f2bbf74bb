// Package categorize handles transaction categorization commands
package categorize

import (
	"fmt"

	"fjacquet/finance-tracker/cmd/root"
	"fjacquet/finance-tracker/internal/currencyutils"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a transaction description",
	Long: `Categorize runs a single description through the classification cascade:
learned preferences, the coffee heuristic, keyword rules, pattern rules and
finally the Gemini model when enabled.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&root.Amount, "amount", "a", "", "Transaction amount (optional)")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	root.Log.Info("Categorize command called")

	amount, err := currencyutils.ParseAmount(root.Amount)
	if root.Amount != "" && err != nil {
		return fmt.Errorf("invalid amount %q: %w", root.Amount, err)
	}

	result := root.App.GetTracker().ClassifySingle(cmd.Context(), root.Description, amount.Abs())
	fmt.Printf("Category: %s (confidence %s, source %s)\n", result.Category, result.Confidence, result.Source)
	return nil
}
