// Package add handles manual transaction entry commands
package add

import (
	"fmt"
	"time"

	"fjacquet/finance-tracker/cmd/root"
	"fjacquet/finance-tracker/internal/currencyutils"
	"fjacquet/finance-tracker/internal/dateutils"
	"fjacquet/finance-tracker/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Add a single expense or income record",
	Long: `Add records one transaction by hand. When no category is given the
expense is classified through the usual cascade.`,
	RunE: addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Transaction description")
	Cmd.Flags().StringVarP(&root.Amount, "amount", "a", "", "Transaction amount")
	Cmd.Flags().StringVarP(&root.Date, "date", "t", "", "Transaction date (defaults to today)")
	Cmd.Flags().StringVarP(&root.Category, "category", "c", "", "Category (classified automatically when empty)")
	Cmd.Flags().BoolVar(&root.IsIncome, "income", false, "Record income instead of an expense")
	_ = Cmd.MarkFlagRequired("description")
	_ = Cmd.MarkFlagRequired("amount")
}

func addFunc(cmd *cobra.Command, args []string) error {
	amount, err := currencyutils.ParseAmount(root.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", root.Amount, err)
	}

	date := dateutils.ResolveStatementDate(root.Date, time.Now())

	trk := root.App.GetTracker()

	if root.IsIncome {
		income := models.Income{
			ID:       models.NewID(),
			Source:   root.Description,
			Amount:   amount.Abs(),
			Date:     date,
			Category: root.Category,
		}
		if err := trk.AddIncome(income); err != nil {
			return fmt.Errorf("error adding income: %w", err)
		}
		fmt.Printf("Added income %s (%s)\n", income.Source, income.Category)
		return nil
	}

	expense := models.Expense{
		ID:          models.NewID(),
		Description: root.Description,
		Amount:      amount.Abs(),
		Date:        date,
		Category:    root.Category,
	}
	if expense.Category == "" {
		result := trk.ClassifySingle(cmd.Context(), expense.Description, expense.Amount)
		expense.Category = result.Category
		expense.Confidence = result.Confidence
	}
	if err := trk.AddExpense(expense); err != nil {
		return fmt.Errorf("error adding expense: %w", err)
	}
	if expense.Confidence != "" {
		fmt.Printf("Added expense %s as %s (%s)\n", expense.Description, expense.Category, expense.Confidence)
	} else {
		fmt.Printf("Added expense %s as %s\n", expense.Description, expense.Category)
	}
	return nil
}
