// Package search handles the expense search and bulk change commands
package search

import (
	"fmt"

	"fjacquet/finance-tracker/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the search command
var Cmd = &cobra.Command{
	Use:   "search",
	Short: "Search stored expenses by description",
	Long: `Search lists stored expenses whose description contains the query.
With --category the matching expenses are all moved to that category and the
choice is learned for future imports.`,
	RunE: searchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Query, "query", "q", "", "Search query (at least two characters)")
	Cmd.Flags().StringVarP(&root.Category, "category", "c", "", "Move all matches to this category")
	_ = Cmd.MarkFlagRequired("query")
}

func searchFunc(cmd *cobra.Command, args []string) error {
	trk := root.App.GetTracker()

	if root.Category != "" {
		count, err := trk.BulkChangeCategory(root.Query, root.Category)
		if err != nil {
			return fmt.Errorf("error changing categories: %w", err)
		}
		fmt.Printf("Moved %d expense(s) to %s\n", count, root.Category)
		return nil
	}

	matches := trk.SearchExpenses(root.Query)
	if len(matches) == 0 {
		fmt.Println("No matching expenses")
		return nil
	}
	for _, e := range matches {
		fmt.Printf("  %s  %10s  %-28s  %s\n", e.Date, e.Amount.StringFixed(2), e.Description, e.Category)
	}
	return nil
}
