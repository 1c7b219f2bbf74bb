// Package recategorize handles the bulk re-categorization command
package recategorize

import (
	"fmt"

	"fjacquet/finance-tracker/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the recategorize command
var Cmd = &cobra.Command{
	Use:   "recategorize",
	Short: "Re-run categorization rules over all stored expenses",
	Long: `Recategorize migrates legacy category names and re-applies the local
classification rules to every stored expense. The Gemini model is not
consulted; only rule outcomes change.`,
	RunE: recategorizeFunc,
}

func recategorizeFunc(cmd *cobra.Command, args []string) error {
	changed := root.App.GetTracker().RecategorizeAll()
	fmt.Printf("Updated %d expense(s)\n", changed)
	return nil
}
