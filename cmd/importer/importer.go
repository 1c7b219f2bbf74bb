// Package importer handles the statement import command
package importer

import (
	"fmt"

	"fjacquet/finance-tracker/cmd/root"

	"github.com/spf13/cobra"
)

var (
	dryRun     bool
	fromExport bool
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV bank statement",
	Long: `Import parses a CSV bank statement, splits rows into expenses and income,
drops duplicates, categorizes the expenses and commits the batch.
With --from-export it instead merges a CSV produced by the export command.`,
	RunE: importFunc,
}

func init() {
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Stage and print the batch without committing it")
	Cmd.Flags().BoolVar(&fromExport, "from-export", false, "Merge an exported expenses CSV instead of parsing a statement")
}

func importFunc(cmd *cobra.Command, args []string) error {
	if root.Input == "" {
		return fmt.Errorf("--input is required")
	}

	trk := root.App.GetTracker()

	if fromExport {
		added, skipped, err := trk.ImportExportedCSV(root.Input)
		if err != nil {
			return fmt.Errorf("error merging exported CSV: %w", err)
		}
		fmt.Printf("Merged %d expense(s), %d skipped\n", added, skipped)
		return nil
	}

	pending, err := trk.ImportStatement(cmd.Context(), root.Input)
	if err != nil {
		return fmt.Errorf("error importing statement: %w", err)
	}

	fmt.Printf("Staged %d expense(s), %d income record(s), %d duplicate(s) skipped\n",
		len(pending.Expenses), len(pending.Income), pending.DuplicateCount)
	for _, e := range pending.Expenses {
		fmt.Printf("  %s  %10s  %-28s  %s (%s)\n",
			e.Date, e.Amount.StringFixed(2), e.Description, e.Category, e.Confidence)
	}
	for _, in := range pending.Income {
		fmt.Printf("  %s  %10s  %-28s  %s\n",
			in.Date, in.Amount.StringFixed(2), in.Source, in.Category)
	}
	if pending.NeedsReview {
		fmt.Println("Some categories are fallback guesses; review them with the search command.")
	}

	if dryRun {
		trk.DiscardImport(pending)
		root.Log.Info("Dry run requested, batch discarded")
		return nil
	}

	if err := trk.CommitImport(pending); err != nil {
		return fmt.Errorf("error committing import: %w", err)
	}
	root.Log.Info("Import committed")
	return nil
}
