// Package undo handles the undo command
package undo

import (
	"fmt"

	"fjacquet/finance-tracker/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the undo command
var Cmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the most recent change",
	Long:  `Undo restores the expense or income list to its state before the last mutation. Up to ten changes are kept.`,
	RunE:  undoFunc,
}

func undoFunc(cmd *cobra.Command, args []string) error {
	kind, ok := root.App.GetTracker().Undo()
	if !ok {
		fmt.Println("Nothing to undo")
		return nil
	}
	fmt.Printf("Reverted last %s change\n", kind)
	return nil
}
