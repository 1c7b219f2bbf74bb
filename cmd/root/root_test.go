package root_test

import (
	"testing"

	"fjacquet/finance-tracker/cmd/root"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "finance-tracker", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "CLI tool to import bank statements")
	assert.Contains(t, root.Cmd.Long, "categorizes expenses")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()

	inputFlag := root.Cmd.PersistentFlags().Lookup("input")
	if assert.NotNil(t, inputFlag) {
		assert.Equal(t, "i", inputFlag.Shorthand)
	}

	outputFlag := root.Cmd.PersistentFlags().Lookup("output")
	if assert.NotNil(t, outputFlag) {
		assert.Equal(t, "o", outputFlag.Shorthand)
	}
}
