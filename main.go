package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/finance-tracker/cmd/add"
	"fjacquet/finance-tracker/cmd/categorize"
	"fjacquet/finance-tracker/cmd/export"
	"fjacquet/finance-tracker/cmd/importer"
	"fjacquet/finance-tracker/cmd/recategorize"
	"fjacquet/finance-tracker/cmd/root"
	"fjacquet/finance-tracker/cmd/search"
	"fjacquet/finance-tracker/cmd/undo"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure global log level before any logging happens
	configureLogLevelDirectly()

	// 3. Initialize root command and flags
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(importer.Cmd)
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(search.Cmd)
	root.Cmd.AddCommand(recategorize.Cmd)
	root.Cmd.AddCommand(undo.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus instances
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
