package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	once sync.Once
	// Logger is the global logger instance shared across the application
	Logger = logrus.New()
)

// ConfigureLogging sets up logging based on environment variables and returns
// the configured logger.
func ConfigureLogging() *logrus.Logger {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", logLevelStr)
		logLevel = logrus.InfoLevel
	}
	Logger.SetLevel(logLevel)

	logFormat := os.Getenv("LOG_FORMAT")
	if strings.ToLower(logFormat) == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return Logger
}

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv() {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			// Try the parent directory (project root)
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				Logger.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading .env file: %v", err)
			return
		}
		Logger.Debugf("Loaded environment variables from %s", envFile)

		ConfigureLogging()
	})
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// GetGeminiAPIKey returns the Gemini API key from environment variables
func GetGeminiAPIKey() string {
	return GetEnv("GEMINI_API_KEY", "")
}

// DataDirectory resolves the directory used for persisted collections.
// An explicit configuration wins; otherwise data lives under the user's
// home directory, falling back to the working directory.
func DataDirectory(cfg *Config) string {
	if cfg != nil && cfg.Data.Directory != "" {
		return cfg.Data.Directory
	}
	if dir := os.Getenv("FINANCE_DATA_DIR"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".finance-tracker"
	}
	return filepath.Join(homeDir, ".finance-tracker")
}
