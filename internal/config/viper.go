// Package config provides Viper-based hierarchical configuration management
// plus .env loading for the finance tracker.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	AI struct {
		Enabled          bool   `mapstructure:"enabled" yaml:"enabled"`
		Model            string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds   int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		ChunkSize        int    `mapstructure:"chunk_size" yaml:"chunk_size"`
		FallbackCategory string `mapstructure:"fallback_category" yaml:"fallback_category"`
		APIKey           string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Categorization struct {
		AutoLearn       bool    `mapstructure:"auto_learn" yaml:"auto_learn"`
		CoffeeMinAmount float64 `mapstructure:"coffee_min_amount" yaml:"coffee_min_amount"`
		CoffeeMaxAmount float64 `mapstructure:"coffee_max_amount" yaml:"coffee_max_amount"`
		CategoriesFile  string  `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"categorization" yaml:"categorization"`

	Import struct {
		LoadTimeoutSeconds int `mapstructure:"load_timeout_seconds" yaml:"load_timeout_seconds"`
	} `mapstructure:"import" yaml:"import"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.finance-tracker")
	v.AddConfigPath(".finance-tracker")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINANCE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// API key always comes from the environment, not prefixed
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Direct lookup covers the case where the binding above failed.
	if config.AI.APIKey == "" {
		config.AI.APIKey = GetGeminiAPIKey()
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.chunk_size", 20)
	v.SetDefault("ai.fallback_category", "Other")

	v.SetDefault("categorization.auto_learn", true)
	v.SetDefault("categorization.coffee_min_amount", 3.0)
	v.SetDefault("categorization.coffee_max_amount", 20.0)
	v.SetDefault("categorization.categories_file", "categories.yaml")

	v.SetDefault("import.load_timeout_seconds", 2)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
		if config.AI.ChunkSize < 1 || config.AI.ChunkSize > 100 {
			return fmt.Errorf("ai.chunk_size must be between 1 and 100, got: %d", config.AI.ChunkSize)
		}
	}

	if config.Categorization.CoffeeMinAmount < 0 ||
		config.Categorization.CoffeeMaxAmount < config.Categorization.CoffeeMinAmount {
		return fmt.Errorf("invalid coffee amount range: %.2f-%.2f",
			config.Categorization.CoffeeMinAmount, config.Categorization.CoffeeMaxAmount)
	}

	if config.Import.LoadTimeoutSeconds < 1 {
		return fmt.Errorf("import.load_timeout_seconds must be at least 1, got: %d", config.Import.LoadTimeoutSeconds)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
