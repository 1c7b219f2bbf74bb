// Package container provides dependency injection for the finance tracker.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/finance-tracker/internal/categorizer"
	"fjacquet/finance-tracker/internal/config"
	"fjacquet/finance-tracker/internal/logging"
	"fjacquet/finance-tracker/internal/store"
	"fjacquet/finance-tracker/internal/tracker"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation; all fields are private and
// can only be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.Store
	aiClient    categorizer.AIClient
	categorizer *categorizer.Categorizer
	tracker     *tracker.Tracker
}

// NewContainer creates and wires all application dependencies. This is the
// main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))

	st := store.New(config.DataDirectory(cfg), logger)

	// Create AI client (if enabled)
	var aiClient categorizer.AIClient
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		aiClient = categorizer.NewGeminiClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.TimeoutSeconds, logger)
		logger.Info("AI categorization enabled")
	} else {
		logger.Info("AI categorization disabled")
	}

	cat := categorizer.NewCategorizer(aiClient, st, logger, categorizer.Options{
		ChunkSize:        cfg.AI.ChunkSize,
		FallbackCategory: cfg.AI.FallbackCategory,
		CoffeeMinAmount:  cfg.Categorization.CoffeeMinAmount,
		CoffeeMaxAmount:  cfg.Categorization.CoffeeMaxAmount,
		CategoriesFile:   cfg.Categorization.CategoriesFile,
		AutoLearn:        cfg.Categorization.AutoLearn,
	})

	trk := tracker.New(st, cat, logger, cfg.Import.LoadTimeoutSeconds)

	logger.Info("Container initialized successfully",
		logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled})

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       st,
		aiClient:    aiClient,
		categorizer: cat,
		tracker:     trk,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetStore returns the container's store instance.
func (c *Container) GetStore() *store.Store {
	return c.store
}

// GetAIClient returns the container's AI client instance.
// Returns nil if AI is not enabled.
func (c *Container) GetAIClient() categorizer.AIClient {
	return c.aiClient
}

// GetTracker returns the container's tracker instance.
func (c *Container) GetTracker() *tracker.Tracker {
	return c.tracker
}

// Close flushes learned preferences and releases the AI client.
func (c *Container) Close() error {
	if err := c.categorizer.SavePreferences(); err != nil {
		c.logger.WithError(err).Warn("Failed to save learned preferences")
	}
	if closer, ok := c.aiClient.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close AI client")
		}
	}
	c.logger.Info("Container closed")
	return nil
}
