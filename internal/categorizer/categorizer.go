// Package categorizer assigns categories to transaction descriptions using an
// ordered cascade of local strategies:
// 1. Learned preferences (exact, then substring match)
// 2. Coffee detection (checked before the general keyword database)
// 3. Keyword database lookup
// 4. Pattern rules (card numbers, URLs)
// with an external AI oracle as the batch fallback for anything unresolved.
package categorizer

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"fjacquet/finance-tracker/internal/logging"
	"fjacquet/finance-tracker/internal/models"
	"fjacquet/finance-tracker/internal/store"
)

// Options configures a Categorizer.
type Options struct {
	// ChunkSize is the number of unresolved transactions sent to the
	// oracle per request.
	ChunkSize int
	// FallbackCategory is assigned when the oracle fails or returns
	// unusable output.
	FallbackCategory string
	// CoffeeMinAmount and CoffeeMaxAmount bound the typical
	// coffee-purchase range for the amount-aware heuristic.
	CoffeeMinAmount float64
	CoffeeMaxAmount float64
	// CategoriesFile optionally overrides the built-in keyword database.
	CategoriesFile string
	// AutoLearn records high-confidence oracle results as preferences so
	// similar transactions skip the oracle next time.
	AutoLearn bool
}

// Categorizer holds the classification state: learned preferences, the
// strategy cascade and the oracle client.
type Categorizer struct {
	prefs      *LearnedPreferences
	strategies []CategorizationStrategy
	aiClient   AIClient
	store      *store.Store
	logger     logging.Logger

	chunkSize int
	fallback  string
	coffeeMin decimal.Decimal
	coffeeMax decimal.Decimal
	autoLearn bool

	mu         sync.Mutex
	dirtyPrefs bool
}

// NewCategorizer creates a Categorizer backed by the given oracle client and
// store. Learned preferences and any keyword database override are loaded
// once here; load failures degrade to empty state rather than failing.
func NewCategorizer(aiClient AIClient, st *store.Store, logger logging.Logger, opts Options) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 20
	}
	if opts.FallbackCategory == "" {
		opts.FallbackCategory = models.CategoryOther
	}
	if opts.CoffeeMaxAmount <= 0 {
		opts.CoffeeMinAmount = 3
		opts.CoffeeMaxAmount = 20
	}

	var entries []models.PreferenceEntry
	if st != nil {
		loaded, err := st.LoadPreferences()
		if err != nil {
			logger.WithError(err).Warn("Failed to load learned preferences")
		} else {
			entries = loaded
		}
	}
	prefs := NewLearnedPreferences(entries)

	var categories []models.CategoryConfig
	if opts.CategoriesFile != "" {
		loaded, err := store.LoadCategories(opts.CategoriesFile, logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to load categories file")
		} else {
			categories = loaded
		}
	}

	return &Categorizer{
		prefs: prefs,
		strategies: []CategorizationStrategy{
			NewLearnedStrategy(prefs),
			NewCoffeeStrategy(),
			NewKeywordStrategy(categories),
			NewPatternStrategy(),
		},
		aiClient:  aiClient,
		store:     st,
		logger:    logger,
		chunkSize: opts.ChunkSize,
		fallback:  opts.FallbackCategory,
		coffeeMin: decimal.NewFromFloat(opts.CoffeeMinAmount),
		coffeeMax: decimal.NewFromFloat(opts.CoffeeMaxAmount),
		autoLearn: opts.AutoLearn,
	}
}

// Classify runs the local cascade over a single description. The boolean is
// false when no local tier matched and the caller must escalate to the
// oracle (or fall back).
func (c *Categorizer) Classify(description string) (models.Classification, bool) {
	return c.classify(Request{Description: description})
}

func (c *Categorizer) classify(req Request) (models.Classification, bool) {
	if Normalize(req.Description) == "" {
		return models.Classification{}, false
	}
	for _, strategy := range c.strategies {
		if result, found := strategy.Categorize(req); found {
			c.logger.WithFields(
				logging.Field{Key: logging.FieldSource, Value: strategy.Name()},
				logging.Field{Key: logging.FieldCategory, Value: result.Category},
			).Debug("Classified locally")
			return result, true
		}
	}
	return models.Classification{}, false
}

// ClassifyBatch classifies a batch of transactions with amount context, as
// used during statement import. Unresolved transactions are escalated to the
// oracle in fixed-size chunks, sequentially. The returned slice is aligned to
// items; needsReview is true when the oracle failed and fallback guesses were
// used.
func (c *Categorizer) ClassifyBatch(ctx context.Context, items []BatchItem) ([]models.Classification, bool) {
	results := make([]models.Classification, len(items))
	var unresolved []int

	for i, item := range items {
		req := Request{Description: item.Description, Amount: item.Amount, HasAmount: true}

		// An exact learned match always takes precedence.
		if category, ok := c.prefs.Get(item.Description); ok {
			results[i] = models.Classification{
				Category:   category,
				Confidence: models.ConfidenceHigh,
				Source:     models.SourceLearned,
			}
			continue
		}

		// Amount-aware coffee heuristic, only available in batch mode.
		if result, found := classifyCoffeeWithAmount(req, c.coffeeMin, c.coffeeMax); found {
			results[i] = result
			continue
		}

		if result, found := c.classify(req); found {
			results[i] = result
			continue
		}

		// Fallback guess until the oracle answers.
		results[i] = models.Classification{
			Category:   c.fallback,
			Confidence: models.ConfidenceLow,
			Source:     models.SourceAI,
		}
		unresolved = append(unresolved, i)
	}

	if len(unresolved) == 0 {
		return results, false
	}

	needsReview := c.escalate(ctx, items, results, unresolved)
	return results, needsReview
}

// escalate sends unresolved transactions to the oracle chunk by chunk and
// merges answers back by position. It fails open: on any error the remaining
// transactions keep their fallback guess and the batch is flagged for manual
// review.
func (c *Categorizer) escalate(ctx context.Context, items []BatchItem, results []models.Classification, unresolved []int) bool {
	if c.aiClient == nil {
		c.logger.WithField(logging.FieldCount, len(unresolved)).Warn("No AI client configured, using fallback guesses")
		return true
	}

	for start := 0; start < len(unresolved); start += c.chunkSize {
		end := start + c.chunkSize
		if end > len(unresolved) {
			end = len(unresolved)
		}
		chunkIdx := unresolved[start:end]

		chunk := make([]BatchItem, len(chunkIdx))
		for j, i := range chunkIdx {
			chunk[j] = items[i]
		}

		answers, err := c.aiClient.CategorizeBatch(ctx, chunk)
		if err != nil {
			c.logger.WithError(err).Warn("Oracle categorization failed, results require manual review")
			return true
		}

		for _, answer := range answers {
			if answer.Index < 0 || answer.Index >= len(chunkIdx) || answer.Category == "" {
				continue
			}
			i := chunkIdx[answer.Index]
			results[i] = models.Classification{
				Category:   answer.Category,
				Confidence: answer.Confidence,
				Source:     models.SourceAI,
			}
			if c.autoLearn && answer.Confidence == models.ConfidenceHigh {
				c.Learn(items[i].Description, answer.Category)
			}
		}
	}

	return false
}

// Learn records a user categorization choice so future classifications of the
// same merchant resolve locally.
func (c *Categorizer) Learn(description, category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefs.Set(description, category)
	c.dirtyPrefs = true
}

// SavePreferences persists the learned preferences if they changed.
func (c *Categorizer) SavePreferences() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirtyPrefs || c.store == nil {
		return nil
	}
	if err := c.store.SavePreferences(c.prefs.Entries()); err != nil {
		return err
	}
	c.dirtyPrefs = false
	return nil
}

// Preferences exposes the learned preference map, mainly for commands that
// report on it and for tests.
func (c *Categorizer) Preferences() *LearnedPreferences {
	return c.prefs
}
