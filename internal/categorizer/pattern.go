package categorizer

import (
	"regexp"
	"strings"

	"fjacquet/finance-tracker/internal/models"
)

// cardNumberPattern matches 16-digit grouped sequences as they appear in
// card payment descriptions.
var cardNumberPattern = regexp.MustCompile(`\d{4}\s*\d{4}\s*\d{4}\s*\d{4}`)

// urlTokens mark online purchases.
var urlTokens = []string{"www.", ".com", ".au"}

// PatternStrategy is the last local tier: structural patterns in the
// description rather than merchant keywords.
type PatternStrategy struct{}

// NewPatternStrategy creates the pattern-rule tier.
func NewPatternStrategy() *PatternStrategy { return &PatternStrategy{} }

// Name returns the strategy name.
func (s *PatternStrategy) Name() string { return "pattern" }

// Categorize applies the card-number and URL pattern rules.
func (s *PatternStrategy) Categorize(req Request) (models.Classification, bool) {
	desc := Normalize(req.Description)

	// Card payment
	if cardNumberPattern.MatchString(desc) {
		return models.Classification{
			Category:   models.CategoryBills,
			Confidence: models.ConfidenceMedium,
			Source:     models.SourcePattern,
		}, true
	}

	// Online purchase
	for _, token := range urlTokens {
		if strings.Contains(desc, token) {
			return models.Classification{
				Category:   models.CategoryShopping,
				Confidence: models.ConfidenceMedium,
				Source:     models.SourcePattern,
			}, true
		}
	}

	return models.Classification{}, false
}
