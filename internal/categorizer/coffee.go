package categorizer

import (
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/finance-tracker/internal/models"
)

// coffeeIndicators are checked before the general keyword database because
// coffee merchant names frequently collide with other categories' keywords
// ("bar", "house").
var coffeeIndicators = []string{
	"cafe", "coffee", "espresso", "barista", "roasters", "roastery", "brew", "bean", "beans",
	"latte", "cappuccino", "flat white", "macchiato", "mocha",
	"starbucks", "gloria jeans", "the coffee club", "zarraffa",
	"campos", "toby estate", "allpress", "single o", "pablo & rusty",
	"cup", "grind", "espresso bar", "coffee bar", "daily grind",
}

// strongCoffeeKeywords are unambiguous enough to classify on their own when
// amount context is available.
var strongCoffeeKeywords = []string{
	"cafe", "coffee", "espresso", "barista", "roasters", "brew", "bean", "beans",
	"latte", "cup", "grind",
}

// weakCoffeeIndicators are common in cafe names but not definitive; they only
// count when combined with a typical coffee-purchase amount and a short
// description.
var weakCoffeeIndicators = []string{
	"corner", "street", "house", "store", "co ", "co.", "brothers", "sisters",
}

// weakIndicatorMaxLength bounds description length for the weak-indicator
// check; long descriptions are rarely cafe dockets.
const weakIndicatorMaxLength = 40

// CoffeeStrategy is the coffee-detection tier of the cascade.
type CoffeeStrategy struct{}

// NewCoffeeStrategy creates the coffee-detection tier.
func NewCoffeeStrategy() *CoffeeStrategy { return &CoffeeStrategy{} }

// Name returns the strategy name.
func (s *CoffeeStrategy) Name() string { return "coffee-detection" }

// Categorize classifies descriptions containing a coffee indicator.
func (s *CoffeeStrategy) Categorize(req Request) (models.Classification, bool) {
	desc := Normalize(req.Description)
	for _, keyword := range coffeeIndicators {
		if strings.Contains(desc, keyword) {
			return models.Classification{
				Category:   models.CategoryCoffee,
				Confidence: models.ConfidenceHigh,
				Source:     models.SourceCoffee,
			}, true
		}
	}
	return models.Classification{}, false
}

// classifyCoffeeWithAmount is the amount-aware coffee heuristic used only
// during batch classification, where the purchase amount is known. A strong
// keyword is conclusive on its own; a weak indicator needs the amount to fall
// in the typical coffee range and a short description.
func classifyCoffeeWithAmount(req Request, minAmount, maxAmount decimal.Decimal) (models.Classification, bool) {
	desc := strings.ToLower(req.Description)

	for _, kw := range strongCoffeeKeywords {
		if strings.Contains(desc, kw) {
			return models.Classification{
				Category:   models.CategoryCoffee,
				Confidence: models.ConfidenceHigh,
				Source:     models.SourceCoffee,
			}, true
		}
	}

	if !req.HasAmount {
		return models.Classification{}, false
	}

	inRange := req.Amount.GreaterThanOrEqual(minAmount) && req.Amount.LessThanOrEqual(maxAmount)
	if !inRange || len(desc) >= weakIndicatorMaxLength {
		return models.Classification{}, false
	}

	for _, kw := range weakCoffeeIndicators {
		if strings.Contains(desc, kw) {
			return models.Classification{
				Category:   models.CategoryCoffee,
				Confidence: models.ConfidenceMedium,
				Source:     models.SourceCoffee,
			}, true
		}
	}

	return models.Classification{}, false
}
