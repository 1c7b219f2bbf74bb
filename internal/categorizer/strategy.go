package categorizer

import (
	"github.com/shopspring/decimal"

	"fjacquet/finance-tracker/internal/models"
)

// Request carries the inputs available to a categorization strategy. During a
// statement import the transaction amount is known and HasAmount is true;
// single-entry classification has no amount context.
type Request struct {
	Description string
	Amount      decimal.Decimal
	HasAmount   bool
}

// CategorizationStrategy defines one tier of the local classification
// cascade. Strategies are pure functions of the request and the current
// learned-preference/keyword state; anything requiring a network call lives
// behind AIClient instead.
type CategorizationStrategy interface {
	// Categorize attempts to classify the request. The boolean reports
	// whether this tier produced a match; a false return means the next
	// tier in the cascade is consulted.
	Categorize(req Request) (models.Classification, bool)

	// Name returns the name of this strategy for logging and debugging.
	Name() string
}
