package categorizer

import (
	"context"

	"github.com/shopspring/decimal"
)

// BatchItem is one transaction submitted to the external categorization
// service.
type BatchItem struct {
	Description string
	Amount      decimal.Decimal
}

// BatchResult is one entry of the service's response array, aligned
// positionally to the submitted chunk.
type BatchResult struct {
	Index      int    `json:"index"`
	Category   string `json:"category"`
	Confidence string `json:"confidence"`
}

// AIClient defines the interface for the external categorization service.
// The service is an opaque best-effort oracle: callers must treat errors and
// malformed output as "no answer", never as a reason to abort a batch.
type AIClient interface {
	// CategorizeBatch submits one chunk of transactions and returns the
	// results in chunk order.
	CategorizeBatch(ctx context.Context, items []BatchItem) ([]BatchResult, error)
}
