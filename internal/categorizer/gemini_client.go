package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fjacquet/finance-tracker/internal/logging"
	"fjacquet/finance-tracker/internal/models"
	"fjacquet/finance-tracker/internal/parsererror"
)

// GeminiClient implements the AIClient interface against the Google Gemini
// API. One request carries a whole chunk of transactions; the model is asked
// for a positional JSON array so results can be merged back by index.
type GeminiClient struct {
	apiKey     string
	modelName  string
	timeout    time.Duration
	categories []string
	log        logging.Logger

	mu     sync.Mutex
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a Gemini-backed categorization client. The client
// is lazy: no connection is made until the first batch is submitted.
func NewGeminiClient(apiKey, modelName string, timeoutSeconds int, logger logging.Logger) *GeminiClient {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	return &GeminiClient{
		apiKey:     apiKey,
		modelName:  modelName,
		timeout:    time.Duration(timeoutSeconds) * time.Second,
		categories: models.ExpenseCategories,
		log:        logger,
	}
}

// ensureModel initializes the underlying genai client on first use.
func (c *GeminiClient) ensureModel(ctx context.Context) (*genai.GenerativeModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model != nil {
		return c.model, nil
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	c.model = client.GenerativeModel(c.modelName)
	return c.model, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	c.model = nil
	return err
}

// CategorizeBatch submits one chunk of transactions and returns the parsed
// positional results.
func (c *GeminiClient) CategorizeBatch(ctx context.Context, items []BatchItem) ([]BatchResult, error) {
	if len(items) == 0 {
		return nil, nil
	}

	model, err := c.ensureModel(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := c.buildBatchPrompt(items)
	c.log.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "gemini_categorization"},
		logging.Field{Key: logging.FieldCount, Value: len(items)},
	).Debug("Submitting batch to Gemini")

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &parsererror.CategorizationError{Strategy: c.modelName, Err: fmt.Errorf("no response candidates")}
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	results, err := parseBatchResponse(responseText)
	if err != nil {
		return nil, err
	}
	if len(results) != len(items) {
		return nil, &parsererror.CategorizationError{Strategy: c.modelName, Err: fmt.Errorf("expected %d results, got %d", len(items), len(results))}
	}
	return results, nil
}

// buildBatchPrompt embeds the fixed category list, disambiguation guidance
// and the chunk's transactions in a single prompt.
func (c *GeminiClient) buildBatchPrompt(items []BatchItem) string {
	var lines []string
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d: %q ($%s)", i, item.Description, item.Amount.StringFixed(2)))
	}

	return fmt.Sprintf(`You are categorizing bank transactions. Many descriptions are vague like "Card Purchase", "EFTPOS", "Payment", or company names you don't recognize.

Categories: %s

COFFEE DETECTION RULES:
- Amounts $3-$20 at cafes/coffee shops -> Coffee
- Keywords: cafe, coffee, espresso, barista, beans, roasters -> Coffee
- Generic small purchases without clear indicators -> ask yourself if it could be coffee

For unclear transactions:
- Generic descriptions like "Card Purchase", "Payment", "EFTPOS" -> Shopping (medium confidence)
- Business names you don't recognize -> Shopping (low confidence)
- Utility/phone companies -> Bills (high confidence)
- Streaming services, gym memberships, anything with "subscription" or "membership" -> Subscriptions & Memberships
- Rent payments, mortgage payments, real estate -> Rent & Mortgage
- Childcare, school fees, kids activities, toys -> Kids
- Gas stations, mechanics -> Transport
- Supermarkets (Woolworths, Coles, IGA) -> Supermarket
- Cafes, coffee shops -> Coffee
- Fast food, restaurants, takeaway, bars, pubs -> Eating & Drinking Out
- Bottle shops (Dan Murphy's, BWS) -> Alcohol
- Hotels, flights, travel -> Holiday
- Utilities and insurance -> Bills

Transactions to categorize:
%s

Respond ONLY with a JSON array (no markdown):
[{"index": 0, "category": "CategoryName", "confidence": "high/medium/low"}, ...]

Include ALL %d transactions.`,
		strings.Join(c.categories, ", "),
		strings.Join(lines, "\n"),
		len(items))
}

// parseBatchResponse strips any markdown fencing the model wraps around its
// output and parses the positional result array.
func parseBatchResponse(text string) ([]BatchResult, error) {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var results []BatchResult
	if err := json.Unmarshal([]byte(clean), &results); err != nil {
		return nil, &parsererror.CategorizationError{Strategy: "gemini", Err: err}
	}
	return results, nil
}
