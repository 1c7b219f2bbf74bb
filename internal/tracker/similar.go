package tracker

import (
	"strings"

	"fjacquet/finance-tracker/internal/categorizer"
	"fjacquet/finance-tracker/internal/models"
)

// merchantTokenMinLength is the floor below which a merchant token is too
// short to be a useful identity proxy. Short tokens can still false-positive
// against unrelated longer descriptions; candidates are not ranked. That
// matching behavior is load-bearing for existing learned data and is kept
// as-is.
const merchantTokenMinLength = 3

// MerchantToken extracts a coarse merchant-identity proxy from a normalized
// description: the part before the first '(' or '-', trimmed.
func MerchantToken(description string) string {
	desc := categorizer.Normalize(description)
	if idx := strings.IndexAny(desc, "(-"); idx >= 0 {
		desc = desc[:idx]
	}
	return strings.TrimSpace(desc)
}

// FindSimilar returns the stored expenses sharing a merchant with the query
// description: an exact normalized match, or a merchant token longer than
// three characters from either side contained in the other's full normalized
// description. The relation is used only pairwise against one anchor; it is
// not transitive and is never chained.
func (t *Tracker) FindSimilar(description string) []models.Expense {
	query := categorizer.Normalize(description)
	queryToken := MerchantToken(description)

	var similar []models.Expense
	for _, expense := range t.expenses {
		stored := categorizer.Normalize(expense.Description)
		if stored == query {
			similar = append(similar, expense)
			continue
		}

		storedToken := MerchantToken(expense.Description)
		if len(queryToken) > merchantTokenMinLength && strings.Contains(stored, queryToken) {
			similar = append(similar, expense)
			continue
		}
		if len(storedToken) > merchantTokenMinLength && strings.Contains(query, storedToken) {
			similar = append(similar, expense)
		}
	}
	return similar
}

// BulkUpdateProposal is the transient result of a category-change request:
// the target expense, the new category, and the other stored expenses judged
// similar by merchant matching. The user resolves it with ApplyToAll,
// ApplyToOne, or by dropping it.
type BulkUpdateProposal struct {
	Expense     models.Expense
	NewCategory string
	Similar     []models.Expense
}

// ProposeCategoryChange prepares a category change for the given expense.
// When other similar expenses carry a different category the proposal lists
// them so the caller can offer a bulk update; otherwise Similar is empty and
// ApplyToOne is the only sensible resolution.
func (t *Tracker) ProposeCategoryChange(id, newCategory string) (*BulkUpdateProposal, error) {
	expense, ok := t.findExpense(id)
	if !ok {
		return nil, ErrNotFound
	}

	var others []models.Expense
	for _, similar := range t.FindSimilar(expense.Description) {
		if similar.ID != id && similar.Category != newCategory {
			others = append(others, similar)
		}
	}

	return &BulkUpdateProposal{
		Expense:     expense,
		NewCategory: newCategory,
		Similar:     others,
	}, nil
}

// ApplyToOne changes only the target expense's category and learns the
// preference.
func (t *Tracker) ApplyToOne(p *BulkUpdateProposal) {
	t.snapshotExpenses()
	t.updateCategories([]string{p.Expense.ID}, p.NewCategory)
	t.learn(p.Expense.Description, p.NewCategory)
}

// ApplyToAll changes the target and every similar expense in one mutation
// and learns the preference.
func (t *Tracker) ApplyToAll(p *BulkUpdateProposal) int {
	ids := []string{p.Expense.ID}
	for _, e := range p.Similar {
		ids = append(ids, e.ID)
	}
	t.snapshotExpenses()
	t.updateCategories(ids, p.NewCategory)
	t.learn(p.Expense.Description, p.NewCategory)
	return len(ids)
}

func (t *Tracker) findExpense(id string) (models.Expense, bool) {
	for _, e := range t.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return models.Expense{}, false
}

// updateCategories rewrites the category on every listed id and persists the
// collection.
func (t *Tracker) updateCategories(ids []string, category string) {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	updated := make([]models.Expense, len(t.expenses))
	for i, e := range t.expenses {
		if idSet[e.ID] {
			e.Category = category
		}
		updated[i] = e
	}
	t.expenses = updated
	t.saveExpenses()
}
