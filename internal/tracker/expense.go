package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/finance-tracker/internal/categorizer"
	"fjacquet/finance-tracker/internal/logging"
	"fjacquet/finance-tracker/internal/models"
)

// searchMinLength is the shortest query SearchExpenses will run.
const searchMinLength = 2

// AddExpense validates and stores a single manually entered expense. It
// refuses exact duplicates of an already stored expense.
func (t *Tracker) AddExpense(expense models.Expense) error {
	if !expense.Valid() {
		return fmt.Errorf("expense must have a description and a positive amount")
	}
	if expense.ID == "" {
		expense.ID = models.NewID()
	}
	if t.IsDuplicate(expense) {
		return ErrDuplicate
	}

	t.snapshotExpenses()
	t.expenses = append(t.expenses, expense)
	t.saveExpenses()

	t.logger.WithFields(
		logging.Field{Key: logging.FieldDescription, Value: expense.Description},
		logging.Field{Key: logging.FieldCategory, Value: expense.Category},
	).Info("Expense added")
	return nil
}

// AddIncome validates and stores a single income entry.
func (t *Tracker) AddIncome(income models.Income) error {
	if !income.Valid() {
		return fmt.Errorf("income must have a source and a positive amount")
	}
	if income.ID == "" {
		income.ID = models.NewID()
	}
	if income.Category == "" {
		income.Category = models.DefaultIncomeCategory
	}

	t.snapshotIncome()
	t.income = append(t.income, income)
	t.saveIncome()

	t.logger.WithField(logging.FieldDescription, income.Source).Info("Income added")
	return nil
}

// DeleteExpense removes one expense by id.
func (t *Tracker) DeleteExpense(id string) error {
	idx := -1
	for i := range t.expenses {
		if t.expenses[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	t.snapshotExpenses()
	t.expenses = append(t.expenses[:idx], t.expenses[idx+1:]...)
	t.saveExpenses()

	t.logger.WithField("id", id).Info("Expense deleted")
	return nil
}

// UpdateExpenseCategory sets the category of one expense and records the
// choice as a learned preference.
func (t *Tracker) UpdateExpenseCategory(id, category string) error {
	expense, ok := t.findExpense(id)
	if !ok {
		return ErrNotFound
	}
	t.snapshotExpenses()
	t.updateCategories([]string{id}, category)
	t.learn(expense.Description, category)
	return nil
}

// SearchExpenses returns stored expenses whose description contains the
// query, case-insensitively. Queries shorter than two characters match
// nothing.
func (t *Tracker) SearchExpenses(query string) []models.Expense {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < searchMinLength {
		return nil
	}
	var matches []models.Expense
	for _, e := range t.expenses {
		if strings.Contains(strings.ToLower(e.Description), q) {
			matches = append(matches, e)
		}
	}
	return matches
}

// BulkChangeCategory re-categorizes every expense matching the search query
// and learns the new category from the first match.
func (t *Tracker) BulkChangeCategory(query, category string) (int, error) {
	matches := t.SearchExpenses(query)
	if len(matches) == 0 {
		return 0, fmt.Errorf("no expenses match %q", query)
	}

	ids := make([]string, len(matches))
	for i, e := range matches {
		ids[i] = e.ID
	}

	t.snapshotExpenses()
	t.updateCategories(ids, category)
	t.learn(matches[0].Description, category)

	t.logger.WithFields(
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldCount, Value: len(ids)},
	).Info("Bulk category change applied")
	return len(ids), nil
}

// RecategorizeAll re-runs the local rules over every stored expense. Legacy
// category names are migrated first, then rows whose rules now disagree with
// the stored category are rewritten. Returns the number of changed rows.
func (t *Tracker) RecategorizeAll() int {
	changed := 0
	updated := make([]models.Expense, len(t.expenses))
	copy(updated, t.expenses)

	for i := range updated {
		switch updated[i].Category {
		case models.LegacyCategoryEatingOut, models.LegacyCategoryDrinkingOut:
			updated[i].Category = models.CategoryEatingOut
			changed++
			continue
		}
		if res, ok := t.categorizer.Classify(updated[i].Description); ok {
			if res.Category != updated[i].Category {
				updated[i].Category = res.Category
				updated[i].Confidence = res.Confidence
				changed++
			}
		}
	}

	if changed == 0 {
		return 0
	}

	t.snapshotExpenses()
	t.expenses = updated
	t.saveExpenses()

	t.logger.WithField(logging.FieldCount, changed).Info("Expenses re-categorized")
	return changed
}

// ClassifySingle classifies one description through the full cascade,
// including a single-item oracle call when the local rules miss.
func (t *Tracker) ClassifySingle(ctx context.Context, description string, amount decimal.Decimal) models.Classification {
	results, _ := t.categorizer.ClassifyBatch(ctx, []categorizer.BatchItem{
		{Description: description, Amount: amount},
	})
	return results[0]
}
