package tracker

import "fjacquet/finance-tracker/internal/models"

// IsDuplicate reports whether an identical expense is already stored:
// identical description (exact string), amount and date.
func (t *Tracker) IsDuplicate(expense models.Expense) bool {
	for _, existing := range t.expenses {
		if existing.Description == expense.Description &&
			existing.Amount.Equal(expense.Amount) &&
			existing.Date == expense.Date {
			return true
		}
	}
	return false
}

// removeDuplicates partitions a batch against the stored collection,
// returning the unique entries and the number dropped. The batch is not
// deduplicated against itself: two identical rows in one statement both
// survive. That is a deliberate scope boundary.
func (t *Tracker) removeDuplicates(batch []models.Expense) ([]models.Expense, int) {
	var unique []models.Expense
	for _, expense := range batch {
		if !t.IsDuplicate(expense) {
			unique = append(unique, expense)
		}
	}
	return unique, len(batch) - len(unique)
}
