package tracker

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/finance-tracker/internal/categorizer"
	"fjacquet/finance-tracker/internal/common"
	"fjacquet/finance-tracker/internal/logging"
	"fjacquet/finance-tracker/internal/models"
	"fjacquet/finance-tracker/internal/statement"
)

// importState tracks where a pending import sits in its lifecycle.
type importState int

const (
	stateStaged importState = iota
	stateCommitted
	stateDiscarded
)

// ErrNotStaged is returned when a pending import is mutated or resolved
// after it has already been committed or discarded.
var ErrNotStaged = errors.New("import batch is no longer staged")

// PendingImport is a staged, not-yet-committed import batch. Rows may only
// have their category overridden; no row can be removed individually. The
// batch resolves by full commit or full discard.
type PendingImport struct {
	Expenses []models.Expense
	Income   []models.Income

	// DuplicateCount is the number of expense rows dropped because an
	// identical expense was already stored.
	DuplicateCount int
	// NeedsReview is true when the oracle failed and fallback guesses
	// were assigned.
	NeedsReview bool

	state importState
}

// ImportStatement runs the whole ingestion pipeline on a statement file and
// returns the staged batch for review.
func (t *Tracker) ImportStatement(ctx context.Context, path string) (*PendingImport, error) {
	raws, err := statement.ParseFile(path, t.logger)
	if err != nil {
		return nil, err
	}
	return t.stage(ctx, raws)
}

// ImportStatementText runs the pipeline on raw statement text.
func (t *Tracker) ImportStatementText(ctx context.Context, raw string) (*PendingImport, error) {
	raws, err := statement.Parse(raw, t.logger)
	if err != nil {
		return nil, err
	}
	return t.stage(ctx, raws)
}

// stage splits raw transactions by sign, deduplicates the expense side,
// classifies expenses in batch mode and stages the result.
func (t *Tracker) stage(ctx context.Context, raws []models.RawTransaction) (*PendingImport, error) {
	if len(raws) == 0 {
		return nil, fmt.Errorf("no valid transactions found in statement")
	}

	var expenses []models.Expense
	var income []models.Income
	for _, raw := range raws {
		if raw.Amount.IsPositive() {
			income = append(income, models.Income{
				ID:       models.NewID(),
				Source:   raw.Description,
				Amount:   raw.Amount,
				Date:     raw.Date,
				Category: models.DefaultIncomeCategory,
			})
		} else if raw.Amount.IsNegative() {
			expenses = append(expenses, models.Expense{
				ID:          models.NewID(),
				Description: raw.Description,
				Amount:      raw.Amount.Abs(),
				Date:        raw.Date,
			})
		}
	}

	// Income has no duplicate check in this design.
	unique, duplicateCount := t.removeDuplicates(expenses)

	needsReview := false
	if len(unique) > 0 {
		items := make([]categorizer.BatchItem, len(unique))
		for i, e := range unique {
			items[i] = categorizer.BatchItem{Description: e.Description, Amount: e.Amount}
		}

		var results []models.Classification
		results, needsReview = t.categorizer.ClassifyBatch(ctx, items)
		for i := range unique {
			unique[i].Category = results[i].Category
			unique[i].Confidence = results[i].Confidence
		}
	}

	t.logger.WithFields(
		logging.Field{Key: "expenses", Value: len(unique)},
		logging.Field{Key: "income", Value: len(income)},
		logging.Field{Key: "duplicates", Value: duplicateCount},
	).Info("Statement staged for review")

	return &PendingImport{
		Expenses:       unique,
		Income:         income,
		DuplicateCount: duplicateCount,
		NeedsReview:    needsReview,
		state:          stateStaged,
	}, nil
}

// SetExpenseCategory overrides the category of one staged expense row.
func (p *PendingImport) SetExpenseCategory(id, category string) error {
	if p.state != stateStaged {
		return ErrNotStaged
	}
	for i := range p.Expenses {
		if p.Expenses[i].ID == id {
			p.Expenses[i].Category = category
			return nil
		}
	}
	return ErrNotFound
}

// SetIncomeCategory overrides the category of one staged income row.
func (p *PendingImport) SetIncomeCategory(id, category string) error {
	if p.state != stateStaged {
		return ErrNotStaged
	}
	for i := range p.Income {
		if p.Income[i].ID == id {
			p.Income[i].Category = category
			return nil
		}
	}
	return ErrNotFound
}

// CommitImport appends the staged lists to the permanent collections and
// persists them. Expenses and income are pushed and persisted independently;
// a failure on one side leaves the other committed. The expense and income
// snapshots are undo-logged separately.
func (t *Tracker) CommitImport(p *PendingImport) error {
	if p.state != stateStaged {
		return ErrNotStaged
	}

	if len(p.Expenses) > 0 {
		t.snapshotExpenses()
		t.expenses = append(t.expenses, p.Expenses...)
		t.saveExpenses()
	}
	if len(p.Income) > 0 {
		t.snapshotIncome()
		t.income = append(t.income, p.Income...)
		t.saveIncome()
	}

	t.logger.WithFields(
		logging.Field{Key: "expenses", Value: len(p.Expenses)},
		logging.Field{Key: "income", Value: len(p.Income)},
	).Info("Import committed")

	p.state = stateCommitted
	p.Expenses = nil
	p.Income = nil
	return nil
}

// DiscardImport clears the staged lists without touching permanent state.
func (t *Tracker) DiscardImport(p *PendingImport) {
	if p.state != stateStaged {
		return
	}
	p.Expenses = nil
	p.Income = nil
	p.state = stateDiscarded
	t.logger.Info("Import discarded")
}

// ImportExportedCSV merges expense rows from a previously exported CSV back
// into the collection, restoring data from a backup. Rows already stored are
// dropped by the duplicate detector; rows failing the storage invariant are
// skipped with a warning. The merge commits directly, there is no staging.
func (t *Tracker) ImportExportedCSV(path string) (added, skipped int, err error) {
	rows, err := common.ReadCSVFile[models.Expense](path)
	if err != nil {
		return 0, 0, err
	}

	var fresh []models.Expense
	for _, row := range rows {
		if !row.Valid() {
			t.logger.WithField("description", row.Description).Warn("Skipping invalid exported row")
			skipped++
			continue
		}
		if row.ID == "" {
			row.ID = models.NewID()
		}
		if t.IsDuplicate(row) {
			skipped++
			continue
		}
		fresh = append(fresh, row)
	}

	if len(fresh) > 0 {
		t.snapshotExpenses()
		t.expenses = append(t.expenses, fresh...)
		t.saveExpenses()
	}

	t.logger.WithFields(
		logging.Field{Key: "added", Value: len(fresh)},
		logging.Field{Key: "skipped", Value: skipped},
	).Info("Exported CSV merged")
	return len(fresh), skipped, nil
}
