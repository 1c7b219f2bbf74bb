package tracker

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"fjacquet/finance-tracker/internal/categorizer"
	"fjacquet/finance-tracker/internal/common"
	"fjacquet/finance-tracker/internal/logging"
	"fjacquet/finance-tracker/internal/models"
	"fjacquet/finance-tracker/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) *Tracker {
	st := store.New(t.TempDir(), logging.NewMockLogger())
	cat := categorizer.NewCategorizer(nil, st, logging.NewMockLogger(), categorizer.Options{})
	trk := New(st, cat, logging.NewMockLogger(), 2)
	trk.Load(context.Background())
	return trk
}

func testExpense(description string, amount float64) models.Expense {
	return models.Expense{
		ID:          models.NewID(),
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Date:        "2024-01-22",
		Category:    models.CategoryOther,
	}
}

func TestAddExpense(t *testing.T) {
	trk := newTestTracker(t)

	require.NoError(t, trk.AddExpense(testExpense("Woolworths Metro", 42.50)))
	require.Len(t, trk.Expenses(), 1)

	// Reload from disk to confirm persistence.
	fresh := New(trk.store, trk.categorizer, logging.NewMockLogger(), 2)
	fresh.Load(context.Background())
	assert.Len(t, fresh.Expenses(), 1)
}

func TestAddExpense_RejectsDuplicate(t *testing.T) {
	trk := newTestTracker(t)

	require.NoError(t, trk.AddExpense(testExpense("Woolworths Metro", 42.50)))

	err := trk.AddExpense(testExpense("Woolworths Metro", 42.50))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Len(t, trk.Expenses(), 1)

	// Same description but different amount is not a duplicate.
	require.NoError(t, trk.AddExpense(testExpense("Woolworths Metro", 15.00)))
	assert.Len(t, trk.Expenses(), 2)
}

func TestAddExpense_RejectsInvalid(t *testing.T) {
	trk := newTestTracker(t)

	err := trk.AddExpense(models.Expense{Description: "", Amount: decimal.NewFromInt(5)})
	assert.Error(t, err)

	err = trk.AddExpense(models.Expense{Description: "No Amount", Amount: decimal.Zero})
	assert.Error(t, err)
}

func TestDeleteExpense(t *testing.T) {
	trk := newTestTracker(t)

	expense := testExpense("Woolworths Metro", 42.50)
	require.NoError(t, trk.AddExpense(expense))

	require.NoError(t, trk.DeleteExpense(expense.ID))
	assert.Empty(t, trk.Expenses())

	assert.ErrorIs(t, trk.DeleteExpense("missing"), ErrNotFound)
}

func TestImportStatementText(t *testing.T) {
	trk := newTestTracker(t)

	raw := "Date,Description,Amount\n" +
		"22/01/2024,Woolworths Metro,-42.50\n" +
		"23/01/2024,Monthly Salary,2525.64\n"

	pending, err := trk.ImportStatementText(context.Background(), raw)
	require.NoError(t, err)

	require.Len(t, pending.Expenses, 1)
	assert.Equal(t, models.CategorySupermarket, pending.Expenses[0].Category)
	assert.True(t, pending.Expenses[0].Amount.IsPositive())

	require.Len(t, pending.Income, 1)
	assert.Equal(t, "Monthly Salary", pending.Income[0].Source)
	assert.Equal(t, models.DefaultIncomeCategory, pending.Income[0].Category)

	// Nothing is committed while staged.
	assert.Empty(t, trk.Expenses())
	assert.Empty(t, trk.Income())

	require.NoError(t, trk.CommitImport(pending))
	assert.Len(t, trk.Expenses(), 1)
	assert.Len(t, trk.Income(), 1)
}

func TestImportTwiceDropsDuplicates(t *testing.T) {
	trk := newTestTracker(t)

	raw := "Date,Description,Amount\n22/01/2024,Woolworths Metro,-42.50\n"

	first, err := trk.ImportStatementText(context.Background(), raw)
	require.NoError(t, err)
	require.NoError(t, trk.CommitImport(first))

	second, err := trk.ImportStatementText(context.Background(), raw)
	require.NoError(t, err)
	assert.Empty(t, second.Expenses)
	assert.Equal(t, 1, second.DuplicateCount)
}

func TestDiscardImport(t *testing.T) {
	trk := newTestTracker(t)

	raw := "Date,Description,Amount\n22/01/2024,Woolworths Metro,-42.50\n"
	pending, err := trk.ImportStatementText(context.Background(), raw)
	require.NoError(t, err)

	trk.DiscardImport(pending)
	assert.Empty(t, trk.Expenses())
	assert.Empty(t, pending.Expenses)

	// A discarded batch cannot be committed.
	assert.ErrorIs(t, trk.CommitImport(pending), ErrNotStaged)
}

func TestImportExportedCSV(t *testing.T) {
	trk := newTestTracker(t)

	require.NoError(t, trk.AddExpense(testExpense("Woolworths Metro", 42.50)))
	require.NoError(t, trk.AddExpense(testExpense("Campos Coffee", 4.50)))

	path := filepath.Join(t.TempDir(), "expenses.csv")
	require.NoError(t, common.WriteExpensesToCSV(trk.Expenses(), path))

	// Restoring into an empty tracker brings everything back.
	restored := newTestTracker(t)
	added, skipped, err := restored.ImportExportedCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, skipped)
	assert.Len(t, restored.Expenses(), 2)

	// Merging the same file again only finds duplicates.
	added, skipped, err = restored.ImportExportedCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 2, skipped)
	assert.Len(t, restored.Expenses(), 2)

	// The merge is undo-logged like any other mutation.
	kind, ok := restored.Undo()
	require.True(t, ok)
	assert.Equal(t, UndoExpense, kind)
	assert.Empty(t, restored.Expenses())
}

func TestImportExportedCSV_MissingFile(t *testing.T) {
	trk := newTestTracker(t)

	_, _, err := trk.ImportExportedCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestPendingImport_CategoryOverrides(t *testing.T) {
	trk := newTestTracker(t)

	raw := "Date,Description,Amount\n" +
		"22/01/2024,Woolworths Metro,-42.50\n" +
		"23/01/2024,Monthly Salary,2525.64\n"
	pending, err := trk.ImportStatementText(context.Background(), raw)
	require.NoError(t, err)

	require.NoError(t, pending.SetExpenseCategory(pending.Expenses[0].ID, models.CategoryBills))
	assert.Equal(t, models.CategoryBills, pending.Expenses[0].Category)

	require.NoError(t, pending.SetIncomeCategory(pending.Income[0].ID, "Freelance"))
	assert.Equal(t, "Freelance", pending.Income[0].Category)

	assert.ErrorIs(t, pending.SetExpenseCategory("missing", models.CategoryBills), ErrNotFound)

	require.NoError(t, trk.CommitImport(pending))
	assert.ErrorIs(t, pending.SetExpenseCategory("any", models.CategoryBills), ErrNotStaged)
	assert.Equal(t, models.CategoryBills, trk.Expenses()[0].Category)
}

func TestUndo_EmptyLog(t *testing.T) {
	trk := newTestTracker(t)

	_, ok := trk.Undo()
	assert.False(t, ok)
}

func TestUndo_RestoresSnapshot(t *testing.T) {
	trk := newTestTracker(t)

	require.NoError(t, trk.AddExpense(testExpense("Woolworths Metro", 42.50)))
	require.Len(t, trk.Expenses(), 1)

	kind, ok := trk.Undo()
	require.True(t, ok)
	assert.Equal(t, UndoExpense, kind)
	assert.Empty(t, trk.Expenses())
}

func TestUndo_CapacityEvictsOldest(t *testing.T) {
	trk := newTestTracker(t)

	for i := 0; i < 11; i++ {
		require.NoError(t, trk.AddExpense(testExpense(fmt.Sprintf("Expense %d", i), 10)))
	}
	assert.Equal(t, undoCapacity, trk.UndoDepth())

	// Unwinding the full log lands on the state after the first add, whose
	// snapshot was evicted.
	for trk.UndoDepth() > 0 {
		_, ok := trk.Undo()
		require.True(t, ok)
	}
	require.Len(t, trk.Expenses(), 1)
	assert.Equal(t, "Expense 0", trk.Expenses()[0].Description)
}

func TestUndo_IncomeSnapshot(t *testing.T) {
	trk := newTestTracker(t)

	require.NoError(t, trk.AddIncome(models.Income{
		Source: "Monthly Salary",
		Amount: decimal.NewFromFloat(2525.64),
		Date:   "2024-01-23",
	}))
	require.Len(t, trk.Income(), 1)
	assert.Equal(t, models.DefaultIncomeCategory, trk.Income()[0].Category)

	kind, ok := trk.Undo()
	require.True(t, ok)
	assert.Equal(t, UndoIncome, kind)
	assert.Empty(t, trk.Income())
}

func TestUndo_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	st := store.New(dir, logging.NewMockLogger())
	cat := categorizer.NewCategorizer(nil, st, logging.NewMockLogger(), categorizer.Options{})

	trk := New(st, cat, logging.NewMockLogger(), 2)
	trk.Load(context.Background())
	require.NoError(t, trk.AddExpense(testExpense("Woolworths Metro", 42.50)))

	// A fresh tracker over the same data directory can still roll back.
	fresh := New(store.New(dir, logging.NewMockLogger()), cat, logging.NewMockLogger(), 2)
	fresh.Load(context.Background())
	require.Equal(t, 1, fresh.UndoDepth())

	kind, ok := fresh.Undo()
	require.True(t, ok)
	assert.Equal(t, UndoExpense, kind)
	assert.Empty(t, fresh.Expenses())

	// The pop is persisted too; the entry is consumed, not replayed.
	again := New(store.New(dir, logging.NewMockLogger()), cat, logging.NewMockLogger(), 2)
	again.Load(context.Background())
	assert.Equal(t, 0, again.UndoDepth())
	assert.Empty(t, again.Expenses())
}

func TestMerchantToken(t *testing.T) {
	assert.Equal(t, "mcdonald's", MerchantToken("McDonald's (Sydney CBD)"))
	assert.Equal(t, "uber eats", MerchantToken("UBER EATS - Order 4411"))
	assert.Equal(t, "bws", MerchantToken("BWS"))
}

func TestFindSimilar(t *testing.T) {
	trk := newTestTracker(t)

	require.NoError(t, trk.AddExpense(testExpense("UBER EATS SYDNEY", 25)))
	require.NoError(t, trk.AddExpense(testExpense("BWS Alexandria", 30)))

	similar := trk.FindSimilar("uber eats")
	require.Len(t, similar, 1)
	assert.Equal(t, "UBER EATS SYDNEY", similar[0].Description)

	// No shared merchant token, no match.
	assert.Empty(t, trk.FindSimilar("BUNNINGS"))
}

func TestProposeCategoryChange_ApplyToAll(t *testing.T) {
	trk := newTestTracker(t)

	anchor := testExpense("Uber Eats - Order 1", 25)
	require.NoError(t, trk.AddExpense(anchor))
	require.NoError(t, trk.AddExpense(testExpense("Uber Eats - Order 2", 30)))
	require.NoError(t, trk.AddExpense(testExpense("BWS Alexandria", 40)))

	proposal, err := trk.ProposeCategoryChange(anchor.ID, models.CategoryEatingOut)
	require.NoError(t, err)
	require.Len(t, proposal.Similar, 1)

	count := trk.ApplyToAll(proposal)
	assert.Equal(t, 2, count)

	for _, e := range trk.Expenses() {
		if e.Description == "BWS Alexandria" {
			assert.Equal(t, models.CategoryOther, e.Category)
		} else {
			assert.Equal(t, models.CategoryEatingOut, e.Category)
		}
	}

	// The choice was learned for future classification.
	category, ok := trk.Categorizer().Preferences().Get("Uber Eats - Order 1")
	require.True(t, ok)
	assert.Equal(t, models.CategoryEatingOut, category)
}

func TestSearchExpenses(t *testing.T) {
	trk := newTestTracker(t)

	require.NoError(t, trk.AddExpense(testExpense("Woolworths Metro", 42.50)))
	require.NoError(t, trk.AddExpense(testExpense("Woolworths Town Hall", 18.20)))
	require.NoError(t, trk.AddExpense(testExpense("BWS Alexandria", 30)))

	assert.Len(t, trk.SearchExpenses("woolworths"), 2)
	assert.Len(t, trk.SearchExpenses("METRO"), 1)

	// Queries below two characters match nothing.
	assert.Empty(t, trk.SearchExpenses("w"))
	assert.Empty(t, trk.SearchExpenses("  "))
}

func TestBulkChangeCategory(t *testing.T) {
	trk := newTestTracker(t)

	require.NoError(t, trk.AddExpense(testExpense("Woolworths Metro", 42.50)))
	require.NoError(t, trk.AddExpense(testExpense("Woolworths Town Hall", 18.20)))

	count, err := trk.BulkChangeCategory("woolworths", models.CategorySupermarket)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, e := range trk.Expenses() {
		assert.Equal(t, models.CategorySupermarket, e.Category)
	}

	_, err = trk.BulkChangeCategory("no such merchant", models.CategoryBills)
	assert.Error(t, err)
}

func TestUpdateExpenseCategory_LearnsPreference(t *testing.T) {
	trk := newTestTracker(t)

	expense := testExpense("Zorp Holdings", 99)
	require.NoError(t, trk.AddExpense(expense))

	require.NoError(t, trk.UpdateExpenseCategory(expense.ID, models.CategoryBills))
	assert.Equal(t, models.CategoryBills, trk.Expenses()[0].Category)

	category, ok := trk.Categorizer().Preferences().Get("zorp holdings")
	require.True(t, ok)
	assert.Equal(t, models.CategoryBills, category)

	assert.ErrorIs(t, trk.UpdateExpenseCategory("missing", models.CategoryBills), ErrNotFound)
}

func TestRecategorizeAll(t *testing.T) {
	trk := newTestTracker(t)

	legacy := testExpense("Zorp Alpha", 50)
	legacy.Category = models.LegacyCategoryEatingOut
	require.NoError(t, trk.AddExpense(legacy))

	stale := testExpense("Woolworths Metro", 42.50)
	stale.Category = models.CategoryOther
	require.NoError(t, trk.AddExpense(stale))

	correct := testExpense("Campos Coffee", 4.50)
	correct.Category = models.CategoryCoffee
	require.NoError(t, trk.AddExpense(correct))

	changed := trk.RecategorizeAll()
	assert.Equal(t, 2, changed)

	byDescription := make(map[string]string)
	for _, e := range trk.Expenses() {
		byDescription[e.Description] = e.Category
	}
	assert.Equal(t, models.CategoryEatingOut, byDescription["Zorp Alpha"])
	assert.Equal(t, models.CategorySupermarket, byDescription["Woolworths Metro"])
	assert.Equal(t, models.CategoryCoffee, byDescription["Campos Coffee"])
}

func TestRecategorizeAll_NoChanges(t *testing.T) {
	trk := newTestTracker(t)

	correct := testExpense("Campos Coffee", 4.50)
	correct.Category = models.CategoryCoffee
	require.NoError(t, trk.AddExpense(correct))
	depth := trk.UndoDepth()

	assert.Equal(t, 0, trk.RecategorizeAll())
	// No snapshot is taken when nothing changed.
	assert.Equal(t, depth, trk.UndoDepth())
}

func TestClassifySingle_FallsBack(t *testing.T) {
	trk := newTestTracker(t)

	result := trk.ClassifySingle(context.Background(), "zorp alpha", decimal.NewFromInt(150))
	assert.Equal(t, models.CategoryOther, result.Category)
	assert.Equal(t, models.ConfidenceLow, result.Confidence)

	result = trk.ClassifySingle(context.Background(), "Campos Coffee", decimal.NewFromFloat(4.50))
	assert.Equal(t, models.CategoryCoffee, result.Category)
}
