package store

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/finance-tracker/internal/logging"
	"fjacquet/finance-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	return New(t.TempDir(), logging.NewMockLogger())
}

func TestStore_GetMissingKey(t *testing.T) {
	s := newTestStore(t)

	data, found, err := s.Get("finance-expenses")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)
}

func TestStore_SetAndGet(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("finance-budgets", []byte(`{"groceries": 500}`)))

	data, found, err := s.Get("finance-budgets")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"groceries": 500}`, string(data))
}

func TestStore_LastWriteWins(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("finance-goals", []byte(`"first"`)))
	require.NoError(t, s.Set("finance-goals", []byte(`"second"`)))

	data, found, err := s.Get("finance-goals")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `"second"`, string(data))
}

func TestStore_ExpensesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	loaded, err := s.LoadExpenses()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	expenses := []models.Expense{
		{
			ID:          models.NewID(),
			Description: "Woolworths Metro",
			Amount:      decimal.NewFromFloat(42.50),
			Date:        "2024-01-22",
			Category:    models.CategorySupermarket,
			Confidence:  models.ConfidenceHigh,
		},
	}
	require.NoError(t, s.SaveExpenses(expenses))

	loaded, err = s.LoadExpenses()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, expenses[0].Description, loaded[0].Description)
	assert.True(t, expenses[0].Amount.Equal(loaded[0].Amount))
}

func TestStore_PreferencesKeepOrder(t *testing.T) {
	s := newTestStore(t)

	prefs := []models.PreferenceEntry{
		{Description: "uber eats", Category: models.CategoryEatingOut},
		{Description: "zorp holdings", Category: models.CategoryBills},
		{Description: "campos", Category: models.CategoryCoffee},
	}
	require.NoError(t, s.SavePreferences(prefs))

	loaded, err := s.LoadPreferences()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	for i := range prefs {
		assert.Equal(t, prefs[i].Description, loaded[i].Description)
	}
}

func TestStore_UndoRoundTrip(t *testing.T) {
	s := newTestStore(t)

	loaded, err := s.LoadUndo()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	entries := []models.UndoEntry{
		{Kind: "expense", Expenses: []models.Expense{{
			ID:          models.NewID(),
			Description: "Woolworths Metro",
			Amount:      decimal.NewFromFloat(42.50),
			Date:        "2024-01-22",
		}}},
		{Kind: "income"},
	}
	require.NoError(t, s.SaveUndo(entries))

	loaded, err = s.LoadUndo()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "expense", loaded[0].Kind)
	require.Len(t, loaded[0].Expenses, 1)
	assert.True(t, loaded[0].Expenses[0].Amount.Equal(decimal.NewFromFloat(42.50)))
	assert.Equal(t, "income", loaded[1].Kind)
	assert.Empty(t, loaded[1].Expenses)
}

func TestLoadCategories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")
	content := `categories:
  - name: "Coffee"
    keywords:
      - "cafe"
      - "espresso"
  - name: "Transport"
    keywords:
      - "uber"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	categories, err := LoadCategories(path, logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Coffee", categories[0].Name)
	assert.Equal(t, []string{"cafe", "espresso"}, categories[0].Keywords)
}

func TestLoadCategories_MissingFile(t *testing.T) {
	categories, err := LoadCategories(filepath.Join(t.TempDir(), "absent.yaml"), logging.NewMockLogger())
	require.NoError(t, err)
	assert.Empty(t, categories)
}
