package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/finance-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExpensesToCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "expenses.csv")

	expenses := []models.Expense{
		{
			ID:          "id-1",
			Description: "Woolworths Metro",
			Amount:      decimal.NewFromFloat(42.5),
			Date:        "2024-01-22",
			Category:    models.CategorySupermarket,
			Confidence:  models.ConfidenceHigh,
		},
	}

	require.NoError(t, WriteExpensesToCSV(expenses, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Woolworths Metro")
	assert.Contains(t, content, "42.50")
	assert.Contains(t, content, models.CategorySupermarket)
}

func TestWriteExpensesToCSV_NilSlice(t *testing.T) {
	err := WriteExpensesToCSV(nil, filepath.Join(t.TempDir(), "expenses.csv"))
	assert.Error(t, err)
}

func TestWriteIncomeToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "income.csv")

	income := []models.Income{
		{
			ID:       "id-1",
			Source:   "Monthly Salary",
			Amount:   decimal.NewFromFloat(2525.64),
			Date:     "2024-01-23",
			Category: models.DefaultIncomeCategory,
		},
	}

	require.NoError(t, WriteIncomeToCSV(income, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Monthly Salary")
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")

	expenses := []models.Expense{
		{
			ID:          "id-1",
			Description: "Woolworths Metro",
			Amount:      decimal.NewFromFloat(42.5),
			Date:        "2024-01-22",
			Category:    models.CategorySupermarket,
		},
	}
	require.NoError(t, WriteExpensesToCSV(expenses, path))

	rows, err := ReadCSVFile[models.Expense](path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Woolworths Metro", rows[0].Description)
	assert.True(t, rows[0].Amount.Equal(decimal.NewFromFloat(42.5)))
}

func TestSetDelimiter(t *testing.T) {
	original := Delimiter
	defer SetDelimiter(original)

	SetDelimiter(';')
	path := filepath.Join(t.TempDir(), "expenses.csv")
	expenses := []models.Expense{
		{ID: "id-1", Description: "Woolworths", Amount: decimal.NewFromInt(10), Date: "2024-01-22"},
	}
	require.NoError(t, WriteExpensesToCSV(expenses, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), ";"))
}
