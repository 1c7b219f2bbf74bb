package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExpenseValid(t *testing.T) {
	valid := Expense{Description: "Woolworths", Amount: decimal.NewFromFloat(42.5)}
	assert.True(t, valid.Valid())

	assert.False(t, Expense{Amount: decimal.NewFromInt(5)}.Valid())
	assert.False(t, Expense{Description: "Zero", Amount: decimal.Zero}.Valid())
	assert.False(t, Expense{Description: "Negative", Amount: decimal.NewFromInt(-5)}.Valid())
}

func TestIncomeValid(t *testing.T) {
	assert.True(t, Income{Source: "Salary", Amount: decimal.NewFromInt(100)}.Valid())
	assert.False(t, Income{Amount: decimal.NewFromInt(100)}.Valid())
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestCategorySets(t *testing.T) {
	assert.True(t, IsExpenseCategory(CategoryCoffee))
	assert.True(t, IsExpenseCategory(CategoryOther))
	assert.False(t, IsExpenseCategory(LegacyCategoryEatingOut))
	assert.False(t, IsExpenseCategory("Salary (Gross)"))

	assert.True(t, IsIncomeCategory(DefaultIncomeCategory))
	assert.False(t, IsIncomeCategory(CategoryCoffee))
}
