// Package models defines the data structures shared across the application:
// raw and categorized transactions, classification results, and the category
// configuration loaded from YAML.
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawTransaction is the pre-split intermediate form produced by the statement
// parser. The amount keeps its sign: positive means income, negative means
// expense. Zero-amount rows never reach this type.
type RawTransaction struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // ISO-8601 (YYYY-MM-DD)
}

// Expense is a stored expense transaction. The amount is always positive;
// direction is implied by the collection the record lives in.
type Expense struct {
	ID          string          `json:"id" csv:"id"`
	Description string          `json:"description" csv:"description"`
	Amount      decimal.Decimal `json:"amount" csv:"amount"`
	Date        string          `json:"date" csv:"date"`
	Category    string          `json:"category" csv:"category"`
	Confidence  string          `json:"confidence,omitempty" csv:"confidence"`
}

// Income is a stored income transaction. Structurally an expense with a
// "source" field name and a disjoint category set.
type Income struct {
	ID         string          `json:"id" csv:"id"`
	Source     string          `json:"source" csv:"source"`
	Amount     decimal.Decimal `json:"amount" csv:"amount"`
	Date       string          `json:"date" csv:"date"`
	Category   string          `json:"category" csv:"category"`
	Confidence string          `json:"confidence,omitempty" csv:"confidence"`
}

// UndoEntry is a persisted pre-mutation snapshot of one collection. Kind is
// "expense" or "income" and selects which slice carries the snapshot.
type UndoEntry struct {
	Kind     string    `json:"kind"`
	Expenses []Expense `json:"expenses,omitempty"`
	Income   []Income  `json:"income,omitempty"`
}

// NewID returns an opaque unique transaction identifier.
func NewID() string {
	return uuid.NewString()
}

// Valid reports whether the expense satisfies the storage invariant:
// a non-empty description and a strictly positive amount.
func (e Expense) Valid() bool {
	return e.Description != "" && e.Amount.IsPositive()
}

// Valid reports whether the income record satisfies the storage invariant.
func (i Income) Valid() bool {
	return i.Source != "" && i.Amount.IsPositive()
}
