// Package tracker owns the application state: the expense and income
// collections, the learned-preference write-through, the bounded undo log and
// the statement import flow. The collections are the single source of truth
// and are persisted after every committed mutation; persistence failures are
// logged and the in-memory state stays authoritative for the session.
package tracker

import (
	"context"
	"errors"
	"time"

	"fjacquet/finance-tracker/internal/categorizer"
	"fjacquet/finance-tracker/internal/logging"
	"fjacquet/finance-tracker/internal/models"
	"fjacquet/finance-tracker/internal/store"
)

// ErrDuplicate is returned when adding an expense identical to a stored one.
var ErrDuplicate = errors.New("duplicate expense: already exists")

// ErrNotFound is returned when an expense id does not exist.
var ErrNotFound = errors.New("expense not found")

// Tracker is the orchestrating application state. All mutations run as
// non-overlapping logical steps; collections are only ever replaced
// wholesale and then persisted.
type Tracker struct {
	expenses []models.Expense
	income   []models.Income

	store       *store.Store
	categorizer *categorizer.Categorizer
	undo        undoLog
	logger      logging.Logger

	loadTimeout time.Duration
}

// New creates a Tracker. Call Load before using it.
func New(st *store.Store, cat *categorizer.Categorizer, logger logging.Logger, loadTimeoutSeconds int) *Tracker {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if loadTimeoutSeconds <= 0 {
		loadTimeoutSeconds = 2
	}
	return &Tracker{
		store:       st,
		categorizer: cat,
		undo:        newUndoLog(undoCapacity),
		logger:      logger,
		loadTimeout: time.Duration(loadTimeoutSeconds) * time.Second,
	}
}

// Load reads the persisted collections. A bounded fallback timer guarantees
// the application never blocks indefinitely on initial load: on timeout the
// tracker starts with empty collections.
func (t *Tracker) Load(ctx context.Context) {
	type loaded struct {
		expenses []models.Expense
		income   []models.Income
		undo     []models.UndoEntry
	}

	done := make(chan loaded, 1)
	go func() {
		var l loaded
		var err error
		if l.expenses, err = t.store.LoadExpenses(); err != nil {
			t.logger.WithError(err).Warn("No expenses data yet")
		}
		if l.income, err = t.store.LoadIncome(); err != nil {
			t.logger.WithError(err).Warn("No income data yet")
		}
		if l.undo, err = t.store.LoadUndo(); err != nil {
			t.logger.WithError(err).Warn("No undo history yet")
		}
		done <- l
	}()

	select {
	case l := <-done:
		t.expenses = l.expenses
		t.income = l.income
		t.undo.entries = l.undo
		t.logger.WithFields(
			logging.Field{Key: "expenses", Value: len(t.expenses)},
			logging.Field{Key: "income", Value: len(t.income)},
		).Debug("Loaded collections")
	case <-time.After(t.loadTimeout):
		t.logger.Warn("Data load timed out, starting with empty collections")
	case <-ctx.Done():
		t.logger.Warn("Data load canceled, starting with empty collections")
	}
}

// Expenses returns the stored expense collection.
func (t *Tracker) Expenses() []models.Expense {
	return t.expenses
}

// Income returns the stored income collection.
func (t *Tracker) Income() []models.Income {
	return t.income
}

// Categorizer exposes the classification engine.
func (t *Tracker) Categorizer() *categorizer.Categorizer {
	return t.categorizer
}

// saveExpenses persists the expense collection. Failures are logged and
// swallowed: the in-memory state remains the source of truth.
func (t *Tracker) saveExpenses() {
	if err := t.store.SaveExpenses(t.expenses); err != nil {
		t.logger.WithError(err).Error("Failed to persist expenses")
	}
}

// saveIncome persists the income collection.
func (t *Tracker) saveIncome() {
	if err := t.store.SaveIncome(t.income); err != nil {
		t.logger.WithError(err).Error("Failed to persist income")
	}
}

// saveUndo persists the undo history so a rollback remains available to the
// next process run.
func (t *Tracker) saveUndo() {
	if err := t.store.SaveUndo(t.undo.entries); err != nil {
		t.logger.WithError(err).Error("Failed to persist undo history")
	}
}

// learn records a user categorization choice and persists the preference map.
func (t *Tracker) learn(description, category string) {
	t.categorizer.Learn(description, category)
	if err := t.categorizer.SavePreferences(); err != nil {
		t.logger.WithError(err).Warn("Failed to save learned preferences")
	}
}
