package tracker

import "fjacquet/finance-tracker/internal/models"

// undoCapacity bounds the undo log; pushing beyond it evicts the oldest
// entry.
const undoCapacity = 10

// UndoKind identifies which collection an undo entry snapshots.
type UndoKind string

// Undo entry kinds.
const (
	UndoExpense UndoKind = "expense"
	UndoIncome  UndoKind = "income"
)

// undoLog is a fixed-capacity stack with FIFO eviction. Snapshots are full
// copies; correctness, not structural sharing, is the requirement at this
// scale. The entries are persisted through the store after every push and
// pop so a rollback survives process restarts.
type undoLog struct {
	entries  []models.UndoEntry
	capacity int
}

func newUndoLog(capacity int) undoLog {
	return undoLog{capacity: capacity}
}

func (l *undoLog) push(e models.UndoEntry) {
	if len(l.entries) >= l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity+1:]
	}
	l.entries = append(l.entries, e)
}

func (l *undoLog) pop() (models.UndoEntry, bool) {
	if len(l.entries) == 0 {
		return models.UndoEntry{}, false
	}
	e := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return e, true
}

func (l *undoLog) size() int {
	return len(l.entries)
}

// snapshotExpenses records the current expense collection before a mutation.
func (t *Tracker) snapshotExpenses() {
	prior := make([]models.Expense, len(t.expenses))
	copy(prior, t.expenses)
	t.undo.push(models.UndoEntry{Kind: string(UndoExpense), Expenses: prior})
	t.saveUndo()
}

// snapshotIncome records the current income collection before a mutation.
func (t *Tracker) snapshotIncome() {
	prior := make([]models.Income, len(t.income))
	copy(prior, t.income)
	t.undo.push(models.UndoEntry{Kind: string(UndoIncome), Income: prior})
	t.saveUndo()
}

// Undo reverts the most recent mutation by restoring its snapshot and
// persisting it. The second return value is false when there is nothing to
// undo; the collections are left unchanged in that case. Undo is
// single-level per action: undoing after unrelated mutations still only
// reverts the most recent one.
func (t *Tracker) Undo() (UndoKind, bool) {
	entry, ok := t.undo.pop()
	if !ok {
		t.logger.Info("Nothing to undo")
		return "", false
	}

	switch UndoKind(entry.Kind) {
	case UndoExpense:
		t.expenses = entry.Expenses
		t.saveExpenses()
	case UndoIncome:
		t.income = entry.Income
		t.saveIncome()
	}
	t.saveUndo()

	t.logger.WithField("kind", entry.Kind).Info("Undone last change")
	return UndoKind(entry.Kind), true
}

// UndoDepth reports how many actions can currently be undone.
func (t *Tracker) UndoDepth() int {
	return t.undo.size()
}
