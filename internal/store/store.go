// Package store provides the persistence collaborator: a key-value store over
// per-key JSON files in a data directory, plus typed helpers for the
// collections the tracker persists. A missing key means "no data yet", never
// an error.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/finance-tracker/internal/logging"
	"fjacquet/finance-tracker/internal/models"

	"gopkg.in/yaml.v3"
)

// Keys for the persisted collections.
const (
	KeyExpenses          = "finance-expenses"
	KeyIncome            = "finance-income"
	KeyUserPreferences   = "finance-user-preferences"
	KeyBudgets           = "finance-budgets"
	KeyRecurringExpenses = "finance-recurring-expenses"
	KeyGoals             = "finance-goals"
	KeyUndo              = "finance-undo"
)

// Store persists values under string keys, one JSON file per key.
type Store struct {
	dir    string
	logger logging.Logger
}

// New creates a Store rooted at dir.
func New(dir string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{dir: dir, logger: logger}
}

func (s *Store) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the serialized value for key. The second return value is false
// when no value has been stored yet.
func (s *Store) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error reading key %q: %w", key, err)
	}
	return data, true, nil
}

// Set stores the serialized value for key. Last write wins.
func (s *Store) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}
	if err := os.WriteFile(s.keyPath(key), value, 0600); err != nil {
		return fmt.Errorf("error writing key %q: %w", key, err)
	}
	s.logger.WithField(logging.FieldKey, key).Debug("Persisted value")
	return nil
}

// LoadExpenses loads the stored expense collection. A missing or unreadable
// value yields an empty collection.
func (s *Store) LoadExpenses() ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.loadJSON(KeyExpenses, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// SaveExpenses persists the full expense collection.
func (s *Store) SaveExpenses(expenses []models.Expense) error {
	return s.saveJSON(KeyExpenses, expenses)
}

// LoadIncome loads the stored income collection.
func (s *Store) LoadIncome() ([]models.Income, error) {
	var income []models.Income
	if err := s.loadJSON(KeyIncome, &income); err != nil {
		return nil, err
	}
	return income, nil
}

// SaveIncome persists the full income collection.
func (s *Store) SaveIncome(income []models.Income) error {
	return s.saveJSON(KeyIncome, income)
}

// LoadPreferences loads the learned categorization preferences in their
// persisted (insertion) order.
func (s *Store) LoadPreferences() ([]models.PreferenceEntry, error) {
	var prefs []models.PreferenceEntry
	if err := s.loadJSON(KeyUserPreferences, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// SavePreferences persists the learned categorization preferences.
func (s *Store) SavePreferences(prefs []models.PreferenceEntry) error {
	return s.saveJSON(KeyUserPreferences, prefs)
}

// LoadUndo loads the persisted undo history, oldest entry first.
func (s *Store) LoadUndo() ([]models.UndoEntry, error) {
	var entries []models.UndoEntry
	if err := s.loadJSON(KeyUndo, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveUndo persists the full undo history.
func (s *Store) SaveUndo(entries []models.UndoEntry) error {
	return s.saveJSON(KeyUndo, entries)
}

func (s *Store) loadJSON(key string, out interface{}) error {
	data, found, err := s.Get(key)
	if err != nil {
		return err
	}
	if !found {
		s.logger.WithField(logging.FieldKey, key).Debug("No stored value yet")
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error parsing stored value for %q: %w", key, err)
	}
	return nil
}

func (s *Store) saveJSON(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error serializing value for %q: %w", key, err)
	}
	return s.Set(key, data)
}

// LoadCategories loads a category keyword database from a YAML file shaped
// as `categories: [{name, keywords}]`. A missing file returns an empty slice
// so the built-in database is used instead.
func LoadCategories(path string, logger logging.Logger) ([]models.CategoryConfig, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField(logging.FieldFile, path).Debug("Categories file not found, using built-in database")
			return []models.CategoryConfig{}, nil
		}
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var categoriesConfig models.CategoriesConfig
	if err := yaml.Unmarshal(data, &categoriesConfig); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(categoriesConfig.Categories)},
	).Debug("Loaded categories")
	return categoriesConfig.Categories, nil
}
