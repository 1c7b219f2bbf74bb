// Package common provides shared CSV helpers used by the export command and
// the export-restore path of the tracker.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/finance-tracker/internal/logging"
	"fjacquet/finance-tracker/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// fixedDecimal re-parses an amount at two decimal places so gocsv renders
// a stable "0.00" style string.
func fixedDecimal(d decimal.Decimal) decimal.Decimal {
	fixed, err := decimal.NewFromString(d.StringFixed(2))
	if err != nil {
		return d
	}
	return fixed
}

var log = logging.GetLogger()

// Delimiter is the CSV output delimiter. Configurable via CSV_DELIMITER.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField(logging.FieldFile, filePath).Info("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField(logging.FieldCount, len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

// WriteExpensesToCSV writes expenses to a CSV file with amounts fixed to
// two decimal places.
func WriteExpensesToCSV(expenses []models.Expense, csvFile string) error {
	if expenses == nil {
		return fmt.Errorf("cannot write nil expenses to CSV")
	}

	rows := make([]models.Expense, len(expenses))
	copy(rows, expenses)
	for i := range rows {
		rows[i].Amount = fixedDecimal(rows[i].Amount)
	}
	return writeCSV(rows, len(rows), csvFile)
}

// WriteIncomeToCSV writes income records to a CSV file with amounts fixed
// to two decimal places.
func WriteIncomeToCSV(income []models.Income, csvFile string) error {
	if income == nil {
		return fmt.Errorf("cannot write nil income to CSV")
	}

	rows := make([]models.Income, len(income))
	copy(rows, income)
	for i := range rows {
		rows[i].Amount = fixedDecimal(rows[i].Amount)
	}
	return writeCSV(rows, len(rows), csvFile)
}

func writeCSV(rows interface{}, count int, csvFile string) error {
	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: count},
	).Info("Writing records to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal records to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: count},
	).Info("Successfully wrote records to CSV file")
	return nil
}
