// Package statement parses raw bank-statement text into an ordered sequence
// of raw transactions. It handles quoted fields, messy amount formats and
// ambiguous dates; column positions are discovered from the header row rather
// than assumed.
package statement

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"fjacquet/finance-tracker/internal/currencyutils"
	"fjacquet/finance-tracker/internal/dateutils"
	"fjacquet/finance-tracker/internal/logging"
	"fjacquet/finance-tracker/internal/models"
	"fjacquet/finance-tracker/internal/parsererror"
)

var lineSplitPattern = regexp.MustCompile(`\r?\n`)

// supported file extensions for statement input. Everything else is rejected
// before any parsing happens.
var textExtensions = map[string]bool{
	".csv": true,
	".txt": true,
}

// CheckFormat verifies that the file at path is a text statement. It returns
// an UnsupportedFormatError for binary exports (PDF, Excel) so callers can
// announce the unsupported format instead of crashing on garbage input.
func CheckFormat(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !textExtensions[ext] {
		return &parsererror.UnsupportedFormatError{Extension: ext}
	}
	return nil
}

// ParseFile reads and parses a statement file.
func ParseFile(path string, logger logging.Logger) ([]models.RawTransaction, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if err := CheckFormat(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading statement file: %w", err)
	}

	logger.WithField(logging.FieldFile, path).Info("Parsing statement file")
	return Parse(string(data), logger)
}

// Parse turns one statement's raw text into raw transactions in file order.
//
// Rows with an empty date, description or amount field are skipped, as are
// rows whose amount does not parse or is exactly zero; row-level problems
// never abort the batch. The amount keeps its sign: positive is income,
// negative is expense.
func Parse(raw string, logger logging.Logger) ([]models.RawTransaction, error) {
	return parse(raw, time.Now(), logger)
}

func parse(raw string, now time.Time, logger logging.Logger) ([]models.RawTransaction, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	var lines []string
	for _, line := range lineSplitPattern.Split(raw, -1) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, &parsererror.EmptyInputError{Lines: len(lines)}
	}

	dateIdx, descIdx, amountIdx, err := findColumns(parseLine(lines[0]))
	if err != nil {
		return nil, err
	}

	var transactions []models.RawTransaction
	skipped := 0
	for _, line := range lines[1:] {
		fields := parseLine(line)

		dateStr := fieldAt(fields, dateIdx)
		description := fieldAt(fields, descIdx)
		amountStr := fieldAt(fields, amountIdx)

		if dateStr == "" || description == "" || amountStr == "" {
			skipped++
			continue
		}

		amount, err := currencyutils.ParseAmount(amountStr)
		if err != nil || amount.IsZero() {
			// Unparsable and zero amounts carry no financial meaning;
			// drop the row silently.
			skipped++
			continue
		}

		transactions = append(transactions, models.RawTransaction{
			Description: description,
			Amount:      amount,
			Date:        dateutils.ResolveStatementDate(dateStr, now),
		})
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: "skipped", Value: skipped},
	).Info("Parsed statement")
	return transactions, nil
}

// parseLine splits a statement line into trimmed fields, honoring
// double-quote-delimited fields that may contain the separator. A quote
// toggles the quoted state; there is no support for escaped quotes beyond
// that.
func parseLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for _, char := range line {
		switch {
		case char == '"':
			inQuotes = !inQuotes
		case char == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(char)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))
	return fields
}

// findColumns locates the date, description and amount columns by
// case-insensitive substring match over the header fields. The leftmost
// matching column wins for each role.
func findColumns(headers []string) (dateIdx, descIdx, amountIdx int, err error) {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.ReplaceAll(h, "'", ""))
	}

	dateIdx = findHeader(lowered, "date", "transaction")
	descIdx = findHeader(lowered, "description", "merchant", "name")
	amountIdx = findHeader(lowered, "amount", "debit", "credit", "withdrawal", "deposit")

	var missing []string
	if dateIdx == -1 {
		missing = append(missing, "date")
	}
	if descIdx == -1 {
		missing = append(missing, "description")
	}
	if amountIdx == -1 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return 0, 0, 0, &parsererror.MissingColumnsError{Missing: missing}
	}
	return dateIdx, descIdx, amountIdx, nil
}

func findHeader(headers []string, substrings ...string) int {
	for i, h := range headers {
		for _, sub := range substrings {
			if strings.Contains(h, sub) {
				return i
			}
		}
	}
	return -1
}

func fieldAt(fields []string, idx int) string {
	if idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}
