// Package dateutils provides common date operations used throughout the
// application, in particular the resolution of ambiguous statement dates.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
)

// CommonFormats is a list of standard formats to try when parsing dates
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutUS,
	DateLayoutFull,
	DateLayoutWithMonth,
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// slashDatePattern matches D/M/Y dates with any digit-group widths.
var slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)

// ParseDate attempts to parse a date string using multiple common formats.
// Returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ResolveStatementDate resolves a raw statement date to ISO-8601.
//
// Slash-separated dates are interpreted as day/month/year: digit groups are
// zero-padded and 2-digit years are expanded by prefixing "20". Anything else
// goes through generic multi-format parsing. If every attempt fails the
// current processing date is used; an ambiguous date never aborts an import.
func ResolveStatementDate(dateStr string, now time.Time) string {
	dateStr = CleanDateString(dateStr)

	if m := slashDatePattern.FindStringSubmatch(dateStr); m != nil {
		day := padDigits(m[1])
		month := padDigits(m[2])
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return fmt.Sprintf("%s-%s-%s", year, month, day)
	}

	if t, _, err := ParseDate(dateStr); err == nil {
		return ToISODate(t)
	}

	return ToISODate(now)
}

// padDigits zero-pads a digit group to two characters.
func padDigits(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)

	re := regexp.MustCompile(`\s+`)
	return re.ReplaceAllString(dateStr, " ")
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}
