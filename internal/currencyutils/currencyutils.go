// Package currencyutils provides common currency and decimal operations used
// throughout the application.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// symbolPattern matches currency symbols, quotes, thousands separators,
// whitespace and parentheses as they appear in bank statement amount fields,
// e.g. `" -$7,386.90"` or `($64.03)`.
var symbolPattern = regexp.MustCompile(`["'$€£¥,\s()]`)

// StandardizeAmount strips quoting, currency symbols, thousands separators,
// whitespace and parentheses from an amount string so it can be parsed by
// decimal.NewFromString. The sign is preserved.
func StandardizeAmount(amountStr string) string {
	return symbolPattern.ReplaceAllString(amountStr, "")
}

// ParseAmount parses a string representation of an amount into a signed
// decimal value. It handles formats like `-$7,386.90`, `" $2,525.64"` and
// `(42.50)`.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, fmt.Errorf("empty amount string")
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// FormatAmount formats a decimal amount with two decimal places, e.g. "42.50".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
