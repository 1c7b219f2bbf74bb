package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "42.50", "42.5"},
		{"negative", "-42.50", "-42.5"},
		{"currency symbol", "-$7,386.90", "-7386.9"},
		{"quoted with spaces", `" $2,525.64"`, "2525.64"},
		{"parentheses stripped", "($64.03)", "64.03"},
		{"euro", "€15.00", "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)
			require.NoError(t, err)
			expected, _ := decimal.NewFromString(tt.expected)
			assert.True(t, amount.Equal(expected), "got %s, want %s", amount, expected)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	_, err := ParseAmount("")
	assert.Error(t, err)

	_, err = ParseAmount("   ")
	assert.Error(t, err)

	_, err = ParseAmount("not a number")
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	amount := decimal.NewFromFloat(42.5)
	assert.Equal(t, "42.50", FormatAmount(amount))
}
