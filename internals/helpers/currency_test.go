package helper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount decimal.Decimal
		code   string
		want   string
	}{
		{decimal.NewFromInt(100), "NGN", "₦100.00"},
		{decimal.NewFromInt(0), "NGN", "₦0.00"},
		{decimal.RequireFromString("1234567.891"), "NGN", "₦1,234,567.89"},
		{decimal.RequireFromString("999.5"), "USD", "$999.50"},
		{decimal.NewFromInt(1000), "usd", "$1,000.00"},
		{decimal.NewFromInt(100), "XYZ", "XYZ100.00"},
		{decimal.NewFromInt(-5), "NGN", "-₦5.00"},
		{decimal.RequireFromString("-0.001"), "NGN", "₦0.00"},
		{decimal.RequireFromString("-0.005"), "NGN", "-₦0.01"},
		{decimal.NewFromInt(250), "", "₦250.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCurrency(tc.amount, tc.code), "%s %s", tc.amount, tc.code)
	}
}

func TestFormatCurrencyFloat(t *testing.T) {
	assert.Equal(t, "₦100.00", FormatCurrencyFloat(100, "NGN"))
	assert.Equal(t, "£12,000.25", FormatCurrencyFloat(12000.25, "GBP"))
}
