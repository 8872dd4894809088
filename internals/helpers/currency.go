package helper

import (
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "NGN"

var currencySymbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"GHS": "₵",
	"KES": "KSh",
	"ZAR": "R",
	"CAD": "CA$",
	"XAF": "FCFA",
	"XOF": "CFA",
}

// CurrencySymbol returns the display symbol for an ISO 4217 code.
// Unknown codes are returned as given.
func CurrencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code
}

// FormatCurrency renders amount as symbol + comma-grouped value with 2 decimals.
//
//	FormatCurrency(decimal.NewFromInt(1234567), "NGN") == "₦1,234,567.00"
//	FormatCurrency(decimal.NewFromInt(-5), "NGN")      == "-₦5.00"
func FormatCurrency(amount decimal.Decimal, code string) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	intPart, frac := fixed, "00"
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, frac = fixed[:i], fixed[i+1:]
	}
	return sign + CurrencySymbol(code) + groupThousands(intPart) + "." + frac
}

// FormatCurrencyFloat is FormatCurrency for callers holding plain floats.
func FormatCurrencyFloat(amount float64, code string) string {
	return FormatCurrency(decimal.NewFromFloat(amount), code)
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
