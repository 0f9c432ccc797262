package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used when the shop does not configure one
const DefaultCurrency = "EUR"

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
}

// FormatMoney renders an amount the way German shop pages show prices,
// e.g. 1234.5 EUR becomes "1.234,50 €". Well-formed codes x/text does not
// know get two fraction digits and the code as symbol; anything else falls
// back to the plain decimal string.
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = DefaultCurrency
	}

	scale, symbol, ok := currencyFormat(code)
	if !ok {
		return amount.String()
	}

	rounded := amount.Round(int32(scale))
	digits := rounded.Abs().StringFixed(int32(scale))

	intPart, fracPart, _ := strings.Cut(digits, ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(intPart))
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	b.WriteByte(' ')
	b.WriteString(symbol)
	return b.String()
}

// currencyFormat returns the fraction digits and symbol for an upper-case code
func currencyFormat(code string) (int, string, bool) {
	unit, err := currency.ParseISO(code)
	if err == nil {
		scale, _ := currency.Standard.Rounding(unit)
		return scale, currencySymbol(unit.String()), true
	}
	if !isAlphaCode(code) {
		return 0, "", false
	}
	return 2, code, true
}

func isAlphaCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

func currencySymbol(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code
}

// groupThousands inserts "." every three digits from the right
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := len(digits) % 3
	var b strings.Builder
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
