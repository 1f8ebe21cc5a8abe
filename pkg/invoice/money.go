// pkg/invoice/money.go

package invoice

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders amount for display in the given currency.
//
// Symbol placement, separators and fraction digits come from the currency's
// metadata. Codes without metadata are rendered as "CODE 12.34".
func FormatMoney(amount decimal.Decimal, code string) string {
	code = CurrencyCode(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		return code + " " + amount.StringFixed(2)
	}
	f := cur.Formatter()
	rounded := amount.Round(int32(f.Fraction))
	minor := rounded.Shift(int32(f.Fraction))
	if units := minor.IntPart(); minor.Equal(decimal.NewFromInt(units)) {
		return f.Format(units)
	}
	// beyond int64 minor units
	return formatDecimal(f, rounded)
}

// formatDecimal lays out amount with the formatter's separators and template
// without going through int64 minor units.
func formatDecimal(f *money.Formatter, amount decimal.Decimal) string {
	digits := amount.Abs().StringFixed(int32(f.Fraction))
	whole, frac, _ := strings.Cut(digits, ".")
	if f.Thousand != "" {
		var b strings.Builder
		for i, r := range whole {
			if i > 0 && (len(whole)-i)%3 == 0 {
				b.WriteString(f.Thousand)
			}
			b.WriteRune(r)
		}
		whole = b.String()
	}
	s := whole
	if frac != "" {
		s += f.Decimal + frac
	}
	s = strings.Replace(f.Template, "1", s, 1)
	s = strings.Replace(s, "$", f.Grapheme, 1)
	if amount.IsNegative() {
		s = "-" + s
	}
	return s
}

// FormatPlain renders amount with two fixed decimals and no currency.
func FormatPlain(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
