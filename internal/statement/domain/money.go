package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyLabel is the fixed currency tag printed on every statement.
const CurrencyLabel = "AUD"

// normalizeAmount fixes a monetary input at two decimal places using
// banker's rounding, so 10.005 normalizes to 10.00. Sums of normalized
// values are exact and never re-rounded.
func normalizeAmount(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// FormatAmount renders a monetary value with thousands separators and
// exactly two decimals, e.g. 1234567.5 becomes "1,234,567.50".
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
