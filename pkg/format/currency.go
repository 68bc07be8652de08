// Package format renders money amounts for reports.
package format

import (
	"strings"

	"github.com/iwvelando/portfolio-picker/pkg/constants"
	"github.com/shopspring/decimal"
)

// Currency returns amount with a currency symbol and thousands separators
// (e.g., "-€1,234.56"). An empty symbol uses constants.DefaultCurrencySymbol.
func Currency(amount decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = constants.DefaultCurrencySymbol
	}
	formatted := formatPositive(amount.Abs(), constants.DefaultPrecision)
	if amount.IsNegative() && formatted != formatPositive(decimal.Zero, constants.DefaultPrecision) {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// NumericCurrency returns amount with separators but without a symbol
// (e.g., "-1,234.56").
func NumericCurrency(amount decimal.Decimal) string {
	formatted := formatPositive(amount.Abs(), constants.DefaultPrecision)
	if amount.IsNegative() && formatted != formatPositive(decimal.Zero, constants.DefaultPrecision) {
		return "-" + formatted
	}
	return formatted
}

// Percent renders a percentage with two decimals and a trailing sign.
func Percent(value decimal.Decimal) string {
	return value.StringFixedBank(2) + "%"
}

func formatPositive(value decimal.Decimal, digits int32) string {
	formatted := value.StringFixedBank(digits)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := ""
	if len(parts) == 2 {
		decPart = "." + parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + decPart
}
