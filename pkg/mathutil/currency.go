// Package mathutil provides fixed-point money helpers shared by the optimizer,
// the dataset loader and the report printers.
package mathutil

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/portfolio-picker/pkg/constants"
	"github.com/shopspring/decimal"
)

// ErrUnitOverflow is returned when an amount does not fit in int64 units.
var ErrUnitOverflow = errors.New("mathutil: amount overflows int64 units")

// maxUnitDigits is the number of integer digits of math.MaxInt64.
const maxUnitDigits = 19

// describeDigits bounds how much of an amount messages reproduce.
const describeDigits = 32

var (
	maxUnits = decimal.NewFromInt(math.MaxInt64)
	minUnits = decimal.NewFromInt(math.MinInt64)
	hundred  = decimal.NewFromInt(constants.PercentageMultiplier)
)

// Round rounds an amount to the given number of decimal digits using
// round-half-to-even. Every money conversion in the module uses this rule.
func Round(amount decimal.Decimal, digits int32) decimal.Decimal {
	return amount.RoundBank(digits)
}

// ToUnits converts an amount into integer units of 10^-digits, e.g. cents for
// digits == 2. Rounding is half-to-even. The magnitude is checked from the
// exponent and digit count before any rescaling, so amounts such as 1e10000000
// fail in constant time.
func ToUnits(amount decimal.Decimal, digits int32) (int64, error) {
	if amount.IsZero() {
		return 0, nil
	}
	// Number of integer digits of amount × 10^digits.
	magnitude := int64(amount.Exponent()) + int64(amount.NumDigits()) + int64(digits)
	if magnitude > maxUnitDigits {
		return 0, fmt.Errorf("%s at %d digits: %w", Describe(amount), digits, ErrUnitOverflow)
	}
	if magnitude < 0 {
		// Below 0.1 units, which rounds to zero.
		return 0, nil
	}
	scaled := amount.Shift(digits).RoundBank(0)
	if scaled.GreaterThan(maxUnits) || scaled.LessThan(minUnits) {
		return 0, fmt.Errorf("%s at %d digits: %w", Describe(amount), digits, ErrUnitOverflow)
	}
	return scaled.IntPart(), nil
}

// Scale returns the number of fractional digits needed to represent amount
// exactly, ignoring trailing zeros. Amounts needing more than limit digits
// fail with ErrUnitOverflow.
func Scale(amount decimal.Decimal, limit int32) (int32, error) {
	exp := int64(amount.Exponent())
	if exp >= 0 || amount.IsZero() {
		return 0, nil
	}
	// Even with every coefficient digit stripped as a trailing zero the
	// amount would need more than limit digits.
	if -exp > int64(limit)+int64(amount.NumDigits()) {
		return 0, fmt.Errorf("%s needs more than %d fractional digits: %w", Describe(amount), limit, ErrUnitOverflow)
	}
	coefficient := amount.Coefficient().String()
	zeros := int64(len(coefficient) - len(strings.TrimRight(coefficient, "0")))
	scale := max(-exp-zeros, 0)
	if scale > int64(limit) {
		return 0, fmt.Errorf("%s needs more than %d fractional digits: %w", Describe(amount), limit, ErrUnitOverflow)
	}
	return int32(scale), nil
}

// Describe renders amount for messages and logs. Amounts with large exponents
// or long coefficients are shown in shortened scientific form instead of being
// expanded.
func Describe(amount decimal.Decimal) string {
	exp := amount.Exponent()
	if exp >= -describeDigits && exp <= describeDigits && amount.NumDigits() <= describeDigits {
		return amount.String()
	}
	coefficient := amount.Coefficient().String()
	if len(coefficient) > describeDigits {
		exp += int32(len(coefficient) - describeDigits)
		coefficient = coefficient[:describeDigits] + "..."
	}
	return fmt.Sprintf("%se%d", coefficient, exp)
}

// FromUnits is the inverse of ToUnits.
func FromUnits(units int64, digits int32) decimal.Decimal {
	return decimal.New(units, -digits)
}

// ApplyPercentage applies a percentage to a value: value × percent / 100.
// The result is exact.
func ApplyPercentage(value, percent decimal.Decimal) decimal.Decimal {
	return value.Mul(percent).Shift(-2)
}

// CalculatePercentage calculates what percentage value is of total, rounded
// to the given number of digits.
func CalculatePercentage(value, total decimal.Decimal, digits int32) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return value.Mul(hundred).DivRound(total, digits)
}

// Sum adds amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
