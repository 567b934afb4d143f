// Package money provides helpers for monetary amounts.
//
// All engine math runs on shopspring decimals so intermediate results carry
// no binary-float drift. Rounding to currency precision happens once, at the
// API boundary, via Round.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrDivisionByZero is returned when attempting to divide an amount by zero.
var ErrDivisionByZero = errors.New("division by zero")

// displayPlaces is the number of decimal places used at the display boundary.
const displayPlaces = 2

// Zero is the zero amount.
var Zero = decimal.Zero

// FromFloat converts a float input (e.g. a JSON number) to a decimal amount.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// FromString parses a decimal amount from its string form.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// Mul multiplies an amount by an integer count (unit price × quantity).
func Mul(amount decimal.Decimal, count int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(count)))
}

// Div divides an amount by an integer count, returning ErrDivisionByZero
// instead of panicking when count is zero.
func Div(amount decimal.Decimal, count int) (decimal.Decimal, error) {
	if count == 0 {
		return decimal.Zero, ErrDivisionByZero
	}
	return amount.Div(decimal.NewFromInt(int64(count))), nil
}

// Round rounds an amount half-up to currency precision. Display only; never
// feed the result back into allocation math.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(displayPlaces)
}

// Display returns the rounded string form of an amount.
func Display(amount decimal.Decimal) string {
	return Round(amount).StringFixed(displayPlaces)
}
