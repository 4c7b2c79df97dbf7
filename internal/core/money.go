// Package core holds the domain model: transaction and user types, the
// category catalog, amount handling and input validation.
//
// Amounts are stored as integer cents. Decimal parsing and formatting happen
// only at the boundary, so no value ever passes through a float.
package core

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	errAmountNotNumber   = errors.New("amount is not a number")
	errAmountNotPositive = errors.New("amount must be greater than zero")
	errAmountTooPrecise  = errors.New("amount has more than two decimal places")
)

// ParseAmount converts a decimal literal (as sent by the client) into cents.
// The value must be positive and carry at most two fractional digits.
// Trailing zeros beyond two places are tolerated ("19.990" equals "19.99").
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errAmountNotNumber
	}
	if !d.IsPositive() {
		return 0, errAmountNotPositive
	}
	if !d.Equal(d.Round(2)) {
		return 0, errAmountTooPrecise
	}
	return d.Shift(2).IntPart(), nil
}

// FormatCents renders cents as an exact two-decimal string, e.g. 1999 ->
// "19.99". Negative values keep their sign (used for net balances).
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
