// Package core holds the domain model and the pure derivation engines:
// filtering, sorting, duplicate detection, pattern mining and aggregation.
//
// This file contains money parsing and handling. Amounts are stored as
// integer cents; github.com/shopspring/decimal backs the string/number
// coercion and the maaser-due arithmetic, which can produce fractional cents.
package core

import (
	"github.com/shopspring/decimal"
)

// Money is a non-negative amount in cents.
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string ("100", "12.34") to Money with
// half-up rounding on the third decimal place. Negative values are rejected.
func ParseAmount(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return moneyFromDecimal(d)
}

// MoneyFromNumber converts a JSON number to Money. Used by the import
// pipeline, where amounts arrive as either numbers or numeric strings.
func MoneyFromNumber(f float64) (Money, error) {
	return moneyFromDecimal(decimal.NewFromFloat(f))
}

func moneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: d.Shift(2).Round(0).IntPart()}, nil
}

// Decimal returns the amount as a decimal value in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the canonical decimal form with trailing zeros trimmed:
// "125", "12.5", "12.34". Search matching, CSV export and JSON output all
// use this rendering.
func (m Money) String() string {
	return m.Decimal().String()
}

// Equal reports exact amount equality.
func (m Money) Equal(o Money) bool {
	return m.Cents == o.Cents
}

// MarshalJSON renders Money as a plain JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
