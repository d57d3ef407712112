// Package money provides the exact-decimal monetary value object used by the
// ledger core. Amounts are fixed at two fractional digits; the core never
// rounds silently.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Scale is the fixed number of fractional digits for all ledger amounts.
const Scale = 2

var (
	// ErrMalformedAmount is returned when an amount string cannot be parsed.
	ErrMalformedAmount = errors.New("malformed amount")

	// ErrPrecisionTooFine is returned when an amount carries more fractional
	// digits than the ledger scale. Callers must round before entering the
	// core; the core never rounds on their behalf.
	ErrPrecisionTooFine = errors.New("amount exceeds the two-digit ledger scale")
)

// Money is an immutable exact-decimal amount at the ledger scale.
// The zero value is 0.00.
//
// Invariants:
//   - The amount never carries a sub-cent remainder.
//   - Arithmetic is exact; no floating point is involved.
type Money struct {
	amount decimal.Decimal
}

// New creates Money from a decimal, rejecting values finer than the ledger
// scale. Trailing zeros are tolerated (10.500 equals 10.50); only a true
// sub-cent remainder is rejected.
func New(d decimal.Decimal) (Money, error) {
	if d.Exponent() < -Scale && !d.Equal(d.Truncate(Scale)) {
		return Money{}, ErrPrecisionTooFine
	}
	return Money{amount: d.Truncate(Scale)}, nil
}

// NewFromString parses a decimal string such as "1000.00".
func NewFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrMalformedAmount
	}
	return New(d)
}

// MustParse is a test and fixture helper; it panics on malformed input.
func MustParse(s string) Money {
	m, err := NewFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns the 0.00 amount.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount at the ledger scale, e.g. "700.00".
func (m Money) String() string {
	return m.amount.StringFixed(Scale)
}
