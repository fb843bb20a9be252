package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a non-negative monetary amount.
// It wraps github.com/shopspring/decimal to keep all monetary arithmetic
// exact; rounding to two fractional digits happens only at the
// persistence/display boundary via Rounded, never in intermediate steps.
//
// The zero value of Money is a valid zero amount, so Money can be embedded
// in aggregates without a constructor guard.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money value of zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money value from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a Money value from its decimal string representation,
// e.g. "150" or "49.90". Returns an error for malformed or negative input.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid", err)
	}
	return NewMoney(amount)
}

// Amount returns the underlying exact decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two Money values.
// Returns an error if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// MulInt multiplies the amount by an integer factor, e.g. a line-item
// quantity.
func (m Money) MulInt(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

// ApplyRate multiplies the amount by a fractional rate, e.g. a 0.10 tax rate.
// The result keeps full precision.
func (m Money) ApplyRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate)}
}

// Rounded returns the amount rounded half-up to two fractional digits.
// Used when handing amounts to persistence or display.
func (m Money) Rounded() Money {
	return Money{amount: m.amount.Round(2)}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsEqual compares two Money values for numeric equality.
// "1.5" and "1.50" are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount with exactly two fractional digits,
// e.g. "380.00". This is the canonical display format.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
