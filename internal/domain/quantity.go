package domain

import (
	"github.com/shopspring/decimal"
)

// Quantity is a parsed numeric input: either a finite decimal or the
// explicit "invalid" marker. Invalid input is carried as a tag rather
// than a NaN float so it can never leak into arithmetic unnoticed.
// The zero value is invalid.
type Quantity struct {
	value decimal.Decimal
	valid bool
}

// ValidQuantity wraps a parsed decimal.
func ValidQuantity(d decimal.Decimal) Quantity {
	return Quantity{value: d, valid: true}
}

// InvalidQuantity marks input that did not parse as a number.
func InvalidQuantity() Quantity {
	return Quantity{}
}

// Valid reports whether the quantity holds a parsed number.
func (q Quantity) Valid() bool {
	return q.valid
}

// Decimal returns the parsed value. Zero for invalid quantities;
// callers must check Valid first.
func (q Quantity) Decimal() decimal.Decimal {
	return q.value
}

// IsNegative reports whether the value is below zero.
func (q Quantity) IsNegative() bool {
	return q.valid && q.value.IsNegative()
}

// IsPositive reports whether the value is above zero.
func (q Quantity) IsPositive() bool {
	return q.valid && q.value.IsPositive()
}

func (q Quantity) String() string {
	if !q.valid {
		return "invalid"
	}
	return q.value.String()
}
