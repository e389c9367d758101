// Package money centralizes the rounding rules applied to cart amounts.
// Every aggregate written to a cart must pass through Round2 so the same
// value is reproducible regardless of which code path computed it.
package money

import "github.com/shopspring/decimal"

// Round2 rounds to two decimal places, half up on the cent boundary.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MustParse converts a literal amount, panicking on malformed input.
// Reserved for package-level constants and seed data.
func MustParse(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// Ptr returns a pointer to the given amount. Cart aggregates use nil to
// mean "not yet computable", so optional amounts travel as pointers.
func Ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// PtrEq reports whether two optional amounts are both unset or equal.
func PtrEq(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
