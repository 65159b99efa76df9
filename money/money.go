// Package money implements the ledger's fixed-point monetary value type.
//
// Parse never produces a negative Money (Sub may), always carries exactly four fractional
// digits, and deliberately has no String/Format method: client balances
// must never leak through a stray log line or %v verb.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// scale is the number of fractional digits every Money value is rounded to.
const scale = 4

var (
	// ErrNegative is returned by Parse when the input decimal is negative.
	ErrNegative = errors.New("money: negative amount")
	// ErrSyntax is returned by Parse when the input is not a valid decimal literal.
	ErrSyntax = errors.New("money: invalid decimal syntax")
	// ErrOverflow is returned by Add/Sub if the result would not fit the
	// ledger's representable range. In practice this is unreachable for any
	// realistic ledger volume, since the underlying decimal.Decimal is
	// backed by math/big, but the sentinel is kept for API fidelity with
	// the spec's documented error taxonomy.
	ErrOverflow = errors.New("money: overflow")

	maxMagnitude = decimal.New(1, 36) // generous, documented ceiling; see Add/Sub.
)

// Money is an immutable decimal value scaled to 4 fractional digits.
// Parse rejects negative input; Sub can return a negative result. The
// zero value is 0.0000.
type Money struct {
	d decimal.Decimal
}

// Zero is the default Money value.
var Zero = Money{}

// Parse parses a textual decimal amount, rounding to 4 fractional digits
// using round-half-to-even (banker's rounding) and rejecting negative
// values. Amounts with more than 4 fractional digits are accepted and
// rounded; amounts with fewer are zero-padded.
func Parse(text string) (Money, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: %q", ErrNegative, text)
	}
	return Money{d: d.RoundBank(scale)}, nil
}

// MustParse is Parse but panics on error. Intended for tests and constants.
func MustParse(text string) Money {
	m, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns a + b.
func Add(a, b Money) (Money, error) {
	sum := a.d.Add(b.d)
	if sum.Abs().GreaterThan(maxMagnitude) {
		return Money{}, ErrOverflow
	}
	return Money{d: sum}, nil
}

// Sub returns a - b. The spec does not require Sub to reject negative
// results; callers (Account.Apply) are responsible for pre-checking
// sufficiency before calling Sub where a non-negative result is required.
func Sub(a, b Money) (Money, error) {
	diff := a.d.Sub(b.d)
	if diff.Abs().GreaterThan(maxMagnitude) {
		return Money{}, ErrOverflow
	}
	return Money{d: diff}, nil
}

// Cmp compares two Money values: -1 if a<b, 0 if a==b, 1 if a>b.
func Cmp(a, b Money) int {
	return a.d.Cmp(b.d)
}

// GreaterThanOrEqual reports whether a >= b.
func GreaterThanOrEqual(a, b Money) bool {
	return a.d.Cmp(b.d) >= 0
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// Equal reports whether two Money values represent the same amount.
func (m Money) Equal(other Money) bool {
	return m.d.Equal(other.d)
}

// ToOutputNumber returns a float64 suitable for textual emission,
// preserving 4 fractional digits for any value within the representable
// range. The float64 round trip is acceptable only because it happens
// once, at the moment a value leaves the ledger; it must never be used
// internally, where repeated conversions would accumulate rounding
// error.
func (m Money) ToOutputNumber() float64 {
	f, _ := m.d.Float64()
	return f
}

// Text renders the value as a fixed 4-decimal-place string for CSV output
// only. This is not a Stringer/Formatter implementation on purpose — see
// the package doc comment — callers must opt in explicitly by name.
func (m Money) Text() string {
	return m.d.StringFixedBank(scale)
}
