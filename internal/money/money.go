package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a non-negative monetary value. Every constructor and operation
// floors the result at zero, so balances built from Amounts can never go
// negative no matter the call order.
type Amount struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Amount{}

// New builds an Amount from a decimal, flooring negatives at zero.
func New(d decimal.Decimal) Amount {
	if d.IsNegative() {
		return Zero
	}
	return Amount{d: d}
}

// FromFloat builds an Amount from a float64, flooring negatives at zero.
func FromFloat(f float64) Amount {
	return New(decimal.NewFromFloat(f))
}

// FromString parses a decimal string. Negative values are rejected rather
// than floored: a negative amount at a boundary is caller error.
func FromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return Zero, fmt.Errorf("amount must not be negative: %s", s)
	}
	return Amount{d: d}, nil
}

func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

// Sub is saturating subtraction: a - b, floored at zero.
func (a Amount) Sub(b Amount) Amount {
	r := a.d.Sub(b.d)
	if r.IsNegative() {
		return Zero
	}
	return Amount{d: r}
}

// Min returns the smaller of a and b.
func (a Amount) Min(b Amount) Amount {
	if a.d.LessThan(b.d) {
		return a
	}
	return b
}

func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

func (a Amount) LessThan(b Amount) bool {
	return a.d.LessThan(b.d)
}

func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

func (a Amount) Decimal() decimal.Decimal {
	return a.d
}

func (a Amount) String() string {
	return a.d.String()
}

// Float64 returns the amount as a float64 for JSON responses. Precision loss
// is acceptable at the presentation boundary only.
func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// Scan implements sql.Scanner for numeric columns.
func (a *Amount) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	if d.IsNegative() {
		d = decimal.Zero
	}
	a.d = d
	return nil
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	return a.d.Value()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return a.d.MarshalJSON()
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	if d.IsNegative() {
		return fmt.Errorf("amount must not be negative: %s", d)
	}
	a.d = d
	return nil
}
