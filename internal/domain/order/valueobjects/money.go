package valueobjects

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount with a currency code. Amounts are
// compared and formatted as fixed-point values; binary floats never
// enter the comparison path.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = "USD"
	}
	return Money{
		amount:   amount,
		currency: currency,
	}
}

// NewMoneyFromString parses a decimal amount string such as "25.00".
func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return NewMoney(d, currency), nil
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// Format returns the amount with exactly two decimal places, the form
// used on the gateway wire and inside signature strings.
func (m Money) Format() string {
	return m.amount.StringFixed(2)
}

func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount) && m.currency == other.currency
}

// EqualsAmount compares against a raw amount string by exact decimal
// value, so "25", "25.0" and "25.00" all match a 25.00 total.
func (m Money) EqualsAmount(amount string) bool {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return false
	}
	return m.amount.Equal(d)
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Format(), m.currency)
}
