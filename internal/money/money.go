package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount tagged with an ISO currency code. Amounts
// travel over the wire as decimal strings, never as binary floats.
type Money struct {
	Amount       decimal.Decimal
	CurrencyCode string
}

// Parse builds a Money from a decimal-string amount and currency code.
func Parse(amount, currencyCode string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("parse money amount %q: %w", amount, err)
	}
	return Money{Amount: d, CurrencyCode: currencyCode}, nil
}

// MustParse is Parse for trusted literals; it panics on malformed input.
func MustParse(amount, currencyCode string) Money {
	m, err := Parse(amount, currencyCode)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero amount in the given currency.
func Zero(currencyCode string) Money {
	return Money{Amount: decimal.Zero, CurrencyCode: currencyCode}
}

// Add returns m + other. The currency code of m wins; mixing currencies
// is a caller bug the remote side never produces.
func (m Money) Add(other Money) Money {
	code := m.CurrencyCode
	if code == "" {
		code = other.CurrencyCode
	}
	return Money{Amount: m.Amount.Add(other.Amount), CurrencyCode: code}
}

// MulInt returns m multiplied by an integer quantity.
func (m Money) MulInt(n int) Money {
	return Money{
		Amount:       m.Amount.Mul(decimal.NewFromInt(int64(n))),
		CurrencyCode: m.CurrencyCode,
	}
}

// Cmp compares amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.Amount.Cmp(other.Amount)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// String renders the amount with two decimal places, e.g. "79.99 USD".
func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.CurrencyCode
}

// wire is the Storefront MoneyV2 shape.
type wire struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// MarshalJSON encodes the Storefront MoneyV2 shape with a string amount.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{
		Amount:       m.Amount.StringFixed(2),
		CurrencyCode: m.CurrencyCode,
	})
}

// UnmarshalJSON decodes the Storefront MoneyV2 shape.
func (m *Money) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	parsed, err := Parse(w.Amount, w.CurrencyCode)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
