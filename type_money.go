package dcf

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a currency, for display purposes.
// All series arithmetic happens on float64; Money only enters when a report
// is rendered, where the currency's minor-unit rounding and symbol apply.
type Money struct {
	value *money.Money
}

// NewMoney creates a new Money instance from a decimal.Decimal major-unit amount.
func NewMoney(amount decimal.Decimal, currency string) Money {
	// Find the currency first.
	cur := money.GetCurrency(currency)
	if cur == nil {
		return Money{}
	}

	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	amount = amount.Mul(factor)
	return Money{money.New(amount.Round(0).IntPart(), currency)}
}

func NewMoneyFromFloat(amount float64, currency string) Money {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// String returns the formatted representation of the money value.
func (m Money) String() string {
	if m.value == nil {
		return ""
	}
	return m.value.Display()
}

func (m Money) Equals(other Money) bool {
	eq, err := m.value.Equals(other.value)
	return err == nil && eq
}

func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsPositive() bool { return m.value.IsPositive() }
func (m Money) IsNegative() bool { return m.value.IsNegative() }

// AsFloat returns the amount in major units.
func (m Money) AsFloat() float64 { return m.value.AsMajorUnits() }

// SignedString returns the string representation of the money value with an
// explicit sign, or "-" for zero.
func (m Money) SignedString() string {
	if m.value == nil || m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.value.Display()
	}
	return m.value.Display()
}
