// Package money formats rupee amounts held as decimals.
package money

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const INR = money.INR

var (
	crore = decimal.NewFromInt(10_000_000)
	lakh  = decimal.NewFromInt(100_000)
)

// Amount is a rupee value backed by go-money minor units.
type Amount struct {
	value *money.Money
}

// New scales a decimal rupee amount to paise, rounding half away from zero.
func New(amount decimal.Decimal) Amount {
	cur := money.GetCurrency(INR)
	factor := decimal.New(1, int32(cur.Fraction))
	return Amount{money.New(amount.Mul(factor).Round(0).IntPart(), INR)}
}

func FromFloat(amount float64) Amount {
	return New(decimal.NewFromFloat(amount))
}

// Display renders the amount with the rupee sign, e.g. "₹1,234.56".
func (a Amount) Display() string {
	return a.value.Display()
}

func (a Amount) Paise() int64 {
	return a.value.Amount()
}

// Compact renders ≥1 crore as "₹x.xx Cr", ≥1 lakh as "₹x.xx L", otherwise Display.
func Compact(amount decimal.Decimal) string {
	abs := amount.Abs()
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(crore):
		return sign + "₹" + abs.Div(crore).StringFixed(2) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return sign + "₹" + abs.Div(lakh).StringFixed(2) + " L"
	default:
		return New(amount).Display()
	}
}

// Round2 rounds to paise.
func Round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
