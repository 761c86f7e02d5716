package usecase

import (
	"Tickfunds/pkg/money"

	"github.com/shopspring/decimal"
)

func round2(v float64) float64 { return money.Round2(decimal.NewFromFloat(v)) }

func round4(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}

func compact(v float64) string { return money.Compact(decimal.NewFromFloat(v)) }

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
