package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	assert.Equal(t, "₹1,234.56", FromFloat(1234.56).Display())
	assert.Equal(t, "₹0.10", FromFloat(0.1).Display())
	assert.Equal(t, int64(638000), FromFloat(6380).Paise())
}

func TestCompact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10000000", "₹1.00 Cr"},
		{"25000000", "₹2.50 Cr"},
		{"5000000", "₹50.00 L"},
		{"100000", "₹1.00 L"},
		{"99999", "₹99,999.00"},
		{"-150000", "-₹1.50 L"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Compact(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 14.75, Round2(decimal.RequireFromString("14.7459")))
}
