package usecase

import (
	"testing"

	"Tickfunds/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizePortfolio(t *testing.T) {
	classes := []models.AssetClass{
		{Key: "mf", Label: "Mutual Funds", Current: 300000, Invested: 250000},
		{Key: "gold", Label: "Gold", Current: 100000, Invested: 100000},
		{Key: "cash", Label: "Cash", Current: 0, Invested: 0},
	}
	loans := []models.LoanPosition{{Name: "LAMF", Sanctioned: 200000, Outstanding: 50000}}

	s := SummarizePortfolio(classes, loans)
	require.Len(t, s.Classes, 3)
	assert.Equal(t, 400000.0, s.TotalCurrent)
	assert.Equal(t, 350000.0, s.TotalInvested)
	assert.Equal(t, 50000.0, s.Returns)
	assert.Equal(t, 14.29, s.ReturnsPercent)
	assert.Equal(t, 350000.0, s.NetWorth)
	assert.Equal(t, 200000.0, s.LoansSanctioned)
	assert.Equal(t, 50000.0, s.LoansOutstanding)

	assert.Equal(t, 75.0, s.Classes[0].Allocation)
	assert.Equal(t, 20.0, s.Classes[0].ReturnsPercent)
	assert.Equal(t, 0.0, s.Classes[2].ReturnsPercent)
	assert.NotEmpty(t, s.TotalDisplay)
}

func TestSummarizePortfolio_Empty(t *testing.T) {
	s := SummarizePortfolio(nil, nil)
	assert.Empty(t, s.Classes)
	assert.Equal(t, 0.0, s.TotalCurrent)
	assert.Equal(t, 0.0, s.ReturnsPercent)
}

func TestPortfolioService_Summary(t *testing.T) {
	s := NewPortfolioService(loadCatalog(t)).Summary()
	assert.NotEmpty(t, s.Classes)
	total := 0.0
	for _, c := range s.Classes {
		total += c.Allocation
	}
	assert.InDelta(t, 100, total, 0.1)
}
