package usecase

import (
	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	"Tickfunds/pkg/money"

	"github.com/shopspring/decimal"
)

// SummarizePortfolio derives returns, allocation and net worth. Loans are
// excluded from the totals and subtracted only from net worth.
func SummarizePortfolio(classes []models.AssetClass, loans []models.LoanPosition) models.PortfolioSummary {
	totalCurrent, totalInvested := decimal.Zero, decimal.Zero
	for _, c := range classes {
		totalCurrent = totalCurrent.Add(dec(c.Current))
		totalInvested = totalInvested.Add(dec(c.Invested))
	}

	summary := models.PortfolioSummary{
		Classes: make([]models.AssetClassSummary, 0, len(classes)),
		Loans:   append([]models.LoanPosition(nil), loans...),
	}
	for _, c := range classes {
		current, invested := dec(c.Current), dec(c.Invested)
		returns := current.Sub(invested)
		cs := models.AssetClassSummary{
			AssetClass: c,
			Returns:    money.Round2(returns),
			Display:    money.Compact(current),
		}
		if !invested.IsZero() {
			cs.ReturnsPercent = money.Round2(returns.Div(invested).Mul(decimal.NewFromInt(100)))
		}
		if !totalCurrent.IsZero() {
			cs.Allocation = money.Round2(current.Div(totalCurrent).Mul(decimal.NewFromInt(100)))
		}
		summary.Classes = append(summary.Classes, cs)
	}

	sanctioned, outstanding := decimal.Zero, decimal.Zero
	for _, l := range loans {
		sanctioned = sanctioned.Add(dec(l.Sanctioned))
		outstanding = outstanding.Add(dec(l.Outstanding))
	}

	returns := totalCurrent.Sub(totalInvested)
	netWorth := totalCurrent.Sub(outstanding)
	summary.TotalCurrent = money.Round2(totalCurrent)
	summary.TotalInvested = money.Round2(totalInvested)
	summary.Returns = money.Round2(returns)
	if !totalInvested.IsZero() {
		summary.ReturnsPercent = money.Round2(returns.Div(totalInvested).Mul(decimal.NewFromInt(100)))
	}
	summary.LoansSanctioned = money.Round2(sanctioned)
	summary.LoansOutstanding = money.Round2(outstanding)
	summary.NetWorth = money.Round2(netWorth)
	summary.TotalDisplay = money.New(totalCurrent).Display()
	summary.NetWorthDisplay = money.New(netWorth).Display()
	return summary
}

type PortfolioService struct {
	catalog domrepo.PortfolioCatalog
}

func NewPortfolioService(catalog domrepo.PortfolioCatalog) *PortfolioService {
	return &PortfolioService{catalog: catalog}
}

func (s *PortfolioService) Summary() models.PortfolioSummary {
	return SummarizePortfolio(s.catalog.AssetClasses(), s.catalog.Loans())
}
