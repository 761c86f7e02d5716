package usecase

import (
	"context"
	"errors"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	xhttp "Tickfunds/pkg/http"
	"Tickfunds/pkg/money"
)

var ErrNoQuoteInput = errors.New("Please enter amount or quantity")

type GoldService struct {
	catalog domrepo.GoldCatalog
}

func NewGoldService(catalog domrepo.GoldCatalog) *GoldService {
	return &GoldService{catalog: catalog}
}

func (s *GoldService) Prices() []models.MetalPrice {
	return s.catalog.Prices()
}

func (s *GoldService) Transactions() []models.GoldTransaction {
	return s.catalog.Transactions()
}

func (s *GoldService) price(metal string) (float64, bool) {
	for _, p := range s.catalog.Prices() {
		if p.Metal == metal {
			return p.PricePerGram, true
		}
	}
	return 0, false
}

// Quote converts an amount to grams (4 decimals) or grams to an amount
// (2 decimals). Amount wins when both are given.
func (s *GoldService) Quote(_ context.Context, req models.GoldQuoteRequest) (*models.GoldQuote, error) {
	price, ok := s.price(req.Metal)
	if !ok {
		return nil, xhttp.FieldError("metal", "unknown metal").WithParam("metal", req.Metal)
	}
	q := &models.GoldQuote{Side: req.Side, Metal: req.Metal, PricePerGram: price}
	switch {
	case req.Amount > 0:
		q.Amount = round2(req.Amount)
		q.Quantity = round4(dec(req.Amount).Div(dec(price)).InexactFloat64())
	case req.Quantity > 0:
		q.Quantity = round4(req.Quantity)
		q.Amount = round2(dec(req.Quantity).Mul(dec(price)).InexactFloat64())
	default:
		return nil, xhttp.BadRequestError(ErrNoQuoteInput.Error()).WithError(ErrNoQuoteInput)
	}
	q.Display = money.FromFloat(q.Amount).Display()
	return q, nil
}

// Holdings values every metal position at the current price.
func (s *GoldService) Holdings() models.MetalHoldings {
	out := models.MetalHoldings{Positions: make([]models.MetalPosition, 0)}
	totalInvested, totalValue := dec(0), dec(0)
	for _, h := range s.catalog.Holdings() {
		price, _ := s.price(h.Metal)
		invested := dec(h.Grams).Mul(dec(h.AvgPrice))
		current := dec(h.Grams).Mul(dec(price))
		pnl := current.Sub(invested)
		pos := models.MetalPosition{
			MetalHolding: h,
			Invested:     money.Round2(invested),
			CurrentValue: money.Round2(current),
			PnL:          money.Round2(pnl),
		}
		if !invested.IsZero() {
			pos.PnLPercent = money.Round2(pnl.Div(invested).Mul(dec(100)))
		}
		out.Positions = append(out.Positions, pos)
		totalInvested = totalInvested.Add(invested)
		totalValue = totalValue.Add(current)
	}
	out.TotalInvested = money.Round2(totalInvested)
	out.TotalValue = money.Round2(totalValue)
	out.TotalPnL = money.Round2(totalValue.Sub(totalInvested))
	out.Display = money.New(totalValue).Display()
	return out
}
