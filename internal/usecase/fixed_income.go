package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	xhttp "Tickfunds/pkg/http"
	"Tickfunds/pkg/util"
)

const maxCompareInstruments = 4

// FDMaturityValue returns the maturity value of amount after years.
// Cumulative deposits compound quarterly; non-cumulative ones pay simple
// interest out and return the principal.
func FDMaturityValue(fdType string, amount, rate, years float64) float64 {
	if fdType == models.FDNonCumulative {
		interest := dec(amount).Mul(dec(rate)).Div(dec(100)).Mul(dec(years))
		return round2(dec(amount).Add(interest).InexactFloat64())
	}
	factor := math.Pow(1+rate/400, 4*years)
	return round2(dec(amount).Mul(dec(factor)).InexactFloat64())
}

type FixedIncomeService struct {
	catalog domrepo.FixedIncomeCatalog
}

func NewFixedIncomeService(catalog domrepo.FixedIncomeCatalog) *FixedIncomeService {
	return &FixedIncomeService{catalog: catalog}
}

// Bonds filters by name or issuer, optionally to the featured subset.
func (s *FixedIncomeService) Bonds(q models.CatalogQuery) []models.Bond {
	search := strings.TrimSpace(q.Search)
	out := make([]models.Bond, 0)
	for _, b := range s.catalog.Bonds() {
		if q.Featured && !b.Featured {
			continue
		}
		if search != "" && !util.ContainsFold(b.Name, search) && !util.ContainsFold(b.Issuer, search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (s *FixedIncomeService) Baskets() []models.BondBasket {
	return s.catalog.BondBaskets()
}

// FixedDeposits filters by company, optionally to the featured subset.
func (s *FixedIncomeService) FixedDeposits(q models.CatalogQuery) []models.FixedDeposit {
	search := strings.TrimSpace(q.Search)
	out := make([]models.FixedDeposit, 0)
	for _, fd := range s.catalog.FixedDeposits() {
		if q.Featured && !fd.Featured {
			continue
		}
		if search != "" && !util.ContainsFold(fd.Company, search) {
			continue
		}
		out = append(out, fd)
	}
	return out
}

// CompareBonds resolves up to four distinct bonds in request order.
func (s *FixedIncomeService) CompareBonds(ids []string) []models.Bond {
	byID := make(map[string]models.Bond)
	for _, b := range s.catalog.Bonds() {
		byID[b.ID] = b
	}
	out := make([]models.Bond, 0, maxCompareInstruments)
	for _, id := range util.Dedupe(ids) {
		if b, ok := byID[id]; ok && len(out) < maxCompareInstruments {
			out = append(out, b)
		}
	}
	return out
}

func (s *FixedIncomeService) CompareFDs(ids []string) []models.FixedDeposit {
	byID := make(map[string]models.FixedDeposit)
	for _, fd := range s.catalog.FixedDeposits() {
		byID[fd.ID] = fd
	}
	out := make([]models.FixedDeposit, 0, maxCompareInstruments)
	for _, id := range util.Dedupe(ids) {
		if fd, ok := byID[id]; ok && len(out) < maxCompareInstruments {
			out = append(out, fd)
		}
	}
	return out
}

func (s *FixedIncomeService) fd(id string) (models.FixedDeposit, bool) {
	for _, fd := range s.catalog.FixedDeposits() {
		if fd.ID == id {
			return fd, true
		}
	}
	return models.FixedDeposit{}, false
}

// Maturity projects an FD investment. Years defaults to the FD tenure.
func (s *FixedIncomeService) Maturity(_ context.Context, id string, req models.MaturityRequest) (*models.FDMaturity, error) {
	fd, ok := s.fd(id)
	if !ok {
		return nil, xhttp.NotFoundErrorf("fixed deposit %q not found", id)
	}
	if req.Amount < fd.MinAmount || req.Amount > fd.MaxAmount {
		return nil, xhttp.FieldError("amount",
			fmt.Sprintf("amount must be between %s and %s", compact(fd.MinAmount), compact(fd.MaxAmount))).
			WithParam("min", fd.MinAmount).
			WithParam("max", fd.MaxAmount)
	}
	years := req.Years
	if years == 0 {
		years = float64(fd.TenureMonths) / 12
	}
	value := FDMaturityValue(fd.Type, req.Amount, fd.Rate, years)
	return &models.FDMaturity{
		FD:              fd,
		Amount:          req.Amount,
		Years:           years,
		MaturityValue:   value,
		InterestEarned:  round2(dec(value).Sub(dec(req.Amount)).InexactFloat64()),
		MaturityDisplay: compact(value),
	}, nil
}
