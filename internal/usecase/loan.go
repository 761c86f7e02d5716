package usecase

import (
	"context"
	"fmt"
	"math"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	xhttp "Tickfunds/pkg/http"
)

// Income-based borrowing assumes a 60 month loan at 10% against half of the
// disposable income.
const (
	incomeLoanRate   = 10.0
	incomeLoanMonths = 60
	maxEMIShare      = 0.5
	maxFOIR          = 50.0
	minSavingsRate   = 20.0
)

// LTVByType is the loan-to-value ratio applied to each pledgeable holding type.
var LTVByType = map[string]float64{
	models.AssetEquity: 0.5,
	models.AssetDebt:   0.8,
	models.AssetHybrid: 0.6,
	models.AssetGold:   0.75,
}

// EMI returns the monthly instalment rounded to the rupee.
func EMI(principal, annualRate float64, months int) (float64, error) {
	emi, err := rawEMI(principal, annualRate, months)
	if err != nil {
		return 0, err
	}
	return math.Round(emi), nil
}

func rawEMI(principal, annualRate float64, months int) (float64, error) {
	if months <= 0 {
		return 0, ErrInvalidTenure
	}
	if principal < 0 {
		return 0, ErrNegativePrincipal
	}
	r := annualRate / 12 / 100
	if r == 0 {
		return principal / float64(months), nil
	}
	pow := math.Pow(1+r, float64(months))
	return principal * r * pow / (pow - 1), nil
}

// MaxPrincipal inverts the EMI formula: the largest loan a monthly payment
// services at the given rate and term. It never goes below zero.
func MaxPrincipal(emi, annualRate float64, months int) float64 {
	if emi <= 0 || months <= 0 {
		return 0
	}
	r := annualRate / 12 / 100
	if r == 0 {
		return emi * float64(months)
	}
	pow := math.Pow(1+r, float64(months))
	return emi * (pow - 1) / (r * pow)
}

// Amortize builds the month-by-month schedule for a rounded EMI. The last
// row absorbs rounding so the balance closes at zero.
func Amortize(principal, annualRate float64, months int) ([]models.AmortizationRow, error) {
	emi, err := EMI(principal, annualRate, months)
	if err != nil {
		return nil, err
	}
	r := annualRate / 12 / 100
	rows := make([]models.AmortizationRow, 0, months)
	balance := principal
	for m := 1; m <= months; m++ {
		interest := balance * r
		paid := emi - interest
		payment := emi
		if m == months || paid > balance {
			paid = balance
			payment = paid + interest
		}
		balance -= paid
		rows = append(rows, models.AmortizationRow{
			Month:     m,
			EMI:       round2(payment),
			Principal: round2(paid),
			Interest:  round2(interest),
			Balance:   round2(math.Max(balance, 0)),
		})
	}
	return rows, nil
}

func Quote(req models.EMIRequest) (*models.EMIQuote, error) {
	emi, err := EMI(req.Principal, req.AnnualRate, req.Months)
	if err != nil {
		return nil, err
	}
	total := emi * float64(req.Months)
	q := &models.EMIQuote{
		Principal:     req.Principal,
		AnnualRate:    req.AnnualRate,
		Months:        req.Months,
		EMI:           emi,
		TotalPayable:  total,
		TotalInterest: total - req.Principal,
		Display:       compact(emi),
	}
	if req.Schedule {
		if q.Schedule, err = Amortize(req.Principal, req.AnnualRate, req.Months); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// ComputeBorrowingPower combines pledged-holding value with income headroom.
func ComputeBorrowingPower(holdings []models.PledgeableHolding, req models.BorrowingPowerRequest) (*models.BorrowingPower, error) {
	if req.MonthlyIncome <= 0 {
		return nil, xhttp.FieldError("monthlyIncome", "monthly income must be greater than 0")
	}

	out := &models.BorrowingPower{Holdings: make([]models.PledgeableHolding, len(holdings))}
	portfolioValue, portfolioPower := dec(0), dec(0)
	for i, h := range holdings {
		ltv := h.LTVRatio
		if ltv == 0 {
			ltv = LTVByType[h.Type]
		}
		h.LTVRatio = ltv
		loanValue := dec(h.Value).Mul(dec(ltv))
		h.LoanValue = round2(loanValue.InexactFloat64())
		out.Holdings[i] = h
		portfolioValue = portfolioValue.Add(dec(h.Value))
		portfolioPower = portfolioPower.Add(loanValue)
	}

	disposable := req.MonthlyIncome - req.ExistingEMI - req.MonthlyExpenses
	maxEMI := maxEMIShare * disposable
	incomePower := math.Max(0, MaxPrincipal(maxEMI, incomeLoanRate, incomeLoanMonths))

	out.PortfolioValue = round2(portfolioValue.InexactFloat64())
	out.PortfolioPower = round2(portfolioPower.InexactFloat64())
	out.IncomePower = math.Round(incomePower)
	out.TotalPower = out.PortfolioPower + out.IncomePower
	out.DisposableIncome = disposable
	out.MaxEMI = round2(maxEMI)
	out.FOIR = round2(req.ExistingEMI / req.MonthlyIncome * 100)
	out.SavingsRate = round2(disposable / req.MonthlyIncome * 100)
	if out.TotalPower > 0 {
		out.PortfolioShare = round2(out.PortfolioPower / out.TotalPower * 100)
		out.IncomeShare = round2(out.IncomePower / out.TotalPower * 100)
	}
	out.Checks = []models.EligibilityCheck{
		{Label: fmt.Sprintf("FOIR below %.0f%%", maxFOIR), Passed: out.FOIR < maxFOIR},
		{Label: "Positive disposable income", Passed: disposable > 0},
		{Label: fmt.Sprintf("Savings rate at least %.0f%%", minSavingsRate), Passed: out.SavingsRate >= minSavingsRate},
	}
	out.TotalPowerDisplay = compact(out.TotalPower)
	out.IncomePowerDisplay = compact(out.IncomePower)
	return out, nil
}

type LoanService struct {
	catalog  domrepo.LoanCatalog
	activity domrepo.ActivityRecorder
}

func NewLoanService(catalog domrepo.LoanCatalog, activity domrepo.ActivityRecorder) *LoanService {
	return &LoanService{catalog: catalog, activity: recorderOrNoop(activity)}
}

func (s *LoanService) Products() []models.LoanProduct {
	return s.catalog.Products()
}

func (s *LoanService) Quote(ctx context.Context, req models.EMIRequest) (*models.EMIQuote, error) {
	q, err := Quote(req)
	if err != nil {
		return nil, xhttp.BadRequestError(err.Error()).WithError(err)
	}
	s.activity.Record(ctx, models.ActivityEMIQuoted, fmt.Sprintf("%dm", req.Months), map[string]string{
		"principal": fmt.Sprintf("%.0f", req.Principal),
		"rate":      fmt.Sprintf("%.2f", req.AnnualRate),
	})
	return q, nil
}

func (s *LoanService) BorrowingPower(_ context.Context, req models.BorrowingPowerRequest) (*models.BorrowingPower, error) {
	return ComputeBorrowingPower(s.catalog.PledgeableHoldings(), req)
}
