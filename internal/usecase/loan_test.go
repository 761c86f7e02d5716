package usecase

import (
	"context"
	"net/http"
	"testing"

	"Tickfunds/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMI(t *testing.T) {
	emi, err := EMI(500000, 12, 24)
	require.NoError(t, err)
	assert.Equal(t, 23537.0, emi)

	emi, err = EMI(120000, 0, 12)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, emi)

	_, err = EMI(100000, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidTenure)

	_, err = EMI(-1, 10, 12)
	assert.ErrorIs(t, err, ErrNegativePrincipal)
}

func TestEMI_Monotonic(t *testing.T) {
	base, _ := EMI(500000, 12, 24)
	morePrincipal, _ := EMI(600000, 12, 24)
	moreRate, _ := EMI(500000, 14, 24)
	longer, _ := EMI(500000, 12, 36)

	assert.Greater(t, morePrincipal, base)
	assert.Greater(t, moreRate, base)
	assert.Less(t, longer, base)
}

func TestMaxPrincipal_InvertsEMI(t *testing.T) {
	emi, err := rawEMI(750000, 10, 60)
	require.NoError(t, err)
	assert.InDelta(t, 750000, MaxPrincipal(emi, 10, 60), 0.01)
	assert.Equal(t, 0.0, MaxPrincipal(-5, 10, 60))
	assert.Equal(t, 1200.0, MaxPrincipal(100, 0, 12))
}

func TestAmortize_ClosesAtZero(t *testing.T) {
	rows, err := Amortize(500000, 12, 24)
	require.NoError(t, err)
	require.Len(t, rows, 24)

	principal := 0.0
	for _, r := range rows {
		principal += r.Principal
	}
	assert.InDelta(t, 500000, principal, 0.5)
	assert.Equal(t, 0.0, rows[23].Balance)
	assert.Equal(t, 5000.0, rows[0].Interest)
	assert.Equal(t, 23537.0, rows[0].EMI)
}

func TestQuote(t *testing.T) {
	q, err := Quote(models.EMIRequest{Principal: 500000, AnnualRate: 12, Months: 24, Schedule: true})
	require.NoError(t, err)
	assert.Equal(t, 23537.0*24, q.TotalPayable)
	assert.Equal(t, 23537.0*24-500000, q.TotalInterest)
	assert.Len(t, q.Schedule, 24)
	assert.NotEmpty(t, q.Display)

	q, err = Quote(models.EMIRequest{Principal: 500000, AnnualRate: 12, Months: 24})
	require.NoError(t, err)
	assert.Empty(t, q.Schedule)
}

func TestComputeBorrowingPower_Defaults(t *testing.T) {
	holdings := []models.PledgeableHolding{
		{Name: "Equity MF", Type: models.AssetEquity, Value: 1000000},
		{Name: "Debt MF", Type: models.AssetDebt, Value: 500000},
	}
	bp, err := ComputeBorrowingPower(holdings, models.BorrowingPowerRequest{
		MonthlyIncome: 100000, ExistingEMI: 15000, MonthlyExpenses: 40000,
	})
	require.NoError(t, err)

	assert.Equal(t, 1500000.0, bp.PortfolioValue)
	assert.Equal(t, 900000.0, bp.PortfolioPower)
	assert.Equal(t, 0.5, bp.Holdings[0].LTVRatio)
	assert.Equal(t, 400000.0, bp.Holdings[1].LoanValue)

	assert.Equal(t, 45000.0, bp.DisposableIncome)
	assert.Equal(t, 22500.0, bp.MaxEMI)
	assert.InDelta(t, 1058971, bp.IncomePower, 5)
	assert.Equal(t, bp.PortfolioPower+bp.IncomePower, bp.TotalPower)
	assert.Equal(t, 15.0, bp.FOIR)
	assert.Equal(t, 45.0, bp.SavingsRate)
	assert.InDelta(t, 100, bp.PortfolioShare+bp.IncomeShare, 0.02)
	for _, c := range bp.Checks {
		assert.True(t, c.Passed, c.Label)
	}
}

func TestComputeBorrowingPower_NegativeDisposable(t *testing.T) {
	bp, err := ComputeBorrowingPower(nil, models.BorrowingPowerRequest{
		MonthlyIncome: 50000, ExistingEMI: 30000, MonthlyExpenses: 40000,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, bp.IncomePower)
	assert.Equal(t, 0.0, bp.TotalPower)
	assert.False(t, bp.Checks[0].Passed)
	assert.False(t, bp.Checks[1].Passed)
	assert.False(t, bp.Checks[2].Passed)

	_, err = ComputeBorrowingPower(nil, models.BorrowingPowerRequest{})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, "monthlyIncome", appErr.Field)
}

func TestLoanService(t *testing.T) {
	rec := &fakeRecorder{}
	s := NewLoanService(loadCatalog(t), rec)
	assert.NotEmpty(t, s.Products())

	_, err := s.Quote(context.Background(), models.EMIRequest{Principal: 100000, AnnualRate: 10})
	requireAppError(t, err, http.StatusBadRequest)
	assert.ErrorIs(t, err, ErrInvalidTenure)

	_, err = s.Quote(context.Background(), models.EMIRequest{Principal: 100000, AnnualRate: 10, Months: 12})
	require.NoError(t, err)
	assert.Equal(t, []string{models.ActivityEMIQuoted}, rec.kinds())

	bp, err := s.BorrowingPower(context.Background(), models.BorrowingPowerRequest{MonthlyIncome: 100000})
	require.NoError(t, err)
	assert.NotEmpty(t, bp.Holdings)
}

func TestQuote_ZeroRateIsInterestFree(t *testing.T) {
	q, err := Quote(models.EMIRequest{Principal: 120000, AnnualRate: 0, Months: 12, Schedule: true})
	require.NoError(t, err)
	assert.Equal(t, 10000.0, q.EMI)
	assert.Equal(t, 0.0, q.AnnualRate)
	assert.Equal(t, 0.0, q.TotalInterest)
	for _, row := range q.Schedule {
		assert.Equal(t, 0.0, row.Interest)
	}
	assert.Equal(t, 0.0, q.Schedule[11].Balance)
}

func TestComputeBorrowingPower_NoEMIsOrExpenses(t *testing.T) {
	bp, err := ComputeBorrowingPower(nil, models.BorrowingPowerRequest{
		MonthlyIncome: 100000, ExistingEMI: 0, MonthlyExpenses: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, bp.FOIR)
	assert.Equal(t, 100000.0, bp.DisposableIncome)
	assert.Equal(t, 50000.0, bp.MaxEMI)
	assert.Equal(t, 100.0, bp.SavingsRate)
}

func TestDefaultRequests(t *testing.T) {
	emi := models.DefaultEMIRequest()
	assert.Equal(t, models.EMIRequest{Principal: 500000, Months: 24, AnnualRate: 12}, emi)

	bp := models.DefaultBorrowingPowerRequest()
	assert.Equal(t, models.BorrowingPowerRequest{MonthlyIncome: 100000, ExistingEMI: 15000, MonthlyExpenses: 40000}, bp)
}
