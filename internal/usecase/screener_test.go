package usecase

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"testing"
	"time"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	"Tickfunds/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFunds() []models.Fund {
	return []models.Fund{
		{ID: "a", Name: "Alpha Bluechip", FundHouse: "Axis", Category: "Equity", SubCategory: "Large Cap", RiskLevel: "High", MinInvestment: 500, Rating: 5, Returns: models.Returns{OneYear: 18}},
		{ID: "b", Name: "Beta Liquid", FundHouse: "ICICI", Category: "Debt", SubCategory: "Liquid", RiskLevel: "Low", MinInvestment: 100, Rating: 4, Returns: models.Returns{OneYear: 7}},
		{ID: "c", Name: "Gamma Smallcap", FundHouse: "SBI", Category: "Equity", SubCategory: "Small Cap", RiskLevel: "Very High", MinInvestment: 5000, Rating: 3, Returns: models.Returns{OneYear: 28}},
		{ID: "d", Name: "Delta Flexi", FundHouse: "Axis", Category: "Equity", SubCategory: "Flexicap", RiskLevel: "High", MinInvestment: 20000, Rating: 4, Returns: models.Returns{OneYear: 18}},
	}
}

func ids(funds []models.Fund) []string {
	out := make([]string, len(funds))
	for i, f := range funds {
		out[i] = f.ID
	}
	return out
}

func TestScreenFunds_DefaultFilterSortsByReturnsDesc(t *testing.T) {
	got := ScreenFunds(sampleFunds(), models.DefaultFundFilter())
	// d is above the investment ceiling
	assert.Equal(t, []string{"c", "a", "b"}, ids(got))
}

func TestScreenFunds_Filters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.FundFilter)
		want   []string
	}{
		{"category all", func(f *models.FundFilter) { f.Category = "All" }, []string{"c", "a", "b"}},
		{"category case-insensitive", func(f *models.FundFilter) { f.Category = "debt" }, []string{"b"}},
		{"search by name", func(f *models.FundFilter) { f.Search = "small" }, []string{"c"}},
		{"search by house", func(f *models.FundFilter) { f.Search = "icici" }, []string{"b"}},
		{"risk levels", func(f *models.FundFilter) { f.RiskLevels = []string{"Low", "Very High"} }, []string{"c", "b"}},
		{"fund houses", func(f *models.FundFilter) { f.FundHouses = []string{"Axis"}; f.MaxInvestment = 50000 }, []string{"a", "d"}},
		{"min returns", func(f *models.FundFilter) { f.MinReturns1Y = 10 }, []string{"c", "a"}},
		{"investment range", func(f *models.FundFilter) { f.MinInvestment = 200; f.MaxInvestment = 1000 }, []string{"a"}},
		{"sort asc", func(f *models.FundFilter) { f.SortOrder = models.SortAsc }, []string{"b", "a", "c"}},
		{"sort by rating", func(f *models.FundFilter) { f.SortBy = models.SortRating }, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := models.DefaultFundFilter()
			tt.mutate(&f)
			assert.Equal(t, tt.want, ids(ScreenFunds(sampleFunds(), f)))
		})
	}
}

func TestScreenFunds_StableOnTies(t *testing.T) {
	f := models.DefaultFundFilter()
	f.MaxInvestment = 50000
	got := ScreenFunds(sampleFunds(), f)
	// a and d tie on 1Y returns and keep input order
	assert.Equal(t, []string{"c", "a", "d", "b"}, ids(got))
}

func TestScreenFunds_DoesNotModifyInput(t *testing.T) {
	in := sampleFunds()
	ScreenFunds(in, models.DefaultFundFilter())
	assert.Equal(t, sampleFunds(), in)
}

func newFundService(t *testing.T, c cache.Service, store domrepo.ActivityStore, m domrepo.Metrics, rec domrepo.ActivityRecorder) *FundService {
	t.Helper()
	return NewFundService(loadCatalog(t), c, time.Minute, rec, store, m, nil)
}

func TestFundService_ScreenServesRepeatsFromCache(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	m := newFakeMetrics()
	rec := &fakeRecorder{}
	s := newFundService(t, mc, nil, m, rec)

	ctx := context.Background()
	first, err := s.Screen(ctx, models.DefaultFundFilter())
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 10, first.Total)

	second, err := s.Screen(ctx, models.DefaultFundFilter())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, ids(first.Funds), ids(second.Funds))
	assert.Equal(t, 1, m.cacheHits)
	assert.Equal(t, 1, m.cacheMisses)
	assert.Equal(t, []string{models.ActivityFundsScreened}, rec.kinds())
}

func TestFundService_ResetScreensDropsCachedResults(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	s := newFundService(t, mc, nil, nil, nil)
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "session:kyc:1", "keep", 0))
	_, err := s.Screen(ctx, models.DefaultFundFilter())
	require.NoError(t, err)
	assert.Equal(t, 2, mc.Len())

	require.NoError(t, s.ResetScreens(ctx))
	assert.Equal(t, 1, mc.Len())

	res, err := s.Screen(ctx, models.DefaultFundFilter())
	require.NoError(t, err)
	assert.False(t, res.Cached)

	assert.NoError(t, newFundService(t, nil, nil, nil, nil).ResetScreens(ctx))
}

func TestFundService_Detail(t *testing.T) {
	rec := &fakeRecorder{}
	s := newFundService(t, nil, nil, nil, rec)

	d, err := s.Detail(context.Background(), "fund-1")
	require.NoError(t, err)
	assert.Equal(t, "Axis Bluechip Fund", d.Fund.Name)
	assert.Len(t, d.TopHoldings, 5)
	require.Len(t, d.Performance, 12)
	assert.Equal(t, "Jan", d.Performance[0].Month)
	assert.Equal(t, round2(d.Fund.NAV*0.92), d.Performance[0].NAV)
	assert.Equal(t, d.Fund.NAV, d.Performance[11].NAV)
	assert.Equal(t, []string{models.ActivityFundViewed}, rec.kinds())

	_, err = s.Detail(context.Background(), "missing")
	requireAppError(t, err, http.StatusNotFound)
}

func TestFundService_Compare(t *testing.T) {
	s := newFundService(t, nil, nil, nil, nil)
	ctx := context.Background()

	cmp, err := s.Compare(ctx, []string{"fund-1", "fund-3", "fund-1", "nope"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fund-1", "fund-3"}, ids(cmp.Funds))

	rows := map[string]models.CompareRow{}
	for _, r := range cmp.Rows {
		rows[r.Label] = r
	}
	assert.Equal(t, "fund-3", rows["1Y Returns"].BestFundID)
	assert.Equal(t, "fund-1", rows["Expense Ratio"].BestFundID)
	assert.Equal(t, "fund-3", rows["Min Investment"].BestFundID)
	assert.Empty(t, rows["Fund House"].BestFundID)

	cmp, err = s.Compare(ctx, []string{"fund-1", "fund-2", "fund-3", "fund-4", "fund-5"})
	require.NoError(t, err)
	assert.Len(t, cmp.Funds, 4)

	_, err = s.Compare(ctx, []string{"fund-1", "missing"})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, "funds", appErr.Field)
	assert.ErrorIs(t, err, ErrTooFewFunds)
}

func TestFundService_PopularFromViews(t *testing.T) {
	store := &fakeActivityStore{counts: []models.SubjectCount{
		{Subject: "fund-3", Count: 12},
		{Subject: "deleted", Count: 9},
		{Subject: "fund-1", Count: 4},
	}}
	s := newFundService(t, nil, store, nil, nil)

	got, err := s.Popular(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "fund-3", got[0].Fund.ID)
	assert.Equal(t, uint64(12), got[0].Views)
	assert.Equal(t, "views", got[0].Source)
}

func TestFundService_PopularFallsBackToRatings(t *testing.T) {
	m := newFakeMetrics()
	store := &fakeActivityStore{err: errors.New("clickhouse down")}
	s := newFundService(t, nil, store, m, nil)

	got, err := s.Popular(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"fund-4", "fund-8", "fund-1"}, []string{got[0].Fund.ID, got[1].Fund.ID, got[2].Fund.ID})
	assert.Equal(t, "rating", got[0].Source)
	assert.Equal(t, 1, m.errors["popular_query"])
}

// matches restates the screener predicates independently of ScreenFunds.
func matches(f models.FundFilter, fund models.Fund) bool {
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, "all") && !strings.EqualFold(fund.Category, c) {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" &&
		!strings.Contains(strings.ToLower(fund.Name), s) && !strings.Contains(strings.ToLower(fund.FundHouse), s) {
		return false
	}
	if fund.MinInvestment < f.MinInvestment || fund.MinInvestment > f.MaxInvestment {
		return false
	}
	if fund.Returns.OneYear < f.MinReturns1Y {
		return false
	}
	if len(f.RiskLevels) > 0 && !slices.Contains(f.RiskLevels, fund.RiskLevel) {
		return false
	}
	if len(f.FundHouses) > 0 && !slices.Contains(f.FundHouses, fund.FundHouse) {
		return false
	}
	return true
}

func catalogFilters() map[string]models.FundFilter {
	with := func(mutate func(*models.FundFilter)) models.FundFilter {
		f := models.DefaultFundFilter()
		mutate(&f)
		return f
	}
	return map[string]models.FundFilter{
		"defaults":        models.DefaultFundFilter(),
		"equity by aum":   with(func(f *models.FundFilter) { f.Category = "Equity"; f.SortBy = models.SortAUM }),
		"high risk asc":   with(func(f *models.FundFilter) { f.RiskLevels = []string{"High"}; f.SortOrder = models.SortAsc }),
		"two houses":      with(func(f *models.FundFilter) { f.FundHouses = []string{"HDFC", "SBI"}; f.SortBy = models.SortReturns3Y }),
		"returns floor":   with(func(f *models.FundFilter) { f.MinReturns1Y = 20; f.SortBy = models.SortExpenseRatio; f.SortOrder = models.SortAsc }),
		"narrow ticket":   with(func(f *models.FundFilter) { f.MinInvestment = 500; f.MaxInvestment = 500; f.SortBy = models.SortNAV }),
		"zero floor":      with(func(f *models.FundFilter) { f.MinInvestment = 0; f.SortBy = models.SortMinInvestment }),
		"search and risk": with(func(f *models.FundFilter) { f.Search = "fund"; f.RiskLevels = []string{"Low", "Very High"}; f.SortBy = models.SortRating }),
		"no matches":      with(func(f *models.FundFilter) { f.Category = "Gold" }),
	}
}

func TestScreenFunds_ResultsMatchFilterAndOrder(t *testing.T) {
	funds, err := loadCatalog(t).Funds(context.Background())
	require.NoError(t, err)

	for name, f := range catalogFilters() {
		t.Run(name, func(t *testing.T) {
			got := ScreenFunds(funds, f)

			want := 0
			for _, fund := range funds {
				if matches(f, fund) {
					want++
				}
			}
			assert.Len(t, got, want)

			for i, fund := range got {
				assert.True(t, matches(f, fund), fund.ID)
				if i == 0 {
					continue
				}
				prev, cur := got[i-1].SortValue(f.SortBy), fund.SortValue(f.SortBy)
				if f.SortOrder == models.SortAsc {
					assert.LessOrEqual(t, prev, cur, "%s before %s", got[i-1].ID, fund.ID)
				} else {
					assert.GreaterOrEqual(t, prev, cur, "%s before %s", got[i-1].ID, fund.ID)
				}
			}
		})
	}
}

func TestScreenFunds_Idempotent(t *testing.T) {
	funds, err := loadCatalog(t).Funds(context.Background())
	require.NoError(t, err)

	for name, f := range catalogFilters() {
		t.Run(name, func(t *testing.T) {
			once := ScreenFunds(funds, f)
			assert.Equal(t, ids(once), ids(ScreenFunds(once, f)))
		})
	}
}
