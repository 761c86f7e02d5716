package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	"Tickfunds/pkg/cache"
	xhttp "Tickfunds/pkg/http"
	applogger "Tickfunds/pkg/logger"
	"Tickfunds/pkg/util"
)

const (
	screenerCacheName = "screener"
	maxCompareFunds   = 4
	topHoldingsCount  = 5
	popularWindow     = 7 * 24 * time.Hour
)

// performanceFactors shape the Jan..Dec NAV chart relative to the current NAV.
var performanceFactors = []struct {
	month  string
	factor float64
}{
	{"Jan", 0.92}, {"Feb", 0.94}, {"Mar", 0.91}, {"Apr", 0.96},
	{"May", 0.98}, {"Jun", 0.95}, {"Jul", 0.99}, {"Aug", 1.02},
	{"Sep", 1.01}, {"Oct", 0.98}, {"Nov", 1.03}, {"Dec", 1.00},
}

// ScreenFunds filters and sorts funds. The input slice is not modified.
func ScreenFunds(funds []models.Fund, f models.FundFilter) []models.Fund {
	risk := toSet(f.RiskLevels)
	houses := toSet(f.FundHouses)
	category := normalizeAll(f.Category)
	subCategory := normalizeAll(f.SubCategory)
	search := strings.TrimSpace(f.Search)

	out := make([]models.Fund, 0, len(funds))
	for _, fund := range funds {
		if category != "" && !strings.EqualFold(fund.Category, category) {
			continue
		}
		if subCategory != "" && !strings.EqualFold(fund.SubCategory, subCategory) {
			continue
		}
		if search != "" && !util.ContainsFold(fund.Name, search) && !util.ContainsFold(fund.FundHouse, search) {
			continue
		}
		if fund.MinInvestment < f.MinInvestment || fund.MinInvestment > f.MaxInvestment {
			continue
		}
		if fund.Returns.OneYear < f.MinReturns1Y {
			continue
		}
		if len(risk) > 0 && !risk[fund.RiskLevel] {
			continue
		}
		if len(houses) > 0 && !houses[fund.FundHouse] {
			continue
		}
		out = append(out, fund)
	}

	key := f.SortBy
	if key == "" {
		key = models.SortReturns1Y
	}
	asc := f.SortOrder == models.SortAsc
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].SortValue(key), out[j].SortValue(key)
		if asc {
			return a < b
		}
		return a > b
	})
	return out
}

func normalizeAll(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = true
		}
	}
	return set
}

// FundService serves the screener, fund pages and comparisons.
type FundService struct {
	catalog  domrepo.FundCatalog
	cache    cache.Service
	cacheTTL time.Duration
	activity domrepo.ActivityRecorder
	store    domrepo.ActivityStore
	metrics  domrepo.Metrics
	l        *applogger.Logger
}

// NewFundService wires the fund usecases. cache and store may be nil.
func NewFundService(
	catalog domrepo.FundCatalog,
	c cache.Service,
	cacheTTL time.Duration,
	activity domrepo.ActivityRecorder,
	store domrepo.ActivityStore,
	metrics domrepo.Metrics,
	l *applogger.Logger,
) *FundService {
	if l == nil {
		l = applogger.NewNop()
	}
	return &FundService{
		catalog:  catalog,
		cache:    c,
		cacheTTL: cacheTTL,
		activity: recorderOrNoop(activity),
		store:    store,
		metrics:  metricsOrNoop(metrics),
		l:        l,
	}
}

// ResetScreens drops cached screener results. Results written by a build with
// a different embedded catalog would otherwise outlive it in Redis.
func (s *FundService) ResetScreens(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeleteByPattern(ctx, screenerCacheName+":*")
}

// Screen runs the screener, serving repeated filters from cache.
func (s *FundService) Screen(ctx context.Context, f models.FundFilter) (*models.ScreenResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordLatency("screen", time.Since(start).Seconds()) }()

	f.RiskLevels = util.Dedupe(f.RiskLevels)
	f.FundHouses = util.Dedupe(f.FundHouses)

	key := ""
	if s.cache != nil {
		if h, err := cache.HashValue(f); err == nil {
			key = cache.GenerateKey(screenerCacheName, h)
			var cached models.ScreenResult
			err := s.cache.Get(ctx, key, &cached)
			s.metrics.RecordCacheLookup(screenerCacheName, err == nil)
			if err == nil {
				cached.Cached = true
				return &cached, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				s.l.Warn("screener cache read failed", applogger.String("key", key), applogger.Error(err))
			}
		}
	}

	funds, err := s.catalog.Funds(ctx)
	if err != nil {
		return nil, fmt.Errorf("load funds: %w", err)
	}
	res := &models.ScreenResult{Funds: ScreenFunds(funds, f), Filter: f}
	res.Total = len(res.Funds)

	if key != "" {
		if err := s.cache.Set(ctx, key, res, s.cacheTTL); err != nil {
			s.l.Warn("screener cache write failed", applogger.String("key", key), applogger.Error(err))
		}
	}
	s.activity.Record(ctx, models.ActivityFundsScreened, f.SortBy, map[string]string{
		"order":   f.SortOrder,
		"results": fmt.Sprint(res.Total),
	})
	return res, nil
}

func (s *FundService) Options() models.FilterOptions {
	return models.FilterOptions{
		FundHouses:    s.catalog.FundHouses(),
		RiskLevels:    s.catalog.RiskLevels(),
		Categories:    s.catalog.Categories(),
		SortKeys:      append([]string(nil), models.SortKeys...),
		InvestmentMin: models.MinInvestmentFloor,
		InvestmentMax: models.MinInvestmentCeiling,
		Defaults:      models.DefaultFundFilter(),
	}
}

// Detail returns a fund with its top holdings and NAV chart.
func (s *FundService) Detail(ctx context.Context, id string) (*models.FundDetail, error) {
	fund, err := s.catalog.Fund(ctx, id)
	if err != nil {
		return nil, notFound("fund", id, err)
	}
	top := fund.Holdings
	if len(top) > topHoldingsCount {
		top = top[:topHoldingsCount]
	}
	perf := make([]models.PerformancePoint, len(performanceFactors))
	for i, p := range performanceFactors {
		perf[i] = models.PerformancePoint{Month: p.month, NAV: round2(fund.NAV * p.factor)}
	}
	s.activity.Record(ctx, models.ActivityFundViewed, fund.ID, nil)
	return &models.FundDetail{
		Fund:        *fund,
		TopHoldings: append([]models.FundHolding(nil), top...),
		Performance: perf,
	}, nil
}

type compareRowDef struct {
	label       string
	value       func(models.Fund) interface{}
	numeric     func(models.Fund) float64
	lowerIsBest bool
}

var compareRows = []compareRowDef{
	{label: "Fund House", value: func(f models.Fund) interface{} { return f.FundHouse }},
	{label: "Category", value: func(f models.Fund) interface{} { return f.SubCategory }},
	{label: "Risk Level", value: func(f models.Fund) interface{} { return f.RiskLevel }},
	{label: "1Y Returns", numeric: func(f models.Fund) float64 { return f.Returns.OneYear }},
	{label: "3Y Returns", numeric: func(f models.Fund) float64 { return f.Returns.ThreeYear }},
	{label: "5Y Returns", numeric: func(f models.Fund) float64 { return f.Returns.FiveYear }},
	{label: "NAV", numeric: func(f models.Fund) float64 { return f.NAV }},
	{label: "AUM (Cr)", numeric: func(f models.Fund) float64 { return f.AUM }},
	{label: "Expense Ratio", numeric: func(f models.Fund) float64 { return f.ExpenseRatio }, lowerIsBest: true},
	{label: "Min Investment", numeric: func(f models.Fund) float64 { return f.MinInvestment }, lowerIsBest: true},
	{label: "Rating", numeric: func(f models.Fund) float64 { return float64(f.Rating) }},
}

// Compare lines up to four funds attribute by attribute. Unknown and repeated
// ids are dropped; request order is kept.
func (s *FundService) Compare(ctx context.Context, ids []string) (*models.FundComparison, error) {
	funds := make([]models.Fund, 0, maxCompareFunds)
	for _, id := range util.Dedupe(ids) {
		if len(funds) == maxCompareFunds {
			break
		}
		f, err := s.catalog.Fund(ctx, id)
		if errors.Is(err, domrepo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		funds = append(funds, *f)
	}
	if len(funds) < 2 {
		return nil, xhttp.FieldError("funds", "select at least 2 funds").WithError(ErrTooFewFunds)
	}

	rows := make([]models.CompareRow, 0, len(compareRows))
	for _, def := range compareRows {
		row := models.CompareRow{Label: def.label, Values: make([]interface{}, len(funds))}
		if def.numeric == nil {
			for i, f := range funds {
				row.Values[i] = def.value(f)
			}
			rows = append(rows, row)
			continue
		}
		best := 0
		for i, f := range funds {
			v := def.numeric(f)
			row.Values[i] = v
			bv := def.numeric(funds[best])
			if (def.lowerIsBest && v < bv) || (!def.lowerIsBest && v > bv) {
				best = i
			}
		}
		row.BestFundID = funds[best].ID
		rows = append(rows, row)
	}

	subjects := make([]string, len(funds))
	for i, f := range funds {
		subjects[i] = f.ID
	}
	s.activity.Record(ctx, models.ActivityFundsCompared, strings.Join(subjects, ","), nil)
	return &models.FundComparison{Funds: funds, Rows: rows}, nil
}

// Popular returns the most viewed funds of the last week when the activity
// store is available, and the top rated funds otherwise.
func (s *FundService) Popular(ctx context.Context, limit int) ([]models.PopularFund, error) {
	if limit <= 0 {
		limit = 5
	}
	if s.store != nil {
		out, err := s.popularFromStore(ctx, limit)
		if err == nil && len(out) > 0 {
			return out, nil
		}
		if err != nil {
			s.metrics.RecordError("popular_query")
			s.l.Warn("popular funds query failed, using ratings", applogger.Error(err))
		}
	}

	funds, err := s.catalog.Funds(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(funds, func(i, j int) bool {
		if funds[i].Rating != funds[j].Rating {
			return funds[i].Rating > funds[j].Rating
		}
		return funds[i].Returns.OneYear > funds[j].Returns.OneYear
	})
	if len(funds) > limit {
		funds = funds[:limit]
	}
	out := make([]models.PopularFund, len(funds))
	for i, f := range funds {
		out[i] = models.PopularFund{Fund: f, Source: "rating"}
	}
	return out, nil
}

func (s *FundService) popularFromStore(ctx context.Context, limit int) ([]models.PopularFund, error) {
	counts, err := s.store.TopSubjects(ctx, models.ActivityFundViewed, time.Now().Add(-popularWindow), limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.PopularFund, 0, len(counts))
	for _, c := range counts {
		f, err := s.catalog.Fund(ctx, c.Subject)
		if err != nil {
			continue
		}
		out = append(out, models.PopularFund{Fund: *f, Views: c.Count, Source: "views"})
	}
	return out, nil
}
