package models

// Fund is a mutual fund scheme from the static catalog.
type Fund struct {
	ID               string         `json:"id" yaml:"id"`
	Name             string         `json:"name" yaml:"name"`
	FundHouse        string         `json:"fundHouse" yaml:"fundHouse"`
	Category         string         `json:"category" yaml:"category"`
	SubCategory      string         `json:"subCategory" yaml:"subCategory"`
	RiskLevel        string         `json:"riskLevel" yaml:"riskLevel"`
	Returns          Returns        `json:"returns" yaml:"returns"`
	MinInvestment    float64        `json:"minInvestment" yaml:"minInvestment"`
	AUM              float64        `json:"aum" yaml:"aum"`
	ExpenseRatio     float64        `json:"expenseRatio" yaml:"expenseRatio"`
	Rating           int            `json:"rating" yaml:"rating"`
	NAV              float64        `json:"nav" yaml:"nav"`
	Holdings         []FundHolding  `json:"holdings,omitempty" yaml:"holdings"`
	SectorAllocation []SectorWeight `json:"sectorAllocation,omitempty" yaml:"sectorAllocation"`
}

type Returns struct {
	OneYear   float64 `json:"oneYear" yaml:"oneYear"`
	ThreeYear float64 `json:"threeYear" yaml:"threeYear"`
	FiveYear  float64 `json:"fiveYear" yaml:"fiveYear"`
}

type FundHolding struct {
	Name       string  `json:"name" yaml:"name"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
	Sector     string  `json:"sector" yaml:"sector"`
}

type SectorWeight struct {
	Sector     string  `json:"sector" yaml:"sector"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Risk levels in ascending order.
const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
	RiskVeryHigh = "Very High"
)

// Sort keys accepted by the screener.
const (
	SortReturns1Y     = "returns1Y"
	SortReturns3Y     = "returns3Y"
	SortReturns5Y     = "returns5Y"
	SortAUM           = "aum"
	SortRating        = "rating"
	SortMinInvestment = "minInvestment"
	SortExpenseRatio  = "expenseRatio"
	SortNAV           = "nav"
)

// SortKeys lists every screener sort key.
var SortKeys = []string{
	SortReturns1Y, SortReturns3Y, SortReturns5Y, SortAUM,
	SortRating, SortMinInvestment, SortExpenseRatio, SortNAV,
}

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Investment slider bounds.
const (
	MinInvestmentFloor   = 100
	MinInvestmentCeiling = 10000
)

// FundFilter is the screener state. Empty strings and empty sets disable a
// predicate. The investment bounds have no tag defaults since 0 is a valid
// bound; bind over DefaultFundFilter instead.
type FundFilter struct {
	MinInvestment float64  `json:"minInvestment" query:"minInvestment" validate:"gte=0"`
	MaxInvestment float64  `json:"maxInvestment" query:"maxInvestment" validate:"gtefield=MinInvestment"`
	MinReturns1Y  float64  `json:"minReturns1Y" query:"minReturns1Y"`
	RiskLevels    []string `json:"riskLevels,omitempty" query:"risk" validate:"dive,oneof=Low Moderate High 'Very High'"`
	FundHouses    []string `json:"fundHouses,omitempty" query:"house"`
	Category      string   `json:"category,omitempty" query:"category"`
	SubCategory   string   `json:"subCategory,omitempty" query:"subCategory"`
	Search        string   `json:"search,omitempty" query:"q"`
	SortBy        string   `json:"sortBy" query:"sort" default:"returns1Y" validate:"oneof=returns1Y returns3Y returns5Y aum rating minInvestment expenseRatio nav"`
	SortOrder     string   `json:"sortOrder" query:"order" default:"desc" validate:"oneof=asc desc"`
}

// DefaultFundFilter matches the reset state of the filter sheet.
func DefaultFundFilter() FundFilter {
	return FundFilter{
		MinInvestment: MinInvestmentFloor,
		MaxInvestment: MinInvestmentCeiling,
		SortBy:        SortReturns1Y,
		SortOrder:     SortDesc,
	}
}

// SortValue returns the numeric value of f for a sort key.
func (f Fund) SortValue(key string) float64 {
	switch key {
	case SortReturns3Y:
		return f.Returns.ThreeYear
	case SortReturns5Y:
		return f.Returns.FiveYear
	case SortAUM:
		return f.AUM
	case SortRating:
		return float64(f.Rating)
	case SortMinInvestment:
		return f.MinInvestment
	case SortExpenseRatio:
		return f.ExpenseRatio
	case SortNAV:
		return f.NAV
	default:
		return f.Returns.OneYear
	}
}

// PerformancePoint is one month of the NAV chart.
type PerformancePoint struct {
	Month string  `json:"month"`
	NAV   float64 `json:"nav"`
}

// FundDetail is the fund page payload.
type FundDetail struct {
	Fund
	TopHoldings []FundHolding      `json:"topHoldings"`
	Performance []PerformancePoint `json:"performance"`
}

// FilterOptions feeds the filter sheet.
type FilterOptions struct {
	FundHouses    []string   `json:"fundHouses"`
	RiskLevels    []string   `json:"riskLevels"`
	Categories    []string   `json:"categories"`
	SortKeys      []string   `json:"sortKeys"`
	InvestmentMin float64    `json:"investmentMin"`
	InvestmentMax float64    `json:"investmentMax"`
	Defaults      FundFilter `json:"defaults"`
}

// ScreenResult is a screener page.
type ScreenResult struct {
	Funds  []Fund     `json:"funds"`
	Total  int        `json:"total"`
	Filter FundFilter `json:"filter"`
	Cached bool       `json:"cached"`
}

// CompareRow is one attribute across compared funds.
type CompareRow struct {
	Label  string        `json:"label"`
	Values []interface{} `json:"values"`
	// BestFundID is empty for non-numeric rows.
	BestFundID string `json:"bestFundId,omitempty"`
}

type FundComparison struct {
	Funds []Fund       `json:"funds"`
	Rows  []CompareRow `json:"rows"`
}

// PopularFund is a fund with its view count; Views is zero for the rating fallback.
type PopularFund struct {
	Fund   Fund   `json:"fund"`
	Views  uint64 `json:"views"`
	Source string `json:"source"`
}
