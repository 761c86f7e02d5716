package models

// Asset class keys.
const (
	ClassMutualFunds = "mf"
	ClassBaskets     = "baskets"
	ClassFD          = "fd"
	ClassBonds       = "bonds"
	ClassGold        = "gold"
)

// PortfolioHolding is one line inside an asset class. Only the fields that
// make sense for the class are set.
type PortfolioHolding struct {
	Name         string  `json:"name" yaml:"name"`
	Category     string  `json:"category,omitempty" yaml:"category"`
	Units        float64 `json:"units,omitempty" yaml:"units"`
	Funds        int     `json:"funds,omitempty" yaml:"funds"`
	Grams        float64 `json:"grams,omitempty" yaml:"grams"`
	Rate         float64 `json:"rate,omitempty" yaml:"rate"`
	TenureMonths int     `json:"tenureMonths,omitempty" yaml:"tenureMonths"`
	Maturity     string  `json:"maturity,omitempty" yaml:"maturity"`
	Invested     float64 `json:"invested" yaml:"invested"`
	Current      float64 `json:"current" yaml:"current"`
	ReturnsPct   float64 `json:"returnsPct,omitempty" yaml:"returnsPct"`
}

type AssetClass struct {
	Key      string             `json:"key" yaml:"key"`
	Label    string             `json:"label" yaml:"label"`
	Current  float64            `json:"current" yaml:"current"`
	Invested float64            `json:"invested" yaml:"invested"`
	Holdings []PortfolioHolding `json:"holdings" yaml:"holdings"`
}

type LoanPosition struct {
	Name        string  `json:"name" yaml:"name"`
	Sanctioned  float64 `json:"sanctioned" yaml:"sanctioned"`
	Outstanding float64 `json:"outstanding" yaml:"outstanding"`
	Rate        float64 `json:"rate" yaml:"rate"`
	Collateral  string  `json:"collateral" yaml:"collateral"`
}

// AssetClassSummary is an asset class with derived figures.
type AssetClassSummary struct {
	AssetClass
	Returns        float64 `json:"returns"`
	ReturnsPercent float64 `json:"returnsPercent"`
	Allocation     float64 `json:"allocation"`
	Display        string  `json:"display"`
}

type PortfolioSummary struct {
	Classes          []AssetClassSummary `json:"classes"`
	TotalCurrent     float64             `json:"totalCurrent"`
	TotalInvested    float64             `json:"totalInvested"`
	Returns          float64             `json:"returns"`
	ReturnsPercent   float64             `json:"returnsPercent"`
	Loans            []LoanPosition      `json:"loans"`
	LoansSanctioned  float64             `json:"loansSanctioned"`
	LoansOutstanding float64             `json:"loansOutstanding"`
	NetWorth         float64             `json:"netWorth"`
	TotalDisplay     string              `json:"totalDisplay"`
	NetWorthDisplay  string              `json:"netWorthDisplay"`
}
