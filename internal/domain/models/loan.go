package models

type LoanProduct struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Rate      string `json:"rate" yaml:"rate"`
	Tenure    string `json:"tenure" yaml:"tenure"`
	MaxAmount string `json:"maxAmount" yaml:"maxAmount"`
}

// EMIRequest is the loan calculator input. A zero rate is a valid interest-free
// loan, so start from DefaultEMIRequest and bind over it.
type EMIRequest struct {
	Principal  float64 `json:"principal" query:"principal" validate:"gte=50000,lte=2500000"`
	Months     int     `json:"months" query:"months" validate:"gte=6,lte=60"`
	AnnualRate float64 `json:"annualRate" query:"rate" validate:"gte=0,lte=50"`
	Schedule   bool    `json:"schedule" query:"schedule"`
}

// Calculator slider positions on first open.
const (
	DefaultLoanPrincipal = 500000
	DefaultLoanMonths    = 24
	DefaultLoanRate      = 12
)

func DefaultEMIRequest() EMIRequest {
	return EMIRequest{
		Principal:  DefaultLoanPrincipal,
		Months:     DefaultLoanMonths,
		AnnualRate: DefaultLoanRate,
	}
}

type AmortizationRow struct {
	Month     int     `json:"month"`
	EMI       float64 `json:"emi"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

type EMIQuote struct {
	Principal     float64           `json:"principal"`
	AnnualRate    float64           `json:"annualRate"`
	Months        int               `json:"months"`
	EMI           float64           `json:"emi"`
	TotalPayable  float64           `json:"totalPayable"`
	TotalInterest float64           `json:"totalInterest"`
	Display       string            `json:"display"`
	Schedule      []AmortizationRow `json:"schedule,omitempty"`
}

// Holding types that can be pledged, with their LTV ratios.
const (
	AssetEquity = "equity"
	AssetDebt   = "debt"
	AssetHybrid = "hybrid"
	AssetGold   = "gold"
)

// PledgeableHolding is a portfolio position counted toward borrowing power.
type PledgeableHolding struct {
	Name     string  `json:"name" yaml:"name"`
	Value    float64 `json:"value" yaml:"value"`
	Type     string  `json:"type" yaml:"type"`
	LTVRatio float64 `json:"ltvRatio" yaml:"ltvRatio"`
	// LoanValue is Value × LTVRatio.
	LoanValue float64 `json:"loanValue" yaml:"-"`
}

// BorrowingPowerRequest holds monthly cash flows. Zero EMIs or expenses are
// real answers; fields left out keep the DefaultBorrowingPowerRequest values.
type BorrowingPowerRequest struct {
	MonthlyIncome   float64 `json:"monthlyIncome" query:"income" validate:"gt=0"`
	ExistingEMI     float64 `json:"existingEmi" query:"emi" validate:"gte=0"`
	MonthlyExpenses float64 `json:"monthlyExpenses" query:"expenses" validate:"gte=0"`
}

func DefaultBorrowingPowerRequest() BorrowingPowerRequest {
	return BorrowingPowerRequest{
		MonthlyIncome:   100000,
		ExistingEMI:     15000,
		MonthlyExpenses: 40000,
	}
}

type EligibilityCheck struct {
	Label  string `json:"label"`
	Passed bool   `json:"passed"`
}

type BorrowingPower struct {
	Holdings           []PledgeableHolding `json:"holdings"`
	PortfolioValue     float64             `json:"portfolioValue"`
	PortfolioPower     float64             `json:"portfolioPower"`
	IncomePower        float64             `json:"incomePower"`
	TotalPower         float64             `json:"totalPower"`
	DisposableIncome   float64             `json:"disposableIncome"`
	MaxEMI             float64             `json:"maxEmi"`
	FOIR               float64             `json:"foir"`
	SavingsRate        float64             `json:"savingsRate"`
	PortfolioShare     float64             `json:"portfolioShare"`
	IncomeShare        float64             `json:"incomeShare"`
	Checks             []EligibilityCheck  `json:"checks"`
	TotalPowerDisplay  string              `json:"totalPowerDisplay"`
	IncomePowerDisplay string              `json:"incomePowerDisplay"`
}
