package models

import "time"

const (
	ProductPMS = "PMS"
	ProductAIF = "AIF"
)

// Minimum ticket sizes in rupees.
const (
	PMSMinInvestment = 5000000
	AIFMinInvestment = 10000000
)

// PMS/AIF wizard steps.
const (
	PMSStepEligibility = "eligibility"
	PMSStepDetails     = "details"
	PMSStepDocuments   = "documents"
	PMSStepReview      = "review"
	PMSStepSubmitted   = "submitted"
)

var PMSSteps = []string{PMSStepEligibility, PMSStepDetails, PMSStepDocuments, PMSStepReview}

// PMSStepProgress maps each step to its progress bar value.
var PMSStepProgress = map[string]float64{
	PMSStepEligibility: 25,
	PMSStepDetails:     50,
	PMSStepDocuments:   75,
	PMSStepReview:      100,
	PMSStepSubmitted:   100,
}

// RequiredDocuments lists the uploads the documents step checks.
var RequiredDocuments = []string{"panCard", "addressProof", "bankStatement"}

type PMSEligibility struct {
	ProductType      string  `json:"productType"`
	InvestmentAmount float64 `json:"investmentAmount"`
	NetWorth         string  `json:"netWorth"`
	AnnualIncome     string  `json:"annualIncome"`
}

type PMSDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	PAN      string `json:"pan"`
}

type PMSDocuments struct {
	PANCard       bool `json:"panCard"`
	AddressProof  bool `json:"addressProof"`
	BankStatement bool `json:"bankStatement"`
}

type PMSReview struct {
	TermsAccepted bool `json:"termsAccepted"`
}

type PMSApplication struct {
	ID          string         `json:"id"`
	Step        string         `json:"step"`
	Progress    float64        `json:"progress"`
	Eligibility PMSEligibility `json:"eligibility"`
	Details     PMSDetails     `json:"details"`
	Documents   PMSDocuments   `json:"documents"`
	Review      PMSReview      `json:"review"`
	// MinimumDisplay is the formatted ticket size for the chosen product.
	MinimumDisplay string    `json:"minimumDisplay,omitempty"`
	AmountDisplay  string    `json:"amountDisplay,omitempty"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
