package models

type Bond struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Issuer        string  `json:"issuer" yaml:"issuer"`
	Rating        string  `json:"rating" yaml:"rating"`
	Coupon        float64 `json:"coupon" yaml:"coupon"`
	YTM           float64 `json:"ytm" yaml:"ytm"`
	Maturity      string  `json:"maturity" yaml:"maturity"`
	FaceValue     float64 `json:"faceValue" yaml:"faceValue"`
	MinInvestment float64 `json:"minInvestment" yaml:"minInvestment"`
	Type          string  `json:"type" yaml:"type"`
	Featured      bool    `json:"featured" yaml:"featured"`
}

type BondBasket struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Description   string  `json:"description" yaml:"description"`
	Bonds         int     `json:"bonds" yaml:"bonds"`
	AvgYTM        float64 `json:"avgYtm" yaml:"avgYtm"`
	MinInvestment float64 `json:"minInvestment" yaml:"minInvestment"`
}

// FD payout types.
const (
	FDCumulative    = "Cumulative"
	FDNonCumulative = "Non-Cumulative"
)

type FixedDeposit struct {
	ID           string  `json:"id" yaml:"id"`
	Company      string  `json:"company" yaml:"company"`
	Rating       string  `json:"rating" yaml:"rating"`
	Rate         float64 `json:"rate" yaml:"rate"`
	TenureMonths int     `json:"tenureMonths" yaml:"tenureMonths"`
	MinAmount    float64 `json:"minAmount" yaml:"minAmount"`
	MaxAmount    float64 `json:"maxAmount" yaml:"maxAmount"`
	Type         string  `json:"type" yaml:"type"`
	Featured     bool    `json:"featured" yaml:"featured"`
}

// CatalogQuery is the shared list input for bonds and FDs.
type CatalogQuery struct {
	Search   string `json:"search" query:"q"`
	Featured bool   `json:"featured" query:"featured"`
}

type CompareRequest struct {
	IDs []string `json:"ids" query:"ids"`
}

type MaturityRequest struct {
	Amount float64 `json:"amount" query:"amount" validate:"gt=0"`
	// Years defaults to the FD tenure when zero.
	Years float64 `json:"years" query:"years" validate:"gte=0,lte=10"`
}

type FDMaturity struct {
	FD              FixedDeposit `json:"fd"`
	Amount          float64      `json:"amount"`
	Years           float64      `json:"years"`
	MaturityValue   float64      `json:"maturityValue"`
	InterestEarned  float64      `json:"interestEarned"`
	MaturityDisplay string       `json:"maturityDisplay"`
}
