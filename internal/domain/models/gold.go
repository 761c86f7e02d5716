package models

const (
	MetalGold   = "gold"
	MetalSilver = "silver"
)

type MetalPrice struct {
	Metal        string  `json:"metal" yaml:"metal"`
	PricePerGram float64 `json:"pricePerGram" yaml:"pricePerGram"`
	ChangePct    float64 `json:"changePct" yaml:"changePct"`
}

type MetalHolding struct {
	Metal    string  `json:"metal" yaml:"metal"`
	Grams    float64 `json:"grams" yaml:"grams"`
	AvgPrice float64 `json:"avgPrice" yaml:"avgPrice"`
}

// MetalPosition is a holding valued at the current price.
type MetalPosition struct {
	MetalHolding
	Invested     float64 `json:"invested"`
	CurrentValue float64 `json:"currentValue"`
	PnL          float64 `json:"pnl"`
	PnLPercent   float64 `json:"pnlPercent"`
}

type MetalHoldings struct {
	Positions     []MetalPosition `json:"positions"`
	TotalInvested float64         `json:"totalInvested"`
	TotalValue    float64         `json:"totalValue"`
	TotalPnL      float64         `json:"totalPnl"`
	Display       string          `json:"display"`
}

// GoldTransaction is a buy, sell or lease entry. Lease entries carry a rate, the others a price.
type GoldTransaction struct {
	ID       string  `json:"id" yaml:"id"`
	Type     string  `json:"type" yaml:"type"`
	Metal    string  `json:"metal" yaml:"metal"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	Price    float64 `json:"price,omitempty" yaml:"price"`
	Rate     float64 `json:"rate,omitempty" yaml:"rate"`
	Date     string  `json:"date" yaml:"date"`
	Status   string  `json:"status" yaml:"status"`
}

// MaxLeaseRate is the best annual lease yield offered.
const MaxLeaseRate = 3.0

type GoldQuoteRequest struct {
	Side     string  `json:"side" default:"buy" validate:"oneof=buy sell"`
	Metal    string  `json:"metal" default:"gold" validate:"oneof=gold silver"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

type GoldQuote struct {
	Side         string  `json:"side"`
	Metal        string  `json:"metal"`
	PricePerGram float64 `json:"pricePerGram"`
	Amount       float64 `json:"amount"`
	Quantity     float64 `json:"quantity"`
	Display      string  `json:"display"`
}
