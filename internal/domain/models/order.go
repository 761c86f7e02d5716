package models

// Order types.
const (
	OrderSIP        = "SIP"
	OrderLumpsum    = "Lumpsum"
	OrderRedemption = "Redemption"
	OrderSwitch     = "Switch"
)

// Order statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderExecuted   = "executed"
	OrderCancelled  = "cancelled"
)

type Order struct {
	ID       string  `json:"id" yaml:"id"`
	FundName string  `json:"fundName" yaml:"fundName"`
	Category string  `json:"category" yaml:"category"`
	Type     string  `json:"type" yaml:"type"`
	Amount   float64 `json:"amount" yaml:"amount"`
	Units    float64 `json:"units,omitempty" yaml:"units"`
	NAV      float64 `json:"nav,omitempty" yaml:"nav"`
	Status   string  `json:"status" yaml:"status"`
	Date     string  `json:"date" yaml:"date"`
	FolioNo  string  `json:"folioNo,omitempty" yaml:"folioNo"`
}

type OrderQuery struct {
	Tab    string `json:"tab" query:"tab" default:"all" validate:"oneof=all pending executed cancelled"`
	Search string `json:"search" query:"q"`
}

type OrderBook struct {
	Orders []Order        `json:"orders"`
	Counts map[string]int `json:"counts"`
}
