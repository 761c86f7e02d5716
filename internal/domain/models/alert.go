package models

// Alert kinds.
const (
	AlertSystem      = "system"
	AlertTransaction = "transaction"
	AlertGoal        = "goal"
	AlertPrice       = "price"
	AlertMaturity    = "maturity"
)

// Alert is a system, transaction or goal notification.
type Alert struct {
	ID       string `json:"id" yaml:"id"`
	Kind     string `json:"kind" yaml:"kind"`
	Title    string `json:"title,omitempty" yaml:"title"`
	Message  string `json:"message" yaml:"message"`
	Severity string `json:"severity,omitempty" yaml:"severity"`
	Time     string `json:"time" yaml:"time"`
	Read     bool   `json:"read" yaml:"read"`
}

const (
	ConditionAbove = "above"
	ConditionBelow = "below"
)

type PriceAlert struct {
	ID           string  `json:"id" yaml:"id"`
	FundName     string  `json:"fundName" yaml:"fundName"`
	Condition    string  `json:"condition" yaml:"condition"`
	TargetPrice  float64 `json:"targetPrice" yaml:"targetPrice"`
	CurrentPrice float64 `json:"currentPrice" yaml:"currentPrice"`
	Triggered    bool    `json:"triggered" yaml:"-"`
	Read         bool    `json:"read" yaml:"read"`
}

// IsTriggered reports whether the current price has crossed the target.
func (p PriceAlert) IsTriggered() bool {
	switch p.Condition {
	case ConditionAbove:
		return p.CurrentPrice >= p.TargetPrice
	case ConditionBelow:
		return p.CurrentPrice <= p.TargetPrice
	}
	return false
}

type MaturityAlert struct {
	ID           string  `json:"id" yaml:"id"`
	AssetName    string  `json:"assetName" yaml:"assetName"`
	Amount       float64 `json:"amount" yaml:"amount"`
	MaturityDate string  `json:"maturityDate" yaml:"maturityDate"`
	DaysLeft     int     `json:"daysLeft" yaml:"-"`
	Read         bool    `json:"read" yaml:"read"`
}

type AlertQuery struct {
	Kind string `json:"kind" query:"kind" default:"all" validate:"oneof=all system transaction goal price maturity"`
	// AsOf is the reference date for maturity countdowns; empty means today.
	AsOf string `json:"asOf" query:"asOf"`
}

type AlertFeed struct {
	Alerts   []Alert         `json:"alerts"`
	Price    []PriceAlert    `json:"price"`
	Maturity []MaturityAlert `json:"maturity"`
	Unread   int             `json:"unread"`
}
