package models

import "time"

// Activity kinds emitted by usecases.
const (
	ActivityFundViewed    = "fund_viewed"
	ActivityFundsScreened = "funds_screened"
	ActivityFundsCompared = "funds_compared"
	ActivityRiskAssessed  = "risk_assessed"
	ActivityEMIQuoted     = "emi_quoted"
	ActivityKYCStep       = "kyc_step"
	ActivityPMSStep       = "pms_step"
)

// ActivityEvent is an anonymous usage event.
type ActivityEvent struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	Subject    string            `json:"subject"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Timestamp  time.Time         `json:"ts"`
}

// SubjectCount is an aggregated view count.
type SubjectCount struct {
	Subject string `json:"subject"`
	Count   uint64 `json:"count"`
}
