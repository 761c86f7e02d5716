package models

// RiskOption is one answer to a quiz question.
type RiskOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
	Score int    `json:"score" yaml:"score"`
}

type RiskQuestion struct {
	ID       string       `json:"id" yaml:"id"`
	Category string       `json:"category" yaml:"category"`
	Question string       `json:"question" yaml:"question"`
	Options  []RiskOption `json:"options" yaml:"options"`
}

// Option returns the option with the given value.
func (q RiskQuestion) Option(value string) (RiskOption, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return RiskOption{}, false
}

// AllocationSlice is one asset-class share of a model portfolio.
type AllocationSlice struct {
	Name       string  `json:"name" yaml:"name"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// RiskCategory is a score bucket. MaxPercent is an inclusive upper bound;
// the last category leaves it at 100.
type RiskCategory struct {
	Name            string            `json:"name" yaml:"name"`
	MaxPercent      float64           `json:"maxPercent" yaml:"maxPercent"`
	Description     string            `json:"description" yaml:"description"`
	Recommendations []string          `json:"recommendations" yaml:"recommendations"`
	Allocation      []AllocationSlice `json:"allocation" yaml:"allocation"`
}

type RiskResult struct {
	TotalScore      int               `json:"totalScore"`
	MaxScore        int               `json:"maxScore"`
	Percentage      float64           `json:"percentage"`
	Category        string            `json:"category"`
	Description     string            `json:"description"`
	Recommendations []string          `json:"recommendations"`
	Allocation      []AllocationSlice `json:"allocation"`
}

// RiskAnswersRequest maps question id to the selected option value.
type RiskAnswersRequest struct {
	Answers map[string]string `json:"answers" yaml:"answers" validate:"required"`
}
