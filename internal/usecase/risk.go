package usecase

import (
	"context"
	"fmt"
	"sort"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	xhttp "Tickfunds/pkg/http"
)

// ScoreRisk totals the selected option scores and buckets the percentage of
// the maximum into a category. Every question must be answered exactly once
// with one of its options.
func ScoreRisk(questions []models.RiskQuestion, categories []models.RiskCategory, answers map[string]string) (*models.RiskResult, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("no risk categories configured")
	}

	known := make(map[string]bool, len(questions))
	var details []xhttp.ValidationError
	total, maxScore := 0, 0
	for _, q := range questions {
		known[q.ID] = true
		maxScore += maxOptionScore(q)

		value, ok := answers[q.ID]
		if !ok || value == "" {
			details = append(details, xhttp.ValidationError{
				Code: "ERR_REQUIRED", Field: q.ID, Message: fmt.Sprintf("%s is required", q.ID),
			})
			continue
		}
		opt, ok := q.Option(value)
		if !ok {
			details = append(details, xhttp.ValidationError{
				Code: "ERR_ONEOF", Field: q.ID, Message: fmt.Sprintf("%q is not an option for %s", value, q.ID),
			})
			continue
		}
		total += opt.Score
	}

	unknown := make([]string, 0)
	for id := range answers {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		details = append(details, xhttp.ValidationError{
			Code: "ERR_UNKNOWN_QUESTION", Field: id, Message: fmt.Sprintf("unknown question %s", id),
		})
	}

	if len(details) > 0 {
		return nil, xhttp.ValidationFailed("Please answer all questions", details...).WithError(ErrIncompleteAnswers)
	}
	if maxScore == 0 {
		return nil, fmt.Errorf("risk questionnaire has no scored options")
	}

	pct := float64(total) / float64(maxScore) * 100
	cat := categoryFor(categories, pct)
	return &models.RiskResult{
		TotalScore:      total,
		MaxScore:        maxScore,
		Percentage:      round2(pct),
		Category:        cat.Name,
		Description:     cat.Description,
		Recommendations: append([]string(nil), cat.Recommendations...),
		Allocation:      append([]models.AllocationSlice(nil), cat.Allocation...),
	}, nil
}

func maxOptionScore(q models.RiskQuestion) int {
	best := 0
	for _, o := range q.Options {
		if o.Score > best {
			best = o.Score
		}
	}
	return best
}

// categoryFor picks the first category whose inclusive bound covers pct; the
// last category catches everything above.
func categoryFor(categories []models.RiskCategory, pct float64) models.RiskCategory {
	for _, c := range categories {
		if pct <= c.MaxPercent {
			return c
		}
	}
	return categories[len(categories)-1]
}

type RiskService struct {
	catalog  domrepo.RiskCatalog
	activity domrepo.ActivityRecorder
}

func NewRiskService(catalog domrepo.RiskCatalog, activity domrepo.ActivityRecorder) *RiskService {
	return &RiskService{catalog: catalog, activity: recorderOrNoop(activity)}
}

func (s *RiskService) Questions() []models.RiskQuestion {
	return s.catalog.Questions()
}

func (s *RiskService) Assess(ctx context.Context, answers map[string]string) (*models.RiskResult, error) {
	res, err := ScoreRisk(s.catalog.Questions(), s.catalog.Categories(), answers)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, models.ActivityRiskAssessed, res.Category, map[string]string{
		"score": fmt.Sprint(res.TotalScore),
	})
	return res, nil
}
