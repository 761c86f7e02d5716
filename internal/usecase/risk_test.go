package usecase

import (
	"context"
	"net/http"
	"testing"

	"Tickfunds/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answersBy picks one option per question.
func answersBy(questions []models.RiskQuestion, pick func([]models.RiskOption) models.RiskOption) map[string]string {
	out := make(map[string]string, len(questions))
	for _, q := range questions {
		out[q.ID] = pick(q.Options).Value
	}
	return out
}

func lowest(opts []models.RiskOption) models.RiskOption {
	best := opts[0]
	for _, o := range opts {
		if o.Score < best.Score {
			best = o
		}
	}
	return best
}

func highest(opts []models.RiskOption) models.RiskOption {
	best := opts[0]
	for _, o := range opts {
		if o.Score > best.Score {
			best = o
		}
	}
	return best
}

func TestScoreRisk_Extremes(t *testing.T) {
	quiz := loadCatalog(t).RiskQuiz()
	questions, categories := quiz.Questions(), quiz.Categories()
	require.Len(t, questions, 12)

	low, err := ScoreRisk(questions, categories, answersBy(questions, lowest))
	require.NoError(t, err)
	assert.Equal(t, "Conservative", low.Category)
	assert.GreaterOrEqual(t, low.TotalScore, 12)

	high, err := ScoreRisk(questions, categories, answersBy(questions, highest))
	require.NoError(t, err)
	assert.Equal(t, "Aggressive", high.Category)
	assert.Equal(t, high.MaxScore, high.TotalScore)
	assert.Equal(t, 100.0, high.Percentage)
	assert.LessOrEqual(t, high.MaxScore, 120)
	assert.NotEmpty(t, high.Recommendations)
	assert.NotEmpty(t, high.Allocation)
}

func TestScoreRisk_InclusiveBreakpoints(t *testing.T) {
	questions := []models.RiskQuestion{{
		ID: "q",
		Options: []models.RiskOption{
			{Value: "a", Score: 30}, {Value: "b", Score: 31}, {Value: "c", Score: 100},
		},
	}}
	categories := []models.RiskCategory{
		{Name: "Low", MaxPercent: 30},
		{Name: "High", MaxPercent: 100},
	}

	res, err := ScoreRisk(questions, categories, map[string]string{"q": "a"})
	require.NoError(t, err)
	assert.Equal(t, "Low", res.Category)
	assert.Equal(t, 30.0, res.Percentage)

	res, err = ScoreRisk(questions, categories, map[string]string{"q": "b"})
	require.NoError(t, err)
	assert.Equal(t, "High", res.Category)
}

func TestScoreRisk_RejectsBadAnswers(t *testing.T) {
	quiz := loadCatalog(t).RiskQuiz()
	questions, categories := quiz.Questions(), quiz.Categories()

	answers := answersBy(questions, highest)
	delete(answers, "age")
	answers["investment_horizon"] = "forever"
	answers["shoe_size"] = "42"

	_, err := ScoreRisk(questions, categories, answers)
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.ErrorIs(t, err, ErrIncompleteAnswers)

	codes := map[string]string{}
	for _, d := range appErr.Details {
		codes[d.Field] = d.Code
	}
	assert.Equal(t, map[string]string{
		"age":                "ERR_REQUIRED",
		"investment_horizon": "ERR_ONEOF",
		"shoe_size":          "ERR_UNKNOWN_QUESTION",
	}, codes)
}

func TestRiskService_AssessRecordsCategory(t *testing.T) {
	quiz := loadCatalog(t).RiskQuiz()
	rec := &fakeRecorder{}
	s := NewRiskService(quiz, rec)

	res, err := s.Assess(context.Background(), answersBy(s.Questions(), highest))
	require.NoError(t, err)
	require.Len(t, rec.events, 1)
	assert.Equal(t, models.ActivityRiskAssessed, rec.events[0].kind)
	assert.Equal(t, res.Category, rec.events[0].subject)
}

// answersTotaling finds one answer set whose scores sum to target, or nil.
func answersTotaling(questions []models.RiskQuestion, target int) map[string]string {
	// reach[i][s] holds the option index at question i that leads to sum s
	reach := make([]map[int]int, len(questions)+1)
	reach[0] = map[int]int{0: -1}
	for i, q := range questions {
		reach[i+1] = map[int]int{}
		for sum := range reach[i] {
			for j, o := range q.Options {
				if next := sum + o.Score; next <= target {
					reach[i+1][next] = j
				}
			}
		}
	}
	if _, ok := reach[len(questions)][target]; !ok {
		return nil
	}
	out := make(map[string]string, len(questions))
	sum := target
	for i := len(questions) - 1; i >= 0; i-- {
		opt := questions[i].Options[reach[i+1][sum]]
		out[questions[i].ID] = opt.Value
		sum -= opt.Score
	}
	return out
}

func TestRiskQuiz_ScoreRange(t *testing.T) {
	quiz := loadCatalog(t).RiskQuiz()
	questions := quiz.Questions()
	require.Len(t, questions, 12)

	for _, q := range questions {
		require.NotEmpty(t, q.Options, q.ID)
		for _, o := range q.Options {
			assert.GreaterOrEqual(t, o.Score, 1, "%s/%s", q.ID, o.Value)
			assert.LessOrEqual(t, o.Score, 10, "%s/%s", q.ID, o.Value)
		}
	}

	low, err := ScoreRisk(questions, quiz.Categories(), answersBy(questions, lowest))
	require.NoError(t, err)
	high, err := ScoreRisk(questions, quiz.Categories(), answersBy(questions, highest))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, low.TotalScore, 12)
	assert.Equal(t, 120, high.TotalScore)
	assert.Equal(t, 120, high.MaxScore)
}

func TestRiskQuiz_CategoriesPartitionPercentages(t *testing.T) {
	categories := loadCatalog(t).RiskQuiz().Categories()
	require.NotEmpty(t, categories)

	prev := 0.0
	for _, c := range categories {
		assert.Greater(t, c.MaxPercent, prev, c.Name)
		prev = c.MaxPercent
	}
	assert.Equal(t, 100.0, categories[len(categories)-1].MaxPercent)

	for i, c := range categories {
		assert.Equal(t, c.Name, categoryFor(categories, c.MaxPercent).Name, "at %v", c.MaxPercent)
		if i+1 < len(categories) {
			assert.Equal(t, categories[i+1].Name, categoryFor(categories, c.MaxPercent+0.01).Name, "above %v", c.MaxPercent)
		}
	}
}

func TestScoreRisk_RealBreakpoints(t *testing.T) {
	quiz := loadCatalog(t).RiskQuiz()
	questions, categories := quiz.Questions(), quiz.Categories()

	// max score is 120, so each bound falls on a whole score
	tests := []struct {
		total int
		want  string
	}{
		{36, "Conservative"},
		{37, "Moderately Conservative"},
		{54, "Moderately Conservative"},
		{55, "Moderate"},
		{72, "Moderate"},
		{73, "Moderately Aggressive"},
		{96, "Moderately Aggressive"},
		{97, "Aggressive"},
		{120, "Aggressive"},
	}
	for _, tt := range tests {
		answers := answersTotaling(questions, tt.total)
		require.NotNil(t, answers, "no answers total %d", tt.total)

		res, err := ScoreRisk(questions, categories, answers)
		require.NoError(t, err)
		assert.Equal(t, tt.total, res.TotalScore)
		assert.Equal(t, tt.want, res.Category, "total %d (%.2f%%)", tt.total, res.Percentage)
	}
}
