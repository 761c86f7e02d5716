package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	xhttp "Tickfunds/pkg/http"

	"github.com/google/uuid"
)

const pmsNamespace = "pms"

// Shown once the review step is accepted.
const PMSSubmittedMessage = "Application Submitted: our team will contact you within 24 hours"

// PMSMinimum returns the ticket size of a product, or 0 when unknown.
func PMSMinimum(product string) float64 {
	switch product {
	case models.ProductPMS:
		return models.PMSMinInvestment
	case models.ProductAIF:
		return models.AIFMinInvestment
	}
	return 0
}

// PMSService drives the PMS/AIF application wizard.
type PMSService struct {
	sessions domrepo.SessionStore
	activity domrepo.ActivityRecorder
	now      func() time.Time
}

func NewPMSService(sessions domrepo.SessionStore, activity domrepo.ActivityRecorder) *PMSService {
	return &PMSService{sessions: sessions, activity: recorderOrNoop(activity), now: time.Now}
}

func (s *PMSService) Start(ctx context.Context) (*models.PMSApplication, error) {
	now := s.now()
	app := &models.PMSApplication{
		ID:        uuid.NewString(),
		Step:      models.PMSStepEligibility,
		Progress:  models.PMSStepProgress[models.PMSStepEligibility],
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Save(ctx, pmsNamespace, app.ID, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *PMSService) Get(ctx context.Context, id string) (*models.PMSApplication, error) {
	var app models.PMSApplication
	if err := s.sessions.Load(ctx, pmsNamespace, id, &app); err != nil {
		return nil, sessionError("application", err)
	}
	return &app, nil
}

func (s *PMSService) submit(ctx context.Context, id, step, next string, fn func(*models.PMSApplication) error) (*models.PMSApplication, error) {
	unlock, err := s.sessions.Lock(ctx, pmsNamespace, id)
	if err != nil {
		return nil, sessionError("application", err)
	}
	defer unlock()

	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Step != step {
		return nil, xhttp.ConflictError(fmt.Sprintf("application is at step %q, not %q", app.Step, step)).
			WithParam("step", app.Step).
			WithError(ErrStepOutOfOrder)
	}
	if err := fn(app); err != nil {
		return nil, err
	}
	app.Step = next
	app.Progress = models.PMSStepProgress[next]
	app.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, pmsNamespace, id, app); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, models.ActivityPMSStep, step, map[string]string{"product": app.Eligibility.ProductType})
	return app, nil
}

func (s *PMSService) SubmitEligibility(ctx context.Context, id string, e models.PMSEligibility) (*models.PMSApplication, error) {
	return s.submit(ctx, id, models.PMSStepEligibility, models.PMSStepDetails, func(app *models.PMSApplication) error {
		var details []xhttp.ValidationError
		minimum := PMSMinimum(e.ProductType)
		if minimum == 0 {
			details = append(details, required("productType", "choose PMS or AIF"))
		}
		if e.InvestmentAmount <= 0 {
			details = append(details, required("investmentAmount", "investment amount is required"))
		}
		if strings.TrimSpace(e.NetWorth) == "" {
			details = append(details, required("netWorth", "net worth is required"))
		}
		if strings.TrimSpace(e.AnnualIncome) == "" {
			details = append(details, required("annualIncome", "annual income is required"))
		}
		if len(details) > 0 {
			return missingInfo(details...)
		}
		if e.InvestmentAmount < minimum {
			return xhttp.FieldError("investmentAmount",
				fmt.Sprintf("Not Eligible: Minimum investment for %s is %s", e.ProductType, minimumLabel(e.ProductType))).
				WithParam("minimum", minimum)
		}
		app.Eligibility = e
		app.MinimumDisplay = compact(minimum)
		app.AmountDisplay = compact(e.InvestmentAmount)
		return nil
	})
}

func minimumLabel(product string) string {
	if product == models.ProductAIF {
		return "₹1 crore"
	}
	return "₹50 lakhs"
}

func (s *PMSService) SubmitDetails(ctx context.Context, id string, d models.PMSDetails) (*models.PMSApplication, error) {
	return s.submit(ctx, id, models.PMSStepDetails, models.PMSStepDocuments, func(app *models.PMSApplication) error {
		var details []xhttp.ValidationError
		for _, f := range []struct{ field, value string }{
			{"fullName", d.FullName},
			{"email", d.Email},
			{"phone", d.Phone},
			{"pan", d.PAN},
		} {
			if strings.TrimSpace(f.value) == "" {
				details = append(details, required(f.field, f.field+" is required"))
			}
		}
		if len(details) > 0 {
			return missingInfo(details...)
		}
		d.PAN = strings.ToUpper(strings.TrimSpace(d.PAN))
		app.Details = d
		return nil
	})
}

func (s *PMSService) SubmitDocuments(ctx context.Context, id string, d models.PMSDocuments) (*models.PMSApplication, error) {
	return s.submit(ctx, id, models.PMSStepDocuments, models.PMSStepReview, func(app *models.PMSApplication) error {
		uploaded := map[string]bool{
			"panCard":       d.PANCard,
			"addressProof":  d.AddressProof,
			"bankStatement": d.BankStatement,
		}
		var details []xhttp.ValidationError
		for _, doc := range models.RequiredDocuments {
			if !uploaded[doc] {
				details = append(details, required(doc, doc+" must be uploaded"))
			}
		}
		if len(details) > 0 {
			return missingInfo(details...)
		}
		app.Documents = d
		return nil
	})
}

func (s *PMSService) SubmitReview(ctx context.Context, id string, r models.PMSReview) (*models.PMSApplication, error) {
	return s.submit(ctx, id, models.PMSStepReview, models.PMSStepSubmitted, func(app *models.PMSApplication) error {
		if !r.TermsAccepted {
			return xhttp.FieldError("termsAccepted", "Terms Required: please accept the terms and conditions")
		}
		app.Review = r
		app.Message = PMSSubmittedMessage
		return nil
	})
}
