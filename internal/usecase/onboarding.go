package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	xhttp "Tickfunds/pkg/http"
	applogger "Tickfunds/pkg/logger"

	"github.com/google/uuid"
)

const kycNamespace = "kyc"

var aadhaarPattern = regexp.MustCompile(`^[0-9]{12}$`)

// checkStep is the wizard step at which each verification may be requested.
var checkStep = map[string]string{
	models.CheckPAN:     models.StepPAN,
	models.CheckAadhaar: models.StepAadhaar,
	models.CheckIFSC:    models.StepBank,
	models.CheckFinal:   models.StepVerification,
}

// VerificationDelays are the canned latencies of each check.
type VerificationDelays struct {
	PAN     time.Duration
	Aadhaar time.Duration
	IFSC    time.Duration
	Final   time.Duration
}

func (d VerificationDelays) For(check string) time.Duration {
	switch check {
	case models.CheckPAN:
		return d.PAN
	case models.CheckAadhaar:
		return d.Aadhaar
	case models.CheckIFSC:
		return d.IFSC
	default:
		return d.Final
	}
}

// OnboardingService drives the KYC wizard. Sessions live in the session
// store; every mutation runs under the session lock.
type OnboardingService struct {
	sessions domrepo.SessionStore
	verifier Verifier
	banks    domrepo.BankResolver
	delays   VerificationDelays
	activity domrepo.ActivityRecorder
	metrics  domrepo.Metrics
	l        *applogger.Logger
	now      func() time.Time
}

func NewOnboardingService(
	sessions domrepo.SessionStore,
	verifier Verifier,
	banks domrepo.BankResolver,
	delays VerificationDelays,
	activity domrepo.ActivityRecorder,
	metrics domrepo.Metrics,
	l *applogger.Logger,
) *OnboardingService {
	if l == nil {
		l = applogger.NewNop()
	}
	s := &OnboardingService{
		sessions: sessions,
		verifier: verifier,
		banks:    banks,
		delays:   delays,
		activity: recorderOrNoop(activity),
		metrics:  metricsOrNoop(metrics),
		l:        l,
		now:      time.Now,
	}
	verifier.Bind(s.CompleteVerification)
	return s
}

func (s *OnboardingService) Start(ctx context.Context) (*models.KYCSession, error) {
	now := s.now()
	sess := &models.KYCSession{
		ID:       uuid.NewString(),
		Step:     models.StepWelcome,
		Progress: models.StepProgress(models.StepWelcome),
		Nominee:  models.NomineeDetails{Share: "100"},
		Verification: map[string]string{
			models.CheckPAN:     models.VerifyIdle,
			models.CheckAadhaar: models.VerifyIdle,
			models.CheckIFSC:    models.VerifyIdle,
			models.CheckFinal:   models.VerifyIdle,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Save(ctx, kycNamespace, sess.ID, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *OnboardingService) Get(ctx context.Context, id string) (*models.KYCSession, error) {
	var sess models.KYCSession
	if err := s.sessions.Load(ctx, kycNamespace, id, &sess); err != nil {
		return nil, sessionError("onboarding", err)
	}
	return &sess, nil
}

// mutate loads the session under its lock, applies fn and saves the result.
func (s *OnboardingService) mutate(ctx context.Context, id string, fn func(*models.KYCSession) error) (*models.KYCSession, error) {
	unlock, err := s.sessions.Lock(ctx, kycNamespace, id)
	if err != nil {
		return nil, sessionError("onboarding", err)
	}
	defer unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.Progress = models.StepProgress(sess.Step)
	sess.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, kycNamespace, id, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func expectStep(sess *models.KYCSession, step string) error {
	if sess.Step != step {
		return xhttp.ConflictError(fmt.Sprintf("onboarding is at step %q, not %q", sess.Step, step)).
			WithParam("step", sess.Step).
			WithError(ErrStepOutOfOrder)
	}
	return nil
}

func advance(sess *models.KYCSession) {
	if i := models.StepIndex(sess.Step); i >= 0 && i < len(models.OnboardingSteps)-1 {
		sess.Step = models.OnboardingSteps[i+1]
	}
}

func missingInfo(details ...xhttp.ValidationError) error {
	return xhttp.ValidationFailed("Missing Information", details...).WithError(ErrMissingInfo)
}

func required(field, message string) xhttp.ValidationError {
	return xhttp.ValidationError{Code: "ERR_REQUIRED", Field: field, Message: message}
}

// submit advances past step after check accepts the session.
func (s *OnboardingService) submit(ctx context.Context, id, step string, check func(*models.KYCSession) error) (*models.KYCSession, error) {
	sess, err := s.mutate(ctx, id, func(sess *models.KYCSession) error {
		if err := expectStep(sess, step); err != nil {
			return err
		}
		if check != nil {
			if err := check(sess); err != nil {
				return err
			}
		}
		advance(sess)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, models.ActivityKYCStep, step, nil)
	return sess, nil
}

func (s *OnboardingService) SubmitWelcome(ctx context.Context, id string) (*models.KYCSession, error) {
	return s.submit(ctx, id, models.StepWelcome, nil)
}

func (s *OnboardingService) SubmitPersonal(ctx context.Context, id string, p models.PersonalDetails) (*models.KYCSession, error) {
	return s.submit(ctx, id, models.StepPersonal, func(sess *models.KYCSession) error {
		if errs := xhttp.ValidateStruct(ctx, &p); len(errs) > 0 {
			return missingInfo(errs...)
		}
		var details []xhttp.ValidationError
		if !contains(models.Occupations, p.Occupation) {
			details = append(details, xhttp.ValidationError{
				Code: "ERR_ONEOF", Field: "occupation", Message: "occupation must be one of the listed options",
			})
		}
		if !contains(models.AnnualIncomeBands, p.AnnualIncome) {
			details = append(details, xhttp.ValidationError{
				Code: "ERR_ONEOF", Field: "annualIncome", Message: "annualIncome must be one of the listed bands",
			})
		}
		if len(details) > 0 {
			return missingInfo(details...)
		}
		sess.Personal = p
		return nil
	})
}

func (s *OnboardingService) SubmitPAN(ctx context.Context, id string) (*models.KYCSession, error) {
	return s.submit(ctx, id, models.StepPAN, func(sess *models.KYCSession) error {
		if len(sess.PAN.Number) != 10 || !sess.PAN.Verified {
			return missingInfo(required("panNumber", "PAN must be verified before continuing"))
		}
		return nil
	})
}

func (s *OnboardingService) SubmitAadhaar(ctx context.Context, id string) (*models.KYCSession, error) {
	return s.submit(ctx, id, models.StepAadhaar, func(sess *models.KYCSession) error {
		if !aadhaarPattern.MatchString(sess.Aadhaar.Number) || !sess.Aadhaar.Verified {
			return missingInfo(required("aadhaarNumber", "Aadhaar must be verified before continuing"))
		}
		return nil
	})
}

func (s *OnboardingService) SubmitBank(ctx context.Context, id string, req models.BankStepRequest) (*models.KYCSession, error) {
	return s.submit(ctx, id, models.StepBank, func(sess *models.KYCSession) error {
		if errs := xhttp.ValidateStruct(ctx, &req); len(errs) > 0 {
			return missingInfo(errs...)
		}
		if len(sess.Bank.IFSC) != 11 || sess.Bank.BankName == "" {
			return missingInfo(required("ifscCode", "IFSC must be verified before continuing"))
		}
		sess.Bank.AccountNumber = req.AccountNumber
		return nil
	})
}

func (s *OnboardingService) SubmitNominee(ctx context.Context, id string, n models.NomineeDetails) (*models.KYCSession, error) {
	return s.submit(ctx, id, models.StepNominee, func(sess *models.KYCSession) error {
		if errs := xhttp.ValidateStruct(ctx, &n); len(errs) > 0 {
			return missingInfo(errs...)
		}
		sess.Nominee = n
		return nil
	})
}

func (s *OnboardingService) SubmitVerification(ctx context.Context, id string) (*models.KYCSession, error) {
	return s.submit(ctx, id, models.StepVerification, func(sess *models.KYCSession) error {
		if sess.Verification[models.CheckFinal] != models.VerifyVerified {
			return missingInfo(required("verification", "final verification is not complete"))
		}
		return nil
	})
}

// Back moves one step toward the start. A completed wizard stays complete.
func (s *OnboardingService) Back(ctx context.Context, id string) (*models.KYCSession, error) {
	return s.mutate(ctx, id, func(sess *models.KYCSession) error {
		if sess.Step == models.StepComplete {
			return xhttp.ConflictError("onboarding is already complete")
		}
		if i := models.StepIndex(sess.Step); i > 0 {
			sess.Step = models.OnboardingSteps[i-1]
		}
		return nil
	})
}

// requestCheck marks a check pending and hands it to the verifier.
func (s *OnboardingService) requestCheck(ctx context.Context, id, check string, apply func(*models.KYCSession) error) (*models.KYCSession, error) {
	sess, err := s.mutate(ctx, id, func(sess *models.KYCSession) error {
		if err := expectStep(sess, checkStep[check]); err != nil {
			return err
		}
		if sess.Verification[check] == models.VerifyPending {
			return xhttp.ConflictError(fmt.Sprintf("%s verification already in progress", check))
		}
		if apply != nil {
			if err := apply(sess); err != nil {
				return err
			}
		}
		if sess.Verification == nil {
			sess.Verification = map[string]string{}
		}
		sess.Verification[check] = models.VerifyPending
		return nil
	})
	if err != nil {
		return nil, err
	}

	job := models.VerificationJob{SessionID: id, Check: check, Delay: s.delays.For(check)}
	if err := s.verifier.Schedule(ctx, job); err != nil {
		s.l.Error("schedule verification failed",
			applogger.String("session", id),
			applogger.String("check", check),
			applogger.Error(err),
		)
		return s.mutate(ctx, id, func(sess *models.KYCSession) error {
			sess.Verification[check] = models.VerifyFailed
			return nil
		})
	}
	return sess, nil
}

func (s *OnboardingService) VerifyPAN(ctx context.Context, id string, req models.PANVerifyRequest) (*models.KYCSession, error) {
	return s.requestCheck(ctx, id, models.CheckPAN, func(sess *models.KYCSession) error {
		sess.PAN = models.PANDetails{Number: strings.ToUpper(strings.TrimSpace(req.PANNumber))}
		return nil
	})
}

func (s *OnboardingService) VerifyAadhaar(ctx context.Context, id string, req models.AadhaarVerifyRequest) (*models.KYCSession, error) {
	number := strings.ReplaceAll(req.AadhaarNumber, " ", "")
	if !aadhaarPattern.MatchString(number) {
		return nil, xhttp.FieldError("aadhaarNumber", "Aadhaar number must be 12 digits")
	}
	return s.requestCheck(ctx, id, models.CheckAadhaar, func(sess *models.KYCSession) error {
		sess.Aadhaar = models.AadhaarDetails{Number: number}
		return nil
	})
}

func (s *OnboardingService) VerifyIFSC(ctx context.Context, id string, req models.IFSCVerifyRequest) (*models.KYCSession, error) {
	return s.requestCheck(ctx, id, models.CheckIFSC, func(sess *models.KYCSession) error {
		sess.Bank.IFSC = strings.ToUpper(strings.TrimSpace(req.IFSCCode))
		sess.Bank.BankName, sess.Bank.BranchName = "", ""
		return nil
	})
}

func (s *OnboardingService) VerifyFinal(ctx context.Context, id string) (*models.KYCSession, error) {
	return s.requestCheck(ctx, id, models.CheckFinal, nil)
}

// CompleteVerification records the outcome of one check. It is called by the
// verifier once the check's delay has passed. Expired sessions are dropped.
func (s *OnboardingService) CompleteVerification(ctx context.Context, job models.VerificationJob) error {
	ok := true
	_, err := s.mutate(ctx, job.SessionID, func(sess *models.KYCSession) error {
		if sess.Verification[job.Check] != models.VerifyPending {
			return nil
		}
		switch job.Check {
		case models.CheckPAN:
			sess.PAN.Name = strings.ToUpper(sess.Personal.FullName)
			sess.PAN.Verified = true
		case models.CheckAadhaar:
			sess.Aadhaar.Verified = true
		case models.CheckIFSC:
			bank, branch, err := s.banks.Resolve(ctx, sess.Bank.IFSC)
			if err != nil {
				ok = false
				sess.Verification[job.Check] = models.VerifyFailed
				return nil
			}
			sess.Bank.BankName, sess.Bank.BranchName = bank, branch
		case models.CheckFinal:
		default:
			return fmt.Errorf("unknown verification check %q", job.Check)
		}
		sess.Verification[job.Check] = models.VerifyVerified
		return nil
	})
	if err != nil {
		var appErr *xhttp.AppError
		if errors.As(err, &appErr) && appErr.Code == xhttp.CodeNotFound {
			s.l.Warn("verification for expired session dropped",
				applogger.String("session", job.SessionID),
				applogger.String("check", job.Check),
			)
			return nil
		}
		s.metrics.RecordVerification(job.Check, false)
		return err
	}
	s.metrics.RecordVerification(job.Check, ok)
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
