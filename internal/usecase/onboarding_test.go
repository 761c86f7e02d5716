package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"Tickfunds/internal/domain/models"
	"Tickfunds/internal/repository"
	"Tickfunds/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBanks struct {
	err error
}

func (f fakeBanks) Resolve(_ context.Context, ifsc string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return "HDFC Bank", "Branch " + ifsc[:4], nil
}

type failingVerifier struct{}

func (failingVerifier) Schedule(context.Context, models.VerificationJob) error {
	return errors.New("queue unavailable")
}

func (failingVerifier) Bind(CompleteFunc) {}

type onboardingFixture struct {
	svc      *OnboardingService
	verifier *InlineVerifier
	metrics  *fakeMetrics
	sessions *repository.CacheSessionStore
}

func newOnboardingFixture(t *testing.T, banks fakeBanks) *onboardingFixture {
	t.Helper()
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	sessions := repository.NewCacheSessionStore(mc, time.Minute)
	v := NewInlineVerifier(nil)
	t.Cleanup(func() { _ = v.Close() })
	m := newFakeMetrics()
	svc := NewOnboardingService(sessions, v, banks, VerificationDelays{}, nil, m, nil)
	return &onboardingFixture{svc: svc, verifier: v, metrics: m, sessions: sessions}
}

func validPersonal() models.PersonalDetails {
	return models.PersonalDetails{
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		Mobile:       "9876543210",
		DOB:          "1990-05-01",
		Gender:       "Female",
		Occupation:   "Salaried - Private",
		AnnualIncome: "₹10 Lakhs - ₹25 Lakhs",
	}
}

// waitVerified polls until check leaves the pending state.
func waitVerified(t *testing.T, svc *OnboardingService, id, check string) *models.KYCSession {
	t.Helper()
	var sess *models.KYCSession
	require.Eventually(t, func() bool {
		s, err := svc.Get(context.Background(), id)
		if err != nil {
			return false
		}
		sess = s
		return s.Verification[check] != models.VerifyPending
	}, 2*time.Second, 5*time.Millisecond)
	return sess
}

func TestOnboarding_FullWizard(t *testing.T) {
	f := newOnboardingFixture(t, fakeBanks{})
	svc := f.svc
	ctx := context.Background()

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StepWelcome, sess.Step)
	assert.Equal(t, 0.0, sess.Progress)
	id := sess.ID

	sess, err = svc.SubmitWelcome(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StepPersonal, sess.Step)

	sess, err = svc.SubmitPersonal(ctx, id, validPersonal())
	require.NoError(t, err)
	assert.Equal(t, models.StepPAN, sess.Step)

	sess, err = svc.VerifyPAN(ctx, id, models.PANVerifyRequest{PANNumber: "abcde1234f"})
	require.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", sess.PAN.Number)
	sess = waitVerified(t, svc, id, models.CheckPAN)
	assert.Equal(t, models.VerifyVerified, sess.Verification[models.CheckPAN])
	assert.Equal(t, "ASHA RAO", sess.PAN.Name)
	assert.True(t, sess.PAN.Verified)

	_, err = svc.SubmitPAN(ctx, id)
	require.NoError(t, err)

	_, err = svc.VerifyAadhaar(ctx, id, models.AadhaarVerifyRequest{AadhaarNumber: "1234 5678 9012"})
	require.NoError(t, err)
	sess = waitVerified(t, svc, id, models.CheckAadhaar)
	assert.Equal(t, "123456789012", sess.Aadhaar.Number)
	_, err = svc.SubmitAadhaar(ctx, id)
	require.NoError(t, err)

	_, err = svc.VerifyIFSC(ctx, id, models.IFSCVerifyRequest{IFSCCode: "hdfc0001234"})
	require.NoError(t, err)
	sess = waitVerified(t, svc, id, models.CheckIFSC)
	assert.Equal(t, "HDFC Bank", sess.Bank.BankName)
	assert.Equal(t, "Branch HDFC", sess.Bank.BranchName)
	sess, err = svc.SubmitBank(ctx, id, models.BankStepRequest{AccountNumber: "12345678", ConfirmAccountNumber: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "12345678", sess.Bank.AccountNumber)

	sess, err = svc.SubmitNominee(ctx, id, models.NomineeDetails{Name: "Ravi Rao", Relation: "Spouse", Share: "100"})
	require.NoError(t, err)
	assert.Equal(t, models.StepVerification, sess.Step)

	_, err = svc.SubmitVerification(ctx, id)
	requireAppError(t, err, http.StatusBadRequest)

	_, err = svc.VerifyFinal(ctx, id)
	require.NoError(t, err)
	waitVerified(t, svc, id, models.CheckFinal)
	sess, err = svc.SubmitVerification(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StepComplete, sess.Step)
	assert.Equal(t, 100.0, sess.Progress)

	_, err = svc.Back(ctx, id)
	requireAppError(t, err, http.StatusConflict)

	for _, check := range []string{models.CheckPAN, models.CheckAadhaar, models.CheckIFSC, models.CheckFinal} {
		require.Eventually(t, func() bool {
			ok, seen := f.metrics.verificationResult(check)
			return seen && ok
		}, time.Second, 5*time.Millisecond, check)
	}
}

func TestOnboarding_OutOfOrder(t *testing.T) {
	svc := newOnboardingFixture(t, fakeBanks{}).svc
	ctx := context.Background()
	sess, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.SubmitPersonal(ctx, sess.ID, validPersonal())
	requireAppError(t, err, http.StatusConflict)
	assert.ErrorIs(t, err, ErrStepOutOfOrder)

	_, err = svc.VerifyPAN(ctx, sess.ID, models.PANVerifyRequest{PANNumber: "ABCDE1234F"})
	requireAppError(t, err, http.StatusConflict)

	// Back at the first step is a no-op.
	back, err := svc.Back(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepWelcome, back.Step)
}

func TestOnboarding_PersonalValidation(t *testing.T) {
	svc := newOnboardingFixture(t, fakeBanks{}).svc
	ctx := context.Background()
	sess, _ := svc.Start(ctx)
	_, err := svc.SubmitWelcome(ctx, sess.ID)
	require.NoError(t, err)

	p := validPersonal()
	p.Email = ""
	_, err = svc.SubmitPersonal(ctx, sess.ID, p)
	requireAppError(t, err, http.StatusBadRequest)
	assert.ErrorIs(t, err, ErrMissingInfo)

	p = validPersonal()
	p.Occupation = "Astronaut"
	_, err = svc.SubmitPersonal(ctx, sess.ID, p)
	appErr := requireAppError(t, err, http.StatusBadRequest)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "occupation", appErr.Details[0].Field)

	got, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepPersonal, got.Step)
}

func TestOnboarding_AadhaarMustBeTwelveDigits(t *testing.T) {
	svc := newOnboardingFixture(t, fakeBanks{}).svc
	_, err := svc.VerifyAadhaar(context.Background(), "any", models.AadhaarVerifyRequest{AadhaarNumber: "1234 5678"})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, "aadhaarNumber", appErr.Field)
}

func TestOnboarding_SubmitPANRequiresVerification(t *testing.T) {
	svc := newOnboardingFixture(t, fakeBanks{}).svc
	ctx := context.Background()
	sess, _ := svc.Start(ctx)
	_, _ = svc.SubmitWelcome(ctx, sess.ID)
	_, err := svc.SubmitPersonal(ctx, sess.ID, validPersonal())
	require.NoError(t, err)

	_, err = svc.SubmitPAN(ctx, sess.ID)
	requireAppError(t, err, http.StatusBadRequest)
	assert.ErrorIs(t, err, ErrMissingInfo)
}

func TestOnboarding_IFSCLookupFailure(t *testing.T) {
	f := newOnboardingFixture(t, fakeBanks{err: errors.New("lookup down")})
	svc := f.svc
	ctx := context.Background()

	sess, _ := svc.Start(ctx)
	// Jump straight to the bank step.
	sess.Step = models.StepBank
	require.NoError(t, f.sessions.Save(ctx, kycNamespace, sess.ID, sess))

	_, err := svc.VerifyIFSC(ctx, sess.ID, models.IFSCVerifyRequest{IFSCCode: "HDFC0001234"})
	require.NoError(t, err)
	got := waitVerified(t, svc, sess.ID, models.CheckIFSC)
	assert.Equal(t, models.VerifyFailed, got.Verification[models.CheckIFSC])
	require.Eventually(t, func() bool {
		ok, seen := f.metrics.verificationResult(models.CheckIFSC)
		return seen && !ok
	}, time.Second, 5*time.Millisecond)

	// a failed check can be retried
	_, err = svc.VerifyIFSC(ctx, sess.ID, models.IFSCVerifyRequest{IFSCCode: "HDFC0001234"})
	require.NoError(t, err)
}

func TestOnboarding_ScheduleFailureMarksCheckFailed(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	sessions := repository.NewCacheSessionStore(mc, time.Minute)
	svc := NewOnboardingService(sessions, failingVerifier{}, fakeBanks{}, VerificationDelays{}, nil, nil, nil)
	ctx := context.Background()

	sess, _ := svc.Start(ctx)
	sess.Step = models.StepPAN
	require.NoError(t, sessions.Save(ctx, kycNamespace, sess.ID, sess))

	got, err := svc.VerifyPAN(ctx, sess.ID, models.PANVerifyRequest{PANNumber: "ABCDE1234F"})
	require.NoError(t, err)
	assert.Equal(t, models.VerifyFailed, got.Verification[models.CheckPAN])
}

func TestOnboarding_DuplicateRequestWhilePending(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	sessions := repository.NewCacheSessionStore(mc, time.Minute)
	v := NewInlineVerifier(nil)
	defer v.Close()
	svc := NewOnboardingService(sessions, v, fakeBanks{}, VerificationDelays{PAN: time.Hour}, nil, nil, nil)
	ctx := context.Background()

	sess, _ := svc.Start(ctx)
	sess.Step = models.StepPAN
	require.NoError(t, sessions.Save(ctx, kycNamespace, sess.ID, sess))

	_, err := svc.VerifyPAN(ctx, sess.ID, models.PANVerifyRequest{PANNumber: "ABCDE1234F"})
	require.NoError(t, err)
	_, err = svc.VerifyPAN(ctx, sess.ID, models.PANVerifyRequest{PANNumber: "ABCDE1234F"})
	requireAppError(t, err, http.StatusConflict)
}

func TestOnboarding_ExpiredSession(t *testing.T) {
	f := newOnboardingFixture(t, fakeBanks{})
	ctx := context.Background()

	_, err := f.svc.Get(ctx, "gone")
	requireAppError(t, err, http.StatusNotFound)

	// a late verification for a vanished session is dropped quietly
	err = f.svc.CompleteVerification(ctx, models.VerificationJob{SessionID: "gone", Check: models.CheckPAN})
	assert.NoError(t, err)
}
