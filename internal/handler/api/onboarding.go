package api

import (
	"context"
	"net/http"

	"Tickfunds/internal/domain/models"
	"Tickfunds/internal/usecase"
	xhttp "Tickfunds/pkg/http"
	"Tickfunds/pkg/http/middleware"
	xlogger "Tickfunds/pkg/logger"

	"github.com/labstack/echo/v4"
)

// OnboardingHandler exposes the KYC and PMS/AIF wizards. Verification
// requests are rate limited per client.
type OnboardingHandler struct {
	logger  *xlogger.Logger
	kyc     *usecase.OnboardingService
	pms     *usecase.PMSService
	limiter middleware.Allower
}

func NewOnboardingHandler(logger *xlogger.Logger, kyc *usecase.OnboardingService, pms *usecase.PMSService, limiter middleware.Allower) *OnboardingHandler {
	return &OnboardingHandler{logger: orNop(logger), kyc: kyc, pms: pms, limiter: limiter}
}

func (h *OnboardingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/onboarding")
	g.POST("", h.Start)
	g.GET("/:id", h.Get)
	g.POST("/:id/back", h.Back)
	g.POST("/:id/:step", h.Submit)

	var limit []echo.MiddlewareFunc
	if h.limiter != nil {
		limit = append(limit, middleware.RateLimit(h.limiter))
	}
	g.POST("/:id/verify/:check", h.Verify, limit...)

	p := e.Group("/api/pms-aif")
	p.POST("", h.StartPMS)
	p.GET("/:id", h.GetPMS)
	p.POST("/:id/:step", h.SubmitPMS)
}

func (h *OnboardingHandler) Start(c echo.Context) error {
	sess, err := h.kyc.Start(c.Request().Context())
	if err != nil {
		return failure(h.logger, c, "onboarding start", err)
	}
	return xhttp.CreatedResponse(c, sess)
}

func (h *OnboardingHandler) Get(c echo.Context) error {
	sess, err := h.kyc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failure(h.logger, c, "onboarding get", err)
	}
	return xhttp.SuccessResponse(c, sess)
}

func (h *OnboardingHandler) Back(c echo.Context) error {
	sess, err := h.kyc.Back(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failure(h.logger, c, "onboarding back", err)
	}
	return xhttp.SuccessResponse(c, sess)
}

// Submit validates and advances the named step.
func (h *OnboardingHandler) Submit(c echo.Context) error {
	ctx, id := c.Request().Context(), c.Param("id")
	var (
		sess *models.KYCSession
		err  error
	)
	switch step := c.Param("step"); step {
	case models.StepWelcome:
		sess, err = h.kyc.SubmitWelcome(ctx, id)
	case models.StepPersonal:
		var req models.PersonalDetails
		if bindErr := c.Bind(&req); bindErr != nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("malformed request body").WithError(bindErr))
		}
		sess, err = h.kyc.SubmitPersonal(ctx, id, req)
	case models.StepPAN:
		sess, err = h.kyc.SubmitPAN(ctx, id)
	case models.StepAadhaar:
		sess, err = h.kyc.SubmitAadhaar(ctx, id)
	case models.StepBank:
		var req models.BankStepRequest
		if bindErr := c.Bind(&req); bindErr != nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("malformed request body").WithError(bindErr))
		}
		sess, err = h.kyc.SubmitBank(ctx, id, req)
	case models.StepNominee:
		var req models.NomineeDetails
		if bindErr := c.Bind(&req); bindErr != nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("malformed request body").WithError(bindErr))
		}
		sess, err = h.kyc.SubmitNominee(ctx, id, req)
	case models.StepVerification:
		sess, err = h.kyc.SubmitVerification(ctx, id)
	default:
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown onboarding step %q", step))
	}
	if err != nil {
		return failure(h.logger, c, "onboarding submit", err)
	}
	return xhttp.SuccessResponse(c, sess)
}

// Verify starts an asynchronous check; poll the session for the result.
func (h *OnboardingHandler) Verify(c echo.Context) error {
	ctx, id := c.Request().Context(), c.Param("id")
	var (
		sess *models.KYCSession
		err  error
	)
	switch check := c.Param("check"); check {
	case models.CheckPAN:
		req := &models.PANVerifyRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		sess, err = h.kyc.VerifyPAN(ctx, id, *req)
	case models.CheckAadhaar:
		req := &models.AadhaarVerifyRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		sess, err = h.kyc.VerifyAadhaar(ctx, id, *req)
	case models.CheckIFSC:
		req := &models.IFSCVerifyRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		sess, err = h.kyc.VerifyIFSC(ctx, id, *req)
	case models.CheckFinal:
		sess, err = h.kyc.VerifyFinal(ctx, id)
	default:
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown verification %q", check))
	}
	if err != nil {
		return failure(h.logger, c, "onboarding verify", err)
	}
	return xhttp.DataResponse(c, http.StatusAccepted, sess)
}

func (h *OnboardingHandler) StartPMS(c echo.Context) error {
	app, err := h.pms.Start(c.Request().Context())
	if err != nil {
		return failure(h.logger, c, "pms start", err)
	}
	return xhttp.CreatedResponse(c, app)
}

func (h *OnboardingHandler) GetPMS(c echo.Context) error {
	app, err := h.pms.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failure(h.logger, c, "pms get", err)
	}
	return xhttp.SuccessResponse(c, app)
}

func (h *OnboardingHandler) SubmitPMS(c echo.Context) error {
	ctx, id := c.Request().Context(), c.Param("id")
	var submit func(context.Context) (*models.PMSApplication, error)
	switch step := c.Param("step"); step {
	case models.PMSStepEligibility:
		var req models.PMSEligibility
		if err := c.Bind(&req); err != nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("malformed request body").WithError(err))
		}
		submit = func(ctx context.Context) (*models.PMSApplication, error) { return h.pms.SubmitEligibility(ctx, id, req) }
	case models.PMSStepDetails:
		var req models.PMSDetails
		if err := c.Bind(&req); err != nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("malformed request body").WithError(err))
		}
		submit = func(ctx context.Context) (*models.PMSApplication, error) { return h.pms.SubmitDetails(ctx, id, req) }
	case models.PMSStepDocuments:
		var req models.PMSDocuments
		if err := c.Bind(&req); err != nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("malformed request body").WithError(err))
		}
		submit = func(ctx context.Context) (*models.PMSApplication, error) { return h.pms.SubmitDocuments(ctx, id, req) }
	case models.PMSStepReview:
		var req models.PMSReview
		if err := c.Bind(&req); err != nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("malformed request body").WithError(err))
		}
		submit = func(ctx context.Context) (*models.PMSApplication, error) { return h.pms.SubmitReview(ctx, id, req) }
	default:
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown application step %q", step))
	}
	app, err := submit(ctx)
	if err != nil {
		return failure(h.logger, c, "pms submit", err)
	}
	return xhttp.SuccessResponse(c, app)
}
