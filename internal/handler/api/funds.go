package api

import (
	"strconv"

	"Tickfunds/internal/domain/models"
	"Tickfunds/internal/usecase"
	xhttp "Tickfunds/pkg/http"
	xlogger "Tickfunds/pkg/logger"
	"Tickfunds/pkg/util"

	"github.com/labstack/echo/v4"
)

// FundsHandler serves the screener, fund pages, comparisons and risk quiz.
type FundsHandler struct {
	logger *xlogger.Logger
	funds  *usecase.FundService
	risk   *usecase.RiskService
}

func NewFundsHandler(logger *xlogger.Logger, funds *usecase.FundService, risk *usecase.RiskService) *FundsHandler {
	return &FundsHandler{logger: orNop(logger), funds: funds, risk: risk}
}

func (h *FundsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/funds", h.Screen)
	g.GET("/funds/options", h.Options)
	g.GET("/funds/popular", h.Popular)
	g.GET("/funds/compare", h.Compare)
	g.GET("/funds/:id", h.Detail)
	g.GET("/risk-profile/questions", h.Questions)
	g.POST("/risk-profile", h.Assess)
}

func (h *FundsHandler) Screen(c echo.Context) error {
	req := new(models.FundFilter)
	*req = models.DefaultFundFilter()
	if err := c.Bind(req); err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("malformed query").WithError(err))
	}
	// risk=High,Low and risk=High&risk=Low are equivalent
	req.RiskLevels = util.SplitList(req.RiskLevels...)
	req.FundHouses = util.SplitList(req.FundHouses...)
	if verr := xhttp.ValidateStruct(c.Request().Context(), req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.funds.Screen(c.Request().Context(), *req)
	if err != nil {
		return failure(h.logger, c, "screen", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, res)
}

func (h *FundsHandler) Options(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.funds.Options())
}

func (h *FundsHandler) Popular(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	res, err := h.funds.Popular(c.Request().Context(), limit)
	if err != nil {
		return failure(h.logger, c, "popular", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *FundsHandler) Compare(c echo.Context) error {
	ids := util.SplitList(c.QueryParams()["funds"]...)
	res, err := h.funds.Compare(c.Request().Context(), ids)
	if err != nil {
		return failure(h.logger, c, "compare", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *FundsHandler) Detail(c echo.Context) error {
	res, err := h.funds.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failure(h.logger, c, "fund detail", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *FundsHandler) Questions(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.risk.Questions())
}

func (h *FundsHandler) Assess(c echo.Context) error {
	req := &models.RiskAnswersRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.risk.Assess(c.Request().Context(), req.Answers)
	if err != nil {
		return failure(h.logger, c, "risk profile", err)
	}
	return xhttp.SuccessResponse(c, res)
}
