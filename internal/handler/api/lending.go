package api

import (
	"Tickfunds/internal/domain/models"
	"Tickfunds/internal/usecase"
	xhttp "Tickfunds/pkg/http"
	xlogger "Tickfunds/pkg/logger"
	"Tickfunds/pkg/util"

	"github.com/labstack/echo/v4"
)

// LendingHandler serves loans, bonds, fixed deposits and digital gold.
type LendingHandler struct {
	logger *xlogger.Logger
	loans  *usecase.LoanService
	fixed  *usecase.FixedIncomeService
	gold   *usecase.GoldService
}

func NewLendingHandler(logger *xlogger.Logger, loans *usecase.LoanService, fixed *usecase.FixedIncomeService, gold *usecase.GoldService) *LendingHandler {
	return &LendingHandler{logger: orNop(logger), loans: loans, fixed: fixed, gold: gold}
}

func (h *LendingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/loans/products", h.LoanProducts)
	g.GET("/loans/emi", h.EMI)
	g.POST("/loans/borrowing-power", h.BorrowingPower)

	g.GET("/bonds", h.Bonds)
	g.GET("/bonds/baskets", h.Baskets)
	g.GET("/bonds/compare", h.CompareBonds)
	g.GET("/fds", h.FixedDeposits)
	g.GET("/fds/compare", h.CompareFDs)
	g.GET("/fds/:id/maturity", h.Maturity)

	g.GET("/gold/prices", h.GoldPrices)
	g.GET("/gold/holdings", h.GoldHoldings)
	g.GET("/gold/transactions", h.GoldTransactions)
	g.POST("/gold/quote", h.GoldQuote)
}

func (h *LendingHandler) LoanProducts(c echo.Context) error {
	products := h.loans.Products()
	return xhttp.ListResponse(c, products, len(products))
}

func (h *LendingHandler) EMI(c echo.Context) error {
	req := new(models.EMIRequest)
	*req = models.DefaultEMIRequest()
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.loans.Quote(c.Request().Context(), *req)
	if err != nil {
		return failure(h.logger, c, "emi", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *LendingHandler) BorrowingPower(c echo.Context) error {
	req := new(models.BorrowingPowerRequest)
	*req = models.DefaultBorrowingPowerRequest()
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.loans.BorrowingPower(c.Request().Context(), *req)
	if err != nil {
		return failure(h.logger, c, "borrowing power", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *LendingHandler) Bonds(c echo.Context) error {
	req := &models.CatalogQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	bonds := h.fixed.Bonds(*req)
	return xhttp.ListResponse(c, bonds, len(bonds))
}

func (h *LendingHandler) Baskets(c echo.Context) error {
	baskets := h.fixed.Baskets()
	return xhttp.ListResponse(c, baskets, len(baskets))
}

func (h *LendingHandler) CompareBonds(c echo.Context) error {
	bonds := h.fixed.CompareBonds(util.SplitList(c.QueryParams()["ids"]...))
	return xhttp.ListResponse(c, bonds, len(bonds))
}

func (h *LendingHandler) FixedDeposits(c echo.Context) error {
	req := &models.CatalogQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	fds := h.fixed.FixedDeposits(*req)
	return xhttp.ListResponse(c, fds, len(fds))
}

func (h *LendingHandler) CompareFDs(c echo.Context) error {
	fds := h.fixed.CompareFDs(util.SplitList(c.QueryParams()["ids"]...))
	return xhttp.ListResponse(c, fds, len(fds))
}

func (h *LendingHandler) Maturity(c echo.Context) error {
	req := &models.MaturityRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.fixed.Maturity(c.Request().Context(), c.Param("id"), *req)
	if err != nil {
		return failure(h.logger, c, "fd maturity", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *LendingHandler) GoldPrices(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.gold.Prices())
}

func (h *LendingHandler) GoldHoldings(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.gold.Holdings())
}

func (h *LendingHandler) GoldTransactions(c echo.Context) error {
	txns := h.gold.Transactions()
	return xhttp.ListResponse(c, txns, len(txns))
}

func (h *LendingHandler) GoldQuote(c echo.Context) error {
	req := &models.GoldQuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.gold.Quote(c.Request().Context(), *req)
	if err != nil {
		return failure(h.logger, c, "gold quote", err)
	}
	return xhttp.SuccessResponse(c, res)
}
