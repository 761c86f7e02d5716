package api

import (
	"Tickfunds/internal/domain/models"
	"Tickfunds/internal/usecase"
	xhttp "Tickfunds/pkg/http"
	xlogger "Tickfunds/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AccountHandler serves the signed-in user's own data: orders, portfolio,
// alerts, wishlist, family and credentials.
type AccountHandler struct {
	logger    *xlogger.Logger
	orders    *usecase.OrderService
	portfolio *usecase.PortfolioService
	alerts    *usecase.AlertService
	account   *usecase.AccountService
}

func NewAccountHandler(
	logger *xlogger.Logger,
	orders *usecase.OrderService,
	portfolio *usecase.PortfolioService,
	alerts *usecase.AlertService,
	account *usecase.AccountService,
) *AccountHandler {
	return &AccountHandler{
		logger:    orNop(logger),
		orders:    orders,
		portfolio: portfolio,
		alerts:    alerts,
		account:   account,
	}
}

func (h *AccountHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/orders", h.Orders)
	g.GET("/portfolio", h.Portfolio)
	g.GET("/alerts", h.Alerts)
	g.POST("/alerts/:id/read", h.MarkRead)

	g.GET("/wishlist", h.Wishlist)
	g.DELETE("/wishlist/:id", h.RemoveFromWishlist)
	g.GET("/family", h.Family)
	g.POST("/family", h.AddFamilyMember)

	g.POST("/account/password", h.ChangePassword)
	g.GET("/account/pin", h.PinStatus)
	g.POST("/account/pin", h.CreatePin)
	g.PUT("/account/pin", h.ChangePin)
	g.DELETE("/account/pin", h.DeletePin)
}

func (h *AccountHandler) Orders(c echo.Context) error {
	req := &models.OrderQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.orders.List(*req))
}

func (h *AccountHandler) Portfolio(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.portfolio.Summary())
}

func (h *AccountHandler) Alerts(c echo.Context) error {
	req := &models.AlertQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.alerts.Feed(*req)
	if err != nil {
		return failure(h.logger, c, "alerts", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AccountHandler) MarkRead(c echo.Context) error {
	if err := h.alerts.MarkRead(c.Param("id")); err != nil {
		return failure(h.logger, c, "mark read", err)
	}
	return xhttp.NoContentResponse(c)
}

func (h *AccountHandler) Wishlist(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.account.Wishlist())
}

func (h *AccountHandler) RemoveFromWishlist(c echo.Context) error {
	if err := h.account.RemoveFromWishlist(c.Param("id")); err != nil {
		return failure(h.logger, c, "wishlist remove", err)
	}
	return xhttp.SuccessResponse(c, h.account.Wishlist())
}

func (h *AccountHandler) Family(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.account.Family())
}

func (h *AccountHandler) AddFamilyMember(c echo.Context) error {
	req := &models.AddFamilyMemberRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	m, err := h.account.AddFamilyMember(*req)
	if err != nil {
		return failure(h.logger, c, "add family member", err)
	}
	return xhttp.CreatedResponse(c, m)
}

func (h *AccountHandler) ChangePassword(c echo.Context) error {
	req := &models.ChangePasswordRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	rules, err := h.account.ChangePassword(*req)
	if err != nil {
		return failure(h.logger, c, "change password", err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"message": "Password updated successfully",
		"rules":   rules,
	})
}

func (h *AccountHandler) PinStatus(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.account.PinStatus())
}

func (h *AccountHandler) CreatePin(c echo.Context) error {
	req := &models.CreatePinRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.account.CreatePin(*req)
	if err != nil {
		return failure(h.logger, c, "create pin", err)
	}
	return xhttp.CreatedResponse(c, res)
}

func (h *AccountHandler) ChangePin(c echo.Context) error {
	req := &models.ChangePinRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.account.ChangePin(*req)
	if err != nil {
		return failure(h.logger, c, "change pin", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AccountHandler) DeletePin(c echo.Context) error {
	req := &models.DeletePinRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.account.DeletePin(*req)
	if err != nil {
		return failure(h.logger, c, "delete pin", err)
	}
	return xhttp.SuccessResponse(c, res)
}
