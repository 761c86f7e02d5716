package api

import (
	"Tickfunds/internal/usecase"
	xhttp "Tickfunds/pkg/http"
	xlogger "Tickfunds/pkg/logger"

	"github.com/labstack/echo/v4"
)

type SearchHandler struct {
	logger *xlogger.Logger
	search *usecase.SearchService
}

func NewSearchHandler(logger *xlogger.Logger, search *usecase.SearchService) *SearchHandler {
	return &SearchHandler{logger: orNop(logger), search: search}
}

func (h *SearchHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/search", h.Search)
}

func (h *SearchHandler) Search(c echo.Context) error {
	req := &usecase.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	hits, err := h.search.Search(*req)
	if err != nil {
		return failure(h.logger, c, "search", err)
	}
	return xhttp.ListResponse(c, hits, len(hits))
}
