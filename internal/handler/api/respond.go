package api

import (
	"errors"

	xhttp "Tickfunds/pkg/http"
	xlogger "Tickfunds/pkg/logger"

	"github.com/labstack/echo/v4"
)

// failure logs a usecase error and writes it. Client errors log at warn.
func failure(l *xlogger.Logger, c echo.Context, op string, err error) error {
	var appErr *xhttp.AppError
	if errors.As(err, &appErr) && appErr.Status < 500 {
		l.Warn(op+" rejected", xlogger.String("code", appErr.Code), xlogger.Error(err))
	} else {
		l.Error(op+" usecase error", xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, err)
}

func orNop(l *xlogger.Logger) *xlogger.Logger {
	if l == nil {
		return xlogger.NewNop()
	}
	return l
}
