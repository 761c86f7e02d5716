package middleware

import (
	"time"

	"Tickfunds/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one structured line per request.
func RequestLogging(l *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo render the error so the logged status is the final one
				c.Error(err)
			}

			req := c.Request()
			l.Debug("http request",
				logger.String("method", req.Method),
				logger.String("uri", req.RequestURI),
				logger.String("route", c.Path()),
				logger.String("remote", c.RealIP()),
				logger.Int("status", c.Response().Status),
				logger.Duration("latency_ms", time.Since(start)),
			)
			return nil
		}
	}
}
