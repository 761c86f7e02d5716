package http

import (
	xutil "Tickfunds/pkg/util"

	"github.com/labstack/echo/v4"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int { return xutil.ParseIntDefault(s, def) }

// QueryList reads a list query param given either repeated or comma separated.
func QueryList(c echo.Context, name string) []string {
	return xutil.SplitList(c.QueryParams()[name]...)
}
