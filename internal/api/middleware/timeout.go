package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SelectiveTimeoutConfig bounds the request context: routes that call the
// extraction or OCR collaborators get long, everything else gets standard.
func SelectiveTimeoutConfig(standard, long time.Duration) echo.MiddlewareFunc {
	if standard <= 0 {
		standard = 30 * time.Second
	}
	if long < standard {
		long = standard
	}
	short := middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: standard,
		Skipper: IsLongRunning,
	})
	extended := middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: long,
		Skipper: func(c echo.Context) bool { return !IsLongRunning(c) },
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return short(extended(next))
	}
}

// IsLongRunning matches routes that wait on an external collaborator
func IsLongRunning(c echo.Context) bool {
	p := c.Path()
	return strings.HasSuffix(p, "/extract") || strings.HasSuffix(p, "/upload")
}
