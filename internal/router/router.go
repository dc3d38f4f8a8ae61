// Package router initializes the HTTP router (using Echo).
//
// It registers the middleware stack in order and defines the API route
// groups, mapping paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rvandam/usererr/internal/handler"
	"github.com/rvandam/usererr/internal/middleware"
)

// New builds the Echo instance with the full middleware stack and all
// routes registered. The returned router is handed to the server as its
// http.Handler.
//
// Middleware order matters: the request id must exist before the
// context enhancer builds the request logger, and the locale must be
// negotiated before any handler (or the error funnel) needs it.
func New(m *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	e.Use(middleware.RequestID())
	e.Use(m.Tracing.Middleware())
	e.Use(m.ContextEnhancer.Middleware())
	e.Use(m.Locale.Middleware())
	e.Use(m.Tracing.EnhanceTracing())
	e.Use(m.Global.RequestLogger())
	e.Use(m.Global.CORS())
	e.Use(m.Global.Secure())
	e.Use(m.Global.Recover())

	registerSystemRoutes(e, h)
	registerAccountRoutes(e, h)

	return e
}
