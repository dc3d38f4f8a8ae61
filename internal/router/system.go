package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rvandam/usererr/internal/handler"
)

// registerSystemRoutes registers endpoints that are not business logic,
// e.g. the health endpoint used by load balancers and monitors.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
}
